// Package teatest runs bubbletea models without a tea.Program so tests can
// press keys and inspect the view deterministically.
//
// Every Cmd a model returns is executed inline and its message fed back to
// Update. Cmds that block past a short deadline, such as cursor blink
// timers, are dropped.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds how many chained Cmds one input may trigger.
const maxDepth = 100

// cmdDeadline separates Cmds that return a message right away (store
// calls, message factories) from ones that wait on a timer.
const cmdDeadline = 50 * time.Millisecond

// Driver feeds input to a tea.Model and drains the resulting Cmds.
type Driver struct {
	T     testing.TB
	Model tea.Model

	// Quitting is set once a tea.QuitMsg comes out of a Cmd. A real program
	// would have exited at that point, so further input is ignored.
	Quitting bool
}

// Option adjusts a Driver before its first message.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg of w by h.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model. It does not call Init; use DrainInit for that.
func New(t testing.TB, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs the model's Init Cmd to completion.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send delivers msg and drains whatever follows from it.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Press sends a non-rune key such as tea.KeyEnter or tea.KeyDown.
func (d *Driver) Press(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

func (d *Driver) PressEnter() { d.T.Helper(); d.Press(tea.KeyEnter) }
func (d *Driver) PressEsc()   { d.T.Helper(); d.Press(tea.KeyEsc) }
func (d *Driver) PressDown()  { d.T.Helper(); d.Press(tea.KeyDown) }
func (d *Driver) PressUp()    { d.T.Helper(); d.Press(tea.KeyUp) }

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.T.Logf("teatest: stopped draining after %d chained commands", maxDepth)
		return
	}

	msg := runWithDeadline(cmd)
	switch m := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range m {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(m)
		return
	}
	if isBlink(msg) {
		return
	}

	var next tea.Cmd
	d.Model, next = d.Model.Update(msg)
	d.drain(next, depth+1)
}

// runWithDeadline returns cmd's message, or nil if it takes longer than
// cmdDeadline.
func runWithDeadline(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdDeadline):
		return nil
	}
}

// isBlink matches the unexported cursor blink messages of bubbles, which
// would otherwise schedule an endless chain of timers.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
