package cli

import "github.com/charmbracelet/bubbles/key"

type tuiKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	Edit        key.Binding
	Delete      key.Binding
	AddCategory key.Binding
	AddSection  key.Binding
	AddItem     key.Binding
	AddSubtask  key.Binding
	AddNote     key.Binding
	Filter      key.Binding
	Reload      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultTUIKeys() tuiKeyMap {
	return tuiKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:      key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Edit:        key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
		Delete:      key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		AddCategory: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		AddSection:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "section")),
		AddItem:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "item")),
		AddSubtask:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "subtask")),
		AddNote:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "note")),
		Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k tuiKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Edit, k.AddItem, k.Delete, k.Help, k.Quit}
}

func (k tuiKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Edit, k.Delete},
		{k.AddCategory, k.AddSection, k.AddItem, k.AddSubtask, k.AddNote},
		{k.Filter, k.Reload, k.Help, k.Quit},
	}
}
