package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*priorityValue)(nil)
	_ pflag.Value = (*filterValue)(nil)
)

// priorityValue is a pflag.Value that accepts high, medium or low.
type priorityValue struct {
	p domain.Priority
}

func (v *priorityValue) String() string { return string(v.p) }

func (v *priorityValue) Set(s string) error {
	p, err := domain.ParsePriority(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return err
	}
	v.p = p
	return nil
}

func (v *priorityValue) Type() string { return "priority" }

// filterValue is a pflag.Value that accepts all, active or completed.
type filterValue struct {
	mode domain.FilterMode
}

func (v *filterValue) String() string { return string(v.mode) }

func (v *filterValue) Set(s string) error {
	m, err := domain.ParseFilterMode(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return err
	}
	v.mode = m
	return nil
}

func (v *filterValue) Type() string { return "filter" }

func validateNonBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be blank")
	}
	return nil
}
