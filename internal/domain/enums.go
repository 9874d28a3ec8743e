package domain

import "fmt"

// Kind is the type discriminant carried by every node in serialized form.
type Kind string

const (
	KindRoot     Kind = "TodoRoot"
	KindCategory Kind = "TodoCategory"
	KindSection  Kind = "TodoSection"
	KindItem     Kind = "TodoItem"
	KindSubtask  Kind = "TodoSubtask"
	KindNote     Kind = "TodoNote"
)

// ValidKinds is the closed set of node kind tags.
var ValidKinds = map[Kind]bool{
	KindRoot: true, KindCategory: true, KindSection: true,
	KindItem: true, KindSubtask: true, KindNote: true,
}

// Label returns the lowercase short name used on the command line.
func (k Kind) Label() string {
	switch k {
	case KindRoot:
		return "root"
	case KindCategory:
		return "category"
	case KindSection:
		return "section"
	case KindItem:
		return "item"
	case KindSubtask:
		return "subtask"
	case KindNote:
		return "note"
	default:
		return string(k)
	}
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"high": true, "medium": true, "low": true,
}

// ParsePriority validates s as a priority value.
func ParsePriority(s string) (Priority, error) {
	if !ValidPriorities[s] {
		return "", fmt.Errorf("invalid priority %q (expected high|medium|low)", s)
	}
	return Priority(s), nil
}

// FilterMode selects items by completion state when displaying a tree.
type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterActive    FilterMode = "active"
	FilterCompleted FilterMode = "completed"
)

// ParseFilterMode validates s as a filter mode. Empty means FilterAll.
func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterActive, FilterCompleted:
		return FilterMode(s), nil
	}
	return "", fmt.Errorf("invalid filter %q (expected all|active|completed)", s)
}
