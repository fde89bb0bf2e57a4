package model

import (
	"errors"
	"fmt"
	"strings"
)

// Filter is the active list tab. The fetch parameters and the display
// predicate are both derived from Statuses so they cannot drift apart.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

var ErrInvalidFilter = errors.New("model: invalid filter")

// Filters returns the tabs in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterPending, FilterCompleted}
}

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterPending, FilterCompleted:
		return true
	default:
		return false
	}
}

func (f Filter) Label() string {
	switch f {
	case FilterPending:
		return "Pending"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// Statuses is the status set sent with a list query for this tab.
func (f Filter) Statuses() []Status {
	switch f {
	case FilterPending:
		return []Status{StatusPending}
	case FilterCompleted:
		return []Status{StatusCompleted}
	default:
		return []Status{StatusCompleted, StatusPending}
	}
}

func (f Filter) Matches(t Todo) bool {
	for _, s := range f.Statuses() {
		if t.Status == s {
			return true
		}
	}
	return false
}

// Apply keeps the todos matching f, preserving order.
func (f Filter) Apply(todos []Todo) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Next and Prev cycle through Filters.
func (f Filter) Next() Filter {
	return f.shift(1)
}

func (f Filter) Prev() Filter {
	return f.shift(-1)
}

func (f Filter) shift(delta int) Filter {
	all := Filters()
	idx := 0
	for i, candidate := range all {
		if candidate == f {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(all)) % len(all)
	return all[idx]
}

func ParseFilter(raw string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(raw)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
	return f, nil
}
