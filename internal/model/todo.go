package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidStatus = errors.New("model: invalid todo status")
	ErrEmptyBody     = errors.New("model: todo body is required")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted:
		return true
	default:
		return false
	}
}

// Toggled returns the status a checkbox flip moves to. Unknown statuses
// toggle to completed.
func (s Status) Toggled() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// Todo is a snapshot of a backend todo. The backend owns ids and is the
// source of truth for every field.
type Todo struct {
	ID     int64  `json:"id"`
	Body   string `json:"body"`
	Status Status `json:"status"`
}

func (t Todo) Completed() bool {
	return t.Status == StatusCompleted
}

func (t Todo) Validate() error {
	if t.ID <= 0 {
		return errors.New("model: todo id must be positive")
	}
	if err := ValidateBody(t.Body); err != nil {
		return err
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	return nil
}

// ValidateBody rejects bodies that are empty after trimming. The body itself
// is stored as entered.
func ValidateBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return ErrEmptyBody
	}
	return nil
}
