package commands

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"github.com/sandeepkv93/todoui/internal/model"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeFilter  Type = "filter"
	TypeToggle  Type = "toggle"
	TypeDelete  Type = "delete"
	TypeRefresh Type = "refresh"
)

// Types lists the palette commands in help order.
func Types() []Type {
	return []Type{TypeAdd, TypeFilter, TypeToggle, TypeDelete, TypeRefresh}
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

// maxSuggestDistance bounds how far a typo may be from a command name.
const maxSuggestDistance = 2

type CommandError struct {
	Code       ErrorCode
	Message    string
	Suggestion Type
}

func (e *CommandError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s (did you mean %q?)", e.Code, e.Message, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Body string
}

type FilterArgs struct {
	Filter model.Filter
}

type TargetArgs struct {
	ID int64
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Filter *FilterArgs
	Target *TargetArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimLeftFunc(input, unicode.IsSpace)
	raw = strings.TrimPrefix(raw, "/")
	if strings.TrimSpace(raw) == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	raw = strings.TrimLeftFunc(raw, unicode.IsSpace)
	headEnd := strings.IndexFunc(raw, unicode.IsSpace)
	head, rest := raw, ""
	if headEnd >= 0 {
		head, rest = raw[:headEnd], raw[headEnd:]
	}
	head = strings.ToLower(head)
	args := strings.Fields(rest)

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, rest)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeToggle, TypeDelete:
		return parseTarget(input, Type(head), args)
	case TypeRefresh:
		return Command{Type: TypeRefresh, Raw: input}, nil
	default:
		return Command{}, &CommandError{
			Code:       ErrCodeUnknownCommand,
			Message:    fmt.Sprintf("unsupported command: %s", head),
			Suggestion: Suggest(head),
		}
	}
}

// Suggest returns the command name closest to word, or "" when none is near.
func Suggest(word string) Type {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return ""
	}
	best := Type("")
	bestDist := maxSuggestDistance + 1
	for _, t := range Types() {
		d := levenshtein.ComputeDistance(word, string(t))
		if d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}

// parseAdd keeps the body as typed after the single separator that follows
// the command word.
func parseAdd(raw, rest string) (Command, error) {
	body := rest
	if len(body) > 0 {
		body = body[1:]
	}
	if strings.TrimSpace(body) == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a todo body"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Body: body}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires one of all, pending, completed"}
	}
	f, err := model.ParseFilter(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Filter: f}}, nil
}

func parseTarget(raw string, t Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a todo id", t)}
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil || id <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid todo id %q", args[0])}
	}
	return Command{Type: t, Raw: raw, Target: &TargetArgs{ID: id}}, nil
}
