package api

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeBadRequest = "BAD_REQUEST"
	CodeNotFound   = "NOT_FOUND"
	CodeInternal   = "INTERNAL_SERVER_ERROR"
)

// RemoteError is a failure reported by the backend.
type RemoteError struct {
	Procedure string
	Status    int
	Code      string
	Message   string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s (%d)", e.Procedure, e.Code, e.Status)
	}
	return fmt.Sprintf("%s: %s: %s", e.Procedure, e.Code, e.Message)
}

// StatusForCode maps an envelope error code to its HTTP status.
func StatusForCode(code string) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func codeForStatus(status int) string {
	switch {
	case status == http.StatusNotFound:
		return CodeNotFound
	case status >= 400 && status < 500:
		return CodeBadRequest
	default:
		return CodeInternal
	}
}

func IsNotFound(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Code == CodeNotFound
}
