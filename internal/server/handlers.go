package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sandeepkv93/todoui/internal/api"
	"github.com/sandeepkv93/todoui/internal/model"
	"github.com/sandeepkv93/todoui/internal/storage"
)

type resultEnvelope struct {
	Result any `json:"result"`
}

func sendResult(c *gin.Context, result any) {
	c.JSON(http.StatusOK, resultEnvelope{Result: result})
}

func sendError(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(api.StatusForCode(code), api.Envelope{
		Error: &api.ErrorBody{Code: code, Message: message},
	})
}

// bind decodes and validates the request body. It reports false after
// answering with BAD_REQUEST.
func bind(c *gin.Context, in any) bool {
	if err := c.ShouldBindJSON(in); err != nil {
		_ = c.Error(err)
		sendError(c, api.CodeBadRequest, validationMessage(err))
		return false
	}
	return true
}

// fail maps a repository error onto the envelope.
func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		sendError(c, api.CodeNotFound, "todo not found")
	case errors.Is(err, model.ErrEmptyBody), errors.Is(err, model.ErrInvalidStatus):
		sendError(c, api.CodeBadRequest, err.Error())
	default:
		s.logger.Error("repository call failed",
			zap.Error(err),
			zap.String("procedure", c.Param("procedure")),
			zap.String("request_id", c.GetString(requestIDKey)),
		)
		sendError(c, api.CodeInternal, "internal error")
	}
}

func (s *Server) createTodo(c *gin.Context) {
	var in api.CreateTodoInput
	if !bind(c, &in) {
		return
	}
	rec, err := s.repo.CreateTodo(c.Request.Context(), in.Body)
	s.metrics.RecordOperation("create", err)
	if err != nil {
		s.fail(c, err)
		return
	}
	sendResult(c, rec.Todo())
}

func (s *Server) listTodos(c *gin.Context) {
	var in api.ListTodosInput
	if !bind(c, &in) {
		return
	}
	recs, err := s.repo.ListTodos(c.Request.Context(), storage.TodoListFilter{Statuses: in.Statuses})
	s.metrics.RecordOperation("list", err)
	if err != nil {
		s.fail(c, err)
		return
	}
	todos := make([]model.Todo, 0, len(recs))
	for _, rec := range recs {
		todos = append(todos, rec.Todo())
	}
	s.metrics.SetListed(len(todos))
	sendResult(c, todos)
}

func (s *Server) updateTodoStatus(c *gin.Context) {
	var in api.UpdateTodoStatusInput
	if !bind(c, &in) {
		return
	}
	rec, err := s.repo.UpdateTodoStatus(c.Request.Context(), in.TodoID, in.Status)
	s.metrics.RecordOperation("update_status", err)
	if err != nil {
		s.fail(c, err)
		return
	}
	sendResult(c, rec.Todo())
}

func (s *Server) deleteTodo(c *gin.Context) {
	var in api.DeleteTodoInput
	if !bind(c, &in) {
		return
	}
	err := s.repo.DeleteTodo(c.Request.Context(), in.ID)
	s.metrics.RecordOperation("delete", err)
	if err != nil {
		s.fail(c, err)
		return
	}
	sendResult(c, api.DeleteTodoResult{ID: in.ID})
}
