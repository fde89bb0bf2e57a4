package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/todoui/internal/model"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "todoapi-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestTodoCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T12:00:00Z")
	repo.now = func() time.Time { return created }

	todo, err := repo.CreateTodo(ctx, "  Write schema ")
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if todo.ID <= 0 || todo.Body != "  Write schema " || todo.Status != model.StatusPending {
		t.Fatalf("unexpected created todo: %#v", todo)
	}
	if !todo.CreatedAt.Equal(created) || todo.CompletedAt != nil {
		t.Fatalf("unexpected timestamps: %#v", todo)
	}

	done := created.Add(time.Hour)
	repo.now = func() time.Time { return done }
	updated, err := repo.UpdateTodoStatus(ctx, todo.ID, model.StatusCompleted)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != model.StatusCompleted || updated.CompletedAt == nil || !updated.CompletedAt.Equal(done) {
		t.Fatalf("unexpected completed todo: %#v", updated)
	}

	reopened, err := repo.UpdateTodoStatus(ctx, todo.ID, model.StatusPending)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.CompletedAt != nil {
		t.Fatalf("expected completed_at cleared, got %v", reopened.CompletedAt)
	}

	if err := repo.DeleteTodo(ctx, todo.ID); err != nil {
		t.Fatalf("delete todo: %v", err)
	}
	_, err = repo.GetTodo(ctx, todo.ID)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestTodoNotFoundAndInvalidInput(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.UpdateTodoStatus(ctx, 42, model.StatusCompleted); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on update, got: %v", err)
	}
	if err := repo.DeleteTodo(ctx, 42); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on delete, got: %v", err)
	}
	if _, err := repo.CreateTodo(ctx, "   "); !errors.Is(err, model.ErrEmptyBody) {
		t.Fatalf("expected ErrEmptyBody, got: %v", err)
	}

	todo, err := repo.CreateTodo(ctx, "x")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.UpdateTodoStatus(ctx, todo.ID, model.Status("archived")); !errors.Is(err, model.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}
}

func TestListTodosByStatus(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	bodies := []string{"a", "b", "c", "d"}
	ids := make([]int64, 0, len(bodies))
	for _, body := range bodies {
		todo, err := repo.CreateTodo(ctx, body)
		if err != nil {
			t.Fatalf("create %q: %v", body, err)
		}
		ids = append(ids, todo.ID)
	}
	for _, id := range []int64{ids[1], ids[3]} {
		if _, err := repo.UpdateTodoStatus(ctx, id, model.StatusCompleted); err != nil {
			t.Fatalf("complete %d: %v", id, err)
		}
	}

	cases := []struct {
		name     string
		filter   TodoListFilter
		expected []string
	}{
		{"all", TodoListFilter{}, []string{"a", "b", "c", "d"}},
		{"both statuses", TodoListFilter{Statuses: []model.Status{model.StatusCompleted, model.StatusPending}}, []string{"a", "b", "c", "d"}},
		{"pending", TodoListFilter{Statuses: []model.Status{model.StatusPending}}, []string{"a", "c"}},
		{"completed", TodoListFilter{Statuses: []model.Status{model.StatusCompleted}}, []string{"b", "d"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.ListTodos(ctx, tc.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != len(tc.expected) {
				t.Fatalf("expected %d todos, got %#v", len(tc.expected), got)
			}
			for i, body := range tc.expected {
				if got[i].Body != body {
					t.Fatalf("position %d: expected %q, got %q", i, body, got[i].Body)
				}
			}
		})
	}
}

func TestOpenSQLiteMigrates(t *testing.T) {
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "open.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer repo.Close()

	if err := repo.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	todo, err := repo.CreateTodo(context.Background(), "ready")
	if err != nil {
		t.Fatalf("create after open: %v", err)
	}
	if todo.Todo().Body != "ready" {
		t.Fatalf("unexpected todo %#v", todo.Todo())
	}
}

func TestNewSQLiteRepositoryLeavesConnectionUntouched(t *testing.T) {
	if _, err := NewSQLiteRepository(nil); err == nil {
		t.Fatalf("expected error for nil db")
	}

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "fresh.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := NewSQLiteRepository(db); err != nil {
		t.Fatalf("new repo: %v", err)
	}
	if stats := db.Stats(); stats.OpenConnections != 0 {
		t.Fatalf("expected no connection opened, got %d", stats.OpenConnections)
	}
}
