package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/todoui/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

var todoColumns = []string{"id", "body", "status", "created_at", "updated_at", "completed_at"}

var _ Repository = (*SQLiteRepository)(nil)

type SQLiteRepository struct {
	db  *sql.DB
	qb  sq.StatementBuilderType
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteRepository{
		db:  db,
		qb:  sq.StatementBuilder.PlaceholderFormat(sq.Question),
		now: time.Now,
	}, nil
}

// OpenSQLite opens path and applies pending migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite serialises writers; one connection avoids SQLITE_BUSY under load.
	db.SetMaxOpenConns(1)
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) CreateTodo(ctx context.Context, body string) (TodoRecord, error) {
	if err := model.ValidateBody(body); err != nil {
		return TodoRecord{}, err
	}
	now := mustTime(r.now())
	query, args, err := r.qb.Insert("todos").
		Columns("body", "status", "created_at", "updated_at").
		Values(body, string(model.StatusPending), now, now).
		ToSql()
	if err != nil {
		return TodoRecord{}, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return TodoRecord{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return TodoRecord{}, err
	}
	return r.GetTodo(ctx, id)
}

func (r *SQLiteRepository) GetTodo(ctx context.Context, id int64) (TodoRecord, error) {
	query, args, err := r.qb.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return TodoRecord{}, err
	}
	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TodoRecord{}, ErrNotFound
		}
		return TodoRecord{}, err
	}
	return todo, nil
}

// UpdateTodoStatus sets status and stamps completed_at when a todo becomes
// completed.
func (r *SQLiteRepository) UpdateTodoStatus(ctx context.Context, id int64, status model.Status) (TodoRecord, error) {
	if !status.IsValid() {
		return TodoRecord{}, model.ErrInvalidStatus
	}
	now := r.now()
	var completedAt *time.Time
	if status == model.StatusCompleted {
		completedAt = &now
	}
	query, args, err := r.qb.Update("todos").
		Set("status", string(status)).
		Set("updated_at", mustTime(now)).
		Set("completed_at", nullTime(completedAt)).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return TodoRecord{}, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return TodoRecord{}, err
	}
	if err := checkRowsAffected(res); err != nil {
		return TodoRecord{}, err
	}
	return r.GetTodo(ctx, id)
}

func (r *SQLiteRepository) DeleteTodo(ctx context.Context, id int64) error {
	query, args, err := r.qb.Delete("todos").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// ListTodos returns todos in creation order.
func (r *SQLiteRepository) ListTodos(ctx context.Context, filter TodoListFilter) ([]TodoRecord, error) {
	builder := r.qb.Select(todoColumns...).From("todos")
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		builder = builder.Where(sq.Eq{"status": statuses})
	}
	builder = builder.OrderBy("id ASC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TodoRecord, 0)
	for rows.Next() {
		todo, scanErr := scanTodo(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, todo)
	}
	return out, rows.Err()
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (TodoRecord, error) {
	var out TodoRecord
	var status string
	var created, updated string
	var completed sql.NullString
	if err := s.Scan(&out.ID, &out.Body, &status, &created, &updated, &completed); err != nil {
		return TodoRecord{}, err
	}
	parsed, err := model.ParseStatus(status)
	if err != nil {
		return TodoRecord{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return TodoRecord{}, err
	}
	updatedAt, err := parseRequiredTime(updated)
	if err != nil {
		return TodoRecord{}, err
	}
	completedAt, err := parseNullableTime(completed)
	if err != nil {
		return TodoRecord{}, err
	}
	out.Status = parsed
	out.CreatedAt = createdAt
	out.UpdatedAt = updatedAt
	out.CompletedAt = completedAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
