package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"taskmaster/internal/task"
)

// MemoryDSN keeps the database inside the process. It is discarded on Close.
const MemoryDSN = ":memory:"

var ErrNotFound = errors.New("task not found")

type Store struct {
	db *sql.DB
}

// Open opens a store on dsn and creates its schema. An empty dsn means
// MemoryDSN.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	s := &Store{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	completed INTEGER NOT NULL DEFAULT 0,
	priority TEXT NOT NULL CHECK (priority IN ('low', 'medium', 'high')),
	due_date TEXT NOT NULL,
	category TEXT NOT NULL,
	created_at TEXT NOT NULL
);`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

// Seed inserts tasks with their own ids.
func (s *Store) Seed(ctx context.Context, tasks []task.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, t := range tasks {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (id, title, description, completed, priority, due_date, category, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
			t.ID, t.Title, t.Description, boolToInt(t.Completed), string(t.Priority), t.DueDate, t.Category, t.CreatedAt)
		if err != nil {
			return fmt.Errorf("seed task %d: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

// Tasks returns every task in id order, which is also creation order.
func (s *Store) Tasks(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, description, completed, priority, due_date, category, created_at FROM tasks ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Store) Task(ctx context.Context, id int) (task.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, title, description, completed, priority, due_date, category, created_at FROM tasks WHERE id = ?;`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return task.Task{}, ErrNotFound
	}
	return t, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(r scanner) (task.Task, error) {
	var t task.Task
	var completed int
	var priority string
	if err := r.Scan(&t.ID, &t.Title, &t.Description, &completed, &priority, &t.DueDate, &t.Category, &t.CreatedAt); err != nil {
		return task.Task{}, err
	}
	t.Completed = completed == 1
	t.Priority = task.Priority(priority)
	return t, nil
}

// AddTask appends a pending task built from d. Its id is one more than the
// largest existing id.
func (s *Store) AddTask(ctx context.Context, d task.Draft, createdAt string) (task.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return task.Task{}, err
	}
	defer tx.Rollback()

	var id int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM tasks;`).Scan(&id); err != nil {
		return task.Task{}, err
	}
	t := task.Task{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Priority:    d.Priority,
		DueDate:     d.DueDate,
		Category:    d.Category,
		CreatedAt:   createdAt,
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, completed, priority, due_date, category, created_at) VALUES (?, ?, ?, 0, ?, ?, ?, ?);`,
		t.ID, t.Title, t.Description, string(t.Priority), t.DueDate, t.Category, t.CreatedAt)
	if err != nil {
		return task.Task{}, err
	}
	if err := tx.Commit(); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// UpdateTask replaces the editable fields of task id. Completion and creation
// date are kept.
func (s *Store) UpdateTask(ctx context.Context, id int, d task.Draft) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, priority = ?, due_date = ?, category = ? WHERE id = ?;`,
		d.Title, d.Description, string(d.Priority), d.DueDate, d.Category, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

// Toggle flips the completed flag of task id. A missing id is not an error.
func (s *Store) Toggle(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx, `UPDATE tasks SET completed = 1 - completed WHERE id = ?;`, id)
	return err
}

func (s *Store) DeleteTask(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?;`, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
