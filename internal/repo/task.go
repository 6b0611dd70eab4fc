package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/tenant-task-api/internal/model"
)

const taskColumns = `id::text, title, description, due_date, priority, tenant_id, created_at, updated_at`

type TaskRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo { // Конструктор
	return &TaskRepo{
		pool: pool,
	}
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, due_date, priority, tenant_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+taskColumns,
		t.Title, t.Description, t.DueDate, t.Priority, t.TenantID)

	created, err := scanTask(row)
	return created, mapError(err)
}

func (r *TaskRepo) Get(ctx context.Context, tenantID, id string) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1 AND tenant_id = $2
	`, id, tenantID)

	t, err := scanTask(row)
	return t, mapError(err)
}

func (r *TaskRepo) List(ctx context.Context, tenantID string) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE tenant_id = $1
		ORDER BY created_at, id
	`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = $3, description = $4, due_date = $5, priority = $6, updated_at = now()
		WHERE id = $1 AND tenant_id = $2
		RETURNING `+taskColumns,
		t.ID, t.TenantID, t.Title, t.Description, t.DueDate, t.Priority)

	updated, err := scanTask(row)
	return updated, mapError(err)
}

func (r *TaskRepo) Delete(ctx context.Context, tenantID, id string) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (model.Task, error) {
	var t model.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Priority, &t.TenantID, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// mapError translates driver errors into the package sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return ErrorConflict
		case "22P02": // invalid_text_representation, e.g. a malformed uuid
			return ErrorNotFound
		}
	}
	return err
}
