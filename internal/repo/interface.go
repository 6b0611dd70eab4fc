package repo

import (
	"context"
	"errors"

	"github.com/BuzzLyutic/tenant-task-api/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

// TaskRepository определяет интерфейс для работы с задачами.
// Все выборки идут по паре (tenant, id).
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, tenantID, id string) (model.Task, error)
	List(ctx context.Context, tenantID string) ([]model.Task, error)
	Update(ctx context.Context, t model.Task) (model.Task, error)
	Delete(ctx context.Context, tenantID, id string) error
}

// UserRepository is the identity store. Users are never updated or deleted.
type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}
