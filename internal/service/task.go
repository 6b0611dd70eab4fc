package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/tenant-task-api/internal/model"
	"github.com/BuzzLyutic/tenant-task-api/internal/repo"
	"github.com/BuzzLyutic/tenant-task-api/internal/validation"
)

// TaskService applies tenant scoping to every task operation. The tenant id
// always comes from the authenticated caller, never from the payload.
type TaskService struct {
	repo      repo.TaskRepository
	validator *validation.Validator
}

func NewTaskService(repo repo.TaskRepository, v *validation.Validator) *TaskService {
	return &TaskService{repo: repo, validator: v}
}

func (s *TaskService) Create(ctx context.Context, tenantID string, in model.TaskInput) (model.Task, error) {
	t, err := s.build(in) // Валидация входных данных
	if err != nil {
		return model.Task{}, err
	}
	t.TenantID = tenantID
	return s.repo.Create(ctx, t)
}

func (s *TaskService) Get(ctx context.Context, tenantID, id string) (model.Task, error) {
	if !validID(id) {
		return model.Task{}, repo.ErrorNotFound
	}
	return s.repo.Get(ctx, tenantID, id)
}

func (s *TaskService) List(ctx context.Context, tenantID string) ([]model.Task, error) {
	return s.repo.List(ctx, tenantID)
}

// Update replaces every mutable field of the task.
func (s *TaskService) Update(ctx context.Context, tenantID, id string, in model.TaskInput) (model.Task, error) {
	t, err := s.build(in)
	if err != nil {
		return model.Task{}, err
	}
	if !validID(id) {
		return model.Task{}, repo.ErrorNotFound
	}
	t.ID = id
	t.TenantID = tenantID
	return s.repo.Update(ctx, t)
}

func (s *TaskService) Delete(ctx context.Context, tenantID, id string) error {
	if !validID(id) {
		return repo.ErrorNotFound
	}
	return s.repo.Delete(ctx, tenantID, id)
}

func (s *TaskService) build(in model.TaskInput) (model.Task, error) {
	if err := s.validator.ValidateTask(in); err != nil {
		return model.Task{}, err
	}
	due, err := validation.ParseDate(string(in.DueDate))
	if err != nil {
		return model.Task{}, err
	}
	return model.Task{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     due,
		Priority:    model.Priority(in.Priority),
	}, nil
}

// validID rejects ids that no backend could have assigned.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
