// Package memory provides in-process implementations of the task and user
// repositories for development and tests. Data is lost when the process exits.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/tenant-task-api/internal/model"
	"github.com/BuzzLyutic/tenant-task-api/internal/repo"
)

var (
	_ repo.TaskRepository = (*TaskStore)(nil)
	_ repo.UserRepository = (*UserStore)(nil)
)

type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]model.Task
	now   func() time.Time
}

func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[string]model.Task),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *TaskStore) Create(_ context.Context, t model.Task) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	t.ID = uuid.NewString()
	t.CreatedAt = now
	t.UpdatedAt = now
	s.tasks[t.ID] = t
	return t, nil
}

func (s *TaskStore) Get(_ context.Context, tenantID, id string) (model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok || t.TenantID != tenantID {
		return model.Task{}, repo.ErrorNotFound
	}
	return t, nil
}

func (s *TaskStore) List(_ context.Context, tenantID string) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]model.Task, 0)
	for _, t := range s.tasks {
		if t.TenantID == tenantID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (s *TaskStore) Update(_ context.Context, t model.Task) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[t.ID]
	if !ok || existing.TenantID != t.TenantID {
		return model.Task{}, repo.ErrorNotFound
	}
	existing.Title = t.Title
	existing.Description = t.Description
	existing.DueDate = t.DueDate
	existing.Priority = t.Priority
	existing.UpdatedAt = s.now()
	s.tasks[t.ID] = existing
	return existing, nil
}

func (s *TaskStore) Delete(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.TenantID != tenantID {
		return repo.ErrorNotFound
	}
	delete(s.tasks, id)
	return nil
}

type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]model.User
	byEmail map[string]string
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]model.User),
		byEmail: make(map[string]string),
	}
}

func (s *UserStore) Create(_ context.Context, u model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, exists := s.byEmail[key]; exists {
		return model.User{}, repo.ErrorConflict
	}

	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.byID[u.ID] = u
	s.byEmail[key] = u.ID
	return u, nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return model.User{}, repo.ErrorNotFound
	}
	return u, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return model.User{}, repo.ErrorNotFound
	}
	return s.byID[id], nil
}
