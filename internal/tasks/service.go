// Package tasks provides the task CRUD operations and the local view state
// for the authenticated user's task list.
package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/taskbloom/taskbloom/internal/apiclient"
	"github.com/taskbloom/taskbloom/internal/model"
)

// Service issues task API calls and caches the resulting task list
type Service struct {
	api    *apiclient.Client
	logger *slog.Logger

	mu    sync.RWMutex
	tasks []model.Task
}

// New creates a task service
func New(api *apiclient.Client, logger *slog.Logger) *Service {
	return &Service{
		api:    api,
		logger: logger,
	}
}

// Tasks returns a snapshot of the cached task list
func (s *Service) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Task(nil), s.tasks...)
}

// Fetch retrieves the task list from the server and replaces the cache
func (s *Service) Fetch(ctx context.Context) ([]model.Task, error) {
	var resp struct {
		Tasks []model.Task `json:"tasks"`
	}
	if err := s.api.Get(ctx, "/api/tasks", &resp); err != nil {
		s.logger.Warn("failed to fetch tasks", slog.String("error", err.Error()))
		return nil, err
	}

	s.mu.Lock()
	s.tasks = resp.Tasks
	s.mu.Unlock()

	return append([]model.Task(nil), resp.Tasks...), nil
}

// Create validates and creates a task, prepending it to the local list the
// way the web client does
func (s *Service) Create(ctx context.Context, nt model.NewTask) (*model.Task, error) {
	if nt.Title == "" {
		return nil, model.ErrEmptyTitle
	}
	if !model.ValidPriority(nt.Priority) {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidPriority, nt.Priority)
	}
	if !model.ValidDifficulty(nt.Difficulty) {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidDifficulty, nt.Difficulty)
	}

	var resp struct {
		Task model.Task `json:"task"`
	}
	if err := s.api.Post(ctx, "/api/tasks", nt, &resp); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.tasks = append([]model.Task{resp.Task}, s.tasks...)
	s.mu.Unlock()

	return &resp.Task, nil
}

// Complete requests server-side completion of the task and, on success,
// marks it complete in the local view state. The task is never marked
// complete locally when the request fails.
func (s *Service) Complete(ctx context.Context, id model.TaskID) (*model.Task, error) {
	var resp struct {
		Task model.Task `json:"task"`
	}
	if err := s.api.Patch(ctx, "/api/tasks/"+string(id)+"/complete", nil, &resp); err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = true
			s.tasks[i].CompletedAt = resp.Task.CompletedAt
			break
		}
	}
	s.mu.Unlock()

	return &resp.Task, nil
}

// Delete removes a task on the server and from the local list
func (s *Service) Delete(ctx context.Context, id model.TaskID) error {
	if err := s.api.Delete(ctx, "/api/tasks/"+string(id)); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.mu.Unlock()

	return nil
}
