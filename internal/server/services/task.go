package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
)

// TaskService provides the ownership-scoped task operations. Every method
// takes the authenticated user id; nothing here can observe or mutate
// another user's rows.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTaskService constructs a TaskService using repositories.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// Create adds a task for userID. Title is required; status defaults to
// pending and must be one of the known values when supplied.
func (s *TaskService) Create(ctx context.Context, userID, title, status string) (*models.Task, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", common.ErrorValidation)
	}
	if status == "" {
		status = models.StatusPending
	}
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("unknown status %q: %w", status, common.ErrorValidation)
	}

	repo := s.repomanager.Tasks(s.db)
	task, err := repo.Create(ctx, &models.Task{UserID: userID, Title: title, Status: status})
	if err != nil {
		return nil, common.ErrorInternal
	}
	return task, nil
}

// List returns the user's tasks, newest first.
func (s *TaskService) List(ctx context.Context, userID string) ([]*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	tasks, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return tasks, nil
}

// Update overwrites status and/or title of the user's task. At least one
// field must be supplied; a supplied status must be a known value. A task id
// that does not exist, or exists but belongs to someone else, yields
// common.ErrorNotFound.
func (s *TaskService) Update(ctx context.Context, userID string, taskID int64, status, title *string) (*models.Task, error) {
	if status == nil && title == nil {
		return nil, fmt.Errorf("status or title is required: %w", common.ErrorValidation)
	}
	if status != nil && !models.ValidStatus(*status) {
		return nil, fmt.Errorf("unknown status %q: %w", *status, common.ErrorValidation)
	}
	if title != nil && *title == "" {
		return nil, fmt.Errorf("title must not be empty: %w", common.ErrorValidation)
	}

	repo := s.repomanager.Tasks(s.db)
	task, err := repo.Update(ctx, userID, taskID, status, title)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return task, nil
}

// Delete removes the user's task. A missing or foreign task id yields
// common.ErrorNotFound.
func (s *TaskService) Delete(ctx context.Context, userID string, taskID int64) error {
	repo := s.repomanager.Tasks(s.db)
	if err := repo.Delete(ctx, userID, taskID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}

// Analytics computes the user's task counts grouped by status. The total is
// the sum of the buckets, so it is scoped to the same user by construction.
func (s *TaskService) Analytics(ctx context.Context, userID string) (*models.TaskAnalytics, error) {
	repo := s.repomanager.Tasks(s.db)
	counts, err := repo.CountByStatus(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	a := &models.TaskAnalytics{
		Pending:    counts[models.StatusPending],
		InProgress: counts[models.StatusInProgress],
		Completed:  counts[models.StatusCompleted],
	}
	a.Total = a.Pending + a.InProgress + a.Completed
	return a, nil
}
