package tasks

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

// Repository is the ownership-scoped task store. Every read and mutation
// takes the owning user id; a task owned by one user is never visible or
// mutable through another user's id.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Task, error)
	Update(ctx context.Context, userID string, taskID int64, status, title *string) (*models.Task, error)
	Delete(ctx context.Context, userID string, taskID int64) error
	CountByStatus(ctx context.Context, userID string) (map[string]int64, error)
}
