package models

import "time"

// Task statuses. Transitions between them are direct overwrites; there is
// no enforced ordering.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task belongs to exactly one user; ownership never changes after creation.
type Task struct {
	ID        int64
	UserID    string
	Title     string
	Status    string
	CreatedAt time.Time
}

// TaskAnalytics is a derived per-user count of tasks by status. It is never
// stored; Total always equals the sum of the three buckets.
type TaskAnalytics struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
}
