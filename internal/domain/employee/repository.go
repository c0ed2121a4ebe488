package employee

import "context"

// Directory is the read-only employee lookup keyed by staff id.
type Directory interface {
	Exists(ctx context.Context, staffID int64) (bool, error)
	ListByManager(ctx context.Context, managerID int64) ([]*Employee, error)
	// ListManagers returns everyone with at least one direct report other than
	// themself, ordered by dept then staff id.
	ListManagers(ctx context.Context) ([]*Employee, error)
}
