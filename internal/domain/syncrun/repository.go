package syncrun

import "context"

// Repository persists sync run reports for later inspection.
type Repository interface {
	// Save stores a completed run report.
	Save(ctx context.Context, report *Report) error

	// List returns the most recent reports, newest first.
	List(ctx context.Context, limit int) ([]*Report, error)
}
