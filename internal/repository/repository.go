package repository

import (
	"context"
	"time"

	"anime-stream/internal/database"
)

// queryScope bounds every store call with the configured query timeout
// unless the caller already set a deadline.
type queryScope struct {
	db      *database.Database
	timeout time.Duration
}

func newQueryScope(db *database.Database) queryScope {
	return queryScope{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (s queryScope) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}
