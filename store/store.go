// Package store defines the durable session/job store the planner runs
// against. Implementations must serialize writes per session id; the
// AcquireJob compare-and-swap enforces at most one in-flight job per
// session.
package store

import (
	"context"
	"errors"

	"tripflow/models"
)

var (
	// ErrNotFound is returned when no session or job exists for an id.
	ErrNotFound = errors.New("not found")
	// ErrJobConflict is returned by AcquireJob when another live job
	// already owns the session.
	ErrJobConflict = errors.New("another job is already running for this session")
)

// SessionStore persists sessions and jobs by id.
type SessionStore interface {
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	PutSession(ctx context.Context, session *models.Session) error
	DeleteSession(ctx context.Context, sessionID string) error

	GetJob(ctx context.Context, jobID string) (*models.Job, error)
	PutJob(ctx context.Context, job *models.Job) error

	// AcquireJob atomically marks jobID as the session's active job. It
	// fails with ErrJobConflict when a different live job holds the
	// session.
	AcquireJob(ctx context.Context, sessionID, jobID string) error
	// ReleaseJob clears the active-job marker if jobID still holds it.
	ReleaseJob(ctx context.Context, sessionID, jobID string) error
}
