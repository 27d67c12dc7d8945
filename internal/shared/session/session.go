package session

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidID is returned for empty session identifiers.
var ErrInvalidID = errors.New("invalid session id")

// State is the per-browser state kept between requests.
type State struct {
	// LastAppliedAt is the time of the last admitted application; zero when none.
	LastAppliedAt time.Time `json:"last_applied_at,omitempty"`
}

// Store persists session state keyed by session id.
// Load returns a zero State for unknown or expired sessions.
type Store interface {
	Load(ctx context.Context, id string) (State, error)
	Save(ctx context.Context, id string, state State) error
	Delete(ctx context.Context, id string) error
}
