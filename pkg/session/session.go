// Package session persists view state for the HTTP API.
//
// A [Session] pins one client's view of one dataset: which file, the
// content hash it was opened against, the zoom stack and the frame size.
// It deliberately holds no geometry; layouts are recomputed from the
// dataset and the zoom stack on every request.
//
// Backends:
//   - [MemoryStore]: in-process, for a single server instance and tests
//   - [FileStore]: JSON files in a state directory
//   - [RedisStore]: shared across server instances
//
// Stores return (nil, nil) for unknown or expired sessions.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/argwheel/pkg/render/sunburst/zoom"
)

// DefaultTTL is the default session lifetime.
const DefaultTTL = 24 * time.Hour

// Session is the persisted state of one view.
type Session struct {
	ID          string         `json:"id"`
	Dataset     string         `json:"dataset"`
	DatasetHash string         `json:"dataset_hash"`
	View        zoom.ViewState `json:"view"`
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
	CreatedAt   time.Time      `json:"created_at"`
	ExpiresAt   time.Time      `json:"expires_at"`
}

// New creates a session with a random id.
func New(dataset, datasetHash string, view zoom.ViewState, ttl time.Duration) *Session {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	return &Session{
		ID:          uuid.NewString(),
		Dataset:     dataset,
		DatasetHash: datasetHash,
		View:        view,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch extends the session by ttl from now.
func (s *Session) Touch(ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s.ExpiresAt = time.Now().Add(ttl)
}

// ValidID reports whether id has the session id format. Stores reject
// other ids without touching the backend.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID. It returns nil, nil if the session
	// doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, s *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions. It may be a no-op for backends
	// with native expiry.
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
