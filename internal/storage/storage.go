package storage

import (
	"context"
)

// ResponseArchive defines the interface for archiving raw plan-generation
// responses. Archived payloads are an audit trail for debugging provider
// output; plan persistence never depends on them.
type ResponseArchive interface {
	// Store writes one raw provider payload and returns the object key it was
	// stored under.
	Store(ctx context.Context, userID string, payload []byte) (string, error)
}

// NoopArchive discards payloads. Used when no archive bucket is configured.
type NoopArchive struct{}

func (NoopArchive) Store(ctx context.Context, userID string, payload []byte) (string, error) {
	return "", nil
}
