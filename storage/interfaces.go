package storage

import (
	"context"

	"github.com/acroforms/formrank/core"
)

// CorpusRepository provides operations for managing indexed documents.
// Implementations must be thread-safe and support concurrent access.
// Documents are keyed by their stable path identity.
type CorpusRepository interface {
	// GetAll retrieves every stored document.
	// The returned slice is a snapshot; mutating it does not affect storage.
	GetAll(ctx context.Context) ([]*core.Document, error)

	// Get retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	Get(ctx context.Context, id core.ID) (*core.Document, error)

	// Upsert inserts or replaces documents keyed by IDFromContent(Path).
	// Sets InsertedAt on first insert and UpdatedAt on every write.
	Upsert(ctx context.Context, docs ...*core.Document) error

	// Delete removes documents by their IDs.
	// Missing IDs are ignored.
	Delete(ctx context.Context, ids ...core.ID) error

	// Clear removes every stored document.
	Clear(ctx context.Context) error

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// Close releases repository resources.
	Close() error
}

// VocabularyRepository persists the vocabulary model snapshot.
type VocabularyRepository interface {
	// Save stores the snapshot, replacing any previous one.
	Save(ctx context.Context, snapshot *core.VocabularySnapshot) error

	// Load retrieves the stored snapshot.
	// Returns (nil, nil) when no snapshot has been saved yet.
	Load(ctx context.Context) (*core.VocabularySnapshot, error)

	// Close releases repository resources.
	Close() error
}

// HistoryRepository provides append-only upload history.
type HistoryRepository interface {
	// Append stores history entries. Entries are never mutated afterward.
	Append(ctx context.Context, entries ...*core.HistoryEntry) error

	// QueryByHost retrieves up to limit entries for a host, most recent
	// first. A limit <= 0 means no limit.
	QueryByHost(ctx context.Context, host string, limit int) ([]*core.HistoryEntry, error)

	// Close releases repository resources.
	Close() error
}
