package badger

import (
	"context"

	"github.com/acroforms/formrank/core"
	"github.com/acroforms/formrank/storage"
	"github.com/dgraph-io/badger/v4"
)

// HistoryRepository implements storage.HistoryRepository for BadgerDB.
// Entries are keyed by (host hash, inverted timestamp, path hash) so a
// forward prefix scan returns one host's entries newest first.
type HistoryRepository struct {
	backend *Backend
}

var _ storage.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(backend *Backend) (*HistoryRepository, error) {
	return &HistoryRepository{backend: backend}, nil
}

// Close releases repository resources.
func (r *HistoryRepository) Close() error {
	return nil
}

// Append stores history entries.
func (r *HistoryRepository) Append(ctx context.Context, entries ...*core.HistoryEntry) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			if err := core.ValidateHistoryEntry(entry); err != nil {
				return err
			}
			key := makeHistoryKey(entry.Host, entry.UploadedAt, entry.Path)
			if err := tx.Set(key, storage.MarshalHistoryEntry(entry)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// QueryByHost retrieves up to limit entries for a host, most recent first.
func (r *HistoryRepository) QueryByHost(ctx context.Context, host string, limit int) ([]*core.HistoryEntry, error) {
	var entries []*core.HistoryEntry

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialHistoryKey(host)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if limit > 0 && len(entries) >= limit {
				break
			}
			var entry *core.HistoryEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalHistoryEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return entries, nil
}
