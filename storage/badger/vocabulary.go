package badger

import (
	"context"
	"errors"

	"github.com/acroforms/formrank/core"
	"github.com/acroforms/formrank/storage"
	"github.com/dgraph-io/badger/v4"
)

// VocabularyRepository implements storage.VocabularyRepository for BadgerDB.
// The snapshot is a singleton record, replaced wholesale on every save.
type VocabularyRepository struct {
	backend *Backend
}

var _ storage.VocabularyRepository = (*VocabularyRepository)(nil)

// NewVocabularyRepository creates a new VocabularyRepository.
func NewVocabularyRepository(backend *Backend) (*VocabularyRepository, error) {
	return &VocabularyRepository{backend: backend}, nil
}

// Close releases repository resources.
func (r *VocabularyRepository) Close() error {
	return nil
}

// Save stores the snapshot, replacing any previous one.
func (r *VocabularyRepository) Save(ctx context.Context, snapshot *core.VocabularySnapshot) error {
	if err := core.ValidateVocabularySnapshot(snapshot); err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeVocabularyKey(), storage.MarshalVocabularySnapshot(snapshot)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Load retrieves the stored snapshot, or (nil, nil) when none exists.
func (r *VocabularyRepository) Load(ctx context.Context) (*core.VocabularySnapshot, error) {
	var snapshot *core.VocabularySnapshot

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVocabularyKey())
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			snapshot, err = storage.UnmarshalVocabularySnapshot(val)
			return err
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
