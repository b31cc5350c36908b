package indexing

import "errors"

var (
	// ErrCorpusRepositoryRequired is returned when a nil corpus repository is provided.
	ErrCorpusRepositoryRequired = errors.New("corpus repository is required")
	// ErrVocabularyRepositoryRequired is returned when a nil vocabulary repository is provided.
	ErrVocabularyRepositoryRequired = errors.New("vocabulary repository is required")
	// ErrInvalidMaxAttempts is returned when retry is configured with zero or negative attempts.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")
)
