package search

import "errors"

var (
	// ErrCorpusRepositoryRequired is returned when a nil corpus repository is provided.
	ErrCorpusRepositoryRequired = errors.New("corpus repository is required")
	// ErrHistoryRepositoryRequired is returned when a nil history repository is provided.
	ErrHistoryRepositoryRequired = errors.New("history repository is required")
	// ErrVocabularyRequired is returned when Rank is called without a vocabulary model.
	ErrVocabularyRequired = errors.New("vocabulary model is required")
)
