// Copyright 2026 Acroforms Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package formrank is a local relevance engine that ranks a user's files
// against a free-text form query. It owns the embedded store, the
// vocabulary model and the ranking pipeline behind a single facade.
package formrank

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/acroforms/formrank/ai"
	"github.com/acroforms/formrank/ai/openai"
	"github.com/acroforms/formrank/core"
	"github.com/acroforms/formrank/indexing"
	"github.com/acroforms/formrank/search"
	"github.com/acroforms/formrank/storage"
	"github.com/acroforms/formrank/storage/badger"
	"github.com/acroforms/formrank/textindex"
)

// ErrIndexNotBuilt is returned when ranking is requested before any
// index build has produced a vocabulary.
var ErrIndexNotBuilt = errors.New("index has not been built yet")

// Engine ties the store, the vocabulary model and the ranking pipeline
// together. The vocabulary is an immutable value swapped atomically on
// rebuild, so concurrent Rank calls always see one consistent
// generation.
type Engine struct {
	backend     *badger.Backend
	corpusRepo  storage.CorpusRepository
	vocabRepo   storage.VocabularyRepository
	historyRepo storage.HistoryRepository
	provider    ai.Provider
	logger      *slog.Logger

	mu    sync.RWMutex
	vocab *textindex.Vocabulary
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	provider ai.Provider
	aiConfig *ai.Config
	logger   *slog.Logger
}

// WithProvider injects a pre-built AI provider. Takes precedence over
// WithAIConfig. Without either option the engine runs sparse-only.
func WithProvider(provider ai.Provider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithAIConfig constructs an OpenAI-compatible provider from the config.
func WithAIConfig(cfg *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = cfg
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New opens an engine backed by an on-disk store at filePath.
func New(filePath string, opts ...EngineOption) (*Engine, error) {
	return open(filePath, false, opts...)
}

// NewInMemory opens an engine backed by a transient in-memory store.
// Useful for tests and throwaway sessions.
func NewInMemory(opts ...EngineOption) (*Engine, error) {
	return open("", true, opts...)
}

func open(filePath string, inMemory bool, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}

	corpusRepo, err := badger.NewCorpusRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	vocabRepo, err := badger.NewVocabularyRepository(backend)
	if err != nil {
		corpusRepo.Close()
		backend.Close()
		return nil, err
	}

	historyRepo, err := badger.NewHistoryRepository(backend)
	if err != nil {
		vocabRepo.Close()
		corpusRepo.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil && options.aiConfig != nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			historyRepo.Close()
			vocabRepo.Close()
			corpusRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	e := &Engine{
		backend:     backend,
		corpusRepo:  corpusRepo,
		vocabRepo:   vocabRepo,
		historyRepo: historyRepo,
		provider:    provider,
		logger:      options.logger,
	}

	// Restore the vocabulary from a previous session, if any.
	snapshot, err := vocabRepo.Load(context.Background())
	if err != nil {
		e.Close()
		return nil, err
	}
	if snapshot != nil {
		vocab, err := textindex.FromSnapshot(snapshot)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.vocab = vocab
	}

	return e, nil
}

// BuildIndex runs a full index build over the sources and installs the
// resulting vocabulary for subsequent Rank calls.
func (e *Engine) BuildIndex(ctx context.Context, sources []indexing.DocumentSource, opts ...indexing.Option) (*core.IndexReport, error) {
	pipeline, err := e.NewPipeline(opts...)
	if err != nil {
		return nil, err
	}
	defer pipeline.Release()

	report, vocab, err := pipeline.BuildIndex(ctx, sources)
	if err != nil {
		return report, err
	}

	e.mu.Lock()
	e.vocab = vocab
	e.mu.Unlock()

	return report, nil
}

// Rank scores the indexed corpus against the query and returns up to
// topK candidates. Returns ErrIndexNotBuilt before the first build.
func (e *Engine) Rank(ctx context.Context, query core.QueryContext, topK int) ([]core.RankedResult, error) {
	e.mu.RLock()
	vocab := e.vocab
	e.mu.RUnlock()
	if vocab == nil {
		return nil, ErrIndexNotBuilt
	}

	ranker, err := e.NewRanker()
	if err != nil {
		return nil, err
	}
	return ranker.Rank(ctx, vocab, query, topK)
}

// RecordUpload appends an upload of path to host to the history,
// stamped with the current time.
func (e *Engine) RecordUpload(ctx context.Context, path, host string) error {
	return e.historyRepo.Append(ctx, &core.HistoryEntry{
		Path:       path,
		Host:       host,
		UploadedAt: time.Now().UTC(),
	})
}

// NewPipeline creates an index build pipeline over the engine's stores.
func (e *Engine) NewPipeline(opts ...indexing.Option) (*indexing.Pipeline, error) {
	all := []indexing.Option{indexing.WithLogger(e.logger)}
	if e.provider != nil {
		all = append(all, indexing.WithEmbedder(e.provider.Embedder()))
		all = append(all, indexing.WithVisionDescriber(e.provider.VisionDescriber()))
	}
	all = append(all, opts...)
	return indexing.NewPipeline(e.corpusRepo, e.vocabRepo, all...)
}

// NewRanker creates a ranker over the engine's stores.
func (e *Engine) NewRanker(opts ...search.Option) (*search.Ranker, error) {
	all := []search.Option{search.WithLogger(e.logger)}
	if e.provider != nil {
		all = append(all, search.WithEmbedder(e.provider.Embedder()))
	}
	all = append(all, opts...)
	return search.NewRanker(e.corpusRepo, e.historyRepo, all...)
}

// CorpusRepository exposes the document store.
func (e *Engine) CorpusRepository() storage.CorpusRepository {
	return e.corpusRepo
}

// HistoryRepository exposes the upload history store.
func (e *Engine) HistoryRepository() storage.HistoryRepository {
	return e.historyRepo
}

// VocabularySize reports the dimension of the live vocabulary, 0 before
// the first build.
func (e *Engine) VocabularySize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.vocab.Size()
}

func (e *Engine) Close() error {
	if e.provider != nil {
		if err := e.provider.Close(); err != nil {
			e.logger.Error("error closing AI provider", "err", err)
		}
	}

	if err := e.historyRepo.Close(); err != nil {
		e.logger.Error("error closing history repository", "err", err)
		return err
	}
	if err := e.vocabRepo.Close(); err != nil {
		e.logger.Error("error closing vocabulary repository", "err", err)
		return err
	}
	if err := e.corpusRepo.Close(); err != nil {
		e.logger.Error("error closing corpus repository", "err", err)
		return err
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
