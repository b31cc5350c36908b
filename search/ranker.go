package search

import (
	"context"
	"log/slog"
	"sort"

	"github.com/acroforms/formrank/ai"
	"github.com/acroforms/formrank/core"
	"github.com/acroforms/formrank/storage"
	"github.com/acroforms/formrank/textindex"
)

// DefaultTopK is the number of candidates returned when the caller does
// not ask for a specific count.
const DefaultTopK = 5

// Ranker turns a form query and the indexed corpus into a ranked
// candidate list. It is stateless between calls: the query is
// re-vectorized against the supplied vocabulary every time, so a corpus
// rebuild between calls never produces a mismatched comparison.
type Ranker struct {
	corpus   storage.CorpusRepository
	history  storage.HistoryRepository
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithEmbedder enables dense content scoring for documents that carry a
// dense vector. Without it the ranker runs sparse-only.
func WithEmbedder(embedder ai.Embedder) Option {
	return func(r *Ranker) error {
		r.embedder = embedder
		return nil
	}
}

// NewRanker creates a new ranker over the given repositories.
func NewRanker(
	corpus storage.CorpusRepository,
	history storage.HistoryRepository,
	opts ...Option,
) (*Ranker, error) {
	if corpus == nil {
		return nil, ErrCorpusRepositoryRequired
	}
	if history == nil {
		return nil, ErrHistoryRepositoryRequired
	}

	r := &Ranker{
		corpus:  corpus,
		history: history,
		logger:  slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Rank scores every candidate file against the query and returns up to
// topK results. A topK <= 0 falls back to DefaultTopK.
func (r *Ranker) Rank(ctx context.Context, vocab *textindex.Vocabulary, query core.QueryContext, topK int) ([]core.RankedResult, error) {
	return r.RankWithMonitor(ctx, vocab, query, topK, nil)
}

// RankWithMonitor ranks with monitoring. The monitor receives callbacks
// at each stage of the pipeline.
func (r *Ranker) RankWithMonitor(ctx context.Context, vocab *textindex.Vocabulary, query core.QueryContext, topK int, monitor RankMonitor) ([]core.RankedResult, error) {
	if vocab == nil {
		return nil, ErrVocabularyRequired
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	monitor.Start(query.RawText)

	docs, err := r.corpus.GetAll(ctx)
	if err != nil {
		r.logger.Error("error loading corpus", "err", err)
		return nil, err
	}
	if len(docs) == 0 {
		monitor.Finish(nil)
		return []core.RankedResult{}, nil
	}

	// Vectorize the query against the current vocabulary generation.
	queryTokens := textindex.Tokenize(query.RawText)
	queryVec := vocab.Vectorize(queryTokens)
	queryTerms := textindex.TokenizeFiltered(query.RawText)
	monitor.AfterQueryVectorize(queryTerms, len(queryVec))

	candidates := FilterByAccept(docs, query.AcceptFilter)
	filterIgnored := len(query.AcceptFilter) > 0 && len(candidates) == len(docs)
	monitor.AfterCandidateFilter(len(candidates), filterIgnored)
	if filterIgnored {
		r.logger.Debug("accept filter matched no candidates, ignoring it", "accept", query.AcceptFilter)
	}

	denseQuery := r.embedQuery(ctx, query.RawText)

	// Content scores. A document whose sparse vector length disagrees
	// with the live vocabulary is stale and scores 0 rather than being
	// compared in the wrong space. Documents carrying a dense vector
	// use the dense comparison when a dense query is available.
	contentScores := make([]float64, len(candidates))
	maxContent := 0.0
	denseMode := denseQuery != nil
	for i, doc := range candidates {
		var score float64
		if denseMode && doc.HasDense() {
			score = CosineSimilarity32(denseQuery, doc.Dense)
		} else {
			score = CosineSimilarity(queryVec, doc.Sparse)
		}
		contentScores[i] = score
		if score > maxContent {
			maxContent = score
		}
	}
	monitor.AfterContentScoring(maxContent, denseMode)

	// Host history feeds the recency and folder signals.
	var entries []*core.HistoryEntry
	if query.Host != "" {
		entries, err = r.history.QueryByHost(ctx, query.Host, 0)
		if err != nil {
			r.logger.Error("error loading upload history", "host", query.Host, "err", err)
			return nil, err
		}
	}
	folderBoosts := FolderBoosts(entries)

	profile := ProfileFor(maxContent > contentUsefulThreshold, len(entries) > 0)
	weights := profile.Weights()
	monitor.ProfileSelected(profile)

	now := query.Clock()
	results := make([]core.RankedResult, 0, len(candidates))
	for i, doc := range candidates {
		historyBoost, historyCount := HistoryBoost(entries, doc.Path, now)

		signals := core.SignalBreakdown{
			Content:        contentScores[i],
			History:        historyBoost,
			PathName:       PathNameOverlap(doc, queryTerms),
			ContentOverlap: PreviewOverlap(doc, queryTerms),
			Folder:         folderBoosts[doc.Folder()],
		}

		finalScore := weights.Blend(signals)
		monitor.CandidateScored(doc.Path, signals, finalScore)
		if finalScore <= 0 {
			continue
		}

		results = append(results, core.RankedResult{
			Path:         doc.Path,
			FinalScore:   finalScore,
			HistoryCount: historyCount,
			Signals:      signals,
		})
	}

	// Sort by score descending; equal scores break ties by path so the
	// ordering is stable across runs.
	sort.Slice(results, func(i, j int) bool {
		if results[i].FinalScore != results[j].FinalScore {
			return results[i].FinalScore > results[j].FinalScore
		}
		return results[i].Path < results[j].Path
	})
	if len(results) > topK {
		results = results[:topK]
	}
	monitor.Finish(results)

	return results, nil
}

// embedQuery returns a dense query embedding, or nil when no embedder
// is configured or the embedding call fails. A failure degrades the
// query to sparse-only scoring rather than aborting the ranking.
func (r *Ranker) embedQuery(ctx context.Context, text string) []float32 {
	if r.embedder == nil || text == "" {
		return nil
	}
	vec, err := r.embedder.EmbedText(ctx, text)
	if err != nil {
		r.logger.Warn("query embedding failed, falling back to sparse scoring", "err", err)
		return nil
	}
	if len(vec) == 0 {
		return nil
	}
	return vec
}
