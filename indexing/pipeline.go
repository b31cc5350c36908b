package indexing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"github.com/acroforms/formrank/ai"
	"github.com/acroforms/formrank/core"
	"github.com/acroforms/formrank/storage"
	"github.com/acroforms/formrank/textindex"
)

const (
	defaultBatchSize      = 16
	defaultBatchSpacing   = 250 * time.Millisecond
	defaultMaxRetries     = 3
	defaultRetryBaseDelay = time.Second
	defaultEmbedWorkers   = 2
)

// DocumentSource is one file handed to the index build: its identity
// plus whatever text the extractor pulled out of it. ImageData carries
// the raw bytes of an image file so a vision describer can produce text
// for it when no text was extracted.
type DocumentSource struct {
	Path      string
	Name      string
	MIMEType  string
	Text      string
	ImageData []byte
}

// Pipeline builds the corpus index. A build is one-shot: it tokenizes
// every source, derives a fresh vocabulary, vectorizes all documents
// against it and persists the result along with the vocabulary snapshot.
type Pipeline struct {
	corpus     storage.CorpusRepository
	vocabulary storage.VocabularyRepository
	embedder   ai.Embedder
	describer  ai.VisionDescriber

	pool           *ants.Pool
	batchSize      int
	batchSpacing   time.Duration
	maxRetries     int
	retryBaseDelay time.Duration
	embedWorkers   int
	progressWriter io.Writer
	logger         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent vectorization.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithEmbedder enables the dense embedding phase. Without it documents
// are indexed sparse-only.
func WithEmbedder(embedder ai.Embedder) Option {
	return func(p *Pipeline) error {
		p.embedder = embedder
		return nil
	}
}

// WithVisionDescriber enables text generation for image sources that
// carry raw bytes but no extracted text.
func WithVisionDescriber(describer ai.VisionDescriber) Option {
	return func(p *Pipeline) error {
		p.describer = describer
		return nil
	}
}

// WithBatchSize sets how many documents are embedded per provider call.
// Default is 16.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithBatchSpacing sets the pause between consecutive embedding batch
// launches, spreading load on a local provider. Default is 250ms.
func WithBatchSpacing(spacing time.Duration) Option {
	return func(p *Pipeline) error {
		if spacing < 0 {
			spacing = 0
		}
		p.batchSpacing = spacing
		return nil
	}
}

// WithMaxRetries sets the retry attempts for a failing embedding batch.
// Default is 3.
func WithMaxRetries(attempts int) Option {
	return func(p *Pipeline) error {
		if attempts < 1 {
			return ErrInvalidMaxAttempts
		}
		p.maxRetries = attempts
		return nil
	}
}

// WithRetryBaseDelay sets the base delay for embedding retry backoff.
// Default is 1s.
func WithRetryBaseDelay(delay time.Duration) Option {
	return func(p *Pipeline) error {
		p.retryBaseDelay = delay
		return nil
	}
}

// WithProgressWriter enables progress reporting to the given writer,
// typically os.Stderr.
func WithProgressWriter(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progressWriter = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new index build pipeline.
func NewPipeline(
	corpus storage.CorpusRepository,
	vocabulary storage.VocabularyRepository,
	opts ...Option,
) (*Pipeline, error) {
	if corpus == nil {
		return nil, ErrCorpusRepositoryRequired
	}
	if vocabulary == nil {
		return nil, ErrVocabularyRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		corpus:         corpus,
		vocabulary:     vocabulary,
		pool:           pool,
		batchSize:      defaultBatchSize,
		batchSpacing:   defaultBatchSpacing,
		maxRetries:     defaultMaxRetries,
		retryBaseDelay: defaultRetryBaseDelay,
		embedWorkers:   defaultEmbedWorkers,
		logger:         slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}

	return p, nil
}

// BuildIndex runs a full index build over the sources and returns the
// build report together with the freshly built vocabulary.
//
// Phase one is a barrier: every source is tokenized and the vocabulary
// is built over the complete corpus before any document is vectorized.
// Phase two vectorizes and stores documents on the worker pool, then
// runs the dense embedding phase when an embedder is configured.
// Documents already in the corpus but absent from sources keep their
// old vectors; ranking excludes them from content comparison once the
// dimension changes.
func (p *Pipeline) BuildIndex(ctx context.Context, sources []DocumentSource) (*core.IndexReport, *textindex.Vocabulary, error) {
	report := &core.IndexReport{}

	accepted := make([]DocumentSource, 0, len(sources))
	seen := make(map[string]int, len(sources))
	for _, src := range sources {
		if src.Path == "" {
			report.Skipped++
			continue
		}
		// Last occurrence of a duplicated path wins.
		if idx, dup := seen[src.Path]; dup {
			accepted[idx] = src
			report.Skipped++
			continue
		}
		seen[src.Path] = len(accepted)
		accepted = append(accepted, src)
	}

	if len(accepted) == 0 {
		return report, textindex.BuildVocabulary(nil), nil
	}

	var progress *ProgressTracker
	if p.progressWriter != nil {
		progress = NewProgressTracker(p.progressWriter, len(accepted), 10)
		progress.Start()
		defer progress.Finish()
	}

	// Phase 1: describe text-less images, tokenize everything, then
	// build the vocabulary.
	docsTokens := make([][]string, len(accepted))
	for i := range accepted {
		if err := ctx.Err(); err != nil {
			return report, nil, err
		}

		src := &accepted[i]
		if src.Text == "" && len(src.ImageData) > 0 && p.describer != nil {
			desc, err := p.describer.Describe(ctx, src.ImageData, src.MIMEType, src.Name)
			if err != nil {
				p.logger.Warn("image description failed, indexing by name only",
					"path", src.Path, "err", err)
			} else {
				src.Text = desc
			}
		}

		docsTokens[i] = textindex.Tokenize(src.Text)
	}
	vocab := textindex.BuildVocabulary(docsTokens)

	// Phase 2: vectorize and store concurrently.
	docs := make([]*core.Document, len(accepted))
	failed := make([]bool, len(accepted))
	var wg sync.WaitGroup
	for i := range accepted {
		i := i
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()

			src := accepted[i]
			doc := &core.Document{
				Path:        src.Path,
				Name:        src.Name,
				MIMEType:    src.MIMEType,
				TextPreview: core.TruncatePreview(src.Text),
				Sparse:      vocab.Vectorize(docsTokens[i]),
			}

			if err := p.corpus.Upsert(ctx, doc); err != nil {
				p.logger.Error("error storing document", "path", src.Path, "err", err)
				failed[i] = true
				return
			}
			docs[i] = doc
			if progress != nil {
				progress.Increment(1)
			}
		})
		if submitErr != nil {
			wg.Done()
			p.logger.Error("error submitting vectorization task", "path", accepted[i].Path, "err", submitErr)
			failed[i] = true
		}
	}
	wg.Wait()

	stored := make([]*core.Document, 0, len(docs))
	for i, doc := range docs {
		if failed[i] || doc == nil {
			report.Failed++
			continue
		}
		report.Indexed++
		stored = append(stored, doc)
	}

	if err := ctx.Err(); err != nil {
		return report, nil, err
	}

	// Persist the new vocabulary only after the corpus reflects it.
	if err := p.vocabulary.Save(ctx, vocab.Snapshot()); err != nil {
		return report, nil, err
	}

	if p.embedder != nil {
		report.Degraded = p.embedDense(ctx, stored)
	}

	return report, vocab, nil
}

// embedDense generates dense vectors for the stored documents in
// rate-limited batches and returns how many documents ended up
// sparse-only. A batch that fails after retries degrades its documents
// instead of aborting the build.
func (p *Pipeline) embedDense(ctx context.Context, docs []*core.Document) int {
	if len(docs) == 0 {
		return 0
	}

	var mu sync.Mutex
	degraded := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.embedWorkers)

	for start := 0; start < len(docs); start += p.batchSize {
		end := start + p.batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]

		if start > 0 && p.batchSpacing > 0 {
			timer := time.NewTimer(p.batchSpacing)
			select {
			case <-gctx.Done():
				timer.Stop()
				mu.Lock()
				degraded += len(docs) - start
				mu.Unlock()
				_ = g.Wait()
				return degraded
			case <-timer.C:
			}
		}

		g.Go(func() error {
			if err := p.embedBatch(gctx, batch); err != nil {
				p.logger.Warn("embedding batch failed, documents stay sparse-only",
					"batchSize", len(batch), "err", err)
				mu.Lock()
				degraded += len(batch)
				mu.Unlock()
			}
			// Never propagate: one bad batch must not cancel the rest.
			return nil
		})
	}

	_ = g.Wait()
	return degraded
}

// embedBatch embeds one batch with retry and persists the dense vectors.
func (p *Pipeline) embedBatch(ctx context.Context, batch []*core.Document) error {
	texts := make([]string, len(batch))
	for i, doc := range batch {
		texts[i] = doc.TextPreview
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = p.embedder.EmbedTexts(ctx, texts)
		return err
	}, p.maxRetries, p.retryBaseDelay)
	if err != nil {
		return err
	}
	if len(embeddings) != len(batch) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(embeddings))
	}

	for i, doc := range batch {
		doc.Dense = embeddings[i]
	}
	return p.corpus.Upsert(ctx, batch...)
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
