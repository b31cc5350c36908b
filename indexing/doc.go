// Package indexing builds the searchable corpus from extracted file text.
//
// Index builds run in two phases separated by a barrier. Phase one
// tokenizes every source document and builds a fresh vocabulary model
// over the whole corpus; no document can be vectorized before the full
// vocabulary exists, because the vocabulary fixes the vector dimension.
// Phase two vectorizes and stores documents concurrently on a worker
// pool, then optionally generates dense embeddings in rate-limited
// batches when an embedding provider is configured.
//
// Embedding failures degrade rather than abort: a batch that fails
// after retries leaves its documents sparse-only and counted as
// degraded in the final report, while the rest of the build proceeds.
package indexing
