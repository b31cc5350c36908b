// Package textindex provides deterministic text vectorization for the
// relevance engine.
//
// It contains:
//   - A tokenizer that extracts ASCII word runs plus CJK unigrams and
//     bigrams, so languages without word boundaries still produce useful
//     terms
//   - A corpus-wide vocabulary model mapping terms to stable indices and
//     IDF weights, built in one shot from a batch of token lists
//   - A TF-IDF vectorizer producing L2-normalized sparse vectors sized to
//     the vocabulary
//
// The vocabulary is an immutable value: a rebuild produces a new model and
// invalidates every sparse vector computed against the old one. Callers
// swap models wholesale and re-vectorize.
package textindex
