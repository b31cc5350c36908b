package search

import (
	"sort"
	"strings"

	"github.com/acroforms/formrank/core"
)

// Match pairs a candidate document with its raw content similarity score.
type Match struct {
	Doc   *core.Document
	Score float64
}

// FindSimilar ranks stored documents against a sparse query vector by
// cosine similarity. Documents whose sparse vector length disagrees with
// the query's are stale (vectorized against an older vocabulary) and are
// excluded rather than compared. Entries with score <= 0 are dropped;
// results are sorted descending with ties broken by ascending path.
func FindSimilar(query []float64, docs []*core.Document, topN int, accept []string) []Match {
	candidates := FilterByAccept(docs, accept)

	matches := make([]Match, 0, len(candidates))
	for _, doc := range candidates {
		score := CosineSimilarity(query, doc.Sparse)
		if score <= 0 {
			continue
		}
		matches = append(matches, Match{Doc: doc, Score: score})
	}

	sortMatches(matches)
	if topN > 0 && len(matches) > topN {
		matches = matches[:topN]
	}
	return matches
}

// FindSimilarDense ranks documents against a dense query embedding.
// Only documents carrying a dense vector participate; the sparse and
// dense spaces are never mixed in one comparison.
func FindSimilarDense(query []float32, docs []*core.Document, topN int, accept []string) []Match {
	candidates := FilterByAccept(docs, accept)

	matches := make([]Match, 0, len(candidates))
	for _, doc := range candidates {
		if !doc.HasDense() {
			continue
		}
		score := CosineSimilarity32(query, doc.Dense)
		if score <= 0 {
			continue
		}
		matches = append(matches, Match{Doc: doc, Score: score})
	}

	sortMatches(matches)
	if topN > 0 && len(matches) > topN {
		matches = matches[:topN]
	}
	return matches
}

func sortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Doc.Path < matches[j].Doc.Path
	})
}

// FilterByAccept narrows documents to those matching any accept pattern:
// an extension token ("pdf" or ".pdf"), an exact MIME type, or a MIME
// wildcard like "image/*". A filter that matches zero candidates is
// ignored rather than producing an empty set, so an overly strict form
// accept attribute degrades gracefully instead of hiding every file.
func FilterByAccept(docs []*core.Document, accept []string) []*core.Document {
	if len(accept) == 0 {
		return docs
	}

	filtered := make([]*core.Document, 0, len(docs))
	for _, doc := range docs {
		if matchesAccept(doc, accept) {
			filtered = append(filtered, doc)
		}
	}

	if len(filtered) == 0 {
		return docs
	}
	return filtered
}

func matchesAccept(doc *core.Document, accept []string) bool {
	ext := pathExtension(doc.Path)
	mime := strings.ToLower(doc.MIMEType)

	for _, pattern := range accept {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}

		switch {
		case strings.HasSuffix(pattern, "/*"):
			prefix := strings.TrimSuffix(pattern, "*")
			if mime != "" && strings.HasPrefix(mime, prefix) {
				return true
			}
		case strings.Contains(pattern, "/"):
			if mime == pattern {
				return true
			}
		default:
			if ext == strings.TrimPrefix(pattern, ".") {
				return true
			}
		}
	}
	return false
}

func pathExtension(path string) string {
	base := path
	if idx := strings.LastIndexAny(base, "/\\"); idx >= 0 {
		base = base[idx+1:]
	}
	idx := strings.LastIndex(base, ".")
	if idx < 0 || idx == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[idx+1:])
}
