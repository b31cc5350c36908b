package search

import (
	"math"
	"time"

	"github.com/acroforms/formrank/core"
	"github.com/acroforms/formrank/textindex"
)

const (
	// historyDecayDays is the window over which an upload's influence
	// decays linearly toward the floor.
	historyDecayDays = 90.0
	// historyFloor keeps old uploads weakly visible forever. A file
	// uploaded to a host even once remains a better guess than one
	// never uploaded there.
	historyFloor = 0.1
)

// HistoryBoost computes the recency-decayed boost for a path from the
// host's upload history, along with the number of prior uploads of that
// path. Entries must already be filtered to one host. The boost is
// max(historyFloor, 1 - daysAgo/90) using the most recent upload, so a
// same-day upload scores 1.0 and anything older than the decay window
// still scores the floor.
func HistoryBoost(entries []*core.HistoryEntry, path string, now time.Time) (float64, int) {
	var newest time.Time
	count := 0
	for _, e := range entries {
		if e.Path != path {
			continue
		}
		count++
		if e.UploadedAt.After(newest) {
			newest = e.UploadedAt
		}
	}
	if count == 0 {
		return 0, 0
	}

	daysAgo := now.Sub(newest).Hours() / 24
	if daysAgo < 0 {
		daysAgo = 0
	}
	return math.Max(historyFloor, 1-daysAgo/historyDecayDays), count
}

// FolderBoosts maps each folder seen in the host's history to the share
// of the host's uploads that came from it. The shares sum to 1 across
// folders, so a host whose uploads all come from one directory gives
// that directory's files a full-strength boost.
func FolderBoosts(entries []*core.HistoryEntry) map[string]float64 {
	if len(entries) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, e := range entries {
		counts[core.FolderOf(e.Path)]++
	}

	total := float64(len(entries))
	boosts := make(map[string]float64, len(counts))
	for folder, n := range counts {
		boosts[folder] = float64(n) / total
	}
	return boosts
}

// OverlapCoefficient computes |A ∩ B| / min(|A|, |B|) over two term
// lists treated as sets. It rewards a small query fully contained in a
// large document the same as an exact match, which suits short form
// queries against long previews. Returns 0 when either set is empty.
func OverlapCoefficient(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}

	intersect := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersect++
		}
	}

	minSize := len(setA)
	if len(setB) < minSize {
		minSize = len(setB)
	}
	return float64(intersect) / float64(minSize)
}

// PathNameOverlap scores how much of the query's vocabulary appears in
// the document's path and display name. Both sides go through stop-word
// filtering so connective words don't inflate the score.
func PathNameOverlap(doc *core.Document, queryTerms []string) float64 {
	docTerms := textindex.TokenizeFiltered(doc.Path + " " + doc.Name)
	return OverlapCoefficient(queryTerms, docTerms)
}

// PreviewOverlap scores raw keyword overlap between the query and the
// document's text preview. It backs up the vectorized content signal
// when the vocabulary model is stale or the query is out-of-vocabulary.
func PreviewOverlap(doc *core.Document, queryTerms []string) float64 {
	if doc.TextPreview == "" {
		return 0
	}
	return OverlapCoefficient(queryTerms, textindex.TokenizeFiltered(doc.TextPreview))
}
