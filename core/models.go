package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored documents.
// It is derived from the document path with content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text using BLAKE2b
// hashing. Document IDs hash the path, so re-indexing a file updates its
// record in place; storage also hashes hosts into index keys with it.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// MaxPreviewLen is the upper bound, in bytes, for a document's text preview.
const MaxPreviewLen = 4096

// Document represents an indexed file with its ranking vectors.
// The sparse vector is sized to the vocabulary that was live when the
// document was vectorized; the dense vector, when present, comes from an
// external embedding model and has a fixed dimension of its own.
type Document struct {
	Id          ID
	Path        string // Stable identity; IDFromContent(Path) == Id
	Name        string
	MIMEType    string
	TextPreview string
	Sparse      []float64 // TF-IDF vector, len == vocabulary size at vectorization time
	Dense       []float32 // Optional external embedding
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// HasDense reports whether the document carries an external embedding.
// Sparse-vs-sparse and dense-vs-dense comparisons are never mixed, so
// similarity search uses this to pick the comparison space.
func (d *Document) HasDense() bool {
	return len(d.Dense) > 0
}

// Folder returns the document's containing folder (path minus its final
// segment). A path without a separator belongs to the empty folder.
func (d *Document) Folder() string {
	return FolderOf(d.Path)
}

// FolderOf returns the folder portion of a path, i.e. everything before the
// final separator. Both '/' and '\' separators are recognized.
func FolderOf(path string) string {
	idx := strings.LastIndexAny(path, "/\\")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// TruncatePreview bounds a text excerpt to MaxPreviewLen bytes without
// splitting a multi-byte rune.
func TruncatePreview(text string) string {
	if len(text) <= MaxPreviewLen {
		return text
	}
	cut := MaxPreviewLen
	for cut > 0 && !isRuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// HistoryEntry records one upload of a file on a host.
// Entries are append-only and never mutated.
type HistoryEntry struct {
	Path       string
	Host       string
	UploadedAt time.Time
}

// QueryContext carries one ranking request. It is constructed per request
// and never stored.
type QueryContext struct {
	RawText      string
	AcceptFilter []string // Extension tokens, MIME types, or MIME wildcards like "image/*"
	Host         string
	Now          time.Time // Clock for the history decay term; zero means time.Now
}

// Clock returns the query's reference time, defaulting to the wall clock.
func (q QueryContext) Clock() time.Time {
	if q.Now.IsZero() {
		return time.Now().UTC()
	}
	return q.Now
}

// SignalBreakdown holds the per-signal component scores that were blended
// into a final score. Each component is in [0,1]; a component with no
// signal is 0.
type SignalBreakdown struct {
	Content        float64
	History        float64
	PathName       float64
	ContentOverlap float64
	Folder         float64
}

// RankedResult is one entry of a ranking, sorted descending by FinalScore
// with ties broken by ascending Path.
type RankedResult struct {
	Path         string
	FinalScore   float64
	HistoryCount int
	Signals      SignalBreakdown
}

// VocabularySnapshot is the serializable form of a vocabulary model.
// Terms and IDF correspond positionally; restoring a snapshot yields an
// operationally identical model.
type VocabularySnapshot struct {
	Terms   []string
	IDF     []float64
	BuiltAt time.Time
}

// IndexReport summarizes one index build.
type IndexReport struct {
	Indexed  int // Documents tokenized, vectorized and stored
	Skipped  int // Sources rejected before phase 1 (e.g. empty path)
	Failed   int // Documents that could not be stored
	Degraded int // Documents indexed sparse-only after a dense embedding failure
}
