package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acroforms/formrank/core"
)

func doc(path, mimeType string, sparse []float64) *core.Document {
	return &core.Document{
		Id:       core.IDFromContent(path),
		Path:     path,
		Name:     path,
		MIMEType: mimeType,
		Sparse:   sparse,
	}
}

func TestFindSimilarOrdersByScore(t *testing.T) {
	docs := []*core.Document{
		doc("/a.txt", "text/plain", []float64{0, 1}),
		doc("/b.txt", "text/plain", []float64{1, 0}),
		doc("/c.txt", "text/plain", []float64{1, 1}),
	}

	matches := FindSimilar([]float64{1, 0}, docs, 10, nil)

	require.Len(t, matches, 2)
	assert.Equal(t, "/b.txt", matches[0].Doc.Path)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
	assert.Equal(t, "/c.txt", matches[1].Doc.Path)
	// /a.txt is orthogonal to the query and must be dropped.
}

func TestFindSimilarExcludesStaleVectors(t *testing.T) {
	docs := []*core.Document{
		doc("/fresh.txt", "text/plain", []float64{1, 0, 0}),
		doc("/stale.txt", "text/plain", []float64{1, 0}), // older vocabulary generation
	}

	matches := FindSimilar([]float64{1, 0, 0}, docs, 10, nil)

	require.Len(t, matches, 1)
	assert.Equal(t, "/fresh.txt", matches[0].Doc.Path)
}

func TestFindSimilarTieBreaksByPath(t *testing.T) {
	docs := []*core.Document{
		doc("/zebra.txt", "text/plain", []float64{1, 0}),
		doc("/apple.txt", "text/plain", []float64{1, 0}),
	}

	matches := FindSimilar([]float64{1, 0}, docs, 10, nil)

	require.Len(t, matches, 2)
	assert.Equal(t, "/apple.txt", matches[0].Doc.Path)
	assert.Equal(t, "/zebra.txt", matches[1].Doc.Path)
}

func TestFindSimilarRespectsTopN(t *testing.T) {
	docs := []*core.Document{
		doc("/a.txt", "text/plain", []float64{1, 0}),
		doc("/b.txt", "text/plain", []float64{1, 0.1}),
		doc("/c.txt", "text/plain", []float64{1, 0.2}),
	}

	matches := FindSimilar([]float64{1, 0}, docs, 2, nil)
	assert.Len(t, matches, 2)
}

func TestFindSimilarDenseSkipsSparseOnlyDocs(t *testing.T) {
	withDense := doc("/dense.png", "image/png", nil)
	withDense.Dense = []float32{1, 0}
	sparseOnly := doc("/sparse.txt", "text/plain", []float64{1, 0})

	matches := FindSimilarDense([]float32{1, 0}, []*core.Document{withDense, sparseOnly}, 10, nil)

	require.Len(t, matches, 1)
	assert.Equal(t, "/dense.png", matches[0].Doc.Path)
}

func TestFilterByAccept(t *testing.T) {
	pdf := doc("/report.pdf", "application/pdf", nil)
	png := doc("/photo.PNG", "image/png", nil)
	txt := doc("/notes.txt", "text/plain", nil)
	docs := []*core.Document{pdf, png, txt}

	tests := []struct {
		name   string
		accept []string
		want   []string
	}{
		{
			name:   "no filter returns all",
			accept: nil,
			want:   []string{"/report.pdf", "/photo.PNG", "/notes.txt"},
		},
		{
			name:   "extension token",
			accept: []string{"pdf"},
			want:   []string{"/report.pdf"},
		},
		{
			name:   "dotted extension, case insensitive",
			accept: []string{".png"},
			want:   []string{"/photo.PNG"},
		},
		{
			name:   "exact mime type",
			accept: []string{"application/pdf"},
			want:   []string{"/report.pdf"},
		},
		{
			name:   "mime wildcard",
			accept: []string{"image/*"},
			want:   []string{"/photo.PNG"},
		},
		{
			name:   "multiple patterns union",
			accept: []string{"pdf", "image/*"},
			want:   []string{"/report.pdf", "/photo.PNG"},
		},
		{
			name:   "filter matching nothing is ignored",
			accept: []string{"docx"},
			want:   []string{"/report.pdf", "/photo.PNG", "/notes.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByAccept(docs, tt.accept)
			paths := make([]string, 0, len(got))
			for _, d := range got {
				paths = append(paths, d.Path)
			}
			assert.Equal(t, tt.want, paths)
		})
	}
}

func TestPathExtension(t *testing.T) {
	assert.Equal(t, "pdf", pathExtension("/home/user/resume.pdf"))
	assert.Equal(t, "txt", pathExtension(`C:\files\notes.TXT`))
	assert.Equal(t, "", pathExtension("/home/user/Makefile"))
	assert.Equal(t, "", pathExtension("/home/user/ends-with-dot."))
	assert.Equal(t, "gz", pathExtension("archive.tar.gz"))
}
