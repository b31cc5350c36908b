package search

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float64
		b    []float64
		want float64
	}{
		{
			name: "identical vectors",
			a:    []float64{1, 2, 3},
			b:    []float64{1, 2, 3},
			want: 1.0,
		},
		{
			name: "orthogonal vectors",
			a:    []float64{1, 0},
			b:    []float64{0, 1},
			want: 0.0,
		},
		{
			name: "opposite vectors",
			a:    []float64{1, 0},
			b:    []float64{-1, 0},
			want: -1.0,
		},
		{
			name: "zero vector on one side",
			a:    []float64{0, 0, 0},
			b:    []float64{1, 2, 3},
			want: 0.0,
		},
		{
			name: "both zero vectors",
			a:    []float64{0, 0},
			b:    []float64{0, 0},
			want: 0.0,
		},
		{
			name: "mismatched lengths",
			a:    []float64{1, 2, 3},
			b:    []float64{1, 2},
			want: 0.0,
		},
		{
			name: "empty vectors",
			a:    nil,
			b:    nil,
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCosineSimilarityScaleInvariant(t *testing.T) {
	a := []float64{0.2, 0.5, 0.1}
	b := []float64{2, 5, 1}
	assert.InDelta(t, 1.0, CosineSimilarity(a, b), 1e-9)
}

func TestCosineSimilarity32(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{1, 2, 3}
	assert.InDelta(t, 1.0, CosineSimilarity32(a, b), 1e-6)

	assert.Equal(t, 0.0, CosineSimilarity32([]float32{1, 2}, []float32{1, 2, 3}))
	assert.Equal(t, 0.0, CosineSimilarity32([]float32{0, 0}, []float32{1, 1}))
	assert.Equal(t, 0.0, CosineSimilarity32(nil, nil))
}

func TestCosineSimilarityRange(t *testing.T) {
	a := []float64{0.3, 0.7, 0.2, 0.1}
	b := []float64{0.5, 0.1, 0.9, 0.4}
	got := CosineSimilarity(a, b)
	assert.True(t, got >= -1 && got <= 1)
	assert.False(t, math.IsNaN(got))
}
