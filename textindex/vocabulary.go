package textindex

import (
	"math"
	"time"

	"github.com/acroforms/formrank/core"
)

// Vocabulary is a corpus-wide term model: a stable term ordering, a
// term-to-index map, and an IDF weight per term. It is built atomically
// from a full corpus snapshot and never mutated afterward; rebuilding
// replaces the model wholesale and makes every sparse vector computed
// against the old model stale.
type Vocabulary struct {
	terms   []string
	index   map[string]int
	idf     []float64
	builtAt time.Time
}

// BuildVocabulary computes a vocabulary from the token lists of a corpus.
// Document frequency counts the documents containing a term at least once;
// idf = ln((N+1)/(df+1)) + 1. Term indices follow first-seen order across
// the corpus, consistent with the exported term list.
func BuildVocabulary(docsTokens [][]string) *Vocabulary {
	v := &Vocabulary{
		index:   make(map[string]int),
		builtAt: time.Now().UTC(),
	}

	df := make(map[string]int)
	for _, tokens := range docsTokens {
		seen := make(map[string]bool, len(tokens))
		for _, term := range tokens {
			if seen[term] {
				continue
			}
			seen[term] = true
			df[term]++
			if _, ok := v.index[term]; !ok {
				v.index[term] = len(v.terms)
				v.terms = append(v.terms, term)
			}
		}
	}

	n := float64(len(docsTokens))
	v.idf = make([]float64, len(v.terms))
	for i, term := range v.terms {
		v.idf[i] = math.Log((n+1)/(float64(df[term])+1)) + 1
	}

	return v
}

// FromSnapshot restores a vocabulary from its serialized form. The
// restored model is operationally identical to the one that produced the
// snapshot.
func FromSnapshot(snapshot *core.VocabularySnapshot) (*Vocabulary, error) {
	if err := core.ValidateVocabularySnapshot(snapshot); err != nil {
		return nil, err
	}
	v := &Vocabulary{
		index:   make(map[string]int, len(snapshot.Terms)),
		builtAt: snapshot.BuiltAt,
	}
	if len(snapshot.Terms) == 0 {
		return v, nil
	}
	v.terms = make([]string, len(snapshot.Terms))
	copy(v.terms, snapshot.Terms)
	v.idf = make([]float64, len(snapshot.IDF))
	copy(v.idf, snapshot.IDF)
	for i, term := range v.terms {
		v.index[term] = i
	}
	return v, nil
}

// Snapshot returns the serializable form of the vocabulary.
func (v *Vocabulary) Snapshot() *core.VocabularySnapshot {
	s := &core.VocabularySnapshot{
		Terms:   make([]string, len(v.terms)),
		IDF:     make([]float64, len(v.idf)),
		BuiltAt: v.builtAt,
	}
	copy(s.Terms, v.terms)
	copy(s.IDF, v.idf)
	return s
}

// Size returns the number of distinct terms in the vocabulary.
// A nil vocabulary is empty.
func (v *Vocabulary) Size() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// BuiltAt returns when the vocabulary was built.
func (v *Vocabulary) BuiltAt() time.Time {
	return v.builtAt
}

// Vectorize turns a token list into an L2-normalized sparse TF-IDF vector
// sized to the vocabulary. An empty model or empty token list yields a
// zero-length vector. Terms absent from the vocabulary contribute nothing;
// that is expected for out-of-vocabulary input, not an error.
func (v *Vocabulary) Vectorize(tokens []string) []float64 {
	if v.Size() == 0 || len(tokens) == 0 {
		return []float64{}
	}

	tf := make(map[string]int, len(tokens))
	maxTf := 1
	for _, term := range tokens {
		tf[term]++
		if tf[term] > maxTf {
			maxTf = tf[term]
		}
	}

	vector := make([]float64, len(v.terms))
	for term, count := range tf {
		idx, ok := v.index[term]
		if !ok {
			continue
		}
		vector[idx] = float64(count) / float64(maxTf) * v.idf[idx]
	}

	normalizeL2(vector)
	return vector
}

// normalizeL2 divides every component by the vector's Euclidean norm.
// A zero vector is left all zeros.
func normalizeL2(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
}
