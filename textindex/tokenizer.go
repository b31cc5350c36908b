package textindex

import (
	"strings"
	"unicode"
)

// minFilteredTermLen is the minimum rune length for terms kept by
// TokenizeFiltered. CJK unigrams fall below it; their bigrams survive.
const minFilteredTermLen = 2

// cjkTables covers the scripts tokenized per-character rather than per-run.
var cjkTables = []*unicode.RangeTable{
	unicode.Han,
	unicode.Hiragana,
	unicode.Katakana,
	unicode.Hangul,
}

func isCJK(r rune) bool {
	for _, table := range cjkTables {
		if unicode.Is(table, r) {
			return true
		}
	}
	return false
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// Tokenize normalizes text into index-safe terms. The input is lowercased,
// maximal runs of ASCII letters and digits become word terms, every CJK
// character becomes a single-character term, and every adjacent CJK pair
// additionally becomes a bigram term.
//
// Tokenize is pure: identical input always yields the identical list.
// Order is preserved and duplicates are retained, since term frequency
// depends on them.
func Tokenize(text string) []string {
	if text == "" {
		return []string{}
	}

	text = strings.ToLower(text)
	terms := make([]string, 0, len(text)/4)

	var run strings.Builder
	var prevCJK rune
	hasPrevCJK := false

	flush := func() {
		if run.Len() > 0 {
			terms = append(terms, run.String())
			run.Reset()
		}
	}

	for _, r := range text {
		switch {
		case isASCIIAlnum(r):
			run.WriteRune(r)
			hasPrevCJK = false
		case isCJK(r):
			flush()
			terms = append(terms, string(r))
			if hasPrevCJK {
				terms = append(terms, string([]rune{prevCJK, r}))
			}
			prevCJK = r
			hasPrevCJK = true
		default:
			flush()
			hasPrevCJK = false
		}
	}
	flush()

	return terms
}

// TokenizeFiltered tokenizes like Tokenize, then removes stop words and
// terms shorter than the minimum length. It feeds the keyword-overlap
// signals only; the TF-IDF vectorizer wants raw frequencies including stop
// words, whose IDF suppresses them naturally.
func TokenizeFiltered(text string) []string {
	terms := Tokenize(text)
	filtered := make([]string, 0, len(terms))

	for _, term := range terms {
		if stopWords[term] {
			continue
		}
		if len([]rune(term)) < minFilteredTermLen {
			continue
		}
		filtered = append(filtered, term)
	}

	return filtered
}
