package textindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
		{
			name: "simple words",
			text: "Please upload your resume",
			want: []string{"please", "upload", "your", "resume"},
		},
		{
			name: "punctuation separates runs",
			text: "tax-return_2024.pdf",
			want: []string{"tax", "return", "2024", "pdf"},
		},
		{
			name: "digits kept in runs",
			text: "form W2 2024",
			want: []string{"form", "w2", "2024"},
		},
		{
			name: "duplicates retained in order",
			text: "resume resume cover resume",
			want: []string{"resume", "resume", "cover", "resume"},
		},
		{
			name: "cjk unigrams and bigrams",
			text: "履歴書",
			want: []string{"履", "歴", "履歴", "書", "歴書"},
		},
		{
			name: "ascii run breaks cjk bigram chain",
			text: "簡歴pdf書類",
			want: []string{"簡", "歴", "簡歴", "pdf", "書", "類", "書類"},
		},
		{
			name: "hangul treated as cjk",
			text: "이력서",
			want: []string{"이", "력", "이력", "서", "력서"},
		},
		{
			name: "accented latin is a separator",
			text: "café menu",
			want: []string{"caf", "menu"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestTokenize_Pure(t *testing.T) {
	text := "Please upload 納税 forms for 2024"
	first := Tokenize(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Tokenize(text))
	}
}

func TestTokenizeFiltered(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "stop words removed",
			text: "please upload your resume to the form",
			want: []string{"resume", "form"},
		},
		{
			name: "short terms removed",
			text: "a b cd efg",
			want: []string{"cd", "efg"},
		},
		{
			name: "cjk unigrams removed bigrams kept",
			text: "履歴書",
			want: []string{"履歴", "歴書"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TokenizeFiltered(tt.text))
		})
	}
}
