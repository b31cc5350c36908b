package core

import (
	"strings"
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{
			name: "same path produces same ID",
			path: "/home/user/documents/resume.pdf",
		},
		{
			name: "empty string",
			path: "",
		},
		{
			name: "long path",
			path: "/a/very/deeply/nested/directory/structure/with/a/file/somewhere/inside.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.path)
			id2 := IDFromContent(tt.path)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same path: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("/home/user/a.pdf")
	id2 := IDFromContent("/home/user/b.pdf")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different paths")
	}
}

func TestFolderOf(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "unix path",
			path: "/home/user/docs/resume.pdf",
			want: "/home/user/docs",
		},
		{
			name: "windows path",
			path: `C:\Users\me\taxes.pdf`,
			want: `C:\Users\me`,
		},
		{
			name: "bare file name",
			path: "resume.pdf",
			want: "",
		},
		{
			name: "file in root",
			path: "/resume.pdf",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FolderOf(tt.path); got != tt.want {
				t.Errorf("FolderOf(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestDocument_HasDense(t *testing.T) {
	sparse := &Document{Path: "/a.txt", Sparse: []float64{0.1, 0.9}}
	if sparse.HasDense() {
		t.Error("HasDense() = true for sparse-only document")
	}

	dense := &Document{Path: "/a.txt", Dense: []float32{0.1, 0.9}}
	if !dense.HasDense() {
		t.Error("HasDense() = false for document with dense vector")
	}
}

func TestTruncatePreview(t *testing.T) {
	short := "short preview"
	if got := TruncatePreview(short); got != short {
		t.Errorf("TruncatePreview() modified a short preview")
	}

	long := strings.Repeat("a", MaxPreviewLen+100)
	if got := TruncatePreview(long); len(got) != MaxPreviewLen {
		t.Errorf("TruncatePreview() length = %d, want %d", len(got), MaxPreviewLen)
	}

	// Multi-byte runes must not be split at the boundary.
	cjk := strings.Repeat("日", MaxPreviewLen) // 3 bytes per rune
	got := TruncatePreview(cjk)
	if len(got) > MaxPreviewLen {
		t.Errorf("TruncatePreview() length = %d, want <= %d", len(got), MaxPreviewLen)
	}
	for _, r := range got {
		if r != '日' {
			t.Errorf("TruncatePreview() split a rune, found %q", r)
		}
	}
}
