package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/acroforms/formrank/core"
	"github.com/acroforms/formrank/textindex"
)

func entry(path, host string, uploadedAt time.Time) *core.HistoryEntry {
	return &core.HistoryEntry{Path: path, Host: host, UploadedAt: uploadedAt}
}

func TestHistoryBoost(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		entries   []*core.HistoryEntry
		path      string
		wantBoost float64
		wantCount int
	}{
		{
			name:      "no history",
			entries:   nil,
			path:      "/resume.pdf",
			wantBoost: 0,
			wantCount: 0,
		},
		{
			name: "same day upload",
			entries: []*core.HistoryEntry{
				entry("/resume.pdf", "jobs.example.com", now),
			},
			path:      "/resume.pdf",
			wantBoost: 1.0,
			wantCount: 1,
		},
		{
			name: "45 days ago decays halfway",
			entries: []*core.HistoryEntry{
				entry("/resume.pdf", "jobs.example.com", now.Add(-45*24*time.Hour)),
			},
			path:      "/resume.pdf",
			wantBoost: 0.5,
			wantCount: 1,
		},
		{
			name: "beyond the decay window hits the floor",
			entries: []*core.HistoryEntry{
				entry("/resume.pdf", "jobs.example.com", now.Add(-365*24*time.Hour)),
			},
			path:      "/resume.pdf",
			wantBoost: 0.1,
			wantCount: 1,
		},
		{
			name: "most recent upload wins, all uploads counted",
			entries: []*core.HistoryEntry{
				entry("/resume.pdf", "jobs.example.com", now.Add(-200*24*time.Hour)),
				entry("/resume.pdf", "jobs.example.com", now),
				entry("/resume.pdf", "jobs.example.com", now.Add(-50*24*time.Hour)),
			},
			path:      "/resume.pdf",
			wantBoost: 1.0,
			wantCount: 3,
		},
		{
			name: "other paths do not contribute",
			entries: []*core.HistoryEntry{
				entry("/cover-letter.pdf", "jobs.example.com", now),
			},
			path:      "/resume.pdf",
			wantBoost: 0,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boost, count := HistoryBoost(tt.entries, tt.path, now)
			assert.InDelta(t, tt.wantBoost, boost, 1e-9)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestHistoryBoostMonotoneInRecency(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	prev := 2.0
	for days := 0; days <= 120; days += 10 {
		boost, _ := HistoryBoost([]*core.HistoryEntry{
			entry("/f", "h", now.Add(-time.Duration(days)*24*time.Hour)),
		}, "/f", now)
		assert.LessOrEqual(t, boost, prev, "boost must not grow as uploads age (days=%d)", days)
		assert.GreaterOrEqual(t, boost, historyFloor)
		prev = boost
	}
}

func TestFolderBoostsSumToOne(t *testing.T) {
	now := time.Now()
	entries := []*core.HistoryEntry{
		entry("/docs/a.pdf", "h", now),
		entry("/docs/b.pdf", "h", now),
		entry("/docs/c.pdf", "h", now),
		entry("/images/d.png", "h", now),
	}

	boosts := FolderBoosts(entries)

	assert.InDelta(t, 0.75, boosts["/docs"], 1e-9)
	assert.InDelta(t, 0.25, boosts["/images"], 1e-9)

	sum := 0.0
	for _, b := range boosts {
		sum += b
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestFolderBoostsEmptyHistory(t *testing.T) {
	assert.Nil(t, FolderBoosts(nil))
}

func TestOverlapCoefficient(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want float64
	}{
		{"both empty", nil, nil, 0},
		{"one empty", []string{"resume"}, nil, 0},
		{"identical", []string{"resume", "cover"}, []string{"resume", "cover"}, 1.0},
		{"disjoint", []string{"resume"}, []string{"invoice"}, 0},
		{"subset scores full", []string{"resume"}, []string{"resume", "cover", "letter"}, 1.0},
		{"partial", []string{"resume", "invoice"}, []string{"resume", "cover"}, 0.5},
		{"duplicates collapse", []string{"resume", "resume"}, []string{"resume"}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, OverlapCoefficient(tt.a, tt.b), 1e-9)
		})
	}
}

func TestPathNameOverlap(t *testing.T) {
	d := &core.Document{
		Path: "/home/user/documents/resume.pdf",
		Name: "resume.pdf",
	}
	terms := textindex.TokenizeFiltered("resume")

	assert.Greater(t, PathNameOverlap(d, terms), 0.0)
	assert.Equal(t, 0.0, PathNameOverlap(d, textindex.TokenizeFiltered("invoice")))
}

func TestPreviewOverlap(t *testing.T) {
	d := &core.Document{
		Path:        "/a.txt",
		TextPreview: "curriculum vitae with employment history",
	}
	terms := textindex.TokenizeFiltered("employment history")

	assert.InDelta(t, 1.0, PreviewOverlap(d, terms), 1e-9)
	assert.Equal(t, 0.0, PreviewOverlap(&core.Document{Path: "/b"}, terms))
}
