package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/acroforms/formrank/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRepository_AppendAndQuery(t *testing.T) {
	_, _, history := setupStores(t)
	ctx := context.Background()
	now := time.Now().UTC()

	entries := []*core.HistoryEntry{
		{Path: "/docs/resume.pdf", Host: "jobs.example.com", UploadedAt: now.Add(-48 * time.Hour)},
		{Path: "/docs/cover.pdf", Host: "jobs.example.com", UploadedAt: now.Add(-24 * time.Hour)},
		{Path: "/photos/id.jpg", Host: "gov.example.com", UploadedAt: now.Add(-1 * time.Hour)},
	}
	require.NoError(t, history.Append(ctx, entries...))

	got, err := history.QueryByHost(ctx, "jobs.example.com", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Most recent first.
	assert.Equal(t, "/docs/cover.pdf", got[0].Path)
	assert.Equal(t, "/docs/resume.pdf", got[1].Path)
}

func TestHistoryRepository_QueryLimit(t *testing.T) {
	_, _, history := setupStores(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 10; i++ {
		require.NoError(t, history.Append(ctx, &core.HistoryEntry{
			Path:       "/docs/file.pdf",
			Host:       "example.com",
			UploadedAt: now.Add(-time.Duration(i+1) * time.Hour),
		}))
	}

	got, err := history.QueryByHost(ctx, "example.com", 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.True(t, got[0].UploadedAt.After(got[2].UploadedAt))
}

func TestHistoryRepository_UnknownHost(t *testing.T) {
	_, _, history := setupStores(t)

	got, err := history.QueryByHost(context.Background(), "nowhere.example.com", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHistoryRepository_AppendInvalid(t *testing.T) {
	_, _, history := setupStores(t)
	ctx := context.Background()

	err := history.Append(ctx, &core.HistoryEntry{Path: "/a.txt", UploadedAt: time.Now()})
	assert.True(t, errors.Is(err, core.ErrEmptyHost))

	err = history.Append(ctx, &core.HistoryEntry{Host: "example.com", UploadedAt: time.Now()})
	assert.True(t, errors.Is(err, core.ErrEmptyPath))
}
