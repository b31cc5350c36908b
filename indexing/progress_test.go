package indexing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTrackerReportsAtInterval(t *testing.T) {
	var buf strings.Builder
	p := NewProgressTracker(&buf, 100, 10)
	p.Start()

	p.Increment(5)
	assert.Empty(t, buf.String(), "below the report interval, nothing is written")

	p.Increment(5)
	assert.Contains(t, buf.String(), "10/100")

	p.Finish()
	assert.Contains(t, buf.String(), "100/100")
}

func TestProgressTrackerIgnoresUpdatesBeforeStart(t *testing.T) {
	var buf strings.Builder
	p := NewProgressTracker(&buf, 10, 1)

	p.Increment(5)
	p.Finish()
	assert.Empty(t, buf.String())
	assert.Zero(t, p.Elapsed())
}

func TestProgressTrackerCapsAtTotal(t *testing.T) {
	var buf strings.Builder
	p := NewProgressTracker(&buf, 10, 1)
	p.Start()

	p.Increment(25)
	assert.Contains(t, buf.String(), "10/10")
}
