package search

import "github.com/acroforms/formrank/core"

// RankMonitor provides hooks to observe the ranking process.
// Implementations can use this for debugging, logging, or testing.
type RankMonitor interface {
	Start(query string)
	AfterQueryVectorize(terms []string, dimension int)
	AfterCandidateFilter(candidates int, filterIgnored bool)
	AfterContentScoring(maxContent float64, denseMode bool)
	ProfileSelected(profile Profile)
	CandidateScored(path string, signals core.SignalBreakdown, finalScore float64)
	Finish(results []core.RankedResult)
}

// noopMonitor is a no-op implementation of RankMonitor
type noopMonitor struct{}

var _ RankMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                          {}
func (n *noopMonitor) AfterQueryVectorize(_ []string, _ int)                   {}
func (n *noopMonitor) AfterCandidateFilter(_ int, _ bool)                      {}
func (n *noopMonitor) AfterContentScoring(_ float64, _ bool)                   {}
func (n *noopMonitor) ProfileSelected(_ Profile)                               {}
func (n *noopMonitor) CandidateScored(_ string, _ core.SignalBreakdown, _ float64) {}
func (n *noopMonitor) Finish(_ []core.RankedResult)                            {}
