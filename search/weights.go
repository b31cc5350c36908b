package search

import "github.com/acroforms/formrank/core"

// Profile identifies a named blend of signal weights. The profile for a
// query is chosen from two observations: whether the best content score
// clears the usefulness threshold, and whether the host has any upload
// history.
type Profile int

const (
	// ContentUsefulWithHistory weights content heavily while letting
	// prior uploads to the same host reinforce familiar files.
	ContentUsefulWithHistory Profile = iota
	// ContentUsefulNoHistory leans almost entirely on content and
	// path/name evidence for a first visit to a host.
	ContentUsefulNoHistory
	// ContentWeakWithHistory applies when the query shares no useful
	// vocabulary with the corpus; history and keyword overlap carry
	// the ranking instead.
	ContentWeakWithHistory
	// ContentWeakNoHistory is the fallback of last resort: only
	// path/name and preview keyword overlap remain.
	ContentWeakNoHistory
)

// contentUsefulThreshold separates a real similarity signal from
// tokenization noise. Below it the content signal is considered weak
// and the blend shifts toward the remaining signals.
const contentUsefulThreshold = 0.05

// Weights holds the blend coefficients for one profile. Each profile's
// weights sum to 1.0 so final scores stay comparable across profiles.
type Weights struct {
	Content        float64
	History        float64
	PathName       float64
	ContentOverlap float64
	Folder         float64
}

var profileWeights = map[Profile]Weights{
	ContentUsefulWithHistory: {Content: 0.45, History: 0.25, PathName: 0.15, ContentOverlap: 0.05, Folder: 0.10},
	ContentUsefulNoHistory:   {Content: 0.55, History: 0, PathName: 0.30, ContentOverlap: 0.15, Folder: 0},
	ContentWeakWithHistory:   {Content: 0, History: 0.40, PathName: 0.30, ContentOverlap: 0.10, Folder: 0.20},
	ContentWeakNoHistory:     {Content: 0, History: 0, PathName: 0.60, ContentOverlap: 0.40, Folder: 0},
}

// ProfileFor selects the weight profile from the two ranking conditions.
func ProfileFor(contentUseful, hasHistory bool) Profile {
	switch {
	case contentUseful && hasHistory:
		return ContentUsefulWithHistory
	case contentUseful:
		return ContentUsefulNoHistory
	case hasHistory:
		return ContentWeakWithHistory
	default:
		return ContentWeakNoHistory
	}
}

// Weights returns the blend coefficients for the profile.
func (p Profile) Weights() Weights {
	return profileWeights[p]
}

func (p Profile) String() string {
	switch p {
	case ContentUsefulWithHistory:
		return "content-useful-with-history"
	case ContentUsefulNoHistory:
		return "content-useful-no-history"
	case ContentWeakWithHistory:
		return "content-weak-with-history"
	case ContentWeakNoHistory:
		return "content-weak-no-history"
	default:
		return "unknown"
	}
}

// Blend combines a signal breakdown into a single score using the
// profile's weights.
func (w Weights) Blend(s core.SignalBreakdown) float64 {
	return w.Content*s.Content +
		w.History*s.History +
		w.PathName*s.PathName +
		w.ContentOverlap*s.ContentOverlap +
		w.Folder*s.Folder
}
