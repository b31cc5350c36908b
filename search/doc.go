// Package search ranks indexed files against a form query.
//
// The pipeline has three stages. Candidate search compares the
// vectorized query against every document's sparse vector (or dense
// vector when an embedder is available) by cosine similarity, after
// narrowing candidates with the form's accept filter. Signal extraction
// then computes four additional signals per candidate: a
// recency-decayed boost from the host's upload history, keyword overlap
// between the query and the path/name, keyword overlap with the text
// preview, and the share of the host's uploads that came from the
// file's folder. Finally the rank blender picks one of four named
// weight profiles from the strength of the content signal and the
// presence of history, and combines the signals into a single score.
//
// The Ranker is stateless between calls: every call re-vectorizes the
// query against the vocabulary it is given, so an index rebuild never
// leaves a query vector in a stale vector space.
package search
