package engine

import "strings"

// SimilarityThreshold is the minimum best-candidate similarity the last
// resolver tier accepts. Below it the resolver reports no match rather than
// guessing. Source-observed constant, tunable, not derived from analysis.
const SimilarityThreshold = 0.6

// MatchTier identifies which resolver tier produced a match.
type MatchTier string

const (
	TierExact        MatchTier = "exact"
	TierPrefix       MatchTier = "prefix"
	TierSubstring    MatchTier = "substring"
	TierTokenOverlap MatchTier = "tokenOverlap"
	TierSimilarity   MatchTier = "similarity"
	TierNone         MatchTier = "none"
)

// Candidate is one record the resolver may match against.
type Candidate struct {
	ID    string
	Title string
}

// TargetReference is the outcome of resolving a free-text identifier against
// a user's records. ResolvedID is empty when no tier cleared; that is a
// terminal "not found" state, never a guess.
type TargetReference struct {
	Query      string
	ResolvedID string
	Title      string
	MatchTier  MatchTier
}

// Found reports whether the reference resolved to a record.
func (r TargetReference) Found() bool {
	return r.MatchTier != TierNone && r.ResolvedID != ""
}

// Resolve finds the best-matching candidate for a free-text query using a
// tiered, short-circuiting search:
//
//  1. exact case-insensitive title equality
//  2. title starts with the query
//  3. title contains the query as a substring
//  4. token overlap: every query token fuzzily matches some title token
//  5. highest Similarity(query, title), accepted above SimilarityThreshold
//
// The first tier with any result wins; within a tier the first candidate in
// collection order wins, so resolution is stable and deterministic.
func Resolve(query string, candidates []Candidate) TargetReference {
	ref := TargetReference{Query: query, MatchTier: TierNone}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(candidates) == 0 {
		return ref
	}

	type tier struct {
		name  MatchTier
		match func(title string) bool
	}
	tiers := []tier{
		{TierExact, func(title string) bool { return title == q }},
		{TierPrefix, func(title string) bool { return strings.HasPrefix(title, q) }},
		{TierSubstring, func(title string) bool { return strings.Contains(title, q) }},
		{TierTokenOverlap, func(title string) bool { return tokensOverlap(q, title) }},
	}

	for _, t := range tiers {
		for _, c := range candidates {
			if t.match(strings.ToLower(c.Title)) {
				ref.ResolvedID = c.ID
				ref.Title = c.Title
				ref.MatchTier = t.name
				return ref
			}
		}
	}

	// Last tier: best similarity over all candidates.
	best := -1.0
	var bestCandidate Candidate
	for _, c := range candidates {
		score := Similarity(q, c.Title)
		if score > best {
			best = score
			bestCandidate = c
		}
	}
	if best > SimilarityThreshold {
		ref.ResolvedID = bestCandidate.ID
		ref.Title = bestCandidate.Title
		ref.MatchTier = TierSimilarity
	}

	return ref
}

// tokensOverlap reports whether every whitespace token of the query fuzzily
// matches (substring in either direction) some token of the title.
func tokensOverlap(query, title string) bool {
	queryTokens := strings.Fields(query)
	titleTokens := strings.Fields(title)
	if len(queryTokens) == 0 || len(titleTokens) == 0 {
		return false
	}

	for _, qt := range queryTokens {
		matched := false
		for _, tt := range titleTokens {
			if strings.Contains(tt, qt) || strings.Contains(qt, tt) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// SampleTitles returns up to max candidate titles, used to guide the user
// when resolution fails.
func SampleTitles(candidates []Candidate, max int) []string {
	titles := make([]string, 0, max)
	for _, c := range candidates {
		if len(titles) == max {
			break
		}
		titles = append(titles, c.Title)
	}
	return titles
}
