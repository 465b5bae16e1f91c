// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank scores metadata records against a search keyword and orders a
// corpus by relevance. Matching is case-insensitive substring matching after
// Unicode case folding.
package rank

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/pdiddy/paper-meta/pkg/types"
)

// ErrInvalidSearchParameters is returned by Search for an empty keyword or a
// negative limit. It is reported before any record is scored.
var ErrInvalidSearchParameters = errors.New("invalid search parameters")

// Limit bounds the number of search results. The zero value is NoLimit.
type Limit struct {
	n   int
	set bool
}

// NoLimit returns every matching record.
var NoLimit = Limit{}

// LimitTo truncates the ranked list to n results. LimitTo(0) yields none.
func LimitTo(n int) Limit {
	return Limit{n: n, set: true}
}

// Bounded reports whether the limit truncates, and to how many results.
func (l Limit) Bounded() (int, bool) {
	return l.n, l.set
}

func (l Limit) String() string {
	if !l.set {
		return "none"
	}
	return fmt.Sprint(l.n)
}

// Scorer computes relevance scores with fixed weights. The zero value scores
// everything as zero; use NewScorer.
type Scorer struct {
	w types.ScoringWeights
}

// NewScorer returns a Scorer using w. Callers validate w with
// ScoringWeights.Validate when it comes from configuration.
func NewScorer(w types.ScoringWeights) Scorer {
	return Scorer{w: w}
}

// Score returns the sum of the field contributions of keyword in rec. It is
// zero when keyword does not occur anywhere and never negative.
func (s Scorer) Score(rec types.MetadataRecord, keyword string) int {
	kw := fold(strings.TrimSpace(keyword))
	if kw == "" {
		return 0
	}

	score := 0
	if strings.Contains(fold(rec.Title), kw) {
		score += s.w.Title
	}
	score += s.keywordScore(rec.Keywords, kw)
	if n := strings.Count(fold(rec.Abstract), kw); n > 0 {
		score += s.w.Abstract * min(n, s.w.AbstractCap)
	}
	if strings.Contains(fold(rec.Author), kw) {
		score += s.w.Author
	}
	if strings.Contains(fold(rec.FileName), kw) {
		score += s.w.FileName
	}
	return score
}

// keywordScore awards the exact weight once when any entry equals kw, and
// otherwise the partial weight per entry containing kw.
func (s Scorer) keywordScore(keywords []string, kw string) int {
	partial := 0
	for _, k := range keywords {
		f := fold(strings.TrimSpace(k))
		if f == kw {
			return s.w.KeywordExact
		}
		if strings.Contains(f, kw) {
			partial += s.w.KeywordPartial
		}
	}
	return partial
}

// Search scores every record, drops zero scores, sorts by descending score
// (stable, so ties keep corpus order), and truncates to limit. MatchesFound
// is counted before truncation.
func (s Scorer) Search(records []types.MetadataRecord, keyword string, limit Limit) (types.SearchOutput, error) {
	if strings.TrimSpace(keyword) == "" {
		return types.SearchOutput{}, fmt.Errorf("%w: keyword is empty", ErrInvalidSearchParameters)
	}
	if n, ok := limit.Bounded(); ok && n < 0 {
		return types.SearchOutput{}, fmt.Errorf("%w: limit %d is negative", ErrInvalidSearchParameters, n)
	}

	results := []types.SearchResult{}
	for _, rec := range records {
		if score := s.Score(rec, keyword); score > 0 {
			results = append(results, types.SearchResult{MetadataRecord: rec, RelevanceScore: score})
		}
	}
	slices.SortStableFunc(results, func(a, b types.SearchResult) int {
		return b.RelevanceScore - a.RelevanceScore
	})

	out := types.SearchOutput{
		Keyword:      keyword,
		TotalChecked: len(records),
		MatchesFound: len(results),
		Results:      results,
	}
	if n, ok := limit.Bounded(); ok && n < len(results) {
		out.Results = results[:n]
	}
	return out, nil
}

// fold returns the case-folded form of s. Casers are stateful, so each call
// gets a fresh one.
func fold(s string) string {
	return cases.Fold().String(s)
}
