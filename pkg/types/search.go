// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SearchResult is a MetadataRecord ranked against a keyword. It is built per
// search request and never persisted.
type SearchResult struct {
	MetadataRecord `yaml:",inline"`

	// RelevanceScore is the non-negative sum of field contributions.
	RelevanceScore int `json:"relevance_score" yaml:"relevance_score"`
}

// SearchOutput is the outcome of ranking a corpus against one keyword.
type SearchOutput struct {
	// Keyword echoes the search keyword.
	Keyword string `json:"keyword" yaml:"keyword"`

	// TotalChecked is the number of records scored.
	TotalChecked int `json:"total_files_checked" yaml:"total_files_checked"`

	// MatchesFound counts records with a non-zero score before truncation.
	MatchesFound int `json:"matches_found" yaml:"matches_found"`

	// Results are ordered by descending score, stable on ties.
	Results []SearchResult `json:"results" yaml:"results"`
}
