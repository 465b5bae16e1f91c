// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when an extractor or scoring configuration
// cannot produce deterministic results (inverted bands, negative caps,
// empty marker vocabularies, or weights that break the field ordering).
var ErrInvalidConfig = errors.New("invalid configuration")

// ExtractorConfig holds the marker vocabularies, bands, and caps consumed by
// the field heuristics. It is built once and never mutated after the
// pipeline is constructed, so tests can substitute alternate vocabularies
// (for example additional languages) without touching the rules.
type ExtractorConfig struct {
	// TitleMinLength and TitleMaxLength bound a title candidate, in runes.
	TitleMinLength int `json:"title_min_length" yaml:"title_min_length" mapstructure:"title_min_length"`
	TitleMaxLength int `json:"title_max_length" yaml:"title_max_length" mapstructure:"title_max_length"`

	// TitleSearchLines is how many leading lines are considered for the title.
	TitleSearchLines int `json:"title_search_lines" yaml:"title_search_lines" mapstructure:"title_search_lines"`

	// TitleSkipWords rejects title candidates containing any of these
	// substrings (case-insensitive): affiliations, journal headers, URLs.
	TitleSkipWords []string `json:"title_skip_words" yaml:"title_skip_words" mapstructure:"title_skip_words"`

	// AuthorSearchLines is how many leading lines are scanned for an author.
	AuthorSearchLines int `json:"author_search_lines" yaml:"author_search_lines" mapstructure:"author_search_lines"`

	// AuthorMarkers introduce an author line ("by", "oleh").
	AuthorMarkers []string `json:"author_markers" yaml:"author_markers" mapstructure:"author_markers"`

	// YearMin and YearMax bound an accepted publication year, inclusive.
	YearMin int `json:"year_min" yaml:"year_min" mapstructure:"year_min"`
	YearMax int `json:"year_max" yaml:"year_max" mapstructure:"year_max"`

	// AbstractMarkers open the abstract block.
	AbstractMarkers []string `json:"abstract_markers" yaml:"abstract_markers" mapstructure:"abstract_markers"`

	// SectionMarkers close the abstract block (in addition to keyword
	// markers, repeated abstract markers, and numbered headings).
	SectionMarkers []string `json:"section_markers" yaml:"section_markers" mapstructure:"section_markers"`

	// AbstractMaxLines and AbstractMaxChars cap the abstract body.
	AbstractMaxLines int `json:"abstract_max_lines" yaml:"abstract_max_lines" mapstructure:"abstract_max_lines"`
	AbstractMaxChars int `json:"abstract_max_chars" yaml:"abstract_max_chars" mapstructure:"abstract_max_chars"`

	// KeywordMarkers open the keyword list.
	KeywordMarkers []string `json:"keyword_markers" yaml:"keyword_markers" mapstructure:"keyword_markers"`

	// KeywordDelimiters is the set of characters that split keyword fragments.
	KeywordDelimiters string `json:"keyword_delimiters" yaml:"keyword_delimiters" mapstructure:"keyword_delimiters"`

	// MaxKeywords caps the keyword list. Zero means unbounded.
	MaxKeywords int `json:"max_keywords" yaml:"max_keywords" mapstructure:"max_keywords"`
}

// DefaultExtractorConfig returns the English and Indonesian vocabulary used
// for journal articles and theses.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		TitleMinLength:   10,
		TitleMaxLength:   250,
		TitleSearchLines: 10,
		TitleSkipWords: []string{
			"universitas", "university", "fakultas", "faculty", "jurusan",
			"program studi", "issn", "vol.", "volume", "jurnal", "journal",
			"email", "e-mail", "@", "doi:", "http://", "https://",
		},
		AuthorSearchLines: 20,
		AuthorMarkers:     []string{"by", "author", "authors", "oleh", "penulis"},
		YearMin:           1900,
		YearMax:           2099,
		AbstractMarkers:   []string{"abstract", "abstrak", "summary"},
		SectionMarkers:    []string{"introduction", "pendahuluan", "latar belakang", "background"},
		AbstractMaxLines:  100,
		AbstractMaxChars:  3000,
		KeywordMarkers:    []string{"keywords", "keyword", "key words", "kata kunci"},
		KeywordDelimiters: ",;",
		MaxKeywords:       10,
	}
}

// Validate reports whether the configuration can drive the heuristics.
func (c ExtractorConfig) Validate() error {
	switch {
	case c.TitleMinLength < 1 || c.TitleMaxLength < c.TitleMinLength:
		return fmt.Errorf("%w: title length band [%d,%d]", ErrInvalidConfig, c.TitleMinLength, c.TitleMaxLength)
	case c.TitleSearchLines < 1:
		return fmt.Errorf("%w: title_search_lines must be positive", ErrInvalidConfig)
	case c.AuthorSearchLines < 1:
		return fmt.Errorf("%w: author_search_lines must be positive", ErrInvalidConfig)
	case c.YearMin < 0 || c.YearMax > 9999 || c.YearMax < c.YearMin:
		return fmt.Errorf("%w: year range [%d,%d]", ErrInvalidConfig, c.YearMin, c.YearMax)
	case c.AbstractMaxLines < 1 || c.AbstractMaxChars < 1:
		return fmt.Errorf("%w: abstract caps must be positive", ErrInvalidConfig)
	case c.MaxKeywords < 0:
		return fmt.Errorf("%w: max_keywords must not be negative", ErrInvalidConfig)
	case c.KeywordDelimiters == "":
		return fmt.Errorf("%w: keyword_delimiters is empty", ErrInvalidConfig)
	}
	for name, markers := range map[string][]string{
		"author_markers":   c.AuthorMarkers,
		"abstract_markers": c.AbstractMarkers,
		"keyword_markers":  c.KeywordMarkers,
	} {
		if !hasNonEmpty(markers) {
			return fmt.Errorf("%w: %s is empty", ErrInvalidConfig, name)
		}
	}
	return nil
}

func hasNonEmpty(words []string) bool {
	for _, w := range words {
		if w != "" {
			return true
		}
	}
	return false
}

// ScoringWeights holds the per-field contributions used by the relevance
// scorer. The ordering title/keyword >= abstract >= author/file name is
// enforced by Validate.
type ScoringWeights struct {
	// Title is added once when the title contains the keyword.
	Title int `json:"title" yaml:"title" mapstructure:"title"`

	// KeywordExact is added once when a keyword entry equals the keyword.
	KeywordExact int `json:"keyword_exact" yaml:"keyword_exact" mapstructure:"keyword_exact"`

	// KeywordPartial is added per keyword entry containing the keyword,
	// only when no entry matches exactly.
	KeywordPartial int `json:"keyword_partial" yaml:"keyword_partial" mapstructure:"keyword_partial"`

	// Abstract is added per occurrence in the abstract, up to AbstractCap.
	Abstract    int `json:"abstract" yaml:"abstract" mapstructure:"abstract"`
	AbstractCap int `json:"abstract_cap" yaml:"abstract_cap" mapstructure:"abstract_cap"`

	// Author and FileName are added once each on a match.
	Author   int `json:"author" yaml:"author" mapstructure:"author"`
	FileName int `json:"file_name" yaml:"file_name" mapstructure:"file_name"`
}

// DefaultScoringWeights returns the weights documented in DESIGN.md. A title
// match (10) outranks a saturated abstract (3 x 3).
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Title:          10,
		KeywordExact:   8,
		KeywordPartial: 4,
		Abstract:       3,
		AbstractCap:    3,
		Author:         1,
		FileName:       1,
	}
}

// Validate reports whether the weights are non-negative and ordered, and
// whether a title match outranks a saturated abstract.
func (w ScoringWeights) Validate() error {
	for name, v := range map[string]int{
		"title": w.Title, "keyword_exact": w.KeywordExact, "keyword_partial": w.KeywordPartial,
		"abstract": w.Abstract, "abstract_cap": w.AbstractCap, "author": w.Author, "file_name": w.FileName,
	} {
		if v < 0 {
			return fmt.Errorf("%w: scoring weight %s is negative", ErrInvalidConfig, name)
		}
	}
	if w.Title == 0 {
		return fmt.Errorf("%w: scoring weight title must be positive", ErrInvalidConfig)
	}
	minTop := min(w.Title, w.KeywordExact, w.KeywordPartial)
	if minTop < w.Abstract || w.Abstract < max(w.Author, w.FileName) {
		return fmt.Errorf("%w: scoring weights must satisfy title/keyword >= abstract >= author/file_name", ErrInvalidConfig)
	}
	// A title match must outrank an abstract-only match at the cap.
	if w.Title <= w.Abstract*w.AbstractCap {
		return fmt.Errorf("%w: title weight %d must exceed abstract %d x cap %d",
			ErrInvalidConfig, w.Title, w.Abstract, w.AbstractCap)
	}
	return nil
}

// TextBackend identifies the PDF text extraction tool.
type TextBackend string

const (
	TextNative    TextBackend = "native"
	TextContainer TextBackend = "container"
)

// TextConfig selects how PDF bytes become raw text.
type TextConfig struct {
	// Backend is native (in-process) or container (pdftotext image).
	Backend TextBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Image is the container image used by the container backend.
	Image string `json:"image" yaml:"image" mapstructure:"image"`
}

// LibraryConfig locates the read-only document library.
type LibraryConfig struct {
	// Dir is the base directory holding PDF files.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Pattern is a doublestar glob relative to Dir (default "**/*.pdf").
	Pattern string `json:"pattern" yaml:"pattern" mapstructure:"pattern"`
}

// CatalogConfig locates the SQLite record catalog.
type CatalogConfig struct {
	// Path is the database file (default "catalog/records.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config groups all settings read from paper-meta.yaml.
type Config struct {
	Extractor ExtractorConfig `json:"extractor" yaml:"extractor" mapstructure:"extractor"`
	Scoring   ScoringWeights  `json:"scoring" yaml:"scoring" mapstructure:"scoring"`
	Text      TextConfig      `json:"text" yaml:"text" mapstructure:"text"`
	Library   LibraryConfig   `json:"library" yaml:"library" mapstructure:"library"`
	Catalog   CatalogConfig   `json:"catalog" yaml:"catalog" mapstructure:"catalog"`

	// Workers bounds batch extraction concurrency. Zero uses GOMAXPROCS.
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// DefaultConfig returns a Config with every section populated.
func DefaultConfig() Config {
	return Config{
		Extractor: DefaultExtractorConfig(),
		Scoring:   DefaultScoringWeights(),
		Text: TextConfig{
			Backend: TextNative,
			Image:   "pdftotext:latest",
		},
		Library: LibraryConfig{
			Dir:     "papers",
			Pattern: "**/*.pdf",
		},
		Catalog: CatalogConfig{
			Path: "catalog/records.db",
		},
	}
}
