// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package heuristics holds the field extraction rules. Each rule is pure,
// independent of every other rule's result, and reports absence instead of
// failing: a document with no recognizable structure yields no matches.
//
// Rules are compiled once from a types.ExtractorConfig and are safe for
// concurrent use.
package heuristics

import (
	"github.com/pdiddy/paper-meta/internal/normalize"
	"github.com/pdiddy/paper-meta/pkg/types"
)

// Field names the metadata field a rule extracts.
type Field string

const (
	FieldTitle    Field = "title"
	FieldAuthor   Field = "author"
	FieldYear     Field = "year"
	FieldAbstract Field = "abstract"
	FieldKeywords Field = "keywords"
)

// Match is a successful extraction. Single-valued fields use Value; the
// keyword rule uses Values.
type Match struct {
	Value  string
	Values []string
}

// Rule attempts to extract one field from a normalized document.
type Rule interface {
	Field() Field
	Extract(doc normalize.Document) (Match, bool)
}

// NewRules validates cfg and returns the rules in detection order: title,
// author, year, abstract, keywords.
func NewRules(cfg types.ExtractorConfig) ([]Rule, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := compileMarkers(cfg)
	return []Rule{
		&titleRule{cfg: cfg, markers: m},
		&authorRule{cfg: cfg, markers: m},
		&yearRule{min: cfg.YearMin, max: cfg.YearMax},
		&abstractRule{cfg: cfg, markers: m},
		&keywordsRule{cfg: cfg, markers: m},
	}, nil
}
