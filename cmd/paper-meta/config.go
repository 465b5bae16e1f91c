// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/paper-meta/pkg/types"
)

// setDefaults registers every scalar key so AutomaticEnv can override it
// (PAPER_META_LIBRARY_DIR, PAPER_META_SCORING_TITLE, ...). Marker lists are
// set from the config file only.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	defaults := map[string]any{
		"library.dir":                   d.Library.Dir,
		"library.pattern":               d.Library.Pattern,
		"catalog.path":                  d.Catalog.Path,
		"text.backend":                  string(d.Text.Backend),
		"text.image":                    d.Text.Image,
		"workers":                       d.Workers,
		"extractor.title_min_length":    d.Extractor.TitleMinLength,
		"extractor.title_max_length":    d.Extractor.TitleMaxLength,
		"extractor.title_search_lines":  d.Extractor.TitleSearchLines,
		"extractor.author_search_lines": d.Extractor.AuthorSearchLines,
		"extractor.year_min":            d.Extractor.YearMin,
		"extractor.year_max":            d.Extractor.YearMax,
		"extractor.abstract_max_lines":  d.Extractor.AbstractMaxLines,
		"extractor.abstract_max_chars":  d.Extractor.AbstractMaxChars,
		"extractor.keyword_delimiters":  d.Extractor.KeywordDelimiters,
		"extractor.max_keywords":        d.Extractor.MaxKeywords,
		"scoring.title":                 d.Scoring.Title,
		"scoring.keyword_exact":         d.Scoring.KeywordExact,
		"scoring.keyword_partial":       d.Scoring.KeywordPartial,
		"scoring.abstract":              d.Scoring.Abstract,
		"scoring.abstract_cap":          d.Scoring.AbstractCap,
		"scoring.author":                d.Scoring.Author,
		"scoring.file_name":             d.Scoring.FileName,
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}

// loadConfig decodes the merged config file, environment, and flags over
// types.DefaultConfig and validates the extractor and scoring sections.
func loadConfig(v *viper.Viper) (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Extractor.Validate(); err != nil {
		return cfg, err
	}
	if err := cfg.Scoring.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
