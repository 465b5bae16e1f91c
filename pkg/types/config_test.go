// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"testing"
)

func TestExtractorConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ExtractorConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*ExtractorConfig) {}},
		{name: "unbounded keywords", mutate: func(c *ExtractorConfig) { c.MaxKeywords = 0 }},
		{name: "no section markers", mutate: func(c *ExtractorConfig) { c.SectionMarkers = nil }},
		{name: "inverted title band", mutate: func(c *ExtractorConfig) { c.TitleMinLength = 300 }, wantErr: true},
		{name: "zero title window", mutate: func(c *ExtractorConfig) { c.TitleSearchLines = 0 }, wantErr: true},
		{name: "inverted year range", mutate: func(c *ExtractorConfig) { c.YearMin, c.YearMax = 2000, 1999 }, wantErr: true},
		{name: "five digit year", mutate: func(c *ExtractorConfig) { c.YearMax = 10000 }, wantErr: true},
		{name: "negative keyword cap", mutate: func(c *ExtractorConfig) { c.MaxKeywords = -1 }, wantErr: true},
		{name: "no delimiters", mutate: func(c *ExtractorConfig) { c.KeywordDelimiters = "" }, wantErr: true},
		{name: "blank abstract markers", mutate: func(c *ExtractorConfig) { c.AbstractMarkers = []string{""} }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultExtractorConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestScoringWeightsValidate(t *testing.T) {
	tests := []struct {
		name    string
		w       ScoringWeights
		wantErr bool
	}{
		{name: "defaults", w: DefaultScoringWeights()},
		{name: "all zero", w: ScoringWeights{}, wantErr: true},
		{name: "abstract ignored", w: ScoringWeights{Title: 1, KeywordExact: 1, KeywordPartial: 1}},
		{name: "abstract cap outranks title", w: func() ScoringWeights {
			w := DefaultScoringWeights()
			w.AbstractCap = 5
			return w
		}(), wantErr: true},
		{name: "saturated abstract ties title", w: ScoringWeights{Title: 9, KeywordExact: 9, KeywordPartial: 9, Abstract: 3, AbstractCap: 3}, wantErr: true},
		{name: "abstract above keyword partial", w: ScoringWeights{Title: 10, KeywordExact: 8, KeywordPartial: 2, Abstract: 3}, wantErr: true},
		{name: "file name above abstract", w: ScoringWeights{Title: 10, KeywordExact: 8, KeywordPartial: 4, Abstract: 3, FileName: 5}, wantErr: true},
		{name: "negative cap", w: ScoringWeights{Title: 1, KeywordExact: 1, KeywordPartial: 1, AbstractCap: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBatchResultHasFailures(t *testing.T) {
	if (BatchResult{Successful: 3}).HasFailures() {
		t.Error("no failures reported as failing")
	}
	if !(BatchResult{Failed: 1}).HasFailures() {
		t.Error("failure not reported")
	}
}
