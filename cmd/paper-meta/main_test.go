// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-meta/pkg/types"
)

func newViper(t *testing.T, yamlConfig string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetEnvPrefix("PAPER_META")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	if yamlConfig != "" {
		path := filepath.Join(t.TempDir(), "paper-meta.yaml")
		require.NoError(t, os.WriteFile(path, []byte(yamlConfig), 0o644))
		v.SetConfigFile(path)
		require.NoError(t, v.ReadInConfig())
	}
	return v
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(newViper(t, ""))
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), cfg)
}

func TestLoadConfig_File(t *testing.T) {
	cfg, err := loadConfig(newViper(t, `
library:
  dir: /srv/papers
  pattern: "*.pdf"
extractor:
  keyword_markers: ["palabras clave"]
  max_keywords: 5
scoring:
  title: 20
text:
  backend: container
`))
	require.NoError(t, err)
	assert.Equal(t, "/srv/papers", cfg.Library.Dir)
	assert.Equal(t, "*.pdf", cfg.Library.Pattern)
	assert.Equal(t, []string{"palabras clave"}, cfg.Extractor.KeywordMarkers)
	assert.Equal(t, 5, cfg.Extractor.MaxKeywords)
	assert.Equal(t, 20, cfg.Scoring.Title)
	assert.Equal(t, types.TextContainer, cfg.Text.Backend)
	// Untouched sections keep their defaults.
	assert.Equal(t, types.DefaultExtractorConfig().AbstractMarkers, cfg.Extractor.AbstractMarkers)
	assert.Equal(t, "catalog/records.db", cfg.Catalog.Path)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("PAPER_META_CATALOG_PATH", "/tmp/cat.db")
	t.Setenv("PAPER_META_EXTRACTOR_YEAR_MIN", "1950")

	cfg, err := loadConfig(newViper(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cat.db", cfg.Catalog.Path)
	assert.Equal(t, 1950, cfg.Extractor.YearMin)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"inverted year range", "extractor:\n  year_min: 2100\n  year_max: 1900\n"},
		{"abstract outweighs title", "scoring:\n  abstract: 50\n"},
		{"negative weight", "scoring:\n  author: -1\n"},
		{"abstract cap outranks title", "scoring:\n  abstract_cap: 5\n"},
		{"all zero weights", "scoring:\n  title: 0\n  keyword_exact: 0\n  keyword_partial: 0\n  abstract: 0\n  abstract_cap: 0\n  author: 0\n  file_name: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(newViper(t, tt.config))
			assert.ErrorIs(t, err, types.ErrInvalidConfig)
		})
	}
}

func TestPrintBatch(t *testing.T) {
	res := types.BatchResult{
		TotalFiles: 2,
		Successful: 1,
		Failed:     1,
		Results: []types.MetadataRecord{
			{Title: "Graph Neural Networks for Traffic", FileName: "gnn.pdf", Keywords: []string{}},
		},
		Errors: []types.DocumentError{{File: "scan.pdf", Reason: "unreadable document"}},
	}
	var buf bytes.Buffer
	printBatch(&buf, res)
	out := buf.String()

	assert.Contains(t, out, "Title:    Graph Neural Networks for Traffic")
	assert.Contains(t, out, "Author:   -")
	assert.Contains(t, out, "Keywords: -")
	assert.Contains(t, out, "failed  scan.pdf: unreadable document")
	assert.Contains(t, out, "extracted: 1, failed: 1 (total: 2)")
}

func TestPrintSearch(t *testing.T) {
	var buf bytes.Buffer
	printSearch(&buf, types.SearchOutput{Keyword: "go", TotalChecked: 3})
	assert.Contains(t, buf.String(), `No matches for "go" (3 files checked)`)

	buf.Reset()
	printSearch(&buf, types.SearchOutput{
		Keyword:      "go",
		TotalChecked: 3,
		MatchesFound: 2,
		Results: []types.SearchResult{
			{MetadataRecord: types.MetadataRecord{Title: "Go Concurrency", FileName: "go.pdf"}, RelevanceScore: 10},
		},
	})
	assert.Contains(t, buf.String(), "Go Concurrency")
	assert.Contains(t, buf.String(), "1 of 2 matches shown (3 files checked)")
}

func TestPrintSearch_LimitZero(t *testing.T) {
	var buf bytes.Buffer
	printSearch(&buf, types.SearchOutput{
		Keyword:      "go",
		TotalChecked: 3,
		MatchesFound: 2,
		Results:      []types.SearchResult{},
	})
	assert.NotContains(t, buf.String(), "No matches")
	assert.Contains(t, buf.String(), "0 of 2 matches shown (3 files checked)")
}

func TestPrintList(t *testing.T) {
	var buf bytes.Buffer
	printList(&buf, "papers", []types.FileInfo{{
		Name:     "paper.pdf",
		SizeMB:   1.5,
		Modified: time.Date(2024, 2, 3, 4, 5, 0, 0, time.UTC),
	}})
	assert.Contains(t, buf.String(), "paper.pdf")
	assert.Contains(t, buf.String(), "1.50")
	assert.Contains(t, buf.String(), "2024-02-03 04:05")
	assert.Contains(t, buf.String(), "1 files in papers")

	buf.Reset()
	printList(&buf, "papers", nil)
	assert.Contains(t, buf.String(), "No PDF files in papers.")
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcdefg...", clip("abcdefghijklmnop", 10))
	assert.Equal(t, "ééé...", clip("éééééééé", 6))
}
