// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package heuristics

import (
	"unicode/utf8"

	"github.com/pdiddy/paper-meta/internal/normalize"
	"github.com/pdiddy/paper-meta/pkg/types"
)

// titleRule picks the first leading line that fits the title length band and
// is not a header, affiliation, author, abstract, or keyword line.
type titleRule struct {
	cfg     types.ExtractorConfig
	markers *markers
}

func (r *titleRule) Field() Field { return FieldTitle }

func (r *titleRule) Extract(doc normalize.Document) (Match, bool) {
	idx := titleIndex(doc, r.cfg, r.markers)
	if idx < 0 {
		return Match{}, false
	}
	return Match{Value: doc.Lines[idx]}, true
}

// titleIndex returns the line index of the title candidate, or -1. The
// author rule shares it to locate the line after the title without reading
// the title rule's result.
func titleIndex(doc normalize.Document, cfg types.ExtractorConfig, m *markers) int {
	for i, line := range doc.Head(cfg.TitleSearchLines) {
		if isTitleCandidate(line, cfg, m) {
			return i
		}
	}
	return -1
}

func isTitleCandidate(line string, cfg types.ExtractorConfig, m *markers) bool {
	n := utf8.RuneCountInString(line)
	if n < cfg.TitleMinLength || n > cfg.TitleMaxLength {
		return false
	}
	if !hasLetter(line) || pageHeader.MatchString(line) || m.hasSkipWord(line) {
		return false
	}
	if _, ok := m.isAuthorLine(line); ok {
		return false
	}
	if _, ok := m.abstractStart(line); ok {
		return false
	}
	_, _, ok := m.keywordStart(line)
	return !ok
}
