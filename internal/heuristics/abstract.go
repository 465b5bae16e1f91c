// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package heuristics

import (
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/paper-meta/internal/normalize"
	"github.com/pdiddy/paper-meta/pkg/types"
)

// abstractRule collects the block after the first abstract marker, stopping
// at the next section, keyword clause, or abstract marker (bilingual papers
// carry two), or at the line and character caps.
type abstractRule struct {
	cfg     types.ExtractorConfig
	markers *markers
}

func (r *abstractRule) Field() Field { return FieldAbstract }

func (r *abstractRule) Extract(doc normalize.Document) (Match, bool) {
	start := -1
	var parts []string
	for i, line := range doc.Lines {
		if inline, ok := r.markers.abstractStart(line); ok {
			start = i + 1
			parts = appendUntilKeywords(parts, inline, r.markers)
			break
		}
	}
	if start < 0 {
		return Match{}, false
	}

	end := min(start+r.cfg.AbstractMaxLines, len(doc.Lines))
	for _, line := range doc.Lines[start:end] {
		if r.markers.isSection(line) {
			break
		}
		if _, ok := r.markers.abstractStart(line); ok {
			break
		}
		if at, _, ok := r.markers.keywordStart(line); ok {
			parts = appendUntilKeywords(parts, line[:at], r.markers)
			break
		}
		parts = append(parts, line)
		if utf8.RuneCountInString(strings.Join(parts, " ")) >= r.cfg.AbstractMaxChars {
			break
		}
	}

	body := truncateRunes(strings.Join(strings.Fields(strings.Join(parts, " ")), " "), r.cfg.AbstractMaxChars)
	if body == "" {
		return Match{}, false
	}
	return Match{Value: body}, true
}

// appendUntilKeywords appends text, cutting it where an inline keyword clause
// begins ("... in rural areas. Keywords: ...").
func appendUntilKeywords(parts []string, text string, m *markers) []string {
	if at, _, ok := m.keywordStart(text); ok {
		text = text[:at]
	}
	if text = strings.TrimSpace(text); text != "" {
		parts = append(parts, text)
	}
	return parts
}

// truncateRunes cuts s to at most n runes, backing off to the last space when
// one exists so words are not split.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	cut := string([]rune(s)[:n])
	if sp := strings.LastIndexByte(cut, ' '); sp > 0 {
		cut = cut[:sp]
	}
	return strings.TrimSpace(cut)
}
