// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package heuristics

import (
	"strings"

	"github.com/pdiddy/paper-meta/internal/normalize"
	"github.com/pdiddy/paper-meta/pkg/types"
)

// keywordsRule splits the clause after the first keyword marker on the
// configured delimiters. When the clause is empty or ends with a delimiter,
// the list continues on the next line.
type keywordsRule struct {
	cfg     types.ExtractorConfig
	markers *markers
}

func (r *keywordsRule) Field() Field { return FieldKeywords }

func (r *keywordsRule) Extract(doc normalize.Document) (Match, bool) {
	for i, line := range doc.Lines {
		_, section, ok := r.markers.keywordStart(line)
		if !ok {
			continue
		}
		if i+1 < len(doc.Lines) && r.continues(section) && !r.markers.isStop(doc.Lines[i+1]) {
			section += " " + doc.Lines[i+1]
		}
		values := r.split(section)
		if len(values) == 0 {
			return Match{}, false
		}
		return Match{Values: values}, true
	}
	return Match{}, false
}

func (r *keywordsRule) continues(section string) bool {
	if section == "" {
		return true
	}
	return strings.ContainsRune(r.cfg.KeywordDelimiters, rune(section[len(section)-1]))
}

// split breaks section on the delimiters, trims fragments, and drops empty
// and case-insensitive duplicate entries, keeping first-seen order.
func (r *keywordsRule) split(section string) []string {
	fragments := strings.FieldsFunc(section, func(c rune) bool {
		return strings.ContainsRune(r.cfg.KeywordDelimiters, c)
	})
	seen := make(map[string]bool, len(fragments))
	var out []string
	for _, f := range fragments {
		f = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(f), "."))
		if f == "" {
			continue
		}
		key := fold(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
		if r.cfg.MaxKeywords > 0 && len(out) == r.cfg.MaxKeywords {
			break
		}
	}
	return out
}
