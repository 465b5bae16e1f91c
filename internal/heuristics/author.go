// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package heuristics

import (
	"github.com/pdiddy/paper-meta/internal/normalize"
	"github.com/pdiddy/paper-meta/pkg/types"
)

// authorRule scans the leading lines for an explicit author marker ("Oleh:
// Ahmad Fauzan") or, on the line right after the title, a bare list of
// capitalized full names. The first line that matches either form wins.
type authorRule struct {
	cfg     types.ExtractorConfig
	markers *markers
}

func (r *authorRule) Field() Field { return FieldAuthor }

func (r *authorRule) Extract(doc normalize.Document) (Match, bool) {
	after := titleIndex(doc, r.cfg, r.markers) + 1
	for i, line := range doc.Head(r.cfg.AuthorSearchLines) {
		if names, ok := r.markers.isAuthorLine(line); ok {
			return Match{Value: names}, true
		}
		if i != after || after == 0 || r.markers.hasSkipWord(line) {
			continue
		}
		if names, ok := nameList(line); ok {
			return Match{Value: names}, true
		}
	}
	return Match{}, false
}
