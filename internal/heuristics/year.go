// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package heuristics

import (
	"regexp"
	"strconv"

	"github.com/pdiddy/paper-meta/internal/normalize"
)

var digitRun = regexp.MustCompile(`\d+`)

// yearRule takes the first 4-digit token of the full text whose value lies in
// [min, max]. Longer digit runs (ISBNs, page ranges without separators) are
// not split into years.
type yearRule struct {
	min, max int
}

func (r *yearRule) Field() Field { return FieldYear }

func (r *yearRule) Extract(doc normalize.Document) (Match, bool) {
	for _, tok := range digitRun.FindAllString(doc.Text, -1) {
		if len(tok) != 4 {
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		if v >= r.min && v <= r.max {
			return Match{Value: tok}, true
		}
	}
	return Match{}, false
}
