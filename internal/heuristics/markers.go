// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package heuristics

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/pdiddy/paper-meta/pkg/types"
)

// separators accepted after a marker token.
const separators = `:\-–—`

var (
	pageHeader      = regexp.MustCompile(`(?i)^(?:page|halaman|hal\.)\s*\d+`)
	numberedHeading = regexp.MustCompile(`^(?:\d{1,2}|[IVX]{1,4})\.\s+\p{Lu}`)

	nameSplit  = regexp.MustCompile(`\s*(?:[,;&]|\band\b|\bdan\b)\s*`)
	personName = regexp.MustCompile(`^\p{Lu}[\p{L}'.\-]*(?:\s+(?:\p{Lu}[\p{L}'.\-]*|van|von|de|der|da|bin|binti|al))*$`)
)

// functionWords open wrapped title lines ("For Image Recognition"), never a
// name list.
var functionWords = map[string]bool{
	"a": true, "an": true, "the": true, "for": true, "of": true, "in": true,
	"on": true, "to": true, "with": true, "from": true, "via": true, "using": true,
	"untuk": true, "dari": true, "pada": true, "dalam": true, "di": true,
	"ke": true, "terhadap": true, "menggunakan": true, "sebagai": true,
}

// markers holds the compiled marker vocabulary shared by the rules.
type markers struct {
	author   *regexp.Regexp // group 1: remainder after the marker
	abstract *regexp.Regexp // group 1: inline abstract text
	section  *regexp.Regexp
	keyword  *regexp.Regexp // group 1: inline keyword text
	skip     []string       // folded title skip words
}

func compileMarkers(cfg types.ExtractorConfig) *markers {
	m := &markers{
		author: regexp.MustCompile(`(?i)^(?:` + alternation(cfg.AuthorMarkers) +
			`)\b\s*[` + separators + `]?\s*(.+)$`),
		abstract: regexp.MustCompile(`(?i)^(?:` + alternation(cfg.AbstractMarkers) +
			`)\b\s*(?:[` + separators + `.]\s*(.*))?$`),
		keyword: regexp.MustCompile(`(?i)(?:^|[.;]\s*)(?:` + alternation(cfg.KeywordMarkers) +
			`)\s*(?:[` + separators + `]\s*(.*)|$)`),
	}
	if sections := alternation(cfg.SectionMarkers); sections != "" {
		m.section = regexp.MustCompile(`(?i)^(?:(?:\d{1,2}|[ivx]{1,4})\.?\s*)?(?:` + sections +
			`)\b\s*(?:[` + separators + `.].*)?$`)
	}
	for _, w := range cfg.TitleSkipWords {
		if w != "" {
			m.skip = append(m.skip, fold(w))
		}
	}
	return m
}

// alternation quotes words for a regexp alternation, longest first so a
// longer marker wins over its prefix ("keywords" before "keyword"). Spaces
// inside a marker also match a hyphen or nothing ("kata-kunci").
func alternation(words []string) string {
	sorted := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			sorted = append(sorted, w)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	quoted := make([]string, len(sorted))
	for i, w := range sorted {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(w), " ", `[\s\-]?`)
	}
	return strings.Join(quoted, "|")
}

// isAuthorLine reports whether line opens with an author marker followed by
// one or more names, returning the names joined with ", ". Trailing
// fragments that are not names (affiliations) are dropped.
func (m *markers) isAuthorLine(line string) (string, bool) {
	sub := m.author.FindStringSubmatch(line)
	if sub == nil {
		return "", false
	}
	var names []string
	for _, part := range splitNames(sub[1]) {
		if !personName.MatchString(part) {
			break
		}
		names = append(names, part)
	}
	if len(names) == 0 {
		return "", false
	}
	return strings.Join(names, ", "), true
}

// nameList reports whether every part of line is a full name of two or more
// capitalized words ("Ahmad Fauzan, Siti Aminah"). A line opening with a
// function word is a title continuation.
func nameList(line string) (string, bool) {
	parts := splitNames(line)
	if len(parts) == 0 {
		return "", false
	}
	if first := strings.Fields(parts[0]); functionWords[fold(first[0])] {
		return "", false
	}
	for _, part := range parts {
		if !strings.Contains(part, " ") || !personName.MatchString(part) {
			return "", false
		}
	}
	return strings.Join(parts, ", "), true
}

// abstractStart reports whether line is an abstract marker, returning any
// inline text that follows the separator.
func (m *markers) abstractStart(line string) (string, bool) {
	sub := m.abstract.FindStringSubmatch(line)
	if sub == nil {
		return "", false
	}
	return strings.TrimSpace(sub[1]), true
}

// keywordStart locates a keyword marker in line. It returns the byte offset
// where the marker clause begins and the text after the separator.
func (m *markers) keywordStart(line string) (int, string, bool) {
	loc := m.keyword.FindStringSubmatchIndex(line)
	if loc == nil {
		return 0, "", false
	}
	start := loc[0]
	// Keep the sentence punctuation before an inline marker with the prefix.
	for start < len(line) && (line[start] == '.' || line[start] == ';' || line[start] == ' ') {
		start++
	}
	rest := ""
	if loc[2] >= 0 {
		rest = strings.TrimSpace(line[loc[2]:loc[3]])
	}
	return start, rest, true
}

func (m *markers) isSection(line string) bool {
	if numberedHeading.MatchString(line) {
		return true
	}
	return m.section != nil && m.section.MatchString(line)
}

// isStop reports whether line starts a new block: a section heading, a
// keyword clause, or another abstract marker.
func (m *markers) isStop(line string) bool {
	if m.isSection(line) {
		return true
	}
	if _, ok := m.abstractStart(line); ok {
		return true
	}
	_, _, ok := m.keywordStart(line)
	return ok
}

func (m *markers) hasSkipWord(line string) bool {
	folded := fold(line)
	for _, w := range m.skip {
		if strings.Contains(folded, w) {
			return true
		}
	}
	return false
}

// splitNames drops affiliation digits and footnote symbols, then splits an
// author fragment on commas, semicolons, ampersands, "and", and "dan".
func splitNames(s string) []string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '*' || r == '†' || r == '‡' {
			return -1
		}
		return r
	}, s)
	var parts []string
	for _, p := range nameSplit.Split(strings.Join(strings.Fields(s), " "), -1) {
		if p = strings.Trim(p, " ."); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// fold returns the case-folded form of s. A Caser is stateful, so each call
// gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
