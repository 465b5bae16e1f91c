// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize cleans raw text produced by PDF layout extraction into the
// two views consumed by the field heuristics: a whitespace-collapsed string
// for pattern search and the ordered sequence of non-empty trimmed lines for
// position-based rules.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Document is the normalized form of one document's text.
type Document struct {
	// Text is the full text with every whitespace run collapsed to a single
	// space and the ends trimmed.
	Text string

	// Lines holds the non-empty trimmed lines in original order. Whitespace
	// inside a line is collapsed the same way as Text.
	Lines []string
}

// IsEmpty reports whether the document carries no text at all.
func (d Document) IsEmpty() bool {
	return d.Text == ""
}

// Head returns at most the first n lines.
func (d Document) Head(n int) []string {
	if n < len(d.Lines) {
		return d.Lines[:n]
	}
	return d.Lines
}

// Normalize applies NFKC so ligatures and full-width forms match the marker
// vocabulary, then builds the collapsed text and the line view. Empty input
// yields an empty Document.
func Normalize(raw string) Document {
	if raw == "" {
		return Document{}
	}
	text := norm.NFKC.String(raw)

	var lines []string
	for _, line := range splitLines(text) {
		if collapsed := collapse(line); collapsed != "" {
			lines = append(lines, collapsed)
		}
	}

	return Document{
		Text:  collapse(text),
		Lines: lines,
	}
}

// splitLines breaks on \n, \r\n, lone \r, and form feed (page breaks).
func splitLines(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == '\r' || r == '\f'
	})
}

// collapse joins whitespace-separated fields with single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
