// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes metadata records and search output as YAML, JSON,
// or an Excel workbook.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-meta/pkg/types"
)

// Format names an output encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts a format name case-insensitively ("yml" is YAML).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unknown export format %q (want yaml, json, or xlsx)", s)
}

// Records writes recs to w in format f.
func Records(w io.Writer, f Format, recs []types.MetadataRecord) error {
	switch f {
	case FormatYAML:
		return YAML(w, recs)
	case FormatJSON:
		return JSON(w, recs)
	case FormatXLSX:
		return XLSX(w, recs)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// YAML encodes v with two-space indentation.
func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// JSON encodes v indented, without escaping HTML characters.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

const sheet = "Records"

var headers = []string{
	"Title",
	"Author",
	"Year",
	"Keywords",
	"Abstract",
	"File",
	"Size",
	"Extracted At",
}

// XLSX writes recs as a single-sheet workbook, one row per record under a
// header row.
func XLSX(w io.Writer, recs []types.MetadataRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, r := range recs {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.Title)
		write(2, r.Author)
		write(3, r.Year)
		write(4, strings.Join(r.Keywords, "; "))
		write(5, r.Abstract)
		write(6, r.FileName)
		write(7, r.FileSize)
		if !r.ExtractedAt.IsZero() {
			write(8, r.ExtractedAt.UTC().Format("2006-01-02 15:04:05"))
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 60) // title
	_ = f.SetColWidth(sheet, "B", "B", 30) // author
	_ = f.SetColWidth(sheet, "C", "C", 8)  // year
	_ = f.SetColWidth(sheet, "D", "D", 40) // keywords
	_ = f.SetColWidth(sheet, "E", "E", 80) // abstract
	_ = f.SetColWidth(sheet, "F", "F", 40) // file
	_ = f.SetColWidth(sheet, "G", "H", 20)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
