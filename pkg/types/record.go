// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the records exchanged between the extraction core,
// the relevance scorer, and the storage and CLI collaborators.
package types

import "time"

// MetadataRecord is the bibliographic metadata extracted from one document.
//
// Title, Author, Year, and Abstract are empty when no value was found; the
// heuristics never report an empty value as a match, so the empty string is
// the absent state. Keywords is never nil.
type MetadataRecord struct {
	Title    string   `json:"title,omitempty" yaml:"title,omitempty"`
	Author   string   `json:"author,omitempty" yaml:"author,omitempty"`
	Year     string   `json:"year,omitempty" yaml:"year,omitempty"`
	Abstract string   `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Keywords []string `json:"keywords" yaml:"keywords"`

	// FileName identifies the source document in the library.
	FileName string `json:"file_name" yaml:"file_name"`

	// FileSize and ExtractedAt are provenance passed through from the caller.
	FileSize    int64     `json:"file_size,omitempty" yaml:"file_size,omitempty"`
	ExtractedAt time.Time `json:"extracted_at,omitzero" yaml:"extracted_at,omitempty"`
}

// FileMeta is the provenance the storage collaborator hands to the pipeline.
type FileMeta struct {
	// Name is the library-relative file name.
	Name string

	// Path is where the text source reads the document. Empty when the
	// caller supplies text directly.
	Path string

	Size        int64
	ModTime     time.Time
	ExtractedAt time.Time
}

// DocumentError records a per-document extraction failure.
type DocumentError struct {
	File   string `json:"file" yaml:"file"`
	Reason string `json:"error" yaml:"error"`
}

// BatchResult holds the outcome of a batch extraction run.
type BatchResult struct {
	TotalFiles int              `json:"total_files" yaml:"total_files"`
	Successful int              `json:"successful" yaml:"successful"`
	Failed     int              `json:"failed" yaml:"failed"`
	Results    []MetadataRecord `json:"results" yaml:"results"`
	Errors     []DocumentError  `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// HasFailures reports whether any document failed extraction.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FileInfo describes one PDF in the document library.
type FileInfo struct {
	Name      string    `json:"filename" yaml:"filename"`
	SizeBytes int64     `json:"size_bytes" yaml:"size_bytes"`
	SizeMB    float64   `json:"size_mb" yaml:"size_mb"`
	Modified  time.Time `json:"modified" yaml:"modified"`
}
