// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/paper-meta/internal/extract"
	"github.com/pdiddy/paper-meta/pkg/types"
)

// Extractor runs batch extraction over library files. *extract.Pipeline
// satisfies it.
type Extractor interface {
	ExtractFiles(ctx context.Context, src extract.TextSource, files []types.FileMeta) types.BatchResult
}

// IndexSummary holds counts from a catalog indexing run.
type IndexSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
	Removed int
}

// Total returns the number of library files processed.
func (s IndexSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// HasFailures reports whether any file failed extraction.
func (s IndexSummary) HasFailures() bool {
	return s.Failed > 0
}

// IndexOptions controls an indexing run.
type IndexOptions struct {
	// Force re-extracts files even when their modification time is unchanged.
	Force bool

	// Prune deletes records whose source file is no longer in files.
	Prune bool
}

// Index extracts the files that are new or changed since they were last
// indexed and stores the records. Per-file progress is printed to w.
// Extraction failures are counted, not returned; the error is reserved for
// catalog I/O.
func (s *Store) Index(ctx context.Context, ex Extractor, src extract.TextSource, files []types.FileMeta, opts IndexOptions, w io.Writer) (IndexSummary, error) {
	var (
		summary IndexSummary
		pending []types.FileMeta
		modTime = make(map[string]time.Time, len(files))
		known   = make(map[string]bool, len(files))
	)

	for _, f := range files {
		modTime[f.Name] = f.ModTime
		unchanged, err := s.Unchanged(ctx, f.Name, f.ModTime)
		if err != nil {
			return summary, err
		}
		if unchanged && !opts.Force {
			fmt.Fprintf(w, "skipped %s\n", f.Name)
			summary.Skipped++
			continue
		}
		if unchanged {
			known[f.Name] = true
		} else {
			_, err := s.Get(ctx, f.Name)
			switch {
			case err == nil:
				known[f.Name] = true
			case !errors.Is(err, ErrNotFound):
				return summary, err
			}
		}
		pending = append(pending, f)
	}

	if len(pending) > 0 {
		res := ex.ExtractFiles(ctx, src, pending)
		for _, rec := range res.Results {
			if err := s.Put(ctx, rec, modTime[rec.FileName]); err != nil {
				return summary, err
			}
			if known[rec.FileName] {
				fmt.Fprintf(w, "updated %s\n", rec.FileName)
				summary.Updated++
			} else {
				fmt.Fprintf(w, "indexed %s\n", rec.FileName)
				summary.Indexed++
			}
		}
		for _, e := range res.Errors {
			fmt.Fprintf(w, "failed  %s: %s\n", e.File, e.Reason)
			summary.Failed++
		}
	}

	if opts.Prune {
		removed, err := s.prune(ctx, modTime)
		if err != nil {
			return summary, err
		}
		for _, name := range removed {
			fmt.Fprintf(w, "removed %s\n", name)
		}
		summary.Removed = len(removed)
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d, removed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed, summary.Removed)
	return summary, nil
}

// prune deletes records whose file name is not a key of keep.
func (s *Store) prune(ctx context.Context, keep map[string]time.Time) ([]string, error) {
	recs, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	var removed []string
	for _, rec := range recs {
		if _, ok := keep[rec.FileName]; ok {
			continue
		}
		if err := s.Delete(ctx, rec.FileName); err != nil {
			return removed, err
		}
		removed = append(removed, rec.FileName)
	}
	return removed, nil
}
