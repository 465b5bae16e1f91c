// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns raw document text into metadata records. A Pipeline
// runs the normalizer and every field heuristic over one document, and fans
// batches out across a bounded worker pool with results kept in input order.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/paper-meta/internal/heuristics"
	"github.com/pdiddy/paper-meta/internal/normalize"
	"github.com/pdiddy/paper-meta/pkg/types"
)

// ErrUnreadableDocument reports that the upstream text source produced no
// extractable text (image-only, encrypted, or corrupt files). It is not
// transient and is never retried.
var ErrUnreadableDocument = errors.New("unreadable document")

// TextSource reads the raw text of one file. Implementations bound their own
// I/O; the pipeline applies no timeout.
type TextSource interface {
	Text(ctx context.Context, path string) (string, error)
}

// Document is one batch input: raw text plus provenance. A non-nil Err
// records an upstream extraction failure for the document.
type Document struct {
	Text string
	Meta types.FileMeta
	Err  error
}

// Pipeline extracts metadata records. It holds no mutable state after
// construction and is safe for concurrent use.
type Pipeline struct {
	rules   []heuristics.Rule
	logger  *slog.Logger
	workers int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for batch progress. The default is
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithWorkers bounds batch concurrency. Values below one use GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		p.workers = n
	}
}

// NewPipeline validates cfg and compiles the field rules.
func NewPipeline(cfg types.ExtractorConfig, opts ...Option) (*Pipeline, error) {
	rules, err := heuristics.NewRules(cfg)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{
		rules:  rules,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.workers < 1 {
		p.workers = runtime.GOMAXPROCS(0)
	}
	return p, nil
}

// ExtractOne normalizes rawText, runs every rule, and assembles a record with
// meta attached unchanged. Missing fields are left empty; the only error is
// ErrUnreadableDocument for text that is empty after normalization.
func (p *Pipeline) ExtractOne(rawText string, meta types.FileMeta) (types.MetadataRecord, error) {
	doc := normalize.Normalize(rawText)
	if doc.IsEmpty() {
		return types.MetadataRecord{}, fmt.Errorf("%w: %s: no extractable text", ErrUnreadableDocument, meta.Name)
	}

	rec := types.MetadataRecord{
		Keywords:    []string{},
		FileName:    meta.Name,
		FileSize:    meta.Size,
		ExtractedAt: meta.ExtractedAt,
	}
	for _, r := range p.rules {
		m, ok := r.Extract(doc)
		if !ok {
			continue
		}
		switch r.Field() {
		case heuristics.FieldTitle:
			rec.Title = m.Value
		case heuristics.FieldAuthor:
			rec.Author = m.Value
		case heuristics.FieldYear:
			rec.Year = m.Value
		case heuristics.FieldAbstract:
			rec.Abstract = m.Value
		case heuristics.FieldKeywords:
			rec.Keywords = append(rec.Keywords, m.Values...)
		}
	}
	return rec, nil
}

// ExtractBatch extracts every document independently. A failed document is
// reported in Errors and never aborts the batch. Results and Errors keep
// input order.
func (p *Pipeline) ExtractBatch(docs []Document) types.BatchResult {
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Meta.Name
	}
	return p.run(context.Background(), names, func(_ context.Context, i int) (types.MetadataRecord, error) {
		d := docs[i]
		if d.Err != nil {
			return types.MetadataRecord{}, fmt.Errorf("%w: %s: %w", ErrUnreadableDocument, d.Meta.Name, d.Err)
		}
		return p.ExtractOne(d.Text, d.Meta)
	})
}

// ExtractFiles reads each file through src inside a worker and extracts it.
// Cancelling ctx stops scheduling; files never started are reported as
// failed with the context error.
func (p *Pipeline) ExtractFiles(ctx context.Context, src TextSource, files []types.FileMeta) types.BatchResult {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return p.run(ctx, names, func(ctx context.Context, i int) (types.MetadataRecord, error) {
		meta := files[i]
		if meta.ExtractedAt.IsZero() {
			meta.ExtractedAt = time.Now().UTC()
		}
		text, err := src.Text(ctx, meta.Path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return types.MetadataRecord{}, ctxErr
			}
			return types.MetadataRecord{}, fmt.Errorf("%w: %s: %w", ErrUnreadableDocument, meta.Name, err)
		}
		return p.ExtractOne(text, meta)
	})
}

// outcome is one slot of a batch, keyed by input index.
type outcome struct {
	rec     types.MetadataRecord
	err     error
	started bool
}

// run fans one unit of work per name over the worker pool and folds the
// outcomes into a BatchResult in input order.
func (p *Pipeline) run(ctx context.Context, names []string, work func(context.Context, int) (types.MetadataRecord, error)) types.BatchResult {
	log := p.logger.With("run", uuid.NewString())
	log.Info("batch started", "documents", len(names), "workers", p.workers)
	start := time.Now()

	outcomes := make([]outcome, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i := range names {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			rec, err := work(gctx, i)
			outcomes[i] = outcome{rec: rec, err: err, started: true}
			if err != nil {
				log.Warn("document failed", "file", names[i], "error", err)
			} else {
				log.Debug("document extracted", "file", names[i])
			}
			// Per-document failures never cancel the group.
			return nil
		})
	}
	_ = g.Wait()

	res := types.BatchResult{
		TotalFiles: len(names),
		Results:    []types.MetadataRecord{},
	}
	notStarted := 0
	for i, o := range outcomes {
		err := o.err
		if !o.started {
			notStarted++
			if err = ctx.Err(); err == nil {
				err = context.Canceled
			}
		}
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, types.DocumentError{File: names[i], Reason: err.Error()})
			continue
		}
		res.Successful++
		res.Results = append(res.Results, o.rec)
	}

	log.Info("batch finished",
		"successful", res.Successful,
		"failed", res.Failed,
		"not_started", notStarted,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return res
}
