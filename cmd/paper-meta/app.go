// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/pdiddy/paper-meta/internal/extract"
	"github.com/pdiddy/paper-meta/internal/library"
	"github.com/pdiddy/paper-meta/internal/pdftext"
	"github.com/pdiddy/paper-meta/pkg/types"
)

// app holds the collaborators shared by the subcommands.
type app struct {
	cfg      types.Config
	library  *library.Library
	pipeline *extract.Pipeline
}

func newApp() (*app, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	lib, err := library.New(cfg.Library)
	if err != nil {
		return nil, err
	}
	pipe, err := extract.NewPipeline(cfg.Extractor,
		extract.WithLogger(slog.Default()),
		extract.WithWorkers(cfg.Workers),
	)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, library: lib, pipeline: pipe}, nil
}

// source builds the configured PDF text source.
func (a *app) source(ctx context.Context) (pdftext.Source, error) {
	return pdftext.New(ctx, a.cfg.Text)
}

// files resolves names against the library, or lists the whole library when
// names is empty. Names that do not resolve are returned as document errors
// so they are reported alongside extraction failures.
func (a *app) files(names []string) ([]types.FileMeta, []types.DocumentError, error) {
	if len(names) == 0 {
		files, err := a.library.Files()
		return files, nil, err
	}
	var (
		files      []types.FileMeta
		unresolved []types.DocumentError
	)
	for _, name := range names {
		meta, err := a.library.Resolve(name)
		if err != nil {
			unresolved = append(unresolved, types.DocumentError{File: name, Reason: err.Error()})
			continue
		}
		files = append(files, meta)
	}
	return files, unresolved, nil
}

// extractAll runs the pipeline over files and folds unresolved names into
// the batch result as failures.
func (a *app) extractAll(ctx context.Context, files []types.FileMeta, unresolved []types.DocumentError) (types.BatchResult, error) {
	res := types.BatchResult{Results: []types.MetadataRecord{}}
	if len(files) > 0 {
		src, err := a.source(ctx)
		if err != nil {
			return res, fmt.Errorf("text backend: %w", err)
		}
		res = a.pipeline.ExtractFiles(ctx, src, files)
	}
	res.TotalFiles += len(unresolved)
	res.Failed += len(unresolved)
	res.Errors = append(res.Errors, unresolved...)
	return res, nil
}
