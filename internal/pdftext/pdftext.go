// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext reads the raw text layer of PDF files. Backends are
// pluggable: the native backend decodes in process, the container backend
// pipes the file through a pdftotext image.
package pdftext

import (
	"context"
	"fmt"

	"github.com/pdiddy/paper-meta/internal/container"
	"github.com/pdiddy/paper-meta/pkg/types"
)

// Source returns the raw text of the PDF at path. Pages are separated by a
// form feed. A file with no text layer yields an empty string and no error;
// the extraction pipeline reports it as unreadable.
type Source interface {
	Text(ctx context.Context, path string) (string, error)
}

// New builds the Source selected by cfg.Backend. The container backend
// detects a runtime and checks that the image exists.
func New(ctx context.Context, cfg types.TextConfig) (Source, error) {
	switch cfg.Backend {
	case types.TextNative, "":
		return NewNative(), nil
	case types.TextContainer:
		rt, err := container.DetectRuntime(ctx)
		if err != nil {
			return nil, err
		}
		return NewContainer(ctx, rt, cfg.Image)
	default:
		return nil, fmt.Errorf("%w: unknown text backend %q", types.ErrInvalidConfig, cfg.Backend)
	}
}
