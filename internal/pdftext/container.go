// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/paper-meta/internal/container"
)

// pdftotextCmd reads the PDF from stdin and writes layout-preserving text
// to stdout.
var pdftotextCmd = []string{"pdftotext", "-layout", "-enc", "UTF-8", "-", "-"}

// Container extracts text by piping PDFs through a pdftotext container
// image. It depends on a container.Runtime (docker or podman) injected at
// construction time.
type Container struct {
	runtime container.Runtime
	image   string
}

// NewContainer creates a source that runs image on rt. It verifies that the
// image exists locally before returning.
func NewContainer(ctx context.Context, rt container.Runtime, image string) (*Container, error) {
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &Container{runtime: rt, image: image}, nil
}

// Text reads the PDF at path, pipes it through the container, and returns
// the resulting text.
func (c *Container) Text(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := c.runtime.Run(ctx, c.image, pdftotextCmd, f, &out); err != nil {
		return "", fmt.Errorf("extracting %s with pdftotext: %w", path, err)
	}
	return out.String(), nil
}
