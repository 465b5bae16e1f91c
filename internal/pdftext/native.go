// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Native extracts text in process with github.com/ledongthuc/pdf. The
// library panics on some malformed files; those panics are returned as
// errors.
type Native struct{}

// NewNative returns the in-process text source.
func NewNative() *Native {
	return &Native{}
}

// Text decodes every page of the PDF at path, checking ctx between pages.
func (n *Native) Text(ctx context.Context, path string) (text string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("decoding PDF %s: %v", path, r)
		}
	}()

	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("reading PDF %s: %w", path, err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		s, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d of %s: %w", i, path, err)
		}
		pages = append(pages, s)
	}
	return strings.Join(pages, "\f"), nil
}
