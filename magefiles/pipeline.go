package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Extract prints metadata for every PDF in the library.
func Extract() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "extract")
}

// Search ranks the catalog records against a keyword.
// Usage: mage search blockchain
func Search(keyword string) error {
	mg.Deps(Build)
	return sh.RunV(binPath, "search", "--catalog", keyword)
}

// Index extracts new and changed library PDFs into the SQLite catalog.
func Index() error {
	mg.Deps(Build, Init)
	return sh.RunV(binPath, "index", "--prune")
}

// Export writes the catalog to exports/ as YAML, JSON, and an Excel workbook.
func Export() error {
	mg.Deps(Index)
	stamp := time.Now().Format("20060102")
	for _, format := range []string{"yaml", "json", "xlsx"} {
		out := filepath.Join("exports", fmt.Sprintf("records-%s.%s", stamp, format))
		if err := sh.RunV(binPath, "export", "--format", format, "--output", out); err != nil {
			return err
		}
	}
	return nil
}
