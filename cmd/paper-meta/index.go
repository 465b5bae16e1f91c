// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-meta/internal/catalog"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Extract library PDFs into the SQLite catalog",
	Long: `Index extracts every library PDF that is new or modified since the last
run and stores the records in the SQLite catalog. Unchanged files are
skipped on subsequent runs; --force re-extracts them, and --prune drops
records whose PDF is no longer in the library.`,
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	files, err := a.library.Files()
	if err != nil {
		return err
	}
	src, err := a.source(cmd.Context())
	if err != nil {
		return fmt.Errorf("text backend: %w", err)
	}

	store, err := catalog.Open(a.cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	force, _ := cmd.Flags().GetBool("force")
	prune, _ := cmd.Flags().GetBool("prune")
	summary, err := store.Index(cmd.Context(), a.pipeline, src, files,
		catalog.IndexOptions{Force: force, Prune: prune}, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d of %d file(s) failed indexing", summary.Failed, summary.Total())
	}
	return nil
}

func init() {
	indexCmd.Flags().Bool("force", false, "re-extract files even when unchanged")
	indexCmd.Flags().Bool("prune", false, "remove records for files no longer in the library")

	rootCmd.AddCommand(indexCmd)
}
