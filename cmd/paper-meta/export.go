// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-meta/internal/catalog"
	"github.com/pdiddy/paper-meta/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export catalog records to YAML, JSON, or Excel",
	Long: `Export writes every record in the SQLite catalog, ordered by file name,
to stdout or to --output. The xlsx format produces one sheet with a row per
paper.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	if format == export.FormatXLSX && output == "" {
		return fmt.Errorf("xlsx export needs --output")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	store, err := catalog.Open(a.cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.All(cmd.Context())
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}
	if err := export.Records(w, format, recs); err != nil {
		return err
	}
	if output != "" {
		fmt.Fprintf(os.Stderr, "Exported %d records to %s\n", len(recs), output)
	}
	return nil
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml, json, or xlsx")
	exportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}
