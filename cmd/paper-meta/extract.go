// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-meta/internal/export"
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract metadata from library PDFs",
	Long: `Extract reads the text layer of each named PDF (or every PDF in the
library when no names are given) and prints the recovered title, author,
year, abstract, and keywords. A name without an extension gets ".pdf".

Fields that were not found print as "-". Files that could not be read are
listed separately and make the command exit non-zero.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	files, unresolved, err := a.files(args)
	if err != nil {
		return err
	}
	res, err := a.extractAll(cmd.Context(), files, unresolved)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	switch {
	case asJSON:
		err = export.JSON(os.Stdout, res)
	case asYAML:
		err = export.YAML(os.Stdout, res)
	default:
		printBatch(os.Stdout, res)
	}
	if err != nil {
		return err
	}

	if res.HasFailures() {
		return fmt.Errorf("%d document(s) failed extraction", res.Failed)
	}
	return nil
}

func init() {
	extractCmd.Flags().Bool("json", false, "output the batch result as JSON")
	extractCmd.Flags().Bool("yaml", false, "output the batch result as YAML")
	extractCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	rootCmd.AddCommand(extractCmd)
}
