// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-meta/internal/export"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List PDFs in the library, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		infos, err := a.library.List()
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return export.JSON(os.Stdout, infos)
		}
		printList(os.Stdout, a.library.Dir(), infos)
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("json", false, "output the listing as JSON")

	rootCmd.AddCommand(listCmd)
}
