// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-meta/internal/catalog"
	"github.com/pdiddy/paper-meta/internal/export"
	"github.com/pdiddy/paper-meta/internal/rank"
	"github.com/pdiddy/paper-meta/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Rank library papers by relevance to a keyword",
	Long: `Search scores every paper against the keyword and lists the matches
by descending relevance. A title or keyword-list match weighs more than
abstract occurrences, which weigh more than author or file name matches.

By default the library PDFs are extracted on the fly; --catalog ranks the
records stored by "paper-meta index" instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	keyword := strings.Join(args, " ")

	limit := rank.NoLimit
	if cmd.Flags().Changed("limit") {
		n, _ := cmd.Flags().GetInt("limit")
		limit = rank.LimitTo(n)
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	useCatalog, _ := cmd.Flags().GetBool("catalog")
	slog.Debug("search", "keyword", keyword, "limit", limit.String(), "catalog", useCatalog)
	var records []types.MetadataRecord
	if useCatalog {
		records, err = catalogRecords(cmd.Context(), a.cfg.Catalog)
	} else {
		records, err = libraryRecords(cmd.Context(), a)
	}
	if err != nil {
		return err
	}

	out, err := rank.NewScorer(a.cfg.Scoring).Search(records, keyword, limit)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return export.JSON(os.Stdout, out)
	}
	printSearch(os.Stdout, out)
	return nil
}

func catalogRecords(ctx context.Context, cfg types.CatalogConfig) ([]types.MetadataRecord, error) {
	store, err := catalog.Open(cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.All(ctx)
}

// libraryRecords extracts the whole library. Unreadable files are reported
// on stderr and left out of the ranking.
func libraryRecords(ctx context.Context, a *app) ([]types.MetadataRecord, error) {
	files, _, err := a.files(nil)
	if err != nil {
		return nil, err
	}
	res, err := a.extractAll(ctx, files, nil)
	if err != nil {
		return nil, err
	}
	for _, e := range res.Errors {
		fmt.Fprintf(os.Stderr, "skipped %s: %s\n", e.File, e.Reason)
	}
	return res.Results, nil
}

func init() {
	searchCmd.Flags().Int("limit", 0, "maximum number of results (default: all matches)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("catalog", false, "rank records from the SQLite catalog instead of the library")

	rootCmd.AddCommand(searchCmd)
}
