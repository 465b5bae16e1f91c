// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/paper-meta/pkg/types"
)

// orDash renders an absent field as "-".
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// clip shortens s to n runes, marking the cut with "...".
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

func printRecord(w io.Writer, r types.MetadataRecord) {
	fmt.Fprintf(w, "%s\n", r.FileName)
	fmt.Fprintf(w, "  Title:    %s\n", orDash(r.Title))
	fmt.Fprintf(w, "  Author:   %s\n", orDash(r.Author))
	fmt.Fprintf(w, "  Year:     %s\n", orDash(r.Year))
	fmt.Fprintf(w, "  Keywords: %s\n", orDash(strings.Join(r.Keywords, ", ")))
	fmt.Fprintf(w, "  Abstract: %s\n", orDash(clip(r.Abstract, 200)))
}

func printBatch(w io.Writer, res types.BatchResult) {
	for i, r := range res.Results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printRecord(w, r)
	}
	if len(res.Errors) > 0 {
		fmt.Fprintln(w)
		for _, e := range res.Errors {
			fmt.Fprintf(w, "failed  %s: %s\n", e.File, e.Reason)
		}
	}
	fmt.Fprintf(w, "\nextracted: %d, failed: %d (total: %d)\n", res.Successful, res.Failed, res.TotalFiles)
}

func printSearch(w io.Writer, out types.SearchOutput) {
	if out.MatchesFound == 0 {
		fmt.Fprintf(w, "No matches for %q (%d files checked).\n", out.Keyword, out.TotalChecked)
		return
	}
	if len(out.Results) == 0 {
		fmt.Fprintf(w, "0 of %d matches shown (%d files checked)\n", out.MatchesFound, out.TotalChecked)
		return
	}

	fmt.Fprintf(w, "%-4s  %-5s  %-50s  %-20s  %-4s  %s\n",
		"Rank", "Score", "Title", "Author", "Year", "File")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for i, r := range out.Results {
		fmt.Fprintf(w, "%-4d  %-5d  %-50s  %-20s  %-4s  %s\n",
			i+1, r.RelevanceScore, clip(orDash(r.Title), 50), clip(orDash(r.Author), 20), orDash(r.Year), r.FileName)
	}
	fmt.Fprintf(w, "\n%d of %d matches shown (%d files checked)\n", len(out.Results), out.MatchesFound, out.TotalChecked)
}

func printList(w io.Writer, dir string, infos []types.FileInfo) {
	if len(infos) == 0 {
		fmt.Fprintf(w, "No PDF files in %s.\n", dir)
		return
	}
	fmt.Fprintf(w, "%-60s  %9s  %s\n", "File", "Size (MB)", "Modified")
	fmt.Fprintln(w, strings.Repeat("-", 92))
	for _, f := range infos {
		fmt.Fprintf(w, "%-60s  %9.2f  %s\n", clip(f.Name, 60), f.SizeMB, f.Modified.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(w, "\n%d files in %s\n", len(infos), dir)
}
