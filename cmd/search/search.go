// Package search handles line search commands
package search

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mduarte/cca-audit/cmd/common"
	"mduarte/cca-audit/cmd/root"
	"mduarte/cca-audit/internal/search"
)

// Cmd represents the search command
var Cmd = &cobra.Command{
	Use:   "search",
	Short: "Search the ingested XML lines",
	Long: `Search scans every line of every ingested file for the given term,
case-insensitively, and prints one page of hits with file, line number and
the page the line sits on.`,
	Run: searchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Term, "term", "t", "", "Search term (at least two characters)")
	Cmd.Flags().IntVarP(&root.Page, "page", "p", 1, "Result page to print")
}

func searchFunc(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	sess, st, err := common.OpenSession(ctx, root.Log)
	if err != nil {
		root.Log.Fatalf("Error opening session: %v", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close session store")
		}
	}()

	engine := search.New(sess.State.Lines, root.Cfg.Search.PageSize, root.Cfg.Search.MinTermLength)
	results := engine.Search(root.Term)
	if results == nil {
		root.Log.Warnf("Term %q is too short, nothing searched", root.Term)
		return
	}

	root.Log.Infof("Found %d hits for %q", len(results.Hits), results.Term)

	pageSize := engine.PageSize()
	start := (root.Page - 1) * pageSize
	if start < 0 {
		start = 0
	}
	for i := start; i < len(results.Hits) && i < start+pageSize; i++ {
		h := results.Hits[i]
		fmt.Printf("%s:%d (page %d)\t%s\n", h.FileName, h.LineNumber, h.Page, h.Content)
	}
}
