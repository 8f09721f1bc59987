// Package analyze handles review-aid analysis commands
package analyze

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mduarte/cca-audit/cmd/common"
	"mduarte/cca-audit/cmd/root"
	"mduarte/cca-audit/internal/analysis"
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Report duplicate declaration identifiers and alert comments",
	Long: `Analyze scans the ingested XML files for declaration identifiers that
appear on more than one record line, totalling their declared amounts, and
lists every line carrying a comment outside the known-safe set.`,
	Run: analyzeFunc,
}

func analyzeFunc(cmd *cobra.Command, args []string) {
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

	files := sess.State.Lines.Files()

	groups := analysis.FindDuplicateIdentifiers(files)
	root.Log.Infof("Found %d duplicated identifiers", len(groups))
	for _, g := range groups {
		fmt.Printf("identifier %s: %d occurrences, vusd total %s, vusdi total %s\n",
			g.Identifier, len(g.Occurrences), g.TotalVusd.StringFixed(2), g.TotalVusdi.StringFixed(2))
		for _, o := range g.Occurrences {
			fmt.Printf("  %s:%d  vusd=%s\n", o.FileName, o.LineNumber, o.Vusd.StringFixed(2))
		}
	}

	alerts := analysis.FindAlerts(files)
	root.Log.Infof("Found %d alert comments", len(alerts))
	for _, a := range alerts {
		fmt.Printf("%s:%d\t%s\n", a.FileName, a.LineNumber, a.Comment)
	}
}
