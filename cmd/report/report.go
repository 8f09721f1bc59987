// Package report handles CSV export commands
package report

import (
	"context"

	"github.com/spf13/cobra"

	"mduarte/cca-audit/cmd/common"
	"mduarte/cca-audit/cmd/root"
	"mduarte/cca-audit/internal/models"
	"mduarte/cca-audit/internal/report"
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Export the session's movements and review state to CSV",
	Long: `Report flattens every movement operation together with its review
verdicts and cross-links into one CSV row and writes them to --output.`,
	Run: reportFunc,
}

func reportFunc(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if root.SharedFlags.Output == "" {
		root.Log.Fatal("--output is required")
	}

	sess, st, err := common.OpenSession(ctx, root.Log)
	if err != nil {
		root.Log.Fatalf("Error opening session: %v", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close session store")
		}
	}()

	movements := sess.State.Graph.Movements()
	if movements == nil {
		movements = []models.Movement{}
	}
	if err := report.WriteMovementsCSV(movements, root.SharedFlags.Output); err != nil {
		root.Log.Fatalf("Error writing report: %v", err)
	}
	root.Log.Infof("Exported %d movements to %s", len(movements), root.SharedFlags.Output)
}
