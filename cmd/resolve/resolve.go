// Package resolve handles declaration-to-XML matching commands
package resolve

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"mduarte/cca-audit/cmd/common"
	"mduarte/cca-audit/cmd/root"
	"mduarte/cca-audit/internal/resolver"
)

// Cmd represents the resolve command
var Cmd = &cobra.Command{
	Use:   "resolve",
	Short: "Locate a declaration's record line in the ingested XML files",
	Long: `Resolve scans the ingested files for the line whose ndec attribute
matches the declaration number, falling back to a vusd amount match. The
first hit is marked reviewed and, when --movement is given, linked to that
movement.`,
	Run: resolveFunc,
}

var movementID string

func init() {
	Cmd.Flags().StringVarP(&root.Number, "number", "n", "", "Declaration number to locate")
	Cmd.Flags().StringVarP(&root.Amount, "amount", "a", "", "Declaration amount for the fallback match")
	Cmd.Flags().StringVarP(&movementID, "movement", "m", "", "Movement id to link the hit to")
}

func resolveFunc(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	sess, st, err := common.OpenSession(ctx, root.Log)
	if err != nil {
		root.Log.Fatalf("Error opening session: %v", err)
	}

	req := resolver.Request{
		Number:     root.Number,
		MovementID: movementID,
	}
	if root.Amount != "" {
		amount, err := decimal.NewFromString(root.Amount)
		if err != nil {
			root.Log.Fatalf("Invalid amount %q: %v", root.Amount, err)
		}
		req.Amount = amount
		req.HasAmount = true
	}

	r := resolver.New(sess.State.Lines, sess.State.Graph, root.Cfg.Search.PageSize, nil)
	result := r.Resolve(req)
	if !result.Found {
		root.Log.Warnf("No record line matches declaration %q", root.Number)
		if err := st.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close session store")
		}
		return
	}

	root.Log.Infof("Matched %s line %d (page %d), marked reviewed", result.FileName, result.LineNumber, result.Page)
	if result.Linked {
		root.Log.Infof("Linked movement %s to the matched line", movementID)
	}

	if err := common.SaveAndClose(ctx, sess, st, root.Log); err != nil {
		root.Log.Fatalf("Error saving session: %v", err)
	}
}
