// Package sessioncmd handles session lifecycle commands
package sessioncmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mduarte/cca-audit/cmd/common"
	"mduarte/cca-audit/cmd/root"
	"mduarte/cca-audit/internal/logging"
	"mduarte/cca-audit/internal/session"
	"mduarte/cca-audit/internal/snapshot"
	"mduarte/cca-audit/internal/store"
)

// Cmd represents the session command
var Cmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect and manage the saved session",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Summarize the saved session for this identity",
	Run:   showFunc,
}

var discardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Delete the saved session and start fresh",
	Run:   discardFunc,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the saved session snapshot to a JSON file",
	Run:   exportFunc,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the saved session with a snapshot from a JSON file",
	Args:  cobra.ExactArgs(1),
	Run:   importFunc,
}

func init() {
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(discardCmd)
	Cmd.AddCommand(exportCmd)
	Cmd.AddCommand(importCmd)
}

func showFunc(cmd *cobra.Command, args []string) {
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

	snap := sess.State.Snapshot()
	fmt.Printf("identity:      %s\n", sess.Identity())
	fmt.Printf("company:       %s (NIT %s)\n", snap.AuditDetails.CompanyName, snap.AuditDetails.NIT)
	fmt.Printf("files:         %d\n", len(snap.FileData))
	fmt.Printf("movements:     %d\n", len(snap.ChronologicalMovements))
	fmt.Printf("declarations:  %d\n", len(snap.ProcessedDeclarations))
	fmt.Printf("reviews:       %d\n", len(snap.DeclarationReviews))
}

func discardFunc(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if root.SharedFlags.Identity == "" {
		root.Log.Fatal("--user is required: sessions are keyed by auditor identity")
	}

	path, err := common.DatabasePath()
	if err != nil {
		root.Log.Fatalf("Error resolving session database: %v", err)
	}
	st, err := store.OpenSQLite(path)
	if err != nil {
		root.Log.Fatalf("Error opening session store: %v", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close session store")
		}
	}()

	sess := session.New(st, logging.NewLogrusAdapterFromLogger(root.Log))
	if _, err := sess.Start(ctx, root.SharedFlags.Identity); err != nil {
		root.Log.Fatalf("Error starting session: %v", err)
	}
	sess.Discard(ctx)
	root.Log.Infof("Session for %s discarded", root.SharedFlags.Identity)
}

func exportFunc(cmd *cobra.Command, args []string) {
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

	if err := snapshot.WriteFile(root.SharedFlags.Output, sess.State.Snapshot()); err != nil {
		root.Log.Fatalf("Error exporting snapshot: %v", err)
	}
	root.Log.Infof("Snapshot exported to %s", root.SharedFlags.Output)
}

func importFunc(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	sess, st, err := common.OpenSession(ctx, root.Log)
	if err != nil {
		root.Log.Fatalf("Error opening session: %v", err)
	}

	snap, err := snapshot.ReadFile(args[0])
	if err != nil {
		root.Log.Fatalf("Error reading snapshot: %v", err)
	}
	sess.State.Restore(snap)

	if err := common.SaveAndClose(ctx, sess, st, root.Log); err != nil {
		root.Log.Fatalf("Error saving session: %v", err)
	}
	root.Log.Infof("Snapshot %s imported for %s", args[0], root.SharedFlags.Identity)
}
