// Package ingest handles XML record file ingestion commands
package ingest

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mduarte/cca-audit/cmd/common"
	"mduarte/cca-audit/cmd/root"
	"mduarte/cca-audit/internal/xmlcheck"
)

// Cmd represents the ingest command
var Cmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Ingest XML record files into the session line store",
	Long: `Ingest reads each XML file, splits it into numbered lines and adds it to
the session so its records can be searched, reviewed and linked.`,
	Args: cobra.MinimumNArgs(1),
	Run:  ingestFunc,
}

func ingestFunc(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	sess, st, err := common.OpenSession(ctx, root.Log)
	if err != nil {
		root.Log.Fatalf("Error opening session: %v", err)
	}

	for _, path := range args {
		data, err := os.ReadFile(path) // #nosec G304 -- user-supplied input path
		if err != nil {
			root.Log.WithError(err).Errorf("Skipping unreadable file: %s", path)
			continue
		}

		name := filepath.Base(path)
		probe := xmlcheck.Probe(string(data))
		if !probe.WellFormed {
			root.Log.Warnf("File %s is not well-formed XML, ingesting line by line anyway", name)
		}

		file, err := sess.State.Lines.Ingest(name, string(data))
		if err != nil {
			root.Log.WithError(err).Errorf("Failed to ingest %s", path)
			continue
		}
		root.Log.Infof("Ingested %s: %d lines, %d records", name, len(file.Lines), probe.RecordCount)
	}

	if err := common.SaveAndClose(ctx, sess, st, root.Log); err != nil {
		root.Log.Fatalf("Error saving session: %v", err)
	}
	root.Log.Info("Ingestion completed successfully!")
}
