// Package template generates the chronological movement list from bank
// statement PDFs.
package template

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mduarte/cca-audit/cmd/common"
	"mduarte/cca-audit/cmd/root"
	"mduarte/cca-audit/internal/extractor"
	"mduarte/cca-audit/internal/logging"
	"mduarte/cca-audit/internal/models"
)

// Cmd represents the template command
var Cmd = &cobra.Command{
	Use:   "template <pdf>...",
	Short: "Generate the audit movement template from bank statements",
	Long: `Template runs each statement PDF through pdftotext, asks the configured
model for the chronological movement list and replaces the session's
movements with the result. Existing manual links are lost, so run this
before resolving.`,
	Args: cobra.MinimumNArgs(1),
	Run:  templateFunc,
}

func templateFunc(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if !root.Cfg.AI.Enabled {
		root.Log.Fatal("AI extraction is disabled; set ai.enabled or CCA_AI_ENABLED=true")
	}
	apiKey := root.Cfg.AI.APIKey
	if apiKey == "" {
		root.Log.Fatal("GEMINI_API_KEY is not set")
	}

	sess, st, err := common.OpenSession(ctx, root.Log)
	if err != nil {
		root.Log.Fatalf("Error opening session: %v", err)
	}

	logger := logging.NewLogrusAdapterFromLogger(root.Log)
	gemini, err := extractor.NewGeminiExtractor(ctx, apiKey, root.Cfg.AI.Model, logger)
	if err != nil {
		root.Log.Fatalf("Error creating extractor: %v", err)
	}
	defer func() {
		if err := gemini.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close extractor client")
		}
	}()

	var files []models.AuditFile
	payloads := make(map[string][]byte)
	for _, path := range args {
		data, err := os.ReadFile(path) // #nosec G304 -- user-supplied input path
		if err != nil {
			root.Log.WithError(err).Errorf("Skipping unreadable file: %s", path)
			continue
		}
		f := models.AuditFile{
			ID: "audit-" + uuid.NewString(),
			Metadata: models.FileMetadata{
				Name:         filepath.Base(path),
				Size:         int64(len(data)),
				Type:         "application/pdf",
				LastModified: time.Now().UnixMilli(),
			},
		}
		sess.State.RegisterFile(models.CategoryExtractos, f)
		files = append(files, f)
		payloads[f.ID] = data
	}

	extractCtx := ctx
	if root.Cfg.AI.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		extractCtx, cancel = context.WithTimeout(ctx, time.Duration(root.Cfg.AI.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	res, err := extractor.ProcessStatementFiles(
		extractCtx,
		extractor.NewPdftotextExtractor(logger),
		gemini,
		files,
		payloads,
		logger,
	)
	if err != nil {
		root.Log.Fatalf("Error extracting movements: %v", err)
	}

	sess.State.Graph.SetMovements(res.Movements)
	root.Log.Infof("Template generated with %d movements (%d files failed)", len(res.Movements), res.Failed)

	if err := common.SaveAndClose(ctx, sess, st, root.Log); err != nil {
		root.Log.Fatalf("Error saving session: %v", err)
	}
}
