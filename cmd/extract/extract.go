// Package extract handles declaration metadata extraction commands
package extract

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

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract <pdf>...",
	Short: "Extract declaration metadata from PDF files",
	Long: `Extract runs each PDF through pdftotext, asks the configured model for
its declaration metadata and registers both the file and the extracted
declaration in the session. Files that fail extraction are skipped, never
fatal.`,
	Args: cobra.MinimumNArgs(1),
	Run:  extractFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Category, "category", "c", string(models.CategoryDeclaraciones), "Audit file category to register the PDFs under")
}

func extractFunc(cmd *cobra.Command, args []string) {
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

	category := models.FileCategory(root.Category)
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
		if !sess.State.RegisterFile(category, f) {
			root.Log.Fatalf("Unknown file category: %s", root.Category)
		}
		files = append(files, f)
		payloads[f.ID] = data
	}

	extractCtx := ctx
	if root.Cfg.AI.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		extractCtx, cancel = context.WithTimeout(ctx, time.Duration(root.Cfg.AI.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	res, err := extractor.ProcessDeclarationFiles(
		extractCtx,
		extractor.NewPdftotextExtractor(logger),
		gemini,
		files,
		payloads,
		sess.State.KnownDeclarationIDs(),
		logger,
	)
	if err != nil {
		root.Log.Fatalf("Error extracting declarations: %v", err)
	}

	added := sess.State.AddDeclarations(res.Declarations)
	root.Log.Infof("Extracted %d declarations (%d files failed)", added, res.Failed)

	if err := common.SaveAndClose(ctx, sess, st, root.Log); err != nil {
		root.Log.Fatalf("Error saving session: %v", err)
	}
}
