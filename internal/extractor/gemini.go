package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"mduarte/cca-audit/internal/logging"
	"mduarte/cca-audit/internal/models"
)

// GeminiExtractor implements MetadataExtractor and MovementExtractor
// against the Google Gemini API.
type GeminiExtractor struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    logging.Logger
}

// NewGeminiExtractor creates a Gemini-backed extractor.
func NewGeminiExtractor(ctx context.Context, apiKey, modelName string, logger logging.Logger) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiExtractor{
		client: client,
		model:  client.GenerativeModel(modelName),
		log:    logger,
	}, nil
}

// Close releases the underlying API client.
func (g *GeminiExtractor) Close() error {
	return g.client.Close()
}

// declarationReply is the JSON shape the model is asked to produce per
// declaration document.
type declarationReply struct {
	ID      string `json:"id"`
	Numero  string `json:"numero"`
	Fecha   string `json:"fecha"`
	Valor   string `json:"valor"`
	Numeral string `json:"numeral"`
}

// ExtractDeclarations asks the model for structured metadata on each
// document. Items whose reply cannot be parsed are skipped, never fatal.
func (g *GeminiExtractor) ExtractDeclarations(ctx context.Context, docs []Document) ([]models.ProcessedDeclaration, error) {
	var sb strings.Builder
	sb.WriteString("Extract the exchange-control declaration metadata from each document below.\n")
	sb.WriteString("Reply with a JSON array only, one object per document, shaped as\n")
	sb.WriteString(`{"id":"...","numero":"...","fecha":"YYYY-MM-DD","valor":"...","numeral":"..."}` + "\n\n")
	for _, d := range docs {
		sb.WriteString(fmt.Sprintf("--- id=%s name=%s ---\n%s\n", d.ID, d.Name, truncate(d.Text, 6000)))
	}

	text, err := g.generate(ctx, sb.String())
	if err != nil {
		return nil, err
	}

	var replies []declarationReply
	if err := json.Unmarshal([]byte(stripFences(text)), &replies); err != nil {
		return nil, fmt.Errorf("failed to parse declaration metadata reply: %w", err)
	}

	byID := make(map[string]Document, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}

	var out []models.ProcessedDeclaration
	for _, r := range replies {
		doc, ok := byID[r.ID]
		if !ok {
			g.log.Warn("Model returned metadata for unknown document",
				logging.Field{Key: "id", Value: r.ID})
			continue
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(r.Valor))
		if err != nil {
			amount = decimal.Zero
		}
		out = append(out, models.ProcessedDeclaration{
			ID:            doc.ID,
			FileName:      doc.Name,
			Date:          r.Fecha,
			Amount:        amount,
			Number:        r.Numero,
			Numeral:       r.Numeral,
			ContentSample: truncate(doc.Text, 200),
		})
	}
	return out, nil
}

// movementReply is the JSON shape the model produces per ledger movement.
type movementReply struct {
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Amount      string   `json:"amount"`
	SourceFile  string   `json:"sourceFile"`
	Operations  []string `json:"operations"`
}

// ExtractMovements asks the model for the chronological movement list of a
// set of bank statements.
func (g *GeminiExtractor) ExtractMovements(ctx context.Context, statements []Statement) ([]models.Movement, error) {
	var sb strings.Builder
	sb.WriteString("Identify every bank movement in the statements below.\n")
	sb.WriteString("Reply with a JSON array only, one object per movement, shaped as\n")
	sb.WriteString(`{"date":"YYYY-MM-DD","description":"...","amount":"...","sourceFile":"...","operations":["amount", ...]}` + "\n\n")
	for _, s := range statements {
		sb.WriteString(fmt.Sprintf("--- statement %s ---\n", s.Name))
		for _, p := range s.Pages {
			sb.WriteString(truncate(p, 4000))
			sb.WriteString("\n")
		}
	}

	text, err := g.generate(ctx, sb.String())
	if err != nil {
		return nil, err
	}

	var replies []movementReply
	if err := json.Unmarshal([]byte(stripFences(text)), &replies); err != nil {
		return nil, fmt.Errorf("failed to parse movement reply: %w", err)
	}

	var out []models.Movement
	for _, r := range replies {
		amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
		if err != nil {
			g.log.Warn("Skipping movement with unparseable amount",
				logging.Field{Key: "amount", Value: r.Amount})
			continue
		}
		m := models.Movement{
			ID:          "mov-" + uuid.NewString(),
			Date:        r.Date,
			Description: r.Description,
			Amount:      amount,
			SourceFile:  r.SourceFile,
		}
		if len(r.Operations) == 0 {
			r.Operations = []string{r.Amount}
		}
		for _, opAmount := range r.Operations {
			amt, err := decimal.NewFromString(strings.TrimSpace(opAmount))
			if err != nil {
				continue
			}
			m.Operations = append(m.Operations, models.Operation{
				ID:              "op-" + uuid.NewString(),
				Amount:          amt,
				IncludeInReview: true,
			})
		}
		out = append(out, m)
	}
	return out, nil
}

func (g *GeminiExtractor) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("Gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String(), nil
}

// stripFences removes a markdown code fence the model sometimes wraps its
// JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
