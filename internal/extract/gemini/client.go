package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/vertexai/genai"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/survey-tabulator/constants"
	"github.com/joseph-ayodele/survey-tabulator/internal/extract"
	"github.com/joseph-ayodele/survey-tabulator/internal/fields"
)

// Config for the Vertex AI Gemini client.
type Config struct {
	ProjectID   string
	Region      string  // default us-central1
	Model       string  // e.g. "gemini-2.5-flash"
	Temperature float32 // 0 for deterministic structured output
}

type Client struct {
	cfg    Config
	base   *genai.Client
	model  *genai.GenerativeModel
	logger *slog.Logger
}

// NewClient dials Vertex AI with Application Default Credentials and
// configures one generative model for survey extraction: JSON-only responses,
// low temperature, the form-parser system instruction.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("gemini: project id is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-central1"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if logger == nil {
		logger = slog.Default()
	}

	base, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	model := base.GenerativeModel(cfg.Model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(extract.SystemInstruction)},
	}
	model.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(cfg.Temperature),
	}

	return &Client{cfg: cfg, base: base, model: model, logger: logger}, nil
}

// Extract implements extract.Extractor with a single GenerateContent call
// carrying the raw PDF bytes and the field instruction.
func (c *Client) Extract(ctx context.Context, pdf []byte, list *fields.List) (extract.Record, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"pdf_bytes", len(pdf),
		"field_count", list.Len(),
	)

	filePart := genai.Blob{
		MIMEType: constants.DocumentMIMEType,
		Data:     pdf,
	}
	prompt := genai.Text(extract.BuildInstruction(list))

	resp, err := c.model.GenerateContent(ctx, filePart, prompt)
	if err != nil {
		c.logger.Error("llm.extract.request_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, extract.NewError(extract.StageModel, fmt.Errorf("generate content: %w", err))
	}

	text := responseText(resp)
	raw, err := extract.ParseRecord(text)
	if err != nil {
		c.logger.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "response_bytes", len(text),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, extract.NewError(extract.StageDecode, err)
	}

	rec, dropped := extract.Normalize(raw, list, c.logger)

	c.logger.Info("llm.extract.ok",
		"req_id", rid,
		"fields", len(rec),
		"dropped", len(dropped),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

// Close releases the underlying Vertex AI connection.
func (c *Client) Close() error {
	if c.base != nil {
		return c.base.Close()
	}
	return nil
}
