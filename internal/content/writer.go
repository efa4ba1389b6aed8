package content

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Writer rewrites quest descriptions with Gemini. It is optional equipment:
// a nil *Writer is valid and leaves descriptions untouched.
type Writer struct {
	model    string
	logger   *zap.Logger
	generate func(ctx context.Context, prompt string) (string, error)
}

// NewWriter creates a Gemini-backed description writer.
func NewWriter(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Writer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	w := &Writer{model: model, logger: logger}
	w.generate = func(ctx context.Context, prompt string) (string, error) {
		result, err := client.Models.GenerateContent(ctx, w.model, genai.Text(prompt), nil)
		if err != nil {
			return "", err
		}
		return result.Text(), nil
	}
	return w, nil
}

// Rewrite returns a punchier version of the description, or the original on
// any failure. The quest's mechanics are never touched — only the prose.
func (w *Writer) Rewrite(ctx context.Context, id, description string) string {
	if w == nil {
		return description
	}

	prompt := fmt.Sprintf(
		"Rewrite this quest description for a neon-soaked academy action game "+
			"set in Neo-Tokyo. Keep it under 40 words, second person, no markdown, "+
			"keep every concrete objective intact:\n\n%s",
		description)

	out, err := w.generate(ctx, prompt)
	if err != nil {
		// Writers built without a logger (directly, not via NewWriter)
		// still must fall back cleanly.
		if w.logger != nil {
			w.logger.Debug("content: rewrite failed, keeping catalog text",
				zap.String("quest", id), zap.Error(err))
		}
		return description
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return description
	}
	return out
}
