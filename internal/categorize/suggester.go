// Package categorize assigns categories to uncategorized transactions by
// asking an external model for a label, one call per transaction.
package categorize

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/hakdo/pengesjekk/internal/core"
)

// Suggester proposes a category label for a transaction.
type Suggester interface {
	Suggest(ctx context.Context, amount core.Money, description string) (string, error)
}

// GeminiSuggester asks the Gemini API for a category label.
type GeminiSuggester struct {
	client *genai.Client
	model  string
}

func NewGeminiSuggester(ctx context.Context, apiKey, model string) (*GeminiSuggester, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiSuggester{client: client, model: model}, nil
}

const suggestPrompt = "You categorize personal bank transactions for a Norwegian household budget.\n\n" +
	"Task:\n" +
	"- You get one transaction as \"<amount> <description>\".\n" +
	"- Respond with EXACTLY one category label and nothing else.\n" +
	"- No markdown, no quotes, no explanations, no trailing punctuation.\n\n" +
	"Rules:\n" +
	"- For income, the only valid labels are \"" + string(core.CategorySalary) + "\" and \"" + string(core.CategoryOtherIncome) + "\".\n" +
	"- For expenses, use a short Norwegian category such as Dagligvarer, Bolig, Transport, Strøm, Forsikring, Restaurant, Klær, Helse, Underholdning.\n" +
	"- If you are unsure, answer \"Annet\".\n"

func (s *GeminiSuggester) Suggest(ctx context.Context, amount core.Money, description string) (string, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: suggestPrompt + "\nTransaction: " + amount.String() + " " + description},
			},
		},
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	label := cleanLabel(resp.Text())
	if label == "" {
		return "", fmt.Errorf("empty label from model")
	}
	return label, nil
}

// cleanLabel strips markdown fences, quotes and extra lines the model
// may emit despite the instructions.
func cleanLabel(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		s = s[:idx]
	}
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
