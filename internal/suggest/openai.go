package suggest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// Input is clipped before prompting to keep token usage bounded.
	maxPromptInput = 4000
	maxMetaInput   = 2000

	// SEO meta descriptions are truncated to this length.
	maxMetaDescriptionLen = 160
)

// OpenAIProvider generates suggestions through the OpenAI chat completions
// API. It is the only place aware of the provider's wire format.
type OpenAIProvider struct {
	client         *openai.Client
	model          string
	maxSuggestions int
}

func NewOpenAIProvider(apiKey, baseURL, model string, maxSuggestions int) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4
	}
	if maxSuggestions < 1 {
		maxSuggestions = 3
	}

	return &OpenAIProvider{
		client:         openai.NewClientWithConfig(cfg),
		model:          model,
		maxSuggestions: maxSuggestions,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, field Field, snap Snapshot) ([]string, error) {
	prompt, n := p.prompt(field, snap)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		N:           n,
		MaxTokens:   400,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, classify(err)
	}

	var suggestions []string
	for _, choice := range resp.Choices {
		text := strings.TrimSpace(choice.Message.Content)
		if text == "" {
			continue
		}

		switch field {
		case FieldSEOKeywords:
			suggestions = append(suggestions, splitKeywords(text)...)
		case FieldMetaDescription:
			suggestions = append(suggestions, truncate(text, maxMetaDescriptionLen))
		default:
			suggestions = append(suggestions, text)
		}
	}

	if len(suggestions) == 0 {
		return nil, errors.New("provider returned no suggestions")
	}

	return suggestions, nil
}

func (p *OpenAIProvider) prompt(field Field, snap Snapshot) (prompt string, n int) {
	switch field {
	case FieldTitle:
		return fmt.Sprintf(
			"Suggest a single compelling, SEO-friendly title for the following blog post. "+
				"Answer with the title only, no quotes.\n\nContent:\n%s",
			clip(snap.Body, maxPromptInput),
		), p.maxSuggestions

	case FieldSummary:
		return fmt.Sprintf(
			"Write a short engaging summary (2-3 sentences) of the following blog post. "+
				"Answer with the summary only.\n\nTitle: %s\n\nContent:\n%s",
			snap.Title, clip(snap.Body, maxPromptInput),
		), p.maxSuggestions

	case FieldSEOKeywords:
		return fmt.Sprintf(
			"Suggest 5-10 relevant SEO keywords for the following blog post. "+
				"Answer with a comma-separated list only.\n\nTitle: %s\n\nContent:\n%s",
			snap.Title, clip(snap.Body, maxPromptInput),
		), 1

	case FieldMetaDescription:
		return fmt.Sprintf(
			"Generate an SEO-friendly meta description based on the following content. "+
				"It should be compelling, include relevant keywords, and be no longer than %d characters.\n\nContent:\n%s",
			maxMetaDescriptionLen, clip(snap.Body, maxMetaInput),
		), 1
	}

	return clip(snap.Body, maxPromptInput), 1
}

// classify maps provider failures onto the internal error kinds: rate limits
// and server errors are transient, content-policy rejections are not.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		code, _ := apiErr.Code.(string)
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500:
			return Transient(err)
		case code == "content_policy_violation" || code == "content_filter":
			return Policy(err)
		}
		return err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	// Anything else is a network-level failure worth one retry.
	return Transient(err)
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:runeBoundary(s, max)]
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:runeBoundary(s, max-3)] + "..."
}

// runeBoundary backs cut up to the nearest rune start so byte slicing never
// splits a multi-byte character.
func runeBoundary(s string, cut int) int {
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return cut
}

func splitKeywords(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}
