package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewClient(apiKey string) (*Client, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)

	return &Client{
		client: client,
		model:  model,
	}, nil
}

func (c *Client) Close() {
	c.client.Close()
}

// GenerateMatchInsight writes a short blurb on why two users would work
// as roommates. Falls back to a canned line when the API is unavailable
// so the match endpoint never degrades.
func (c *Client) GenerateMatchInsight(ctx context.Context, name, otherName string, commonTags []string, overall int) (string, error) {
	prompt := fmt.Sprintf(`
		Two people are considering becoming roommates.
		Person 1: %s
		Person 2: %s
		Shared lifestyle tags: %v
		Computed compatibility score: %d out of 100.

		Task: Write a short, friendly explanation (1-2 sentences) of why
		they could work well as roommates. Ground it in the shared tags.
		Output: Just the explanation text.
	`, name, otherName, commonTags, overall)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return c.fallbackInsight(name, otherName, commonTags), nil
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return c.fallbackInsight(name, otherName, commonTags), nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	return strings.TrimSpace(sb.String()), nil
}

func (c *Client) fallbackInsight(name, otherName string, commonTags []string) string {
	if len(commonTags) > 0 {
		return fmt.Sprintf("%s and %s share an interest in %s, which is a solid foundation for living together.",
			name, otherName, strings.Join(commonTags, ", "))
	}
	return fmt.Sprintf("%s and %s have complementary lifestyles that could balance each other well at home.",
		name, otherName)
}
