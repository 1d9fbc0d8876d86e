package genai

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"shopassist/app/config"

	"github.com/sashabaranov/go-openai"
)

const (
	maxGenerateDuration = 30 * time.Second
	maxOutputTokens     = 1024
	temperature         = 0.7
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one entry of the prompt payload, oldest first.
type Turn struct {
	Role string
	Text string
}

// Client wraps the external text-generation API. It never retries and
// never returns partial output: any failure surfaces as an error for the
// caller to degrade into a fixed apology.
type Client struct {
	client *openai.Client
	model  string
}

func NewClient(cfg config.ModelConfig) *Client {
	clientConfig := openai.DefaultConfig(cfg.Token)

	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: maxGenerateDuration,
	}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}
}

func (c *Client) Generate(ctx context.Context, turns []Turn) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns))

	for _, turn := range turns {
		role := openai.ChatMessageRoleUser

		switch turn.Role {
		case RoleSystem:
			role = openai.ChatMessageRoleSystem
		case RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}

		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: turn.Text,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, maxGenerateDuration)
	defer cancel()

	aiResponse, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:               c.model,
			Messages:            messages,
			MaxCompletionTokens: maxOutputTokens,
			Temperature:         temperature,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return "", fmt.Errorf("no chat completion found")
	}

	result := strings.TrimSpace(aiResponse.Choices[0].Message.Content)
	if result == "" {
		return "", fmt.Errorf("empty chat completion")
	}

	return CleanMarkdown(result), nil
}

var markdownPatterns = []struct {
	re      *regexp.Regexp
	replace string
}{
	{regexp.MustCompile(`\*\*([^*]+)\*\*`), "$1"},
	{regexp.MustCompile(`\*([^*]+)\*`), "$1"},
	{regexp.MustCompile(`__([^_]+)__`), "$1"},
	{regexp.MustCompile(`_([^_]+)_`), "$1"},
	{regexp.MustCompile("~~([^~]+)~~"), "$1"},
	{regexp.MustCompile("`([^`]+)`"), "$1"},
	{regexp.MustCompile(`#{1,6}\s*`), ""},
}

// CleanMarkdown strips emphasis and heading syntax the generator tends to
// emit even when told not to.
func CleanMarkdown(text string) string {
	for _, p := range markdownPatterns {
		text = p.re.ReplaceAllString(text, p.replace)
	}

	return strings.TrimSpace(text)
}

var (
	blankLineRe    = regexp.MustCompile(`(?m)^[ \t]+$`)
	multiNewlineRe = regexp.MustCompile(`\n{2,}`)
)

// CollapseBlankLines additionally squeezes empty lines out of the text,
// used for the dense admin analytics replies.
func CollapseBlankLines(text string) string {
	text = blankLineRe.ReplaceAllString(text, "")
	text = multiNewlineRe.ReplaceAllString(text, "\n")

	return strings.TrimSpace(text)
}
