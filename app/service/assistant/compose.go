package assistant

import (
	"context"
	"fmt"

	_ "embed"

	"shopassist/app/client/genai"
	"shopassist/app/service/session"
)

//go:embed system_prompt.txt
var systemPrompt string

// promptHistorySize bounds how much rolling history goes into a prompt.
const promptHistorySize = 4

// buildTurns assembles the persona preamble, a short tail of the
// conversation history and the task instruction, oldest first.
func buildTurns(history []session.Message, instruction string) []genai.Turn {
	turns := make([]genai.Turn, 0, promptHistorySize+2)
	turns = append(turns, genai.Turn{Role: genai.RoleSystem, Text: systemPrompt})

	start := len(history) - promptHistorySize
	if start < 0 {
		start = 0
	}

	for _, msg := range history[start:] {
		role := genai.RoleUser
		if msg.Role == session.RoleAssistant {
			role = genai.RoleAssistant
		}
		turns = append(turns, genai.Turn{Role: role, Text: msg.Content})
	}

	return append(turns, genai.Turn{Role: genai.RoleUser, Text: instruction})
}

// generate calls the generation service with the bounded context window.
// Failures are wrapped in ErrGenerationFailed so the turn boundary can
// degrade them into the fixed apology.
func (s *Service) generate(ctx context.Context, history []session.Message, instruction string) (string, error) {
	text, err := s.gen.Generate(ctx, buildTurns(history, instruction))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	return text, nil
}
