// Package chat is thin glue over the OpenAI API for the study
// assistant: a question about the passage on screen goes out, an
// answer comes back. No retries, no history beyond one exchange.
package chat

import (
	"context"
	"fmt"
	"log"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a study assistant for Bible reading. " +
	"Answer questions about the passage the user is reading, concisely, " +
	"and quote verse numbers when you refer to specific verses."

type Assistant struct {
	client *openai.Client
	model  string
}

// NewAssistant reads OPENAI_API_KEY and OPENAI_MODEL from the
// environment. A missing key is an error; the app runs without the
// assistant in that case.
func NewAssistant() (*Assistant, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = openai.GPT4oMini
	}
	log.Printf("[CHAT] assistant ready, model %s", model)
	return &Assistant{client: openai.NewClient(key), model: model}, nil
}

// Ask sends one passage-plus-question exchange.
func (a *Assistant) Ask(ctx context.Context, passage, question string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Passage:\n%s\n\nQuestion: %s", passage, question)},
		},
	}
	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
