// Package anthropic implements the generative judge on the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"log/slog"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/kotaeba/kotaeba-backend/internal/config"
	"github.com/kotaeba/kotaeba-backend/internal/provider"
)

// Judge asks a Claude model for a free-text verdict over a conversation.
type Judge struct {
	client    sdk.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// NewJudge creates a Judge from judge config.
func NewJudge(cfg config.JudgeConfig, logger *slog.Logger) *Judge {
	return &Judge{
		client:    sdk.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		log:       logger.With("adapter", "anthropic"),
	}
}

// Generate sends the instruction plus conversation history and returns the
// text of the first candidate. An empty candidate list or empty content is
// a hard failure; callers must not interpret it as any verdict.
func (j *Judge) Generate(ctx context.Context, instruction string, history []provider.JudgeMessage) (string, error) {
	messages := make([]sdk.MessageParam, 0, len(history))
	for _, m := range history {
		block := sdk.NewTextBlock(m.Text)
		if m.Role == provider.JudgeRoleModel {
			messages = append(messages, sdk.NewAssistantMessage(block))
		} else {
			messages = append(messages, sdk.NewUserMessage(block))
		}
	}
	if len(messages) == 0 {
		return "", fmt.Errorf("anthropic: empty conversation")
	}

	msg, err := j.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(j.model),
		MaxTokens: j.maxTokens,
		System:    []sdk.TextBlockParam{{Text: instruction}},
		Messages:  messages,
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: api call: %w", err)
	}

	if len(msg.Content) == 0 || msg.Content[0].Text == "" {
		return "", fmt.Errorf("anthropic: no candidates in response")
	}

	text := msg.Content[0].Text
	j.log.DebugContext(ctx, "judge response", slog.String("text", text))

	return text, nil
}
