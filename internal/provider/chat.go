// Package provider implements the game.Provider backends: OpenRouter chat
// completion, Gemini prefill continuation, and interactive human input.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/lorenzotomasdiez/imitation-game/internal/game"
	"github.com/lorenzotomasdiez/imitation-game/internal/openrouter"
)

// Chat drives a conventional chat-completion model via OpenRouter.
type Chat struct {
	client *openrouter.Client
	model  string
}

// NewChat creates a chat provider for the given OpenRouter model ID.
func NewChat(client *openrouter.Client, model string) *Chat {
	return &Chat{client: client, model: model}
}

// Name returns the short model name, e.g. "openai/gpt-4o" -> "gpt-4o".
func (p *Chat) Name() string {
	if i := strings.LastIndex(p.model, "/"); i >= 0 {
		return p.model[i+1:]
	}
	return p.model
}

// Respond translates the transcript into role-tagged chat messages and asks
// the model for the next utterance.
func (p *Chat) Respond(ctx context.Context, messages []game.Message, actorID string) (string, error) {
	msgs := translate(messages, actorID)
	msgs = append(msgs, openrouter.Message{
		Role:    "user",
		Content: fmt.Sprintf("You are %s. It's your turn to speak.", actorID),
	})
	resp, err := p.client.ChatCompletion(ctx, p.model, msgs)
	if err != nil {
		return "", fmt.Errorf("provider %s: %w", p.Name(), err)
	}
	return resp.Content(), nil
}

// RespondVote uses the same chat path; the vote instructions arrive in the
// message list.
func (p *Chat) RespondVote(ctx context.Context, messages []game.Message, actorID string) (string, error) {
	resp, err := p.client.ChatCompletion(ctx, p.model, translate(messages, actorID))
	if err != nil {
		return "", fmt.Errorf("provider %s: %w", p.Name(), err)
	}
	return resp.Content(), nil
}

// translate maps the shared transcript onto the chat-completion format.
// Instruction messages keep the system role; the caller's own prior turns
// become assistant messages; everything else becomes a user message prefixed
// with the speaker label, so models do not try to continue other actors'
// utterances as their own.
func translate(messages []game.Message, actorID string) []openrouter.Message {
	out := make([]openrouter.Message, 0, len(messages)+1)
	for _, m := range messages {
		switch {
		case m.Role == game.RoleSystem && m.SpeakerID == "":
			out = append(out, openrouter.Message{Role: "system", Content: m.Text})
		case m.SpeakerID == actorID:
			out = append(out, openrouter.Message{Role: "assistant", Content: m.Text})
		default:
			out = append(out, openrouter.Message{Role: "user", Content: fmt.Sprintf("%s: %s", m.SpeakerID, m.Text)})
		}
	}
	return out
}
