package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/lorenzotomasdiez/imitation-game/internal/game"
	"github.com/lorenzotomasdiez/imitation-game/internal/gemini"
)

const defaultPrefillModel = "gemini-3-pro-preview"

// prefillStops bound generation to a single turn: the model must stop before
// it would emit the next speaker's label. Overrun still happens occasionally;
// the engine strips trailing labels as a backstop.
var prefillStops = []string{"\n\nActor", "\nActor ", "\n\nSystem", "\nSystem:"}

// Prefill drives a Gemini model in continuation mode. The entire transcript is
// flattened to narrative text and placed in a model-role prefill, so the
// backend predicts what this specific character says next instead of answering
// as an assistant. Voting deliberately does NOT use this mechanism; see
// RespondVote.
type Prefill struct {
	client  *gemini.Client
	model   string
	persona string
}

// NewPrefill creates a continuation provider. An empty model selects the
// default. The persona is fixed at construction; conversation and voting
// behavior diverge by contract, not by caller configuration.
func NewPrefill(client *gemini.Client, model string) *Prefill {
	if model == "" {
		model = defaultPrefillModel
	}
	return &Prefill{client: client, model: model, persona: defaultPersona}
}

func (p *Prefill) Name() string { return p.model + ":prefill" }

// Respond asks the backend to continue the flattened transcript as the next
// line of dialogue.
func (p *Prefill) Respond(ctx context.Context, messages []game.Message, actorID string) (string, error) {
	prefill := p.flattenWithPersona(messages, actorID) + "\n\n" + actorID + ":"

	req := &gemini.GenerateRequest{
		SystemInstruction: &gemini.Content{Parts: []gemini.Part{{Text: transcriptSimPrompt}}},
		Contents: []gemini.Content{
			{Role: "user", Parts: []gemini.Part{{Text: "cat transcript.txt"}}},
			// The whole conversation lives here; the model continues from it.
			{Role: "model", Parts: []gemini.Part{{Text: prefill}}},
		},
		GenerationConfig: &gemini.GenerationConfig{
			MaxOutputTokens: 256,
			StopSequences:   prefillStops,
		},
	}

	resp, err := p.client.GenerateContent(ctx, p.model, req)
	if err != nil {
		return "", fmt.Errorf("provider %s: %w", p.Name(), err)
	}
	return resp.Text(), nil
}

// RespondVote leaves continuation mode and uses a plain generateContent call
// with JSON output. Producing a reasoned judgment requires the backend to
// reason as an evaluator; prefill mode optimizes for persona mimicry and is
// unreliable at analysis. This divergence is part of the provider's contract.
func (p *Prefill) RespondVote(ctx context.Context, messages []game.Message, actorID string) (string, error) {
	prompt := "Here is the conversation transcript. Analyze it carefully and identify the human.\n\n" +
		flatten(messages)

	req := &gemini.GenerateRequest{
		SystemInstruction: &gemini.Content{Parts: []gemini.Part{{Text: judgeVotePrompt}}},
		Contents: []gemini.Content{
			{Role: "user", Parts: []gemini.Part{{Text: prompt}}},
		},
		GenerationConfig: &gemini.GenerationConfig{
			MaxOutputTokens:  1024,
			ResponseMIMEType: "application/json",
		},
	}

	resp, err := p.client.GenerateContent(ctx, p.model, req)
	if err != nil {
		return "", fmt.Errorf("provider %s: %w", p.Name(), err)
	}
	return resp.Text(), nil
}

func (p *Prefill) flattenWithPersona(messages []game.Message, actorID string) string {
	header := fmt.Sprintf("[%s is %s]", actorID, p.persona)
	body := flatten(messages)
	if body == "" {
		return header
	}
	return header + "\n\n" + body
}

// flatten serializes the transcript as plain "Speaker: text" lines.
// Speakerless system messages are backend instructions and stay out of the
// narrative.
func flatten(messages []game.Message) string {
	var lines []string
	for _, m := range messages {
		if m.SpeakerID == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", m.SpeakerID, m.Text))
	}
	return strings.Join(lines, "\n\n")
}
