// Package scenario assembles a game cast from a preset or an explicit list of
// provider specifications.
package scenario

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lorenzotomasdiez/imitation-game/internal/game"
	"github.com/lorenzotomasdiez/imitation-game/internal/gemini"
	"github.com/lorenzotomasdiez/imitation-game/internal/openrouter"
	"github.com/lorenzotomasdiez/imitation-game/internal/provider"
)

// HumanSpec is the provider specification for a real operator slot.
const HumanSpec = "human"

// Presets are named, ordered provider casts.
var Presets = map[string][]string{
	"cheap": {
		"minimax/minimax-m2.1",
		"google/gemini-3-flash-preview",
		"anthropic/claude-haiku-4.5",
	},
	"smart": {
		"google/gemini-3-flash-preview",
		"anthropic/claude-opus-4.5",
		"gemini-prefill",
		HumanSpec,
	},
}

// PresetNames returns the known preset names for flag help.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}

// Clients carries the API clients shared by every provider in one game.
type Clients struct {
	OpenRouter *openrouter.Client
	Gemini     *gemini.Client
}

// Options tunes assembly.
type Options struct {
	// HumanName is the display name for a human slot, if any.
	HumanName string
}

// Scenario is an assembled cast: ordered actors with sequential IDs and
// exactly one ground-truth designation.
type Scenario struct {
	GameID string
	Topic  string
	Actors []game.Actor
}

// NewProvider creates a provider from a specification string.
//
// Formats:
//   - "human": real operator input
//   - "gemini-prefill" or "gemini:prefill[:model]": Gemini continuation mode
//   - "openrouter:model/name": OpenRouter with a specific model
//   - "model/name": assumes OpenRouter
func NewProvider(spec string, clients Clients, humanName string) (game.Provider, error) {
	switch {
	case spec == HumanSpec:
		return provider.NewHuman(humanName), nil

	case spec == "gemini-prefill" || strings.HasPrefix(spec, "gemini:prefill"):
		if clients.Gemini == nil {
			return nil, fmt.Errorf("scenario: %q requires a Gemini API key", spec)
		}
		model := ""
		if strings.HasPrefix(spec, "gemini:prefill:") {
			model = strings.TrimPrefix(spec, "gemini:prefill:")
		}
		return provider.NewPrefill(clients.Gemini, model), nil

	case strings.HasPrefix(spec, "openrouter:"):
		if clients.OpenRouter == nil {
			return nil, fmt.Errorf("scenario: %q requires an OpenRouter API key", spec)
		}
		return provider.NewChat(clients.OpenRouter, strings.TrimPrefix(spec, "openrouter:")), nil

	default:
		if clients.OpenRouter == nil {
			return nil, fmt.Errorf("scenario: %q requires an OpenRouter API key", spec)
		}
		return provider.NewChat(clients.OpenRouter, spec), nil
	}
}

// Assemble instantiates one provider per spec, assigns sequential actor IDs,
// and designates the ground truth: the human slot when one is present, else
// (demo mode) the last actor stands in as the scoring target. At most one
// human slot is allowed; two or more is a setup failure.
func Assemble(specs []string, topic string, clients Clients, opts Options) (*Scenario, error) {
	if len(specs) < 2 {
		return nil, fmt.Errorf("scenario: need at least 2 participants, got %d", len(specs))
	}

	humans := 0
	for _, spec := range specs {
		if spec == HumanSpec {
			humans++
		}
	}
	if humans > 1 {
		return nil, fmt.Errorf("scenario: at most one human participant, got %d", humans)
	}

	actors := make([]game.Actor, len(specs))
	for i, spec := range specs {
		p, err := NewProvider(spec, clients, opts.HumanName)
		if err != nil {
			return nil, err
		}
		actors[i] = game.Actor{
			ID:       fmt.Sprintf("Actor %d", i+1),
			Provider: p,
			Human:    spec == HumanSpec,
		}
	}
	if humans == 0 {
		actors[len(actors)-1].Human = true
	}

	return &Scenario{
		GameID: uuid.NewString(),
		Topic:  topic,
		Actors: actors,
	}, nil
}
