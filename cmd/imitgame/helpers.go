package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/lorenzotomasdiez/imitation-game/internal/config"
	"github.com/lorenzotomasdiez/imitation-game/internal/game"
	"github.com/lorenzotomasdiez/imitation-game/internal/gemini"
	"github.com/lorenzotomasdiez/imitation-game/internal/models"
	"github.com/lorenzotomasdiez/imitation-game/internal/openrouter"
	"github.com/lorenzotomasdiez/imitation-game/internal/output"
	"github.com/lorenzotomasdiez/imitation-game/internal/scenario"
	"github.com/spf13/cobra"
)

// freePresetSize is how many actors a "free" preset game casts.
const freePresetSize = 3

type rootOptions struct {
	cfg       *config.Config
	clients   scenario.Clients
	turns     int
	outputDir string
}

// loadRootOptions resolves config plus root persistent flags into ready clients.
func loadRootOptions(cmd *cobra.Command) (*rootOptions, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	apiKey, _ := cmd.Root().PersistentFlags().GetString("api-key")
	if apiKey == "" {
		apiKey = cfg.OpenRouterAPIKey
	}
	turns, _ := cmd.Root().PersistentFlags().GetInt("turns")
	if turns == 0 {
		turns = cfg.Turns
	}
	outputDir, _ := cmd.Root().PersistentFlags().GetString("output-dir")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	clients := scenario.Clients{}
	if apiKey != "" {
		clients.OpenRouter = openrouter.NewClient(apiKey)
	}
	if key := cfg.GeminiKey(); key != "" {
		clients.Gemini = gemini.NewClient(key)
	}

	return &rootOptions{cfg: cfg, clients: clients, turns: turns, outputDir: outputDir}, nil
}

// resolveSpecs expands a preset name or an explicit model list into provider
// specs. The "free" preset casts live free models from OpenRouter, falling
// back to a known list when the listing fails.
func resolveSpecs(ctx context.Context, preset string, modelList []string, opts *rootOptions) ([]string, error) {
	if preset == "free" {
		return freeSpecs(ctx, opts.clients.OpenRouter)
	}
	if preset != "" {
		specs, ok := scenario.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset %q (known: %v and \"free\")", preset, scenario.PresetNames())
		}
		return slices.Clone(specs), nil
	}
	if len(modelList) > 0 {
		return slices.Clone(modelList), nil
	}
	return slices.Clone(scenario.Presets["cheap"]), nil
}

func freeSpecs(ctx context.Context, client *openrouter.Client) ([]string, error) {
	if client == nil {
		return nil, fmt.Errorf("the free preset requires an OpenRouter API key")
	}
	all, err := client.ListModels(ctx)
	if err != nil {
		fmt.Printf("Warning: could not fetch models: %v. Using defaults.\n", err)
		all = models.DefaultFreeModels()
	}
	registry := models.NewRegistry(all)
	if len(registry.FreeModels()) == 0 {
		registry = models.NewRegistry(models.DefaultFreeModels())
	}
	specs := make([]string, 0, freePresetSize)
	for _, m := range registry.SelectModels(freePresetSize) {
		specs = append(specs, m.ID)
	}
	return specs, nil
}

// runGame wires the engine to terminal output and artifact writing, then plays.
func runGame(ctx context.Context, sc *scenario.Scenario, turns int, outputDir string) (*game.Result, error) {
	dir, err := output.CreateOutputDir(outputDir, output.GenerateSlug(sc.Topic))
	if err != nil {
		return nil, err
	}
	writer := output.NewWriter(dir)

	engine, err := game.NewEngine(sc.GameID, sc.Topic, sc.Actors, turns)
	if err != nil {
		return nil, err
	}
	engine.OnMessage = func(m game.Message) {
		output.PrintMessage(m)
		writer.Log(fmt.Sprintf("%s: %s", m.SpeakerID, m.Text))
	}
	engine.OnPhase = func(p game.Phase) {
		output.PrintPhase(p)
		writer.Log("phase: " + p.String())
	}
	engine.OnVote = func(v game.Vote) {
		output.PrintVote(v)
		if v.Parseable() {
			writer.Log(fmt.Sprintf("%s votes for %s", v.VoterID, v.AccusedID))
		} else {
			writer.Log(v.VoterID + ": unparseable vote")
		}
	}

	result, err := engine.Run(ctx)
	if err != nil {
		return nil, err
	}

	if err := writer.WriteJSON(result); err != nil {
		return nil, err
	}
	if err := writer.WriteMarkdown(result); err != nil {
		return nil, err
	}
	if err := writer.WriteLog(); err != nil {
		return nil, err
	}

	output.PrintResult(result)
	fmt.Printf("\nGame artifacts saved to: %s\n", dir)
	return result, nil
}
