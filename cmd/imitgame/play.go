package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"slices"

	"github.com/lorenzotomasdiez/imitation-game/internal/game"
	"github.com/lorenzotomasdiez/imitation-game/internal/scenario"
	"github.com/spf13/cobra"
)

const defaultPlayTopic = "What makes someone seem human in a text conversation?"

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game with a human participant",
		RunE:  runPlay,
	}
	cmd.Flags().StringP("topic", "t", defaultPlayTopic, "Conversation topic")
	cmd.Flags().StringP("name", "n", "You", "Your display name")
	cmd.Flags().String("preset", "", "Model preset (cheap, smart, free)")
	cmd.Flags().StringSlice("models", nil, "Specific models to use instead of a preset")
	cmd.Flags().Bool("with-prefill", false, "Include the Gemini prefill-mode actor")
	return cmd
}

func runPlay(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	name, _ := cmd.Flags().GetString("name")
	preset, _ := cmd.Flags().GetString("preset")
	modelList, _ := cmd.Flags().GetStringSlice("models")
	withPrefill, _ := cmd.Flags().GetBool("with-prefill")

	opts, err := loadRootOptions(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	specs, err := resolveSpecs(ctx, preset, modelList, opts)
	if err != nil {
		return err
	}
	if withPrefill && !slices.Contains(specs, "gemini-prefill") {
		specs = append(specs, "gemini-prefill")
	}
	// The operator always gets a seat in play mode.
	if !slices.Contains(specs, scenario.HumanSpec) {
		specs = append(specs, scenario.HumanSpec)
	}

	sc, err := scenario.Assemble(specs, topic, opts.clients, scenario.Options{HumanName: name})
	if err != nil {
		return err
	}

	result, err := runGame(ctx, sc, opts.turns, opts.outputDir)
	if err != nil {
		return err
	}
	// Exit code reports the operator's fate: 0 hidden, 1 caught.
	if result.Outcome == game.HumanLoses {
		return errors.New("you were caught")
	}
	return nil
}
