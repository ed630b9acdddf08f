package main

import (
	"context"
	"os"
	"os/signal"
	"slices"

	"github.com/lorenzotomasdiez/imitation-game/internal/scenario"
	"github.com/spf13/cobra"
)

const defaultDemoTopic = "Is this performance art?"

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a demo game (all AI, unless the preset includes \"human\")",
		Long: "Plays a full game without a real participant: one AI actor is designated " +
			"the scoring target and the rest vote as usual. Presets that include a " +
			"\"human\" entry still seat a real operator.",
		RunE: runDemo,
	}
	cmd.Flags().StringP("topic", "t", defaultDemoTopic, "Conversation topic")
	cmd.Flags().StringP("name", "n", "You", "Your display name (if the preset seats a human)")
	cmd.Flags().String("preset", "cheap", "Model preset (cheap, smart, free)")
	cmd.Flags().Bool("with-prefill", false, "Include the Gemini prefill-mode actor")
	return cmd
}

func runDemo(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	name, _ := cmd.Flags().GetString("name")
	preset, _ := cmd.Flags().GetString("preset")
	withPrefill, _ := cmd.Flags().GetBool("with-prefill")

	opts, err := loadRootOptions(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	specs, err := resolveSpecs(ctx, preset, nil, opts)
	if err != nil {
		return err
	}
	if withPrefill && !slices.Contains(specs, "gemini-prefill") {
		specs = append(specs, "gemini-prefill")
	}

	sc, err := scenario.Assemble(specs, topic, opts.clients, scenario.Options{HumanName: name})
	if err != nil {
		return err
	}

	_, err = runGame(ctx, sc, opts.turns, opts.outputDir)
	return err
}
