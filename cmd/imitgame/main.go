package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "imitgame",
		SilenceUsage: true,
		Short:        "Imitation Game, a Turing-test party game over LLM APIs",
		Long: "Runs a multi-party conversational game in which several actors (LLM-backed, " +
			"at most one a real person) converse on a topic and then vote on which actor " +
			"was the human. The human wins beer if they stay hidden.",
	}

	root.PersistentFlags().String("api-key", "", "OpenRouter API key (overrides OPENROUTER_API_KEY env var)")
	root.PersistentFlags().Int("turns", 0, "Conversation turns per actor (overrides IMITGAME_TURNS, default 3)")
	root.PersistentFlags().String("output-dir", "", "Directory for game artifacts (overrides IMITGAME_OUTPUT_DIR)")

	root.AddCommand(newPlayCmd())
	root.AddCommand(newDemoCmd())
	root.AddCommand(newTestCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
