package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/lorenzotomasdiez/imitation-game/internal/game"
	"github.com/lorenzotomasdiez/imitation-game/internal/scenario"
	"github.com/spf13/cobra"
)

func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test <provider-spec>",
		Short: "Smoke-test a single provider with a tiny prompt",
		Args:  cobra.ExactArgs(1),
		RunE:  runTest,
	}
}

func runTest(cmd *cobra.Command, args []string) error {
	opts, err := loadRootOptions(cmd)
	if err != nil {
		return err
	}

	p, err := scenario.NewProvider(args[0], opts.clients, "You")
	if err != nil {
		return err
	}
	fmt.Printf("Testing provider: %s\n", p.Name())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	messages := []game.Message{
		{Role: game.RoleSystem, Text: "You are in a group chat game."},
		{SpeakerID: "Actor 1", Role: game.RoleActor, Text: "Hi everyone! What do you think about AI?"},
	}
	response, err := p.Respond(ctx, messages, "Actor 2")
	if err != nil {
		return err
	}
	fmt.Printf("\nResponse:\n%s\n", response)
	return nil
}
