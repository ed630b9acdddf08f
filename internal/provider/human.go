package provider

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lorenzotomasdiez/imitation-game/internal/game"
)

// Human reads turns from a real operator. No network, no retries; the read
// blocks until the operator answers.
type Human struct {
	name string
	in   *bufio.Reader
	out  io.Writer
}

// NewHuman creates a provider reading from stdin.
func NewHuman(name string) *Human {
	return NewHumanWithIO(name, os.Stdin, os.Stdout)
}

// NewHumanWithIO creates a provider with injectable streams (for testing).
func NewHumanWithIO(name string, in io.Reader, out io.Writer) *Human {
	if name == "" {
		name = "Human"
	}
	return &Human{name: name, in: bufio.NewReader(in), out: out}
}

func (h *Human) Name() string { return h.name }

// Respond prompts the operator and returns the entered line unmodified.
func (h *Human) Respond(ctx context.Context, messages []game.Message, actorID string) (string, error) {
	fmt.Fprintf(h.out, "\n--- Your turn as %s ---\n> ", actorID)
	return h.readLine()
}

// RespondVote collects the operator's accusation interactively.
func (h *Human) RespondVote(ctx context.Context, messages []game.Message, actorID string) (string, error) {
	fmt.Fprintf(h.out, "\n--- Voting time, %s ---\nWho do you think is the human? (e.g. \"Actor 2\")\n> ", actorID)
	return h.readLine()
}

func (h *Human) readLine() (string, error) {
	line, err := h.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("provider %s: reading input: %w", h.name, err)
	}
	return strings.TrimSpace(line), nil
}
