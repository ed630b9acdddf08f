package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
)

// scriptedProvider returns canned responses and records every message list it
// was shown, so tests can assert exactly what each actor observed.
type scriptedProvider struct {
	name       string
	responses  []string
	voteText   string
	respondErr error
	voteErr    error

	mu       sync.Mutex
	calls    int
	seen     [][]Message
	voteSeen []Message
}

func (p *scriptedProvider) Name() string { return p.name }

func (p *scriptedProvider) Respond(_ context.Context, messages []Message, _ string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seen = append(p.seen, append([]Message(nil), messages...))
	if p.respondErr != nil {
		return "", p.respondErr
	}
	resp := p.responses[p.calls%len(p.responses)]
	p.calls++
	return resp, nil
}

func (p *scriptedProvider) RespondVote(_ context.Context, messages []Message, _ string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.voteSeen = append([]Message(nil), messages...)
	if p.voteErr != nil {
		return "", p.voteErr
	}
	return p.voteText, nil
}

// makeActors builds n scripted actors with the ground truth at humanIdx.
func makeActors(n, humanIdx int) ([]Actor, []*scriptedProvider) {
	actors := make([]Actor, n)
	providers := make([]*scriptedProvider, n)
	for i := 0; i < n; i++ {
		providers[i] = &scriptedProvider{
			name:      fmt.Sprintf("mock-%d", i+1),
			responses: []string{fmt.Sprintf("thoughts from seat %d", i+1)},
			voteText:  `{"reasoning": "gut feeling", "vote": "Actor 1"}`,
		}
		actors[i] = Actor{
			ID:       fmt.Sprintf("Actor %d", i+1),
			Provider: providers[i],
			Human:    i == humanIdx,
		}
	}
	return actors, providers
}

func TestEngineTranscriptLength(t *testing.T) {
	actors, _ := makeActors(3, 1)
	e, err := NewEngine("test-game", "test topic", actors, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 3 actors * 2 turns = 6 entries, placeholders included by definition.
	if len(result.Transcript) != 6 {
		t.Errorf("expected 6 transcript entries, got %d", len(result.Transcript))
	}
	if e.Phase() != Done {
		t.Errorf("expected Done phase, got %s", e.Phase())
	}
	if len(result.Votes) != 3 {
		t.Errorf("expected 3 votes, got %d", len(result.Votes))
	}
}

func TestEngineSetupValidation(t *testing.T) {
	two, _ := makeActors(2, 0)
	oneActor := two[:1]
	noHuman, _ := makeActors(3, -1)
	twoHumans, _ := makeActors(3, 0)
	twoHumans[1].Human = true
	dupIDs, _ := makeActors(3, 0)
	dupIDs[2].ID = dupIDs[0].ID

	cases := []struct {
		name   string
		actors []Actor
		turns  int
	}{
		{"single actor", oneActor, 2},
		{"no ground truth", noHuman, 2},
		{"two ground truths", twoHumans, 2},
		{"duplicate ids", dupIDs, 2},
		{"zero turns", two, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewEngine("g", "topic", tc.actors, tc.turns); err == nil {
				t.Error("expected setup validation error, got nil")
			}
		})
	}
}

func TestEngineSameRoundVisibility(t *testing.T) {
	actors, providers := makeActors(3, 2)
	e, err := NewEngine("g", "topic", actors, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := e.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Two framing messages precede every actor turn.
	const preamble = 2

	// Actor 2's first call sees exactly Actor 1's round-1 utterance.
	first := providers[1].seen[0]
	if len(first) != preamble+1 {
		t.Fatalf("expected %d visible messages, got %d", preamble+1, len(first))
	}
	if first[preamble].SpeakerID != "Actor 1" || first[preamble].Text != "thoughts from seat 1" {
		t.Errorf("actor 2 saw wrong message: %+v", first[preamble])
	}

	// Actor 1's second call sees the full first round, in emission order.
	second := providers[0].seen[1]
	if len(second) != preamble+3 {
		t.Fatalf("expected %d visible messages, got %d", preamble+3, len(second))
	}
	for i, want := range []string{"Actor 1", "Actor 2", "Actor 3"} {
		if second[preamble+i].SpeakerID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, second[preamble+i].SpeakerID)
		}
	}
}

func TestEngineErrorAndEmptyResponsesBecomePlaceholders(t *testing.T) {
	actors, providers := makeActors(3, 0)
	providers[1].respondErr = errors.New("connection reset")
	providers[2].responses = []string{"   \n  "}

	e, err := NewEngine("g", "topic", actors, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("provider failures must not abort the game: %v", err)
	}

	if len(result.Transcript) != 3 {
		t.Fatalf("expected 3 transcript entries, got %d", len(result.Transcript))
	}
	if result.Transcript[1].Text != NoResponsePlaceholder {
		t.Errorf("errored turn should be a placeholder, got %q", result.Transcript[1].Text)
	}
	if result.Transcript[2].Text != NoResponsePlaceholder {
		t.Errorf("whitespace turn should be a placeholder, got %q", result.Transcript[2].Text)
	}
	if len(result.Failures) != 2 {
		t.Errorf("expected 2 recorded failures, got %d", len(result.Failures))
	}
	if result.Outcome == "" {
		t.Error("game must still reach a scored outcome")
	}
}

func TestEngineStripsTrailingSpeakerLabel(t *testing.T) {
	actors, providers := makeActors(3, 1)
	providers[1].responses = []string{"Hi there.\nActor 3: "}

	e, err := NewEngine("g", "topic", actors, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Transcript[1].Text != "Hi there." {
		t.Errorf("expected trailing label stripped, got %q", result.Transcript[1].Text)
	}
}

func TestStripTrailingLabel(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Hi there.\nActor 3: ", "Hi there."},
		{"Hi there.\n\nActor 12:", "Hi there."},
		{"fine.\nActor 2:\nActor 3: ", "fine."},
		{"no label here", "no label here"},
		{"Actor 1 is sus", "Actor 1 is sus"},
		{"  padded  ", "padded"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := StripTrailingLabel(tc.in); got != tc.want {
			t.Errorf("StripTrailingLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEngineVoteIsolation(t *testing.T) {
	actors, providers := makeActors(3, 0)
	for i, p := range providers {
		p.voteText = fmt.Sprintf(`{"reasoning": "secret ballot %d", "vote": "Actor 1"}`, i+1)
	}

	e, err := NewEngine("g", "topic", actors, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := e.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, p := range providers {
		if len(p.voteSeen) == 0 {
			t.Fatalf("provider %d never received a vote request", i+1)
		}
		last := p.voteSeen[len(p.voteSeen)-1]
		if !strings.Contains(last.Text, "VOTING TIME") {
			t.Errorf("vote request must end with the vote instructions, got %q", last.Text)
		}
		for j := range providers {
			if i == j {
				continue
			}
			for _, m := range p.voteSeen {
				if strings.Contains(m.Text, fmt.Sprintf("secret ballot %d", j+1)) {
					t.Errorf("voter %d saw voter %d's ballot", i+1, j+1)
				}
			}
		}
	}
}

func TestEngineScoringHumanCaught(t *testing.T) {
	// Human at position 2; every voter names Actor 2.
	actors, providers := makeActors(3, 1)
	for _, p := range providers {
		p.voteText = `{"reasoning": "typos", "vote": "Actor 2"}`
	}

	e, err := NewEngine("g", "topic", actors, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Outcome != HumanLoses {
		t.Errorf("expected human_loses, got %s", result.Outcome)
	}
	// Only the two non-human voters count toward the tally.
	if result.VotesAgainstHuman != 2 {
		t.Errorf("expected 2 votes against the human, got %d", result.VotesAgainstHuman)
	}
	if result.HumanActorID != "Actor 2" {
		t.Errorf("expected human Actor 2, got %s", result.HumanActorID)
	}
}

func TestEngineScoringHumanHidden(t *testing.T) {
	// Human at position 2; nobody names Actor 2.
	actors, providers := makeActors(3, 1)
	providers[0].voteText = `{"reasoning": "x", "vote": "Actor 3"}`
	providers[1].voteText = `{"reasoning": "x", "vote": "Actor 1"}`
	providers[2].voteText = `{"reasoning": "x", "vote": "Actor 1"}`

	e, err := NewEngine("g", "topic", actors, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Outcome != HumanWins {
		t.Errorf("expected human_wins, got %s", result.Outcome)
	}
	if result.VotesAgainstHuman != 0 {
		t.Errorf("expected 0 votes against the human, got %d", result.VotesAgainstHuman)
	}
}

func TestEngineScoringSplitVoteIsWin(t *testing.T) {
	// One of two non-human voters finds the human: not a strict majority.
	actors, providers := makeActors(3, 1)
	providers[0].voteText = `{"reasoning": "x", "vote": "Actor 2"}`
	providers[1].voteText = `{"reasoning": "x", "vote": "Actor 3"}`
	providers[2].voteText = `{"reasoning": "x", "vote": "Actor 1"}`

	e, err := NewEngine("g", "topic", actors, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != HumanWins {
		t.Errorf("split vote should be a human win, got %s", result.Outcome)
	}
	if result.VotesAgainstHuman != 1 {
		t.Errorf("expected 1 vote against the human, got %d", result.VotesAgainstHuman)
	}
}

func TestEngineHumanSelfVoteDoesNotCount(t *testing.T) {
	// The human naming themselves must not flip the outcome.
	actors, providers := makeActors(3, 1)
	providers[0].voteText = `{"reasoning": "x", "vote": "Actor 3"}`
	providers[1].voteText = `{"reasoning": "double bluff", "vote": "Actor 2"}`
	providers[2].voteText = `{"reasoning": "x", "vote": "Actor 1"}`

	e, err := NewEngine("g", "topic", actors, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.VotesAgainstHuman != 0 {
		t.Errorf("self-vote counted in tally: %d", result.VotesAgainstHuman)
	}
	if result.Outcome != HumanWins {
		t.Errorf("expected human_wins, got %s", result.Outcome)
	}
}

func TestEngineUndeterminedWhenNoVoteParses(t *testing.T) {
	actors, providers := makeActors(3, 0)
	for _, p := range providers {
		p.voteText = "I would rather not say."
	}

	e, err := NewEngine("g", "topic", actors, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != Undetermined {
		t.Errorf("expected undetermined, got %s", result.Outcome)
	}
	for _, v := range result.Votes {
		if v.Parseable() {
			t.Errorf("expected all votes unparseable, got %+v", v)
		}
	}
}

func TestEngineVoteTransportErrorBecomesUnparseable(t *testing.T) {
	actors, providers := makeActors(3, 1)
	providers[0].voteErr = errors.New("timeout")
	providers[1].voteText = `{"reasoning": "x", "vote": "Actor 1"}`
	providers[2].voteText = `{"reasoning": "x", "vote": "Actor 2"}`

	e, err := NewEngine("g", "topic", actors, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("vote failures must not abort the game: %v", err)
	}

	if result.Votes[0].Parseable() {
		t.Errorf("errored vote should be unparseable, got %+v", result.Votes[0])
	}
	// One parseable non-human vote accuses the human: 2*1 > 1, caught.
	if result.Outcome != HumanLoses {
		t.Errorf("expected human_loses, got %s", result.Outcome)
	}
	if result.VotesAgainstHuman != 1 {
		t.Errorf("expected 1 vote against the human, got %d", result.VotesAgainstHuman)
	}
}

func TestEngineCancelledContext(t *testing.T) {
	actors, _ := makeActors(2, 0)
	e, err := NewEngine("g", "topic", actors, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Run(ctx); err == nil {
		t.Error("expected error from cancelled context")
	}
}
