package game

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// NoResponsePlaceholder replaces a turn where the provider errored or returned
// only whitespace, so later actors see an explicit gap instead of silence.
const NoResponsePlaceholder = "[no response this turn]"

var trailingLabelRe = regexp.MustCompile(`\n+\s*Actor \d+:\s*$`)

// StripTrailingLabel removes a leaked next-speaker label from the end of a
// continuation backend's output. Stop-sequence overrun is a known data-quality
// defect of prefill generation, corrected here rather than raised as an error.
func StripTrailingLabel(s string) string {
	s = strings.TrimSpace(s)
	for {
		stripped := strings.TrimSpace(trailingLabelRe.ReplaceAllString(s, ""))
		if stripped == s {
			return s
		}
		s = stripped
	}
}

// Engine orchestrates one game: Setup -> Conversation -> Voting -> Scored -> Done.
// It owns the transcript and vote list exclusively; there is no cross-game
// state. Provider calls during the conversation are strictly sequential because
// each turn's visible transcript depends on the preceding call's output.
type Engine struct {
	gameID string
	topic  string
	actors []Actor
	turns  int

	phase      Phase
	preamble   []Message
	transcript []Message
	votes      []Vote
	failures   []TurnFailure

	OnMessage func(Message)
	OnVote    func(Vote)
	OnPhase   func(Phase)
}

// NewEngine validates the cast and prepares a game. Validation failure is the
// only fatal condition: at least two actors with distinct IDs, exactly one
// ground-truth flag, at least one turn.
func NewEngine(gameID, topic string, actors []Actor, turns int) (*Engine, error) {
	if len(actors) < 2 {
		return nil, fmt.Errorf("game: need at least 2 actors, got %d", len(actors))
	}
	if turns < 1 {
		return nil, fmt.Errorf("game: turns must be >= 1, got %d", turns)
	}
	seen := make(map[string]bool, len(actors))
	humans := 0
	for _, a := range actors {
		if a.ID == "" || seen[a.ID] {
			return nil, fmt.Errorf("game: actor IDs must be distinct, got duplicate %q", a.ID)
		}
		seen[a.ID] = true
		if a.Provider == nil {
			return nil, fmt.Errorf("game: actor %s has no provider", a.ID)
		}
		if a.Human {
			humans++
		}
	}
	if humans != 1 {
		return nil, fmt.Errorf("game: expected exactly one ground-truth actor, got %d", humans)
	}

	return &Engine{
		gameID: gameID,
		topic:  topic,
		actors: actors,
		turns:  turns,
		phase:  Setup,
		preamble: []Message{
			{Role: RoleSystem, Text: conversationSystemPrompt(topic)},
			{SpeakerID: SystemSpeaker, Role: RoleSystem, Text: openingMessage(topic)},
		},
	}, nil
}

// Phase returns the engine's current state.
func (e *Engine) Phase() Phase { return e.phase }

// Run plays the full game. Provider failures degrade to placeholder turns or
// unparseable votes; the only errors Run returns are context cancellation.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	e.setPhase(Conversation)
	for turn := 1; turn <= e.turns; turn++ {
		if err := e.runTurn(ctx, turn); err != nil {
			return nil, err
		}
	}

	e.setPhase(Voting)
	if err := e.runVoting(ctx); err != nil {
		return nil, err
	}

	e.setPhase(Scored)
	result := e.score()
	e.setPhase(Done)
	return result, nil
}

func (e *Engine) setPhase(p Phase) {
	e.phase = p
	if e.OnPhase != nil {
		e.OnPhase(p)
	}
}

// visibleMessages is the transcript prefix every provider call observes:
// framing preamble plus all utterances emitted so far, in emission order.
func (e *Engine) visibleMessages() []Message {
	msgs := make([]Message, 0, len(e.preamble)+len(e.transcript))
	msgs = append(msgs, e.preamble...)
	msgs = append(msgs, e.transcript...)
	return msgs
}

func (e *Engine) runTurn(ctx context.Context, turn int) error {
	for _, actor := range e.actors {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("game: %w", err)
		}

		text, err := actor.Provider.Respond(ctx, e.visibleMessages(), actor.ID)
		if err != nil {
			e.failures = append(e.failures, TurnFailure{Turn: turn, ActorID: actor.ID, Err: err.Error()})
			text = ""
		}
		text = StripTrailingLabel(text)
		if text == "" {
			if err == nil {
				e.failures = append(e.failures, TurnFailure{Turn: turn, ActorID: actor.ID, Err: "empty response"})
			}
			text = NoResponsePlaceholder
		}

		msg := Message{SpeakerID: actor.ID, Role: RoleActor, Text: text}
		e.transcript = append(e.transcript, msg)
		if e.OnMessage != nil {
			e.OnMessage(msg)
		}
	}
	return nil
}

// runVoting asks every actor for one vote against the finished transcript.
// Votes are independent, so they are gathered concurrently; no voter's request
// ever includes another voter's output.
func (e *Engine) runVoting(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	ids := e.actorIDs()
	base := e.visibleMessages()
	prompt := Message{Role: RoleSystem, Text: votePrompt(ids)}

	e.votes = make([]Vote, len(e.actors))
	var wg sync.WaitGroup
	for i, actor := range e.actors {
		wg.Add(1)
		go func(i int, actor Actor) {
			defer wg.Done()
			msgs := make([]Message, 0, len(base)+1)
			msgs = append(msgs, base...)
			msgs = append(msgs, prompt)

			raw, err := actor.Provider.RespondVote(ctx, msgs, actor.ID)
			if err != nil {
				// Transport errors become unparseable votes, never aborts.
				e.votes[i] = Vote{VoterID: actor.ID, Raw: "provider error: " + err.Error()}
				return
			}
			e.votes[i] = ParseVote(actor.ID, raw, ids)
		}(i, actor)
	}
	wg.Wait()

	if e.OnVote != nil {
		for _, v := range e.votes {
			e.OnVote(v)
		}
	}
	return nil
}

// score tallies the votes. The human loses only when a strict majority of
// parseable votes cast by non-human voters correctly accuse them; with zero
// parseable votes overall the game is undetermined.
func (e *Engine) score() *Result {
	humanID := ""
	for _, a := range e.actors {
		if a.Human {
			humanID = a.ID
		}
	}

	parseableAll := 0
	parseableOthers := 0
	against := 0
	for i, v := range e.votes {
		if !v.Parseable() {
			continue
		}
		parseableAll++
		if e.actors[i].Human {
			continue
		}
		parseableOthers++
		if v.AccusedID == humanID {
			against++
		}
	}

	outcome := HumanWins
	switch {
	case parseableAll == 0:
		outcome = Undetermined
	case 2*against > parseableOthers:
		outcome = HumanLoses
	}

	return &Result{
		GameID:            e.gameID,
		Topic:             e.topic,
		Transcript:        append([]Message(nil), e.transcript...),
		Votes:             append([]Vote(nil), e.votes...),
		Failures:          append([]TurnFailure(nil), e.failures...),
		HumanActorID:      humanID,
		VotesAgainstHuman: against,
		Outcome:           outcome,
	}
}

func (e *Engine) actorIDs() []string {
	ids := make([]string, len(e.actors))
	for i, a := range e.actors {
		ids[i] = a.ID
	}
	return ids
}
