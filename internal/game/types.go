package game

import "context"

// Role classifies a transcript entry.
type Role string

const (
	// RoleSystem marks framing messages (instructions, topic announcement).
	RoleSystem Role = "system"
	// RoleActor marks an utterance produced by a participant.
	RoleActor Role = "actor"
)

// Message is a single utterance. Messages are never mutated after creation;
// their ordered sequence forms the shared transcript.
type Message struct {
	SpeakerID string `json:"speaker_id,omitempty"`
	Role      Role   `json:"role"`
	Text      string `json:"text"`
}

// Provider generates conversational turns and votes. Implementations wrap
// remote APIs or a real operator; identical inputs may legitimately yield
// different outputs. Defined here, on the consumer side, so the engine can be
// tested against in-package mocks.
type Provider interface {
	// Name is a stable display name for this backend instance.
	Name() string
	// Respond produces the next utterance as actorID, given the full
	// transcript visible so far.
	Respond(ctx context.Context, messages []Message, actorID string) (string, error)
	// RespondVote produces a vote against the same transcript. Most
	// providers delegate to Respond; backends whose voting cognition must
	// differ override the behavior.
	RespondVote(ctx context.Context, messages []Message, actorID string) (string, error)
}

// Actor is one participant slot in a game, backed by exactly one Provider.
type Actor struct {
	ID       string
	Provider Provider
	// Human flags the ground-truth target the voting round is scored
	// against. Exactly one actor per game carries it; it is never disclosed
	// to any provider.
	Human bool
}

// Phase is the engine's current state.
type Phase int

const (
	Setup Phase = iota
	Conversation
	Voting
	Scored
	Done
)

func (p Phase) String() string {
	switch p {
	case Setup:
		return "setup"
	case Conversation:
		return "conversation"
	case Voting:
		return "voting"
	case Scored:
		return "scored"
	case Done:
		return "done"
	}
	return "unknown"
}

// Vote is one actor's accusation after the conversation ends.
type Vote struct {
	VoterID   string `json:"voter_id"`
	AccusedID string `json:"accused_id,omitempty"`
	Reasoning string `json:"reasoning,omitempty"`
	Raw       string `json:"raw"`
}

// Parseable reports whether the vote resolved to a concrete accusation.
// Unparseable votes are recorded but excluded from the tally.
func (v Vote) Parseable() bool { return v.AccusedID != "" }

// Outcome is the scored result of a game.
type Outcome string

const (
	HumanWins    Outcome = "human_wins"
	HumanLoses   Outcome = "human_loses"
	Undetermined Outcome = "undetermined"
)

// TurnFailure records a provider call that errored or produced no content.
// Failures degrade to placeholder turns; they never abort the game.
type TurnFailure struct {
	Turn    int    `json:"turn"`
	ActorID string `json:"actor_id"`
	Err     string `json:"error"`
}

// Result is the immutable output of a finished game.
type Result struct {
	GameID            string        `json:"game_id"`
	Topic             string        `json:"topic"`
	Transcript        []Message     `json:"transcript"`
	Votes             []Vote        `json:"votes"`
	Failures          []TurnFailure `json:"failures,omitempty"`
	HumanActorID      string        `json:"human_actor_id"`
	VotesAgainstHuman int           `json:"votes_against_human"`
	Outcome           Outcome       `json:"outcome"`
}
