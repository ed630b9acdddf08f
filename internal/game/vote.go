package game

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	codeBlockRe  = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")
	actorTokenRe = regexp.MustCompile(`Actor \d+`)
)

type rawVote struct {
	Vote      string `json:"vote"`
	Reasoning string `json:"reasoning"`
}

// ParseVote converts a provider's raw vote text into a structured accusation.
// Models frequently wrap their answer in prose or near-JSON, so parsing is a
// ladder: strict JSON first, then a bounded search for a single known actor
// token. Ambiguous votes come back with an empty AccusedID and are excluded
// from the tally rather than guessed.
func ParseVote(voterID, raw string, actorIDs []string) Vote {
	vote := Vote{VoterID: voterID, Raw: raw}

	if rv, ok := parseVoteJSON(raw); ok {
		if accused, ok := matchActorID(rv.Vote, actorIDs); ok {
			vote.AccusedID = accused
			vote.Reasoning = rv.Reasoning
			return vote
		}
	}

	if accused, ok := uniqueActorToken(raw, actorIDs); ok {
		vote.AccusedID = accused
	}
	return vote
}

// parseVoteJSON tries to extract and parse a vote object from model output.
func parseVoteJSON(raw string) (*rawVote, bool) {
	// Try direct parse first
	var rv rawVote
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &rv); err == nil && rv.Vote != "" {
		return &rv, true
	}

	// Try extracting from markdown code block
	if matches := codeBlockRe.FindStringSubmatch(raw); len(matches) > 1 {
		if err := json.Unmarshal([]byte(strings.TrimSpace(matches[1])), &rv); err == nil && rv.Vote != "" {
			return &rv, true
		}
	}

	// Try finding JSON object in text (first { to last })
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), &rv); err == nil && rv.Vote != "" {
			return &rv, true
		}
	}

	return nil, false
}

// matchActorID resolves a parsed vote value against the known actor IDs.
func matchActorID(value string, actorIDs []string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, id := range actorIDs {
		if strings.EqualFold(value, id) {
			return id, true
		}
	}
	// The vote field itself may carry prose around the identifier.
	return uniqueActorToken(value, actorIDs)
}

// uniqueActorToken accepts text containing exactly one distinct known actor
// identifier. Zero or several distinct identifiers is ambiguous.
func uniqueActorToken(text string, actorIDs []string) (string, bool) {
	known := make(map[string]bool, len(actorIDs))
	for _, id := range actorIDs {
		known[id] = true
	}

	var found string
	for _, tok := range actorTokenRe.FindAllString(text, -1) {
		if !known[tok] {
			continue
		}
		if found != "" && found != tok {
			return "", false
		}
		found = tok
	}
	return found, found != ""
}
