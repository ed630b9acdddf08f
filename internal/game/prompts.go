package game

import (
	"fmt"
	"strings"
)

// SystemSpeaker labels framing lines that should appear in the visible
// transcript (the topic announcement), as opposed to backend instructions.
const SystemSpeaker = "System"

func conversationSystemPrompt(topic string) string {
	return "You are playing a social deduction game in a group chat. " +
		"There are multiple participants, one of whom is human. " +
		"After several rounds of conversation, you will vote on who you think is the human. " +
		"The human wins beer if they win. " +
		"Your goal is to identify the human while not being mistaken for one yourself. " +
		"Act as humanlike as possible. You want beer fast; your responses must be concise. " +
		"Topic: " + topic
}

func openingMessage(topic string) string {
	return fmt.Sprintf("The topic is: %s. Share your thoughts.", topic)
}

func votePrompt(actorIDs []string) string {
	return fmt.Sprintf(
		"VOTING TIME. The participants were: %s. "+
			"One of them is human. Based on the conversation, vote for who you think is the HUMAN. "+
			"You MUST respond with ONLY this JSON format, nothing else:\n"+
			`{"reasoning": "brief analysis of why", "vote": "Actor N"}`,
		strings.Join(actorIDs, ", "),
	)
}
