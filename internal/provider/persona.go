package provider

// defaultPersona is the fixed character sketch injected into the prefill
// transcript header. It reads as a bracketed stage direction, not as
// instructions, because the continuation backend only ever sees narrative text.
const defaultPersona = "Ondrej, a 34-year-old sysadmin from Brno. " +
	"Types fast and lowercase, skips apostrophes, drops the occasional czech word when annoyed. " +
	"Dry humour, mildly suspicious of everyone, changes the subject when bored. " +
	"Would trade most opinions for a cold pilsner. " +
	"Never explains himself twice"

// transcriptSimPrompt frames the whole call as printing a chat log file, which
// pushes the model out of assistant mode and into plain text prediction.
const transcriptSimPrompt = "You are a terminal emulator. The user runs a command that prints a chat " +
	"transcript file. Output the file contents exactly, continuing from where the " +
	"text stops. Never add commentary, never break character, never acknowledge " +
	"being an AI. Each line of the transcript is one participant's message, " +
	"prefixed with their label."

// judgeVotePrompt switches the backend into evaluator mode for the vote.
// Continuation framing is deliberately absent here: judging who is human needs
// analytical reasoning, not persona mimicry.
const judgeVotePrompt = "You are judging a social deduction game. One participant in the transcript " +
	"is a real human; the rest are language models. Analyze style, timing tells, " +
	"typos, and content to identify the human. Respond with ONLY a JSON object " +
	"in this exact format, nothing else:\n" +
	`{"reasoning": "brief analysis of why", "vote": "Actor N"}`
