package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/lorenzotomasdiez/imitation-game/internal/game"
)

var (
	speakerStyle = lipgloss.NewStyle().Bold(true)
	phaseStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	voterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	winStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	loseStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

// PrintMessage prints one transcript entry to stdout.
func PrintMessage(m game.Message) {
	fmt.Printf("%s: %s\n\n", speakerStyle.Render(m.SpeakerID), m.Text)
}

// PrintPhase prints a phase transition banner.
func PrintPhase(p game.Phase) {
	fmt.Printf("\n%s\n\n", phaseStyle.Render("=== "+p.String()+" ==="))
}

// PrintVote prints one vote. Unparseable votes show a truncated raw excerpt.
func PrintVote(v game.Vote) {
	if !v.Parseable() {
		fmt.Printf("%s: %s %s\n", voterStyle.Render(v.VoterID), "(unparseable vote)", dimStyle.Render(excerpt(v.Raw, 80)))
		return
	}
	fmt.Printf("%s votes for %s\n", voterStyle.Render(v.VoterID), speakerStyle.Render(v.AccusedID))
	if v.Reasoning != "" {
		fmt.Printf("  %s\n", dimStyle.Render(excerpt(v.Reasoning, 100)))
	}
}

// PrintResult prints the scored outcome.
func PrintResult(r *game.Result) {
	fmt.Printf("\n%s\n", phaseStyle.Render("=== RESULT ==="))
	fmt.Printf("Human was: %s\n", speakerStyle.Render(r.HumanActorID))
	fmt.Printf("Votes against the human: %d\n", r.VotesAgainstHuman)
	switch r.Outcome {
	case game.HumanWins:
		fmt.Println(winStyle.Render("Human WINS! Free beer."))
	case game.HumanLoses:
		fmt.Println(loseStyle.Render("Human was CAUGHT! AIs win."))
	default:
		fmt.Println(dimStyle.Render("Undetermined: no vote could be parsed."))
	}
}

func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
