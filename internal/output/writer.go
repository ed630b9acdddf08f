package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/lorenzotomasdiez/imitation-game/internal/game"
)

const maxSlugLen = 50

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug turns a topic into a filesystem-friendly slug, at most 50 chars.
func GenerateSlug(topic string) string {
	slug := nonAlnumRe.ReplaceAllString(strings.ToLower(topic), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLen {
		slug = strings.Trim(slug[:maxSlugLen], "-")
	}
	return slug
}

// CreateOutputDir creates base/<slug>-<timestamp> and returns its path.
func CreateOutputDir(base, slug string) (string, error) {
	dir := filepath.Join(base, fmt.Sprintf("%s-%s", slug, time.Now().Format("20060102-150405")))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("output: %w", err)
	}
	return dir, nil
}

// Writer accumulates a game log and writes run artifacts into one directory.
type Writer struct {
	dir      string
	logLines []string
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Log appends a line to the in-memory game log.
func (w *Writer) Log(line string) {
	w.logLines = append(w.logLines, line)
}

// WriteJSON writes the full result as transcript.json.
func (w *Writer) WriteJSON(r *game.Result) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return w.writeFile("transcript.json", data)
}

// WriteMarkdown writes a human-readable report.md.
func (w *Writer) WriteMarkdown(r *game.Result) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Imitation Game: %s\n\n", r.Topic)
	fmt.Fprintf(&sb, "Game `%s`, outcome: **%s**\n\n", r.GameID, r.Outcome)

	sb.WriteString("## Conversation\n\n")
	for _, m := range r.Transcript {
		fmt.Fprintf(&sb, "**%s**: %s\n\n", m.SpeakerID, m.Text)
	}

	sb.WriteString("## Votes\n\n")
	for _, v := range r.Votes {
		if v.Parseable() {
			fmt.Fprintf(&sb, "- %s accused %s", v.VoterID, v.AccusedID)
			if v.Reasoning != "" {
				fmt.Fprintf(&sb, ": %s", v.Reasoning)
			}
			sb.WriteString("\n")
		} else {
			fmt.Fprintf(&sb, "- %s: vote could not be parsed\n", v.VoterID)
		}
	}

	fmt.Fprintf(&sb, "\n## Result\n\nThe human was %s, accused by %d voter(s).\n",
		r.HumanActorID, r.VotesAgainstHuman)
	return w.writeFile("report.md", []byte(sb.String()))
}

// WriteLog flushes the accumulated log lines to game.log.
func (w *Writer) WriteLog() error {
	return w.writeFile("game.log", []byte(strings.Join(w.logLines, "\n")+"\n"))
}

func (w *Writer) writeFile(name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(w.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}
