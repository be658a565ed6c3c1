package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lox/holdem-trainer/internal/fileutil"
	"github.com/lox/holdem-trainer/poker"
)

// HistoryWriter stores a finished hand.
type HistoryWriter interface {
	WriteHistory(t *Table) error
}

// FileHistoryWriter writes one hand_<id>.txt file per hand into a directory.
type FileHistoryWriter struct {
	directory string
}

// NewFileHistoryWriter creates a writer rooted at directory. The directory is
// created on first write.
func NewFileHistoryWriter(directory string) *FileHistoryWriter {
	return &FileHistoryWriter{directory: directory}
}

// WriteHistory writes FormatHistory(t) to <directory>/hand_<id>.txt.
func (w *FileHistoryWriter) WriteHistory(t *Table) error {
	if err := os.MkdirAll(w.directory, 0o755); err != nil {
		return fmt.Errorf("failed to create hand history directory: %w", err)
	}

	filename := filepath.Join(w.directory, fmt.Sprintf("hand_%d.txt", t.HandID))
	if err := fileutil.WriteFileAtomic(filename, []byte(FormatHistory(t)), 0o644); err != nil {
		return fmt.Errorf("failed to write hand history file: %w", err)
	}
	return nil
}

// NoOpHistoryWriter discards every hand.
type NoOpHistoryWriter struct{}

func (NoOpHistoryWriter) WriteHistory(*Table) error { return nil }

// FormatHistory renders a hand as plain text: the seating, every hole card,
// the action log and, once complete, the result.
func FormatHistory(t *Table) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== HAND %d ===\n", t.HandID)
	fmt.Fprintf(&b, "Blinds: %d/%d\n", t.Rules.SmallBlind, t.Rules.BigBlind)
	fmt.Fprintf(&b, "Dealer: seat %d\n\n", t.Dealer)

	b.WriteString("SEATS:\n")
	for i := range t.Seats {
		s := &t.Seats[i]
		hero := ""
		if s.IsHero {
			hero = " (hero)"
		}
		fmt.Fprintf(&b, "Seat %d: %s %s [%s] %d chips%s\n",
			s.Index, s.Position, s.Name, poker.FormatCards(s.Hole, " "), s.Stack+s.Committed-payout(t, i), hero)
	}

	b.WriteString("\nACTION:\n")
	for _, line := range t.Log {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if r := t.Result; r != nil {
		b.WriteString("\nRESULT:\n")
		fmt.Fprintf(&b, "Board: [%s]\n", poker.FormatCards(t.Board, " "))
		fmt.Fprintf(&b, "Pot: %d\n", r.Pot)
		for _, seat := range r.Winners {
			fmt.Fprintf(&b, "%s (seat %d) wins %d\n", t.Seats[seat].Position, seat, r.Payouts[seat])
		}
	}
	return b.String()
}

func payout(t *Table, seat int) int {
	if t.Result == nil {
		return 0
	}
	return t.Result.Payouts[seat]
}
