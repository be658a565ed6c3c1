package phh

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coder/quartz"

	"github.com/lox/holdem-trainer/internal/fileutil"
	"github.com/lox/holdem-trainer/internal/game"
)

// FileWriter writes one hand_<id>.phh file per finished hand. It satisfies
// game.HistoryWriter.
type FileWriter struct {
	directory string
	table     string
	clock     quartz.Clock
}

// NewFileWriter creates a writer rooted at directory. table is recorded in
// every hand; clock stamps them and defaults to the real clock when nil.
func NewFileWriter(directory, table string, clock quartz.Clock) *FileWriter {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &FileWriter{directory: directory, table: table, clock: clock}
}

// WriteHistory encodes t and writes it to <directory>/hand_<id>.phh.
func (w *FileWriter) WriteHistory(t *game.Table) error {
	hand, err := FromTable(t, w.table, w.clock.Now())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return err
	}
	if err := os.MkdirAll(w.directory, 0o755); err != nil {
		return fmt.Errorf("failed to create hand history directory: %w", err)
	}

	filename := filepath.Join(w.directory, fmt.Sprintf("hand_%d.phh", t.HandID))
	if err := fileutil.WriteFileAtomic(filename, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write hand history file: %w", err)
	}
	return nil
}
