package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatHistory(t *testing.T) {
	t.Parallel()
	table := newHand(t, [NumSeats]string{"AhAd", "KhKd"}, "2c7h9sJd3c")
	table = play(t, table, call, fold, fold, fold, fold, check, check, check, check, check, check, check)
	require.Equal(t, PhaseComplete, table.Phase)

	text := FormatHistory(table)
	assert.Contains(t, text, "=== HAND 1 ===")
	assert.Contains(t, text, "Blinds: 1/2")
	assert.Contains(t, text, "Seat 0: BB You [Ah Ad] 200 chips (hero)")
	assert.Contains(t, text, "Seat 1: UTG Bot 1 [Kh Kd] 200 chips")
	assert.Contains(t, text, "UTG calls 2")
	assert.Contains(t, text, "Board: [2c 7h 9s Jd 3c]")
	assert.Contains(t, text, "BB (seat 0) wins 5")
}

func TestActionsAreRecorded(t *testing.T) {
	t.Parallel()
	table := newHand(t, [NumSeats]string{"AhAd", "KhKd"}, "2c7h9sJd3c")
	table = play(t, table, RaiseTo(6), fold, fold, fold, fold, call, check, RaiseTo(4), fold)
	require.Equal(t, PhaseComplete, table.Phase)

	assert.Equal(t, []ActionRecord{
		{Seat: 1, Street: Preflop, Action: RaiseTo(6)},
		{Seat: 2, Street: Preflop, Action: fold},
		{Seat: 3, Street: Preflop, Action: fold},
		{Seat: 4, Street: Preflop, Action: fold},
		{Seat: 5, Street: Preflop, Action: fold},
		{Seat: 0, Street: Preflop, Action: call},
		{Seat: 0, Street: Flop, Action: check},
		{Seat: 1, Street: Flop, Action: RaiseTo(4)},
		{Seat: 0, Street: Flop, Action: fold},
	}, table.Actions)
}

func TestFileHistoryWriter(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "history")
	w := NewFileHistoryWriter(dir)

	table := newHand(t, [NumSeats]string{"AhAd", "KhKd"}, "2c7h9sJd3c", WithHandID(12))
	table = play(t, table, fold, fold, fold, fold, fold)
	require.NoError(t, w.WriteHistory(table))

	data, err := os.ReadFile(filepath.Join(dir, "hand_12.txt"))
	require.NoError(t, err)
	assert.Equal(t, FormatHistory(table), string(data))

	assert.NoError(t, NoOpHistoryWriter{}.WriteHistory(table))
}
