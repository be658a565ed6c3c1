package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/lox/holdem-trainer/internal/phh"
)

// HistoryCmd groups hand history utilities.
type HistoryCmd struct {
	Show HistoryShowCmd `cmd:"" help:"Print a PHH hand file"`
}

// HistoryShowCmd prints the players, actions and results of a PHH hand.
type HistoryShowCmd struct {
	File    string `arg:"" type:"existingfile" help:"Path to a hand_<id>.phh file"`
	Actions bool   `short:"a" default:"true" negatable:"" help:"Print the action list"`
}

func (c *HistoryShowCmd) Run(env *Env) error {
	f, err := os.Open(filepath.Clean(c.File))
	if err != nil {
		return err
	}
	defer f.Close()

	hand, err := phh.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", c.File, err)
	}

	out := env.Out
	title := "Hand " + hand.HandID
	if hand.Table != "" {
		title += " (" + hand.Table + ")"
	}
	fmt.Fprintln(out, headerStyle.Render(title))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Player\tName\tStack\tResult")
	for i := range hand.StartingStacks {
		name := ""
		if i < len(hand.Players) {
			name = hand.Players[i]
		}
		result := ""
		if i < len(hand.FinishingStacks) {
			result = fmt.Sprintf("%+d", hand.FinishingStacks[i]-hand.StartingStacks[i])
		}
		fmt.Fprintf(w, "p%d\t%s\t%d\t%s\n", i+1, name, hand.StartingStacks[i], result)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if c.Actions {
		fmt.Fprintln(out)
		fmt.Fprintln(out, strings.Join(hand.Actions, "\n"))
	}
	return nil
}
