package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-trainer/poker"
	"github.com/lox/holdem-trainer/sdk/analysis"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))
)

// EquityCmd runs a Monte Carlo equity estimate.
type EquityCmd struct {
	Hero       string `arg:"" help:"Hero hole cards, e.g. 'AhKh'"`
	Opponent   string `arg:"" help:"Opponent hand ('QsQd') or range ('QQ+,AKs')"`
	Board      string `short:"b" help:"Community cards (e.g., 'Td7s8h')"`
	Iterations int    `short:"i" help:"Number of Monte Carlo iterations (defaults to the config value)"`
	Workers    int    `short:"w" help:"Worker goroutines (defaults to the config value, then one per CPU)"`
	Categories bool   `short:"p" help:"Show the hero's hand category frequencies"`
}

func (c *EquityCmd) Run(env *Env) error {
	iterations := c.Iterations
	if iterations == 0 {
		iterations = env.Config.Equity.Iterations
	}
	logger := env.Logger("equity")
	sim := env.Simulator(logger, c.Workers)

	hero, err := analysis.ParseCombo(c.Hero)
	if err != nil {
		return fmt.Errorf("%w: %v", analysis.ErrInvalidHero, err)
	}
	board, err := poker.ParseHand(c.Board)
	if err != nil {
		return err
	}
	opponents, err := analysis.ParseOpponents(c.Opponent, poker.NewDeck().Remove(hero.Hand(), poker.NewHand(board...)))
	if err != nil {
		return err
	}

	ctx, stop := signalContext(logger)
	defer stop()

	res, err := sim.Simulate(ctx, hero, opponents, board, iterations)
	if err != nil {
		return err
	}

	out := env.Out
	fmt.Fprintln(out, headerStyle.Render("Equity"))
	fmt.Fprintf(out, "Hero:     %s (%s)\n", handStyle.Render(hero.String()), poker.CategorizeHoleCardsFromStrings(c.Hero))
	fmt.Fprintf(out, "Opponent: %s (%d combos)\n", handStyle.Render(c.Opponent), len(opponents))
	if len(board) > 0 {
		boardHand := poker.NewHand(board...)
		fmt.Fprintf(out, "Board:    %s (%s)\n", handStyle.Render(poker.FormatCards(board, " ")), analysis.AnalyzeTexture(boardHand))
		if draws := analysis.DetectDraws(hero.Hand(), boardHand); len(draws.Draws) > 0 {
			fmt.Fprintf(out, "Draws:    %s\n", draws)
		}
	}
	fmt.Fprintln(out)

	lo, hi := res.ConfidenceInterval()
	fmt.Fprintf(out, "Equity:   %s (95%% CI %.1f-%.1f%%)\n", winStyle.Render(fmt.Sprintf("%.1f%%", res.Equity)), lo, hi)
	fmt.Fprintf(out, "Win %s  Tie %s  Loss %s\n",
		winStyle.Render(fmt.Sprintf("%.1f%%", res.WinRate()*100)),
		tieStyle.Render(fmt.Sprintf("%.1f%%", res.TieRate()*100)),
		lossStyle.Render(fmt.Sprintf("%.1f%%", res.LossRate()*100)))
	fmt.Fprintf(out, "%d iterations in %s\n", res.Iterations, res.Duration)

	if c.Categories {
		fmt.Fprintln(out)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, cat := range poker.Categories {
			n := res.HeroCategories[cat]
			if n == 0 {
				continue
			}
			fmt.Fprintf(w, "%s\t%.2f%%\n", categoryStyle.Render(cat.String()), float64(n)/float64(res.Iterations)*100)
		}
		return w.Flush()
	}
	return nil
}

// EvalCmd evaluates a five to seven card hand.
type EvalCmd struct {
	Cards string `arg:"" help:"Five to seven cards, e.g. 'AhKhQhJhTh' or 'Ah Kh 7c 7d 2s'"`
}

func (c *EvalCmd) Run(env *Env) error {
	cards, err := poker.ParseHand(c.Cards)
	if err != nil {
		return err
	}
	if len(cards) < 5 || len(cards) > 7 {
		return fmt.Errorf("%w: need 5 to 7 cards, got %d", poker.ErrInvalidInput, len(cards))
	}

	v := poker.Evaluate(cards...)
	fmt.Fprintf(env.Out, "%s  %s\n", handStyle.Render(poker.FormatCards(cards, " ")), categoryStyle.Render(v.String()))
	return nil
}

// RangeCmd expands range shorthand.
type RangeCmd struct {
	Range  string `arg:"" help:"Range shorthand, e.g. '22+, A2s+, KTo-K8o'"`
	Dead   string `short:"d" help:"Cards already dealt, removed before counting combos"`
	Combos bool   `help:"List every live combo"`
}

func (c *RangeCmd) Run(env *Env) error {
	r, err := analysis.ParseRange(c.Range)
	if err != nil {
		return err
	}
	if len(r) == 0 {
		return fmt.Errorf("%w: empty range", poker.ErrInvalidInput)
	}
	dead, err := poker.ParseHand(c.Dead)
	if err != nil {
		return err
	}
	live := r.Combos(poker.NewDeck().Remove(poker.NewHand(dead...)))

	out := env.Out
	fmt.Fprintf(out, "%s\n", handStyle.Render(r.String()))
	fmt.Fprintf(out, "%d classes, %d combos", len(r), r.Size())
	if len(dead) > 0 {
		fmt.Fprintf(out, ", %d live", len(live))
	}
	fmt.Fprintln(out)

	if c.Combos {
		parts := make([]string, len(live))
		for i, combo := range live {
			parts[i] = combo.String()
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
	}
	return nil
}
