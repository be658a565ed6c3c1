// Package tui is the interactive practice table.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-trainer/internal/game"
	"github.com/lox/holdem-trainer/internal/trainer"
	"github.com/lox/holdem-trainer/poker"
	"github.com/lox/holdem-trainer/sdk/analysis"
)

const (
	logPane = iota
	inputPane
)

// Model is the bubbletea model for a practice session.
type Model struct {
	ctx     context.Context
	session *trainer.Session
	logger  *log.Logger

	logViewport viewport.Model
	actionInput textinput.Model

	status      string
	statusError bool
	focusedPane int
	quitting    bool

	width       int
	height      int
	initialized bool
}

// New creates a model over an existing session. A nil logger discards output.
func New(ctx context.Context, session *trainer.Session, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	vp := viewport.New(10, 5)

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		ctx:         ctx,
		session:     session,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		actionInput: ti,
		focusedPane: inputPane,
	}
	m.refreshLog()
	return m
}

// Run starts the full screen program and blocks until the user quits.
func Run(ctx context.Context, session *trainer.Session, logger *log.Logger) error {
	p := tea.NewProgram(New(ctx, session, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("resized", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == logPane {
				m.focusedPane = inputPane
				m.actionInput.Focus()
			} else {
				m.focusedPane = logPane
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == inputPane {
				input := strings.TrimSpace(m.actionInput.Value())
				m.actionInput.SetValue("")
				if cmd := m.submit(input); cmd != nil {
					return m, cmd
				}
			}
		case "up", "k":
			if m.focusedPane == logPane {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == logPane {
				m.logViewport.ScrollDown(1)
			}
		case "home", "g":
			if m.focusedPane == logPane {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == logPane {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == inputPane {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit runs one line of input against the session. Enter on an empty line
// deals the next hand once the current one is over.
func (m *Model) submit(input string) tea.Cmd {
	switch strings.ToLower(input) {
	case "quit", "exit":
		m.quitting = true
		return tea.Quit
	case "":
		if m.session.Table().Phase != game.PhaseComplete {
			return nil
		}
		input = "next"
	}

	reply, err := m.session.Execute(m.ctx, input)
	if err != nil {
		m.logger.Debug("command rejected", "input", input, "error", err)
		m.status, m.statusError = err.Error(), true
	} else {
		m.status, m.statusError = reply, false
	}
	if input != "log" {
		m.refreshLog()
	}
	return nil
}

func (m *Model) refreshLog() {
	m.logViewport.SetContent(strings.Join(m.session.Table().Log, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderColor(inputPane)).
		Width(max(1, m.width-2)).
		Height(max(1, actionHeight)).
		Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(30, lipgloss.Width(sidebarContent))
	paneHeight := max(1, m.height-actionHeight-4)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	m.logViewport.Width = max(1, m.width-sidebarWidth-4)
	m.logViewport.Height = paneHeight
	if !m.initialized && m.logViewport.Width > 1 && m.logViewport.Height > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPaneView := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderColor(logPane)).
		Width(m.logViewport.Width).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPaneView, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) borderColor(pane int) lipgloss.Color {
	if m.focusedPane == pane {
		return lipgloss.Color("#04B575")
	}
	return lipgloss.Color("#626262")
}

// renderSidebarPane shows the table: pot, board and every seat.
func (m *Model) renderSidebarPane() string {
	t := m.session.Table()
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(fmt.Sprintf(" Hand #%d ", t.HandID)))
	b.WriteString("\n\n")
	b.WriteString(WarningStyle.Render(fmt.Sprintf("Pot: %d", t.Pot)))
	if t.CurrentBet > 0 {
		b.WriteString(" | ")
		b.WriteString(WarningStyle.Render(fmt.Sprintf("Bet: %d", t.CurrentBet)))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", InfoStyle.Render(t.Street.String()+":"), formatCards(t.Board))
	if line := handNotes(t); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i := range t.Seats {
		s := &t.Seats[i]
		marker := "  "
		if t.ToAct == i {
			marker = "> "
		}
		line := fmt.Sprintf("%s%-3s %-6s %4d", marker, s.Position, s.Name, s.Stack)
		if s.Bet > 0 {
			line += fmt.Sprintf(" (%d)", s.Bet)
		}
		switch {
		case !s.InHand:
			line = FoldedStyle.Render(line)
		case s.IsHero:
			line = HeroStyle.Render(line)
		}
		b.WriteString(line)
		if s.IsHero || (t.Result != nil && !t.Result.Uncontested && s.InHand) {
			b.WriteString(" " + formatCards(s.Hole))
		}
		b.WriteString("\n")
	}

	if stats := m.session.Stats(); stats.Hands > 0 {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(fmt.Sprintf("%d hands, %+.1f BB", stats.Hands, stats.SumBB)))
		b.WriteString("\n")
	}
	return b.String()
}

// handNotes describes the hero's hand: the preflop bucket before the flop,
// then the board texture and any draws.
func handNotes(t *game.Table) string {
	var hero *game.Seat
	for i := range t.Seats {
		if t.Seats[i].IsHero {
			hero = &t.Seats[i]
		}
	}

	if len(t.Board) < 3 {
		if hero == nil || len(hero.Hole) != 2 {
			return ""
		}
		return HandInfoStyle.Render(fmt.Sprintf("%s hole cards", poker.CategorizeHoleCards(hero.Hole[0], hero.Hole[1])))
	}

	board := poker.NewHand(t.Board...)
	line := TextureStyle.Render(analysis.AnalyzeTexture(board).String() + " board")
	if hero != nil && hero.InHand {
		if draws := analysis.DetectDraws(poker.NewHand(hero.Hole...), board); len(draws.Draws) > 0 {
			line += ", " + DrawStyle.Render(draws.String())
		}
	}
	return line
}

// renderActionPane shows the hero's options, the last reply and the input.
func (m *Model) renderActionPane() string {
	t := m.session.Table()
	var b strings.Builder

	switch {
	case m.session.HeroToAct():
		hero := t.Hero()
		b.WriteString(HandInfoStyle.Render(fmt.Sprintf("Hand: %s  Pot: %d", formatCards(hero.Hole), t.Pot)))
		b.WriteString("\n")
		b.WriteString(renderLegalActions(game.LegalActions(t, hero.Index)))
		m.actionInput.Placeholder = "fold, check, call, bet N, raise N, undo, equity QQ+"
	case t.Phase == game.PhaseComplete:
		b.WriteString(HandInfoStyle.Render("Hand complete"))
		m.actionInput.Placeholder = "Enter for the next hand, undo, quit"
	default:
		b.WriteString(HandInfoStyle.Render("Waiting..."))
	}
	b.WriteString("\n")

	if m.status != "" {
		style := SuccessStyle
		if m.statusError {
			style = ErrorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.actionInput.View())
	b.WriteString("\n")

	help := "Tab to scroll log • Enter to submit • Ctrl+C to quit"
	if m.focusedPane == logPane {
		help = "Log focused: ↑↓ scroll, Home/End, Tab to input"
	}
	b.WriteString(InfoStyle.Render(help))
	return b.String()
}

func renderLegalActions(l game.Legal) string {
	var actions []string
	if l.Fold {
		actions = append(actions, ErrorStyle.Render("[fold]"))
	}
	if l.Check {
		actions = append(actions, SuccessStyle.Render("[check]"))
	}
	if l.Call {
		actions = append(actions, SuccessStyle.Render(fmt.Sprintf("[call %d]", l.CallAmount)))
	}
	if l.Raise {
		actions = append(actions, WarningStyle.Render(fmt.Sprintf("[raise %d-%d]", l.MinRaiseTo, l.MaxRaiseTo)))
	}
	return ActionsStyle.Render("Actions: " + strings.Join(actions, " "))
}

// formatCards formats cards with colors
func formatCards(cards []poker.Card) string {
	if len(cards) == 0 {
		return "[]"
	}

	formatted := make([]string, len(cards))
	for i, c := range cards {
		if c.Suit() == poker.Hearts || c.Suit() == poker.Diamonds {
			formatted[i] = RedCardStyle.Render(c.Symbol())
		} else {
			formatted[i] = BlackCardStyle.Render(c.Symbol())
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}
