package display

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-cli/internal/game"
	"github.com/lox/holdem-cli/internal/match"
)

// Prompter is a match.Agent that asks whoever is at the keyboard for each
// move. Every player shares it in hot-seat play.
type Prompter struct {
	in     io.Reader
	out    io.Writer
	styles styles
	logger *log.Logger
}

// NewPrompter creates a prompter reading from in and drawing on out
func NewPrompter(in io.Reader, out io.Writer, noColor bool, logger *log.Logger) *Prompter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Prompter{
		in:     in,
		out:    out,
		styles: newStyles(out, noColor),
		logger: logger.WithPrefix("prompt"),
	}
}

// Decide runs a prompt until the player enters a legal move or quits
func (p *Prompter) Decide(ctx context.Context, view match.TurnView) (match.Decision, error) {
	program := tea.NewProgram(newPromptModel(view, p.styles),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return match.Decision{}, ctxErr
		}
		return match.Decision{}, fmt.Errorf("running prompt: %w", err)
	}

	m := final.(promptModel)
	if m.quit {
		p.logger.Info("Player quit", "player", view.PlayerID)
		return match.Decision{}, match.ErrQuit
	}
	p.logger.Debug("Move entered", "player", view.PlayerID, "move", m.decision.Move, "amount", m.decision.Amount)
	return m.decision, nil
}

// ParseDecision turns typed input into a move that is legal for view. "quit"
// returns match.ErrQuit.
func ParseDecision(input string, view match.TurnView) (match.Decision, error) {
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, "quit") {
		return match.Decision{}, match.ErrQuit
	}

	move, amount, err := game.ParseMove(input)
	if err != nil {
		return match.Decision{}, err
	}
	if !view.CanPlay(move) {
		return match.Decision{}, fmt.Errorf("%w: can't %s now, choose from %s", game.ErrIllegalMove, move, movesHelp(view))
	}
	if move.TakesAmount() {
		if err := game.CheckAmount(amount, view.Minimum, view.MaxAction, view.Chips()); err != nil {
			return match.Decision{}, err
		}
	}
	return match.Decision{Move: move, Amount: amount}, nil
}

// movesHelp lists the legal moves, with the minimum for bets and raises
func movesHelp(view match.TurnView) string {
	parts := make([]string, len(view.Moves))
	for i, m := range view.Moves {
		switch {
		case m.TakesAmount():
			parts[i] = fmt.Sprintf("%s %d-%d", m, min(view.Minimum, view.Chips()), view.Chips())
		case m == game.Call:
			parts[i] = fmt.Sprintf("call %d", min(view.MaxAction, view.Chips())-view.Action)
		default:
			parts[i] = m.String()
		}
	}
	return strings.Join(parts, ", ")
}

type promptModel struct {
	view     match.TurnView
	styles   styles
	input    textinput.Model
	err      string
	decision match.Decision
	quit     bool
	done     bool
}

func newPromptModel(view match.TurnView, s styles) promptModel {
	ti := textinput.New()
	ti.Placeholder = "check, call, fold, bet 50, raise 100 or quit"
	ti.CharLimit = 40
	ti.Width = 50
	ti.Prompt = "> "
	ti.PromptStyle = s.prompt
	ti.Focus()

	return promptModel{view: view, styles: s, input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quit = true
			return m, tea.Quit
		case tea.KeyEnter:
			decision, err := ParseDecision(m.input.Value(), m.view)
			switch {
			case errors.Is(err, match.ErrQuit):
				m.quit = true
				return m, tea.Quit
			case err != nil:
				m.err = err.Error()
				m.input.SetValue("")
				return m, nil
			}
			m.decision = decision
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	// Clear the prompt on exit so the next player never sees these cards
	if m.done || m.quit {
		return ""
	}

	v := m.view
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n",
		m.styles.header.Render(fmt.Sprintf("Player %d to act", v.PlayerID)),
		m.styles.info.Render(fmt.Sprintf("stack %d, in front %d, pot %d", v.Stack, v.Action, potTotal(v))))
	fmt.Fprintf(&b, "Hole %s  Board %s\n", m.styles.cards(v.Hole), m.styles.cards(v.Board))
	fmt.Fprintf(&b, "%s\n", m.styles.actions.Render("Moves: "+movesHelp(v)))
	if m.err != "" {
		fmt.Fprintf(&b, "%s\n", m.styles.error.Render(m.err))
	}
	b.WriteString(m.input.View())
	return b.String()
}

func potTotal(v match.TurnView) int {
	total := v.Pending
	for _, p := range v.Pots {
		total += p.Amount
	}
	return total
}
