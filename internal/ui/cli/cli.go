// Package cli implements a command-line UI for the game.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	. "github.com/janpfeifer/isolationGo/internal/game"
	"github.com/janpfeifer/isolationGo/internal/match"
	"github.com/janpfeifer/isolationGo/internal/players"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	"github.com/janpfeifer/isolationGo/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// CharsPerColumn is the width of each cell of the board.
const CharsPerColumn = 5

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len([]rune(ansiFilter.ReplaceAllString(s, "")))
}

// terminalWidth returns the width of the terminal, or 0 if the output is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func (ui *UI) printCentered(block string) {
	lines := strings.Split(block, "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := max((terminalWidth(ui.out)-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			_, _ = fmt.Fprintln(ui.out)
			continue
		}
		_, _ = fmt.Fprintf(ui.out, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

func centerString(s string, fit int) string {
	if len(s) >= fit {
		return s
	}
	marginLeft := (fit - len(s)) / 2
	marginRight := fit - len(s) - marginLeft
	return strings.Repeat(" ", marginLeft) + s + strings.Repeat(" ", marginRight)
}

// UI renders boards and reads the moves of human players.
type UI struct {
	color, clearScreen bool
	reader             *bufio.Reader
	out                io.Writer
}

const parsingErrorMsg = "failed to read move 3 times"

var (
	playerStyles = [NumPlayers]lipgloss.Style{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("1")),
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2")),
	}
	blockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Background(lipgloss.Color("236"))
	legalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	headerStyle  = lipgloss.NewStyle().Faint(true)
	winnerStyle  = lipgloss.NewStyle().
			Background(lipgloss.Color("13")).
			Foreground(lipgloss.Color("0")).
			Padding(1, 2)
)

// New creates a UI reading from stdin and writing to stdout.
func New(color bool, clearScreen bool) *UI {
	return NewWithIO(os.Stdin, os.Stdout, color, clearScreen)
}

// NewWithIO creates a UI reading human moves from in and printing to out.
func NewWithIO(in io.Reader, out io.Writer, color bool, clearScreen bool) *UI {
	return &UI{
		color:       color,
		clearScreen: clearScreen,
		reader:      bufio.NewReader(in),
		out:         out,
	}
}

func (ui *UI) render(style lipgloss.Style, s string) string {
	if !ui.color {
		return s
	}
	return style.Render(s)
}

// PlayerName returns the name of the player, colored if the UI uses colors.
func (ui *UI) PlayerName(player PlayerNum) string {
	name := player.String() + " Player"
	if player >= NumPlayers {
		return name
	}
	return ui.render(playerStyles[player], name)
}

// RenderBoard returns the board as a block of text: the players' pieces are marked "1" and "2",
// visited cells "##", and the legal moves of the player to move with "·".
func (ui *UI) RenderBoard(b *state.Board) string {
	width, height := b.Size()
	legal := b.LegalMoves(b.ActivePlayer())
	var sb strings.Builder
	sb.WriteString("   ")
	for col := range width {
		sb.WriteString(ui.render(headerStyle, centerString(fmt.Sprintf("%d", col), CharsPerColumn)))
	}
	sb.WriteString("\n")
	for row := range height {
		sb.WriteString(ui.render(headerStyle, fmt.Sprintf("%2d ", row)))
		for col := range width {
			cell := Move{Row: row, Col: col}
			sb.WriteString(ui.renderCell(b, cell, Contains(legal, cell)))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (ui *UI) renderCell(b *state.Board, cell Move, isLegal bool) string {
	for _, player := range []PlayerNum{PlayerFirst, PlayerSecond} {
		if location, placed := b.Location(player); placed && location == cell {
			return ui.render(playerStyles[player], centerString(fmt.Sprintf("%d", int(player)+1), CharsPerColumn))
		}
	}
	switch {
	case !b.IsBlank(cell):
		return ui.render(blockedStyle, centerString("##", CharsPerColumn))
	case isLegal:
		return ui.render(legalStyle, centerString("·", CharsPerColumn+1))
	default:
		return centerString(".", CharsPerColumn)
	}
}

// Print the board and whose turn it is.
func (ui *UI) Print(b *state.Board) {
	if ui.clearScreen {
		_, _ = fmt.Fprint(ui.out, "\033c")
	}
	_, _ = fmt.Fprintf(ui.out, "\nMove #%d\n\n", b.MoveNumber)
	ui.printCentered(ui.RenderBoard(b))
	_, _ = fmt.Fprintln(ui.out)
	if !b.IsFinished() {
		_, _ = fmt.Fprintf(ui.out, "\tTurn to play: %s\n", ui.PlayerName(b.ActivePlayer()))
	}
}

// PrintWinner prints the outcome of a match.
func (ui *UI) PrintWinner(outcome match.Outcome) {
	_, _ = fmt.Fprintln(ui.out)
	if outcome.Winner == PlayerInvalid {
		ui.printCentered(ui.render(winnerStyle, fmt.Sprintf("*** NO WINNER: match %s ***", outcome.Reason)))
	} else {
		ui.printCentered(ui.render(winnerStyle, fmt.Sprintf("*** %s PLAYER WINS (%s) after %d moves!! ***",
			strings.ToUpper(outcome.Winner.String()), outcome.Reason, len(outcome.History))))
	}
	_, _ = fmt.Fprintln(ui.out)
}

// ReadMove reads the move of the player to move in b, giving up to 3 attempts to type a legal move.
func (ui *UI) ReadMove(b *state.Board) (Move, error) {
	legal := b.LegalMoves(b.ActivePlayer())
	for numErrs := 0; numErrs < 3; numErrs++ {
		_, _ = fmt.Fprintf(ui.out, "    %s move (row, col) > ", ui.PlayerName(b.ActivePlayer()))
		text, err := ui.reader.ReadString('\n')
		if err != nil && (err != io.EOF || strings.TrimSpace(text) == "") {
			return NoMove, errors.Wrap(err, "failed to read move")
		}
		move, err := state.ParseMove(text)
		if err != nil {
			_, _ = fmt.Fprintf(ui.out, "    * Failed to parse your input %q, please try again.\n", strings.TrimSpace(text))
			continue
		}
		if !Contains(legal, move) {
			_, _ = fmt.Fprintf(ui.out, "    * Move %s is not legal, valid moves are %v.\n", move, legal)
			continue
		}
		return move, nil
	}
	return NoMove, errors.New(parsingErrorMsg)
}

// Human is a players.Player that reads its moves from the UI. It is not subject to time limits.
type Human struct {
	ui *UI
}

var (
	_ players.Player = (*Human)(nil)
	_ match.Untimed  = (*Human)(nil)
)

// Human returns a player reading its moves from the UI.
func (ui *UI) Human() *Human {
	return &Human{ui: ui}
}

// Play implements players.Player. It returns NoMove (forfeiting the match) if it fails to read a legal move.
func (h *Human) Play(s State, _ searchers.Clock) Move {
	b, ok := s.(*state.Board)
	if !ok {
		return NoMove
	}
	h.ui.Print(b)
	move, err := h.ui.ReadMove(b)
	if err != nil {
		_, _ = fmt.Fprintf(h.ui.out, "    * %v\n", err)
		return NoMove
	}
	return move
}

// String implements players.Player.
func (h *Human) String() string { return "human" }

// Finalize implements players.Player.
func (h *Human) Finalize() {}

// Untimed implements match.Untimed.
func (h *Human) Untimed() bool { return true }
