package cli

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/janpfeifer/isolationGo/internal/game"
	"github.com/janpfeifer/isolationGo/internal/match"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	"github.com/janpfeifer/isolationGo/internal/state"
	"github.com/janpfeifer/isolationGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBoard() *state.Board {
	return statetest.BuildBoard(statetest.Layout{
		Width: 4, Height: 4,
		Blocked: []Move{{2, 1}},
		First:   Move{Row: 2, Col: 0},
		Second:  Move{Row: 3, Col: 3},
		Next:    PlayerFirst,
	})
}

func TestRenderBoard(t *testing.T) {
	ui := NewWithIO(strings.NewReader(""), &bytes.Buffer{}, false, false)
	rendered := ui.RenderBoard(testBoard())
	lines := strings.Split(rendered, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "     0    1    2    3  ", lines[0])
	assert.Equal(t, " 0   .    ·    .    .  ", lines[1])
	assert.Equal(t, " 1   .    .    ·    .  ", lines[2])
	assert.Equal(t, " 2   1   ##    .    .  ", lines[3])
	assert.Equal(t, " 3   .    .    ·    2  ", lines[4])
}

func TestReadMove(t *testing.T) {
	out := &bytes.Buffer{}
	ui := NewWithIO(strings.NewReader("foo\n0,0\n1 2\n"), out, false, false)
	move, err := ui.ReadMove(testBoard())
	require.NoError(t, err)
	assert.Equal(t, Move{Row: 1, Col: 2}, move)
	assert.Contains(t, out.String(), `Failed to parse your input "foo"`)
	assert.Contains(t, out.String(), "Move (0, 0) is not legal")

	// Last line without a newline is still read.
	ui = NewWithIO(strings.NewReader("3,2"), out, false, false)
	move, err = ui.ReadMove(testBoard())
	require.NoError(t, err)
	assert.Equal(t, Move{Row: 3, Col: 2}, move)

	ui = NewWithIO(strings.NewReader("a\nb\nc\n1,2\n"), out, false, false)
	_, err = ui.ReadMove(testBoard())
	assert.Error(t, err)

	ui = NewWithIO(strings.NewReader(""), out, false, false)
	_, err = ui.ReadMove(testBoard())
	assert.Error(t, err)
}

func TestHuman(t *testing.T) {
	out := &bytes.Buffer{}
	ui := NewWithIO(strings.NewReader("1,2\n"), out, false, false)
	human := ui.Human()
	assert.True(t, human.Untimed())
	assert.Equal(t, Move{Row: 1, Col: 2}, human.Play(testBoard(), searchers.Unlimited))
	assert.Contains(t, out.String(), "Turn to play: First Player")

	// End of input: forfeits.
	assert.Equal(t, NoMove, human.Play(testBoard(), searchers.Unlimited))
}

func TestPrintWinner(t *testing.T) {
	out := &bytes.Buffer{}
	ui := NewWithIO(strings.NewReader(""), out, false, false)
	ui.PrintWinner(match.Outcome{Winner: PlayerSecond, Reason: match.ReasonNoMoves, History: make([]Move, 7)})
	assert.Contains(t, out.String(), "SECOND PLAYER WINS (no legal moves) after 7 moves")
	out.Reset()
	ui.PrintWinner(match.Outcome{Winner: PlayerInvalid, Reason: match.ReasonCancelled})
	assert.Contains(t, out.String(), "NO WINNER: match cancelled")
}
