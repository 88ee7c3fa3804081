// Package state implements the game of Isolation: two players move a single piece each, like a
// chess knight, over a rectangular board; every visited cell is blocked for the rest of the match,
// and the first player that can't move loses.
//
// Board implements game.Board (and hence game.State) for the searchers.
package state

import (
	"slices"
	"strconv"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/isolationGo/internal/game"
	"github.com/pkg/errors"
)

const (
	// DefaultWidth and DefaultHeight of the board.
	DefaultWidth  = 7
	DefaultHeight = 7
)

// knightDirections in the order legal moves are enumerated.
var knightDirections = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

// Board is a compact representation of the Isolation game state. It's compact to allow cheap
// search on the space, by creating clones of it.
//
// From the point of view of the searchers it is an immutable value: Forecast returns a new Board.
// Apply is the only mutating method, used when building positions or running a match.
type Board struct {
	width, height int

	// blocked cells, indexed by row*width+col.
	blocked []bool

	// locations of each player's piece, NoMove before the first move.
	locations [game.NumPlayers]game.Move

	NextPlayer game.PlayerNum

	// MoveNumber starts at 1 and is incremented after every ply.
	MoveNumber int
}

// Assert Board implements game.Board.
var _ game.Board = (*Board)(nil)

// NewBoard creates an empty board of the given size, with game.PlayerFirst to move.
func NewBoard(width, height int) *Board {
	if width <= 0 || height <= 0 {
		exceptions.Panicf("invalid board size %dx%d", width, height)
	}
	return &Board{
		width:      width,
		height:     height,
		blocked:    make([]bool, width*height),
		locations:  [game.NumPlayers]game.Move{game.NoMove, game.NoMove},
		NextPlayer: game.PlayerFirst,
		MoveNumber: 1,
	}
}

// Clone makes a deep copy of the board.
func (b *Board) Clone() *Board {
	newB := &Board{}
	*newB = *b
	newB.blocked = slices.Clone(b.blocked)
	return newB
}

// Size implements game.Board.
func (b *Board) Size() (width, height int) {
	return b.width, b.height
}

// Location implements game.Board.
func (b *Board) Location(player game.PlayerNum) (location game.Move, ok bool) {
	location = b.locations[player]
	return location, !location.IsNoMove()
}

// Inside returns whether the move is within the board limits.
func (b *Board) Inside(m game.Move) bool {
	return m.Row >= 0 && m.Row < b.height && m.Col >= 0 && m.Col < b.width
}

// IsBlank returns whether the cell is inside the board and was never visited.
func (b *Board) IsBlank(m game.Move) bool {
	return b.Inside(m) && !b.blocked[m.Row*b.width+m.Col]
}

// BlankSpaces implements game.Board. Cells are listed column by column.
func (b *Board) BlankSpaces() []game.Move {
	blanks := make([]game.Move, 0, len(b.blocked))
	for col := range b.width {
		for row := range b.height {
			if !b.blocked[row*b.width+col] {
				blanks = append(blanks, game.Move{Row: row, Col: col})
			}
		}
	}
	return blanks
}

// OccupiedRate is the fraction of the cells already visited.
func (b *Board) OccupiedRate() float64 {
	return 1 - float64(len(b.BlankSpaces()))/float64(b.width*b.height)
}

// LegalMoves implements game.State.
//
// A player that hasn't moved yet can go to any blank cell. Afterwards, it moves like a chess knight
// to blank cells only.
func (b *Board) LegalMoves(player game.PlayerNum) []game.Move {
	from, placed := b.Location(player)
	if !placed {
		return b.BlankSpaces()
	}
	var moves []game.Move
	for _, dir := range knightDirections {
		to := game.Move{Row: from.Row + dir[0], Col: from.Col + dir[1]}
		if b.IsBlank(to) {
			moves = append(moves, to)
		}
	}
	return moves
}

// HasLegalMoves is a cheaper version of len(b.LegalMoves(player)) > 0.
func (b *Board) HasLegalMoves(player game.PlayerNum) bool {
	from, placed := b.Location(player)
	if !placed {
		return slices.Contains(b.blocked, false)
	}
	for _, dir := range knightDirections {
		if b.IsBlank(game.Move{Row: from.Row + dir[0], Col: from.Col + dir[1]}) {
			return true
		}
	}
	return false
}

// IsLegal returns whether the move is legal for the player to move.
func (b *Board) IsLegal(m game.Move) bool {
	return game.Contains(b.LegalMoves(b.NextPlayer), m)
}

// Apply the move for b.NextPlayer, in place. It returns an error if the move is not legal.
func (b *Board) Apply(m game.Move) error {
	if !b.IsLegal(m) {
		return errors.Errorf("move %s is not legal for player %s in move #%d", m, b.NextPlayer, b.MoveNumber)
	}
	b.blocked[m.Row*b.width+m.Col] = true
	b.locations[b.NextPlayer] = m
	b.NextPlayer = b.NextPlayer.Opponent()
	b.MoveNumber++
	return nil
}

// Block marks a cell as visited, without moving any piece. Used to set up positions.
func (b *Board) Block(cell game.Move) {
	if !b.Inside(cell) {
		exceptions.Panicf("Board.Block(%s): cell outside of %dx%d board", cell, b.width, b.height)
	}
	b.blocked[cell.Row*b.width+cell.Col] = true
}

// Place player's piece at the given blank cell, without changing the player to move or the move
// number. Used to set up positions.
func (b *Board) Place(player game.PlayerNum, cell game.Move) {
	if !b.IsBlank(cell) {
		exceptions.Panicf("Board.Place(%s, %s): cell is not blank", player, cell)
	}
	b.Block(cell)
	b.locations[player] = cell
}

// Act returns a new board with the move applied. It panics if the move is not legal.
func (b *Board) Act(m game.Move) *Board {
	newB := b.Clone()
	if err := newB.Apply(m); err != nil {
		exceptions.Panicf("Board.Act(%s): %v", m, err)
	}
	return newB
}

// Forecast implements game.State.
func (b *Board) Forecast(m game.Move) game.State {
	return b.Act(m)
}

// Opponent implements game.State.
func (b *Board) Opponent(player game.PlayerNum) game.PlayerNum {
	return player.Opponent()
}

// ActivePlayer implements game.State.
func (b *Board) ActivePlayer() game.PlayerNum {
	return b.NextPlayer
}

// IsLoser implements game.State: the player is to move and has no legal moves.
func (b *Board) IsLoser(player game.PlayerNum) bool {
	return player == b.NextPlayer && !b.HasLegalMoves(player)
}

// IsWinner implements game.State: the opponent is to move and has no legal moves.
func (b *Board) IsWinner(player game.PlayerNum) bool {
	return player != b.NextPlayer && !b.HasLegalMoves(b.NextPlayer)
}

// IsFinished returns whether the player to move has no legal moves.
func (b *Board) IsFinished() bool {
	return !b.HasLegalMoves(b.NextPlayer)
}

// Winner returns the winner of a finished match, or game.PlayerInvalid if the match is not finished.
func (b *Board) Winner() game.PlayerNum {
	if !b.IsFinished() {
		return game.PlayerInvalid
	}
	return b.NextPlayer.Opponent()
}

// String renders the board in ASCII: "1" and "2" for the players' pieces, "-" for blocked cells.
func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.height {
		sb.WriteString(" | ")
		for col := range b.width {
			m := game.Move{Row: row, Col: col}
			switch {
			case b.locations[game.PlayerFirst] == m:
				sb.WriteString("1")
			case b.locations[game.PlayerSecond] == m:
				sb.WriteString("2")
			case !b.IsBlank(m):
				sb.WriteString("-")
			default:
				sb.WriteString(" ")
			}
			sb.WriteString(" | ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ParseMove parses a move given as "row,col" (or "row col").
func ParseMove(text string) (game.Move, error) {
	parts := strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(parts) != 2 {
		return game.NoMove, errors.Errorf("failed to parse move %q, expected \"row,col\"", text)
	}
	var coords [2]int
	for ii, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil {
			return game.NoMove, errors.Wrapf(err, "failed to parse coordinate %q of move %q", part, text)
		}
		coords[ii] = value
	}
	return game.Move{Row: coords[0], Col: coords[1]}, nil
}
