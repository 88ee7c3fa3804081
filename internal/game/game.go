// Package game defines the capabilities a two-player, zero-sum, perfect-information game must
// expose to be searched by the engines in package searchers.
//
// Nothing here knows about a concrete game: see package state for the Isolation implementation.
package game

import (
	"fmt"
	"slices"
)

// PlayerNum is either 0 or 1, corresponding to the first player to move or the second player to move.
type PlayerNum uint8

const (
	PlayerFirst PlayerNum = iota
	PlayerSecond

	// PlayerInvalid represents an invalid PlayerNum, e.g.: the winner of an unfinished match.
	PlayerInvalid
)

// NumPlayers is limited to 2.
const NumPlayers = 2

var playerNames = [...]string{"First", "Second", "Invalid"}

// String returns "First", "Second" or "Invalid".
func (p PlayerNum) String() string {
	if int(p) >= len(playerNames) {
		return fmt.Sprintf("PlayerNum(%d)", p)
	}
	return playerNames[p]
}

// Opponent returns the other player. The opponent of PlayerInvalid is PlayerInvalid.
func (p PlayerNum) Opponent() PlayerNum {
	switch p {
	case PlayerFirst:
		return PlayerSecond
	case PlayerSecond:
		return PlayerFirst
	}
	return PlayerInvalid
}

// Move is an opaque coordinate pair identifying a transition. It is comparable, so it can be used
// as a map key.
type Move struct {
	Row, Col int
}

// NoMove is the sentinel returned when there are no legal moves available.
var NoMove = Move{Row: -1, Col: -1}

// IsNoMove returns whether m is the NoMove sentinel.
func (m Move) IsNoMove() bool {
	return m == NoMove
}

// String returns a text representation of the move.
func (m Move) String() string {
	if m.IsNoMove() {
		return "(no move)"
	}
	return fmt.Sprintf("(%d, %d)", m.Row, m.Col)
}

// State is the abstract game state used by the searchers.
//
// Implementations must behave as immutable values from the searchers' point of view: Forecast
// returns a new State and leaves the receiver untouched.
type State interface {
	// LegalMoves for the given player, in a stable order. Empty (or nil) if there are none.
	//
	// The order is the sole source of tie-break determinism in the searchers.
	LegalMoves(player PlayerNum) []Move

	// Forecast returns a new State with the move applied by the active player.
	Forecast(move Move) State

	// Opponent of the given player.
	Opponent(player PlayerNum) PlayerNum

	// IsWinner returns whether player has won in this state. It is never true at the same time as IsLoser
	// for the same player.
	IsWinner(player PlayerNum) bool

	// IsLoser returns whether player has lost in this state.
	IsLoser(player PlayerNum) bool

	// ActivePlayer is the player whose turn it is.
	ActivePlayer() PlayerNum
}

// Board is an optional extension of State for games played by moving a piece on a grid of cells.
// Heuristics that need geometry require it, and the iterative deepening search uses the number of
// blank cells to bound the number of plies left in the match.
type Board interface {
	State

	// Size returns the width (number of columns) and height (number of rows) of the board.
	Size() (width, height int)

	// Location of the player's piece. ok is false if the player hasn't placed its piece yet.
	Location(player PlayerNum) (location Move, ok bool)

	// BlankSpaces returns the cells not yet visited.
	BlankSpaces() []Move
}

// Contains returns whether move is one of moves.
func Contains(moves []Move, move Move) bool {
	return slices.Contains(moves, move)
}

// MaxRemainingPlies returns an upper bound on the number of plies that can still be played from s,
// or -1 if s doesn't provide one.
func MaxRemainingPlies(s State) int {
	if b, ok := s.(Board); ok {
		return len(b.BlankSpaces())
	}
	return -1
}
