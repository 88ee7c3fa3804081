// Package match plays one match of Isolation between two players, refereeing the moves and the
// time each player takes.
package match

import (
	"context"
	"fmt"
	"time"

	. "github.com/janpfeifer/isolationGo/internal/game"
	"github.com/janpfeifer/isolationGo/internal/players"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	"github.com/janpfeifer/isolationGo/internal/state"
	"k8s.io/klog/v2"
)

// Reason why a match ended.
type Reason int

const (
	// ReasonNoMoves is the regular end of a match: the player to move has no legal moves and loses.
	ReasonNoMoves Reason = iota

	// ReasonIllegalMove means the player to move returned a move that is not legal, and loses.
	ReasonIllegalMove

	// ReasonForfeit means the player to move returned NoMove while it had legal moves, and loses.
	ReasonForfeit

	// ReasonTimeout means the player to move took longer than the time limit, and loses.
	ReasonTimeout

	// ReasonCancelled means the match was interrupted: there is no winner.
	ReasonCancelled
)

var reasonNames = [...]string{"no legal moves", "illegal move", "forfeit", "timeout", "cancelled"}

// String implements fmt.Stringer.
func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return fmt.Sprintf("Reason(%d)", int(r))
	}
	return reasonNames[r]
}

// Outcome of a match.
type Outcome struct {
	// Winner of the match, PlayerInvalid if it was cancelled.
	Winner PlayerNum

	// History of the moves played, starting from the initial board.
	History []Move

	// Reason the match ended.
	Reason Reason

	// Final board position.
	Final *state.Board
}

// String implements fmt.Stringer.
func (o Outcome) String() string {
	return fmt.Sprintf("winner=%s, reason=%s, moves=%d", o.Winner, o.Reason, len(o.History))
}

// Observer is called after each move is played, with the board after the move.
type Observer func(b *state.Board, player PlayerNum, move Move, elapsed time.Duration)

// Untimed can be implemented by players that shouldn't be subject to the time limit, e.g. humans.
type Untimed interface {
	Untimed() bool
}

// clockFor returns the Clock for one decision: it runs out at the deadline, or when ctx is cancelled.
func clockFor(ctx context.Context, timeLimit time.Duration) searchers.Clock {
	clock := searchers.Unlimited
	if timeLimit > 0 {
		clock = searchers.NewDeadlineClock(time.Now().Add(timeLimit))
	}
	return searchers.ClockFunc(func() time.Duration {
		if ctx.Err() != nil {
			return 0
		}
		return clock.TimeLeft()
	})
}

// Run plays a match from board (which is not modified) between seats[PlayerFirst] and seats[PlayerSecond].
//
// Each player gets timeLimit for each move, 0 meaning no limit. A player that takes longer, that returns
// an illegal move, or that returns NoMove while it has legal moves loses the match.
//
// Both players are finalized at the end of the match.
func Run(ctx context.Context, board *state.Board, seats [NumPlayers]players.Player, timeLimit time.Duration,
	observers ...Observer) (outcome Outcome) {
	b := board.Clone()
	defer func() {
		outcome.Final = b
		for _, p := range seats {
			p.Finalize()
		}
		if klog.V(1).Enabled() {
			klog.Infof("Match finished: %s", outcome)
		}
	}()

	end := func(winner PlayerNum, reason Reason) Outcome {
		outcome.Winner, outcome.Reason = winner, reason
		return outcome
	}
	for {
		player := b.ActivePlayer()
		if ctx.Err() != nil {
			return end(PlayerInvalid, ReasonCancelled)
		}
		if !b.HasLegalMoves(player) {
			return end(player.Opponent(), ReasonNoMoves)
		}

		seat := seats[player]
		limit := timeLimit
		if untimed, ok := seat.(Untimed); ok && untimed.Untimed() {
			limit = 0
		}
		start := time.Now()
		move := seat.Play(b.Clone(), clockFor(ctx, limit))
		elapsed := time.Since(start)
		switch {
		case ctx.Err() != nil:
			return end(PlayerInvalid, ReasonCancelled)
		case limit > 0 && elapsed > limit:
			klog.Warningf("Player %s (%s) took %s to move, more than the %s limit", player, seat, elapsed, limit)
			return end(player.Opponent(), ReasonTimeout)
		case move.IsNoMove():
			klog.Warningf("Player %s (%s) gave up with legal moves available", player, seat)
			return end(player.Opponent(), ReasonForfeit)
		}
		if err := b.Apply(move); err != nil {
			klog.Warningf("Player %s (%s): %v", player, seat, err)
			return end(player.Opponent(), ReasonIllegalMove)
		}
		outcome.History = append(outcome.History, move)
		for _, observer := range observers {
			observer(b, player, move, elapsed)
		}
	}
}
