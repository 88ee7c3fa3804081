// isolation plays a match of Isolation in the terminal: human vs AI, human vs human (-hotseat) or
// AI vs AI (-watch).
//
// AI players are configured with -config and -config2, e.g. "alphabeta:score=improved,max_time=500ms"
// or "minimax:depth=3". See package players/default for the available players.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/isolationGo/internal/ai/heuristics"
	. "github.com/janpfeifer/isolationGo/internal/game"
	"github.com/janpfeifer/isolationGo/internal/match"
	"github.com/janpfeifer/isolationGo/internal/players"
	_ "github.com/janpfeifer/isolationGo/internal/players/default"
	"github.com/janpfeifer/isolationGo/internal/profilers"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	"github.com/janpfeifer/isolationGo/internal/state"
	"github.com/janpfeifer/isolationGo/internal/ui/cli"
	"github.com/janpfeifer/isolationGo/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var (
	flagHotseat   = flag.Bool("hotseat", false, "Hotseat match: human vs human")
	flagWatch     = flag.Bool("watch", false, "Watch mode: AI vs AI playing")
	flagFirst     = flag.String("first", "", "Who plays first: human or ai. Default is random.")
	flagAIConfig  = flag.String("config", players.DefaultPlayerConfig, "AI configuration against which to play")
	flagAIConfig2 = flag.String("config2", "minimax:depth=3", "Second AI configuration, if playing AI vs AI with -watch")
	flagTimeLimit = flag.Duration("time_limit", time.Second, "Time limit for each move of the AI players, 0 for no limit.")
	flagSize      = flag.String("size", "7x7", "Size of the board, as \"<width>x<height>\".")
	flagTheme     = flag.String("theme", "clock", "Spinning theme while the AI thinks: ascii, moon or clock.")
	flagColor     = flag.Bool("color", true, "Use colors in the terminal.")

	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of isolation:\n")
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), "\nAI players: %s\nHeuristics (\"score\" parameter): %s\n",
			strings.Join(players.Modules(), ", "), strings.Join(heuristics.Names(), ", "))
	}
	flag.Parse()
	if *flagTimeLimit < 0 {
		klog.Fatalf("Invalid -time_limit=%s", *flagTimeLimit)
	}
	must.M(spinning.SetTheme(*flagTheme))

	// Capture Control+C
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()
	profilers.Setup(globalCtx)
	defer profilers.OnQuit()

	ui := cli.New(*flagColor, false)
	seats := createPlayers(ui)
	board := state.NewBoard(parseSize(*flagSize))

	outcome := match.Run(globalCtx, board, seats, *flagTimeLimit,
		func(b *state.Board, player PlayerNum, move Move, elapsed time.Duration) {
			if _, isHuman := seats[player].(*cli.Human); isHuman {
				return
			}
			fmt.Printf(" %s (%s)\n", move, elapsed.Round(time.Millisecond))
			if *flagWatch {
				ui.Print(b)
			}
		})
	ui.Print(outcome.Final)
	ui.PrintWinner(outcome)
}

// parseSize parses the -size flag.
func parseSize(size string) (width, height int) {
	if _, err := fmt.Sscanf(strings.ToLower(size), "%dx%d", &width, &height); err != nil || width <= 0 || height <= 0 {
		exceptions.Panicf("invalid -size=%q, it must be given as \"<width>x<height>\", e.g. \"7x7\"", size)
	}
	return
}

// createPlayers for each seat: humans read from the UI, AI players are wrapped with a spinning display.
func createPlayers(ui *cli.UI) (seats [NumPlayers]players.Player) {
	if *flagHotseat && *flagWatch {
		klog.Fatalf("-hotseat and -watch cannot be used together")
	}
	if *flagHotseat {
		return [NumPlayers]players.Player{ui.Human(), ui.Human()}
	}

	var aiPlayerNum PlayerNum
	if *flagWatch {
		aiPlayerNum = PlayerFirst
	} else {
		switch strings.ToLower(*flagFirst) {
		case "human":
			aiPlayerNum = PlayerSecond
		case "ai":
			aiPlayerNum = PlayerFirst
		case "":
			aiPlayerNum = PlayerNum(rand.IntN(NumPlayers))
		default:
			exceptions.Panicf("invalid -first=%q, only valid values are \"human\" or \"ai\"", *flagFirst)
		}
	}
	seats[aiPlayerNum] = &thinking{must.M1(players.New(*flagAIConfig))}
	if *flagWatch {
		seats[aiPlayerNum.Opponent()] = &thinking{must.M1(players.New(*flagAIConfig2))}
	} else {
		seats[aiPlayerNum.Opponent()] = ui.Human()
	}
	return
}

// thinking wraps an AI player, showing a spinning display while it plays.
type thinking struct {
	players.Player
}

func (t *thinking) Play(s State, clock searchers.Clock) Move {
	fmt.Printf("%s (%s) thinking:", s.ActivePlayer(), t.Player)
	spin := spinning.New(globalCtx)
	defer spin.Done()
	return t.Player.Play(s, clock)
}
