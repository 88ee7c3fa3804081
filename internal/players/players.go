// Package players provides a factory of AI players from configuration strings.
// It also allows player providers to register themselves.
//
// Include the default modules with:
//
//	import _ "github.com/janpfeifer/isolationGo/internal/players/default"
package players

import (
	"strings"

	. "github.com/janpfeifer/isolationGo/internal/game"
	"github.com/janpfeifer/isolationGo/internal/generics"
	"github.com/janpfeifer/isolationGo/internal/parameters"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	"github.com/pkg/errors"
)

// Player is anything that is able to play the game.
type Player interface {
	// Play returns the move chosen for the active player of s, or NoMove if it has none (or gave up).
	// The clock tells how much time is left for the decision.
	Play(s State, clock searchers.Clock) Move

	// String describes the player and its configuration.
	String() string

	// Finalize is called at the end of a match.
	Finalize()
}

// Module must implement NewPlayer, called at the start of a match.
//
// params holds the parameters of the configuration string: the module must pop the ones it uses
// (see parameters.PopParamOr), any parameter left is reported as an error by New.
type Module interface {
	NewPlayer(params parameters.Params) (Player, error)
}

// ModuleFunc converts a function to a Module.
type ModuleFunc func(params parameters.Params) (Player, error)

// NewPlayer implements Module.
func (fn ModuleFunc) NewPlayer(params parameters.Params) (Player, error) { return fn(params) }

var (
	// Registered external modules.
	keywordToModules = make(map[string]Module)
)

// RegisterModule so it can be used by any of the front-ends to play Isolation.
// Registering a name twice replaces the previous module.
func RegisterModule(name string, module Module) {
	keywordToModules[name] = module
}

// Modules returns the sorted names of the registered modules.
func Modules() []string {
	return generics.KeysSlice(keywordToModules)
}

var (
	// DefaultPlayerConfig is used if no configuration was given to the AI. The value may be changed by the
	// UI built.
	DefaultPlayerConfig = "alphabeta"
)

// New creates a new AI player given the configuration string.
//
// Args:
//
//	config: the AI module name, optionally followed by a colon (":") and a comma-separated list of
//		parameters with optional values associated. E.g.: "minimax:depth=3,score=open".
//		If empty, the default is given by DefaultPlayerConfig.
//
// More details on the config are dependent on the module used.
func New(config string) (Player, error) {
	if config == "" {
		config = DefaultPlayerConfig
	}

	// Find moduleName.
	moduleName, paramsConfig, _ := strings.Cut(config, ":")
	moduleName = strings.TrimSpace(moduleName)
	if len(keywordToModules) == 0 {
		return nil, errors.New("no registered AI players. Perhaps you need to import _ \"github.com/janpfeifer/isolationGo/internal/players/default\" to your binary ?")
	}
	module, ok := keywordToModules[moduleName]
	if !ok {
		return nil, errors.Errorf("unknown AI player %q, registered players are: %s",
			moduleName, strings.Join(Modules(), ", "))
	}

	params := parameters.NewFromConfigString(paramsConfig)
	player, err := module.NewPlayer(params)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create AI player %q", moduleName)
	}
	if err = parameters.CheckAllUsed(params); err != nil {
		return nil, errors.WithMessagef(err, "failed to create AI player %q", moduleName)
	}
	return player, nil
}
