// Package hosted wires every shipped game engine into a registry.
package hosted

import (
	"github.com/parlorhub/gameroom-go/internal/dependencies/random"
	"github.com/parlorhub/gameroom-go/internal/games"
	"github.com/parlorhub/gameroom-go/internal/games/backgammon"
	"github.com/parlorhub/gameroom-go/internal/games/checkers"
	"github.com/parlorhub/gameroom-go/internal/games/chess"
	"github.com/parlorhub/gameroom-go/internal/games/connectfour"
	"github.com/parlorhub/gameroom-go/internal/games/cribbage"
	"github.com/parlorhub/gameroom-go/internal/games/dotsandboxes"
	"github.com/parlorhub/gameroom-go/internal/games/gogame"
	"github.com/parlorhub/gameroom-go/internal/games/gomoku"
	"github.com/parlorhub/gameroom-go/internal/games/mancala"
	"github.com/parlorhub/gameroom-go/internal/games/navalbattle"
	"github.com/parlorhub/gameroom-go/internal/games/reversi"
	"github.com/parlorhub/gameroom-go/internal/games/tictactoe"
)

// NewRegistry builds a registry holding all twelve engines, each drawing
// randomness from the given source
func NewRegistry(rnd random.Random) *games.Registry {
	r := games.NewRegistry()
	r.MustRegister(chess.New(rnd))
	r.MustRegister(gogame.New(rnd))
	r.MustRegister(backgammon.New(rnd))
	r.MustRegister(cribbage.New(rnd))
	r.MustRegister(checkers.New(rnd))
	r.MustRegister(connectfour.New(rnd))
	r.MustRegister(reversi.New(rnd))
	r.MustRegister(tictactoe.New(rnd))
	r.MustRegister(gomoku.New(rnd))
	r.MustRegister(mancala.New(rnd))
	r.MustRegister(dotsandboxes.New(rnd))
	r.MustRegister(navalbattle.New(rnd))
	return r
}
