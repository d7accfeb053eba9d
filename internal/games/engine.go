package games

import (
	"encoding/json"
	"fmt"

	"github.com/parlorhub/gameroom-go/internal/model"
)

// Engine is the contract every game implements. S is the engine's state
// type (a pointer to a struct embedding Table), M its move type.
//
// Validate is a pure predicate over the state; it checks, in order:
// game already over, unknown player, not that player's turn, move shape
// and bounds, game-specific legality, and returns the first violation as
// a stable, user-facing error. Apply assumes the move was validated
// against this exact state and returns a new state without mutating its
// input. Winner re-derives terminal status from the state alone and is
// idempotent. View produces the payload one viewer is entitled to see;
// viewers holding neither seat get the spectator summary.
type Engine[S any, M any] interface {
	Type() model.GameType

	// Init randomly assigns the two players to seats and returns the
	// starting state. Randomness (seats, dice, shuffles) comes only
	// from the source the engine was constructed with, so deterministic
	// tests can fix the sequence.
	Init(players [2]model.PlayerID) S

	// ParseMove translates the wire move shape into the engine's tagged
	// move type. Sentinel values in the wire shape (row -1, point 0)
	// become explicit variants here. Structural translation only; bounds
	// and legality belong to Validate.
	ParseMove(w model.WireMove) (M, error)

	Validate(s S, player model.PlayerID, mv M) error
	Apply(s S, player model.PlayerID, mv M) S
	View(s S, viewer model.PlayerID) any
	Winner(s S) *model.Outcome
}

// Game is the engine contract with its state and move types erased,
// carrying state as JSON. This is the only surface the room orchestrator
// and the storage layer see; they never know which game they are hosting.
type Game interface {
	Type() model.GameType
	Init(players [2]model.PlayerID) (json.RawMessage, error)
	Validate(state json.RawMessage, player model.PlayerID, w model.WireMove) error
	Apply(state json.RawMessage, player model.PlayerID, w model.WireMove) (json.RawMessage, error)
	View(state json.RawMessage, viewer model.PlayerID) (any, error)
	Winner(state json.RawMessage) (*model.Outcome, error)
}

// Box erases an engine's state and move types, exposing it as a Game.
// T is the state struct; the engine works on *T.
func Box[T any, M any](e Engine[*T, M]) Game {
	return boxed[T, M]{e: e}
}

type boxed[T any, M any] struct {
	e Engine[*T, M]
}

func (b boxed[T, M]) Type() model.GameType {
	return b.e.Type()
}

func (b boxed[T, M]) Init(players [2]model.PlayerID) (json.RawMessage, error) {
	s := b.e.Init(players)
	return json.Marshal(s)
}

func (b boxed[T, M]) decode(state json.RawMessage) (*T, error) {
	s := new(T)
	if err := json.Unmarshal(state, s); err != nil {
		return nil, fmt.Errorf("decoding %s state: %w", b.e.Type(), err)
	}
	return s, nil
}

func (b boxed[T, M]) Validate(state json.RawMessage, player model.PlayerID, w model.WireMove) error {
	s, err := b.decode(state)
	if err != nil {
		return err
	}
	mv, err := b.e.ParseMove(w)
	if err != nil {
		return err
	}
	return b.e.Validate(s, player, mv)
}

func (b boxed[T, M]) Apply(state json.RawMessage, player model.PlayerID, w model.WireMove) (json.RawMessage, error) {
	s, err := b.decode(state)
	if err != nil {
		return nil, err
	}
	mv, err := b.e.ParseMove(w)
	if err != nil {
		return nil, err
	}
	return json.Marshal(b.e.Apply(s, player, mv))
}

func (b boxed[T, M]) View(state json.RawMessage, viewer model.PlayerID) (any, error) {
	s, err := b.decode(state)
	if err != nil {
		return nil, err
	}
	return b.e.View(s, viewer), nil
}

func (b boxed[T, M]) Winner(state json.RawMessage) (*model.Outcome, error) {
	s, err := b.decode(state)
	if err != nil {
		return nil, err
	}
	return b.e.Winner(s), nil
}
