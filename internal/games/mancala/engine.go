package mancala

import (
	"errors"
	"fmt"

	"github.com/parlorhub/gameroom-go/internal/dependencies/random"
	"github.com/parlorhub/gameroom-go/internal/games"
	"github.com/parlorhub/gameroom-go/internal/model"
)

// Each seat owns a row of six pits and a store. Sowing runs through the
// mover's pits in increasing index, their store, then the opponent's
// pits, skipping the opponent's store.
const (
	PitsPerRow     = 6
	StartingStones = 4
)

// State is the full mancala game state
type State struct {
	games.Table
	Pits   [2][PitsPerRow]int `json:"pits"` // seat-indexed rows
	Stores [2]int             `json:"stores"`
}

// Move sows from the mover's pit at index Pit
type Move struct {
	Pit int
}

type engine struct {
	rnd random.Random
}

// New returns the boxed mancala engine
func New(rnd random.Random) games.Game {
	return games.Box[State, Move](engine{rnd: rnd})
}

func (engine) Type() model.GameType {
	return model.GameMancala
}

func (e engine) Init(players [2]model.PlayerID) *State {
	s := &State{Table: games.NewTable(e.rnd, players)}
	for seat := 0; seat < 2; seat++ {
		for pit := 0; pit < PitsPerRow; pit++ {
			s.Pits[seat][pit] = StartingStones
		}
	}
	return s
}

func (engine) ParseMove(w model.WireMove) (Move, error) {
	return Move{Pit: w.From.Col}, nil
}

func (engine) Validate(s *State, player model.PlayerID, mv Move) error {
	if err := s.CheckTurn(player); err != nil {
		return err
	}
	if mv.Pit < 0 || mv.Pit >= PitsPerRow {
		return errors.New("That pit does not exist")
	}
	seat, _ := s.SeatOf(player)
	if s.Pits[seat][mv.Pit] == 0 {
		return errors.New("That pit is empty")
	}
	return nil
}

func (engine) Apply(s *State, player model.PlayerID, mv Move) *State {
	next := s.clone()
	seat, _ := next.SeatOf(player)

	stones := next.Pits[seat][mv.Pit]
	next.Pits[seat][mv.Pit] = 0

	// The sowing track from the mover's perspective: their six pits,
	// their store, then the opponent's six pits. The opponent's store is
	// not on the track.
	type slot struct {
		row, pit int
		store    bool
	}
	track := make([]slot, 0, 2*PitsPerRow+1)
	for p := 0; p < PitsPerRow; p++ {
		track = append(track, slot{row: int(seat), pit: p})
	}
	track = append(track, slot{store: true})
	for p := 0; p < PitsPerRow; p++ {
		track = append(track, slot{row: int(seat.Other()), pit: p})
	}

	pos := mv.Pit
	var last slot
	for stones > 0 {
		pos = (pos + 1) % len(track)
		last = track[pos]
		if last.store {
			next.Stores[seat]++
		} else {
			next.Pits[last.row][last.pit]++
		}
		stones--
	}
	lastInStore := last.store
	lastRow, lastPit := last.row, last.pit

	// Capture: last stone landed in an empty pit on the mover's row and
	// the opposite pit holds stones
	if !lastInStore && lastRow == int(seat) && next.Pits[lastRow][lastPit] == 1 {
		opposite := PitsPerRow - 1 - lastPit
		if captured := next.Pits[1-lastRow][opposite]; captured > 0 {
			next.Stores[seat] += captured + 1
			next.Pits[1-lastRow][opposite] = 0
			next.Pits[lastRow][lastPit] = 0
		}
	}

	if rowEmpty(next.Pits[0]) || rowEmpty(next.Pits[1]) {
		sweepAndFinish(next)
		return next
	}

	// Landing the last stone in the mover's store grants another turn
	if !lastInStore {
		next.Turn = next.Turn.Other()
	}
	return next
}

func (engine) View(s *State, viewer model.PlayerID) any {
	if _, seated := s.SeatOf(viewer); !seated {
		status := "playing"
		if s.Over() {
			status = "finished"
		}
		return games.Spectate(s.Header(), status, s.Stores)
	}
	return s
}

func (engine) Winner(s *State) *model.Outcome {
	return s.Outcome()
}

func (s *State) clone() *State {
	next := *s
	return &next
}

func rowEmpty(row [PitsPerRow]int) bool {
	for _, stones := range row {
		if stones > 0 {
			return false
		}
	}
	return true
}

// sweepAndFinish moves every remaining stone into its owner's store and
// decides the game on store counts
func sweepAndFinish(s *State) {
	for seat := 0; seat < 2; seat++ {
		for pit := 0; pit < PitsPerRow; pit++ {
			s.Stores[seat] += s.Pits[seat][pit]
			s.Pits[seat][pit] = 0
		}
	}
	switch {
	case s.Stores[0] > s.Stores[1]:
		s.Win(0, fmt.Sprintf("%s wins %d stones to %d", s.Player(0), s.Stores[0], s.Stores[1]))
	case s.Stores[1] > s.Stores[0]:
		s.Win(1, fmt.Sprintf("%s wins %d stones to %d", s.Player(1), s.Stores[1], s.Stores[0]))
	default:
		s.Drawn(fmt.Sprintf("It's a draw at %d stones each", s.Stores[0]))
	}
}
