package tictactoe

import (
	"errors"
	"fmt"

	"github.com/parlorhub/gameroom-go/internal/dependencies/random"
	"github.com/parlorhub/gameroom-go/internal/games"
	"github.com/parlorhub/gameroom-go/internal/model"
)

// Marks by seat: seat 0 is X and moves first
var marks = [2]string{"X", "O"}

// State is the full tic-tac-toe game state
type State struct {
	games.Table
	Board [3][3]string `json:"board"` // "X", "O" or empty
}

// Move places the mover's mark at Pos
type Move struct {
	Pos model.Position
}

type engine struct {
	rnd random.Random
}

// New returns the boxed tic-tac-toe engine
func New(rnd random.Random) games.Game {
	return games.Box[State, Move](engine{rnd: rnd})
}

func (engine) Type() model.GameType {
	return model.GameTicTacToe
}

func (e engine) Init(players [2]model.PlayerID) *State {
	return &State{Table: games.NewTable(e.rnd, players)}
}

func (engine) ParseMove(w model.WireMove) (Move, error) {
	return Move{Pos: w.To}, nil
}

func (engine) Validate(s *State, player model.PlayerID, mv Move) error {
	if err := s.CheckTurn(player); err != nil {
		return err
	}
	if mv.Pos.Row < 0 || mv.Pos.Row > 2 || mv.Pos.Col < 0 || mv.Pos.Col > 2 {
		return errors.New("That square is not on the board")
	}
	if s.Board[mv.Pos.Row][mv.Pos.Col] != "" {
		return errors.New("That square is already taken")
	}
	return nil
}

func (engine) Apply(s *State, player model.PlayerID, mv Move) *State {
	next := s.clone()
	seat, _ := next.SeatOf(player)
	next.Board[mv.Pos.Row][mv.Pos.Col] = marks[seat]

	if line := winningMark(next.Board); line != "" {
		// Only the mover's mark can have completed a line
		next.Win(seat, fmt.Sprintf("%s wins with three in a row!", line))
	} else if boardFull(next.Board) {
		next.Drawn("The board is full - it's a draw")
	} else {
		next.Turn = next.Turn.Other()
	}
	return next
}

func (engine) View(s *State, viewer model.PlayerID) any {
	if _, seated := s.SeatOf(viewer); !seated {
		return games.Spectate(s.Header(), status(s), [2]int{})
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

func status(s *State) string {
	if s.Over() {
		return "finished"
	}
	return "playing"
}

// winningMark returns the mark holding three in a row, or empty
func winningMark(b [3][3]string) string {
	lines := [][3]model.Position{
		{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
		{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
		{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
		{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
		{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
		{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
		{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
		{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}},
	}
	for _, line := range lines {
		first := b[line[0].Row][line[0].Col]
		if first == "" {
			continue
		}
		if b[line[1].Row][line[1].Col] == first && b[line[2].Row][line[2].Col] == first {
			return first
		}
	}
	return ""
}

func boardFull(b [3][3]string) bool {
	for _, row := range b {
		for _, cell := range row {
			if cell == "" {
				return false
			}
		}
	}
	return true
}
