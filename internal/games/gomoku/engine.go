package gomoku

import (
	"errors"
	"fmt"

	"github.com/parlorhub/gameroom-go/internal/dependencies/random"
	"github.com/parlorhub/gameroom-go/internal/games"
	"github.com/parlorhub/gameroom-go/internal/model"
)

// BoardSize is the standard gomoku board dimension
const BoardSize = 15

// Stones by seat: seat 0 is black and moves first
var stones = [2]string{"black", "white"}

// State is the full gomoku game state
type State struct {
	games.Table
	Board [][]string `json:"board"` // BoardSize x BoardSize, stone color or empty
}

// Move places the mover's stone at Pos
type Move struct {
	Pos model.Position
}

type engine struct {
	rnd random.Random
}

// New returns the boxed gomoku engine
func New(rnd random.Random) games.Game {
	return games.Box[State, Move](engine{rnd: rnd})
}

func (engine) Type() model.GameType {
	return model.GameGomoku
}

func (e engine) Init(players [2]model.PlayerID) *State {
	board := make([][]string, BoardSize)
	for i := range board {
		board[i] = make([]string, BoardSize)
	}
	return &State{Table: games.NewTable(e.rnd, players), Board: board}
}

func (engine) ParseMove(w model.WireMove) (Move, error) {
	return Move{Pos: w.To}, nil
}

func (engine) Validate(s *State, player model.PlayerID, mv Move) error {
	if err := s.CheckTurn(player); err != nil {
		return err
	}
	if mv.Pos.Row < 0 || mv.Pos.Row >= BoardSize || mv.Pos.Col < 0 || mv.Pos.Col >= BoardSize {
		return errors.New("That point is not on the board")
	}
	if s.Board[mv.Pos.Row][mv.Pos.Col] != "" {
		return errors.New("That point is already taken")
	}
	return nil
}

func (engine) Apply(s *State, player model.PlayerID, mv Move) *State {
	next := s.clone()
	seat, _ := next.SeatOf(player)
	stone := stones[seat]
	next.Board[mv.Pos.Row][mv.Pos.Col] = stone

	if hasFiveFrom(next.Board, mv.Pos, stone) {
		next.Win(seat, fmt.Sprintf("%s wins with five in a row!", stone))
	} else if boardFull(next.Board) {
		next.Drawn("The board is full - it's a draw")
	} else {
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
		return games.Spectate(s.Header(), status, [2]int{})
	}
	return s
}

func (engine) Winner(s *State) *model.Outcome {
	return s.Outcome()
}

func (s *State) clone() *State {
	next := *s
	next.Board = make([][]string, len(s.Board))
	for i, row := range s.Board {
		next.Board[i] = append([]string(nil), row...)
	}
	return &next
}

// hasFiveFrom checks whether the stone just placed at pos completes a
// run of five or more in any of the four line directions
func hasFiveFrom(board [][]string, pos model.Position, stone string) bool {
	dirs := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for _, d := range dirs {
		count := 1
		count += runLength(board, pos, d[0], d[1], stone)
		count += runLength(board, pos, -d[0], -d[1], stone)
		if count >= 5 {
			return true
		}
	}
	return false
}

func runLength(board [][]string, pos model.Position, dr, dc int, stone string) int {
	count := 0
	r, c := pos.Row+dr, pos.Col+dc
	for r >= 0 && r < BoardSize && c >= 0 && c < BoardSize && board[r][c] == stone {
		count++
		r += dr
		c += dc
	}
	return count
}

func boardFull(board [][]string) bool {
	for _, row := range board {
		for _, cell := range row {
			if cell == "" {
				return false
			}
		}
	}
	return true
}
