package connectfour

import (
	"errors"
	"fmt"

	"github.com/parlorhub/gameroom-go/internal/dependencies/random"
	"github.com/parlorhub/gameroom-go/internal/games"
	"github.com/parlorhub/gameroom-go/internal/model"
)

// Board dimensions: 7 columns, 6 rows. Row 0 is the top; discs stack
// from row Rows-1 upward.
const (
	Cols = 7
	Rows = 6
)

// Colors by seat: seat 0 is red and moves first
var colors = [2]string{"red", "yellow"}

// State is the full connect-4 game state
type State struct {
	games.Table
	Board [Rows][Cols]string `json:"board"`

	// WinningCells holds the four connected cells once the game is won
	WinningCells []model.Position `json:"winningCells,omitempty"`
}

// Move drops the mover's disc into Col
type Move struct {
	Col int
}

type engine struct {
	rnd random.Random
}

// New returns the boxed connect-4 engine
func New(rnd random.Random) games.Game {
	return games.Box[State, Move](engine{rnd: rnd})
}

func (engine) Type() model.GameType {
	return model.GameConnectFour
}

func (e engine) Init(players [2]model.PlayerID) *State {
	return &State{Table: games.NewTable(e.rnd, players)}
}

func (engine) ParseMove(w model.WireMove) (Move, error) {
	return Move{Col: w.To.Col}, nil
}

func (engine) Validate(s *State, player model.PlayerID, mv Move) error {
	if err := s.CheckTurn(player); err != nil {
		return err
	}
	if mv.Col < 0 || mv.Col >= Cols {
		return errors.New("That column is not on the board")
	}
	if s.Board[0][mv.Col] != "" {
		return errors.New("That column is full")
	}
	return nil
}

func (engine) Apply(s *State, player model.PlayerID, mv Move) *State {
	next := s.clone()
	seat, _ := next.SeatOf(player)
	color := colors[seat]

	// Drop to the lowest empty row in the column
	row := Rows - 1
	for row >= 0 && next.Board[row][mv.Col] != "" {
		row--
	}
	next.Board[row][mv.Col] = color

	if cells := connectedFour(next.Board, model.Position{Row: row, Col: mv.Col}, color); cells != nil {
		next.WinningCells = cells
		next.Win(seat, fmt.Sprintf("%s wins with four in a row!", color))
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
	next.WinningCells = append([]model.Position(nil), s.WinningCells...)
	return &next
}

// connectedFour returns four connected cells through pos, or nil
func connectedFour(board [Rows][Cols]string, pos model.Position, color string) []model.Position {
	dirs := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for _, d := range dirs {
		cells := []model.Position{pos}
		for _, sign := range []int{1, -1} {
			r, c := pos.Row+sign*d[0], pos.Col+sign*d[1]
			for r >= 0 && r < Rows && c >= 0 && c < Cols && board[r][c] == color {
				cells = append(cells, model.Position{Row: r, Col: c})
				r += sign * d[0]
				c += sign * d[1]
			}
		}
		if len(cells) >= 4 {
			return cells[:4]
		}
	}
	return nil
}

func boardFull(board [Rows][Cols]string) bool {
	for col := 0; col < Cols; col++ {
		if board[0][col] == "" {
			return false
		}
	}
	return true
}
