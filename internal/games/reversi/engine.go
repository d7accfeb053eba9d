package reversi

import (
	"errors"
	"fmt"

	"github.com/parlorhub/gameroom-go/internal/dependencies/random"
	"github.com/parlorhub/gameroom-go/internal/games"
	"github.com/parlorhub/gameroom-go/internal/model"
)

// BoardSize is the reversi board dimension
const BoardSize = 8

// Discs by seat: seat 0 is black and moves first
var discs = [2]string{"black", "white"}

var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// State is the full reversi game state
type State struct {
	games.Table
	Board [BoardSize][BoardSize]string `json:"board"`
}

// Move places a disc at Pos, flipping bracketed opponent discs
type Move struct {
	Pos model.Position
}

type engine struct {
	rnd random.Random
}

// New returns the boxed reversi engine
func New(rnd random.Random) games.Game {
	return games.Box[State, Move](engine{rnd: rnd})
}

func (engine) Type() model.GameType {
	return model.GameReversi
}

func (e engine) Init(players [2]model.PlayerID) *State {
	s := &State{Table: games.NewTable(e.rnd, players)}
	s.Board[3][3] = discs[1]
	s.Board[3][4] = discs[0]
	s.Board[4][3] = discs[0]
	s.Board[4][4] = discs[1]
	return s
}

func (engine) ParseMove(w model.WireMove) (Move, error) {
	return Move{Pos: w.To}, nil
}

func (engine) Validate(s *State, player model.PlayerID, mv Move) error {
	if err := s.CheckTurn(player); err != nil {
		return err
	}
	if mv.Pos.Row < 0 || mv.Pos.Row >= BoardSize || mv.Pos.Col < 0 || mv.Pos.Col >= BoardSize {
		return errors.New("That square is not on the board")
	}
	if s.Board[mv.Pos.Row][mv.Pos.Col] != "" {
		return errors.New("That square is already taken")
	}
	seat, _ := s.SeatOf(player)
	if len(flipsFor(s.Board, mv.Pos, discs[seat])) == 0 {
		return errors.New("That move would not flip any discs")
	}
	return nil
}

func (engine) Apply(s *State, player model.PlayerID, mv Move) *State {
	next := s.clone()
	seat, _ := next.SeatOf(player)
	disc := discs[seat]

	next.Board[mv.Pos.Row][mv.Pos.Col] = disc
	for _, p := range flipsFor(s.Board, mv.Pos, disc) {
		next.Board[p.Row][p.Col] = disc
	}

	// Opponent moves next; if they have no legal move the turn passes
	// back, and if neither side can move the game ends on disc count.
	opp := seat.Other()
	switch {
	case hasLegalMove(next.Board, discs[opp]):
		next.Turn = opp
	case hasLegalMove(next.Board, disc):
		next.Turn = seat
	default:
		finish(next)
	}
	return next
}

func (engine) View(s *State, viewer model.PlayerID) any {
	if _, seated := s.SeatOf(viewer); !seated {
		status := "playing"
		if s.Over() {
			status = "finished"
		}
		black, white := countDiscs(s.Board)
		return games.Spectate(s.Header(), status, [2]int{black, white})
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

func finish(s *State) {
	black, white := countDiscs(s.Board)
	switch {
	case black > white:
		s.Win(0, fmt.Sprintf("black wins %d discs to %d", black, white))
	case white > black:
		s.Win(1, fmt.Sprintf("white wins %d discs to %d", white, black))
	default:
		s.Drawn(fmt.Sprintf("It's a draw at %d discs each", black))
	}
}

func countDiscs(board [BoardSize][BoardSize]string) (black, white int) {
	for _, row := range board {
		for _, cell := range row {
			switch cell {
			case discs[0]:
				black++
			case discs[1]:
				white++
			}
		}
	}
	return black, white
}

// flipsFor returns the opponent discs bracketed by placing disc at pos
func flipsFor(board [BoardSize][BoardSize]string, pos model.Position, disc string) []model.Position {
	var flips []model.Position
	for _, d := range directions {
		var line []model.Position
		r, c := pos.Row+d[0], pos.Col+d[1]
		for r >= 0 && r < BoardSize && c >= 0 && c < BoardSize {
			cell := board[r][c]
			if cell == "" {
				line = nil
				break
			}
			if cell == disc {
				break
			}
			line = append(line, model.Position{Row: r, Col: c})
			r += d[0]
			c += d[1]
		}
		if r < 0 || r >= BoardSize || c < 0 || c >= BoardSize {
			line = nil
		}
		flips = append(flips, line...)
	}
	return flips
}

func hasLegalMove(board [BoardSize][BoardSize]string, disc string) bool {
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if board[r][c] != "" {
				continue
			}
			if len(flipsFor(board, model.Position{Row: r, Col: c}, disc)) > 0 {
				return true
			}
		}
	}
	return false
}
