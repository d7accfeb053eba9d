package checkers

import (
	"errors"
	"fmt"

	"github.com/parlorhub/gameroom-go/internal/dependencies/random"
	"github.com/parlorhub/gameroom-go/internal/games"
	"github.com/parlorhub/gameroom-go/internal/model"
)

// BoardSize is the checkers board dimension
const BoardSize = 8

// Colors by seat: seat 0 is red, starts on rows 0-2 moving down, and
// moves first. Seat 1 is white, starting on rows 5-7 moving up.
var colors = [2]string{"red", "white"}

// Piece is one checker on the board
type Piece struct {
	Seat model.Seat `json:"seat"`
	King bool       `json:"king"`
}

// State is the full checkers game state
type State struct {
	games.Table
	Board [BoardSize][BoardSize]*Piece `json:"board"`

	// MustJumpFrom is set mid multi-jump: the same piece has to keep
	// capturing and the turn has not passed
	MustJumpFrom *model.Position `json:"mustJumpFrom,omitempty"`

	Captured [2]int `json:"captured"` // pieces taken by each seat
}

// Move slides or jumps a piece from From to To
type Move struct {
	From, To model.Position
}

type engine struct {
	rnd random.Random
}

// New returns the boxed checkers engine
func New(rnd random.Random) games.Game {
	return games.Box[State, Move](engine{rnd: rnd})
}

func (engine) Type() model.GameType {
	return model.GameCheckers
}

func (e engine) Init(players [2]model.PlayerID) *State {
	s := &State{Table: games.NewTable(e.rnd, players)}
	for r := 0; r < 3; r++ {
		for c := 0; c < BoardSize; c++ {
			if (r+c)%2 == 1 {
				s.Board[r][c] = &Piece{Seat: 0}
			}
		}
	}
	for r := 5; r < 8; r++ {
		for c := 0; c < BoardSize; c++ {
			if (r+c)%2 == 1 {
				s.Board[r][c] = &Piece{Seat: 1}
			}
		}
	}
	return s
}

func (engine) ParseMove(w model.WireMove) (Move, error) {
	return Move{From: w.From, To: w.To}, nil
}

func (engine) Validate(s *State, player model.PlayerID, mv Move) error {
	if err := s.CheckTurn(player); err != nil {
		return err
	}
	if !onBoard(mv.From) || !onBoard(mv.To) {
		return errors.New("That square is not on the board")
	}
	seat, _ := s.SeatOf(player)
	piece := s.Board[mv.From.Row][mv.From.Col]
	if piece == nil || piece.Seat != seat {
		return errors.New("You have no piece on that square")
	}
	if s.Board[mv.To.Row][mv.To.Col] != nil {
		return errors.New("The destination square is occupied")
	}
	if s.MustJumpFrom != nil && mv.From != *s.MustJumpFrom {
		return errors.New("You must continue jumping with the same piece")
	}

	dr := mv.To.Row - mv.From.Row
	dc := mv.To.Col - mv.From.Col
	if abs(dr) != abs(dc) || (abs(dr) != 1 && abs(dr) != 2) {
		return errors.New("Pieces move diagonally by one square, or two when jumping")
	}
	if !directionAllowed(piece, dr) {
		return errors.New("That piece cannot move backwards")
	}

	if abs(dr) == 2 {
		mid := s.Board[mv.From.Row+dr/2][mv.From.Col+dc/2]
		if mid == nil || mid.Seat == seat {
			return errors.New("There is no opposing piece to jump")
		}
		return nil
	}

	// Simple move: illegal while any capture is available
	if s.MustJumpFrom != nil {
		return errors.New("You must continue jumping with the same piece")
	}
	if seatHasJump(s, seat) {
		return errors.New("You must take an available jump")
	}
	return nil
}

func (engine) Apply(s *State, player model.PlayerID, mv Move) *State {
	next := s.clone()
	seat, _ := next.SeatOf(player)
	piece := *next.Board[mv.From.Row][mv.From.Col]
	next.Board[mv.From.Row][mv.From.Col] = nil

	jumped := abs(mv.To.Row-mv.From.Row) == 2
	if jumped {
		midR := mv.From.Row + (mv.To.Row-mv.From.Row)/2
		midC := mv.From.Col + (mv.To.Col-mv.From.Col)/2
		next.Board[midR][midC] = nil
		next.Captured[seat]++
	}

	crowned := false
	if !piece.King && mv.To.Row == crowningRow(seat) {
		piece.King = true
		crowned = true
	}
	next.Board[mv.To.Row][mv.To.Col] = &piece
	next.MustJumpFrom = nil

	// A jump continues from the landing square unless the piece was
	// just crowned
	if jumped && !crowned && pieceHasJump(next, mv.To) {
		next.MustJumpFrom = &model.Position{Row: mv.To.Row, Col: mv.To.Col}
		return next
	}

	opp := seat.Other()
	if !seatHasAnyMove(next, opp) {
		next.Win(seat, fmt.Sprintf("%s wins - %s has no moves left", colors[seat], colors[opp]))
		return next
	}
	next.Turn = opp
	return next
}

func (engine) View(s *State, viewer model.PlayerID) any {
	if _, seated := s.SeatOf(viewer); !seated {
		status := "playing"
		if s.Over() {
			status = "finished"
		}
		return games.Spectate(s.Header(), status, s.Captured)
	}
	return s
}

func (engine) Winner(s *State) *model.Outcome {
	return s.Outcome()
}

func (s *State) clone() *State {
	next := *s
	for r := range s.Board {
		for c, p := range s.Board[r] {
			if p != nil {
				cp := *p
				next.Board[r][c] = &cp
			}
		}
	}
	if s.MustJumpFrom != nil {
		pos := *s.MustJumpFrom
		next.MustJumpFrom = &pos
	}
	return &next
}

func onBoard(p model.Position) bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

func crowningRow(seat model.Seat) int {
	if seat == 0 {
		return BoardSize - 1
	}
	return 0
}

// directionAllowed checks the forward-only rule for men
func directionAllowed(p *Piece, dr int) bool {
	if p.King {
		return true
	}
	if p.Seat == 0 {
		return dr > 0
	}
	return dr < 0
}

// pieceHasJump reports whether the piece at pos has a capture available
func pieceHasJump(s *State, pos model.Position) bool {
	piece := s.Board[pos.Row][pos.Col]
	if piece == nil {
		return false
	}
	for _, dr := range []int{-2, 2} {
		for _, dc := range []int{-2, 2} {
			to := model.Position{Row: pos.Row + dr, Col: pos.Col + dc}
			if !onBoard(to) || s.Board[to.Row][to.Col] != nil {
				continue
			}
			if !directionAllowed(piece, dr) {
				continue
			}
			mid := s.Board[pos.Row+dr/2][pos.Col+dc/2]
			if mid != nil && mid.Seat != piece.Seat {
				return true
			}
		}
	}
	return false
}

func seatHasJump(s *State, seat model.Seat) bool {
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			p := s.Board[r][c]
			if p != nil && p.Seat == seat && pieceHasJump(s, model.Position{Row: r, Col: c}) {
				return true
			}
		}
	}
	return false
}

func seatHasAnyMove(s *State, seat model.Seat) bool {
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			p := s.Board[r][c]
			if p == nil || p.Seat != seat {
				continue
			}
			from := model.Position{Row: r, Col: c}
			if pieceHasJump(s, from) {
				return true
			}
			for _, dr := range []int{-1, 1} {
				for _, dc := range []int{-1, 1} {
					to := model.Position{Row: r + dr, Col: c + dc}
					if onBoard(to) && s.Board[to.Row][to.Col] == nil && directionAllowed(p, dr) {
						return true
					}
				}
			}
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
