package gogame

import (
	"errors"
	"fmt"

	"github.com/parlorhub/gameroom-go/internal/dependencies/random"
	"github.com/parlorhub/gameroom-go/internal/games"
	"github.com/parlorhub/gameroom-go/internal/model"
)

// BoardSize is the board dimension
const BoardSize = 9

// Komi is White's fixed compensation under area scoring
const Komi = 6.5

// Colors by seat: seat 0 is black and moves first
var colors = [2]string{"black", "white"}

// State is the full go game state
type State struct {
	games.Table
	Board Board `json:"board"`

	// PrevBoard is the board as it stood immediately before the last
	// stone placement, for the simple-ko test. Passes never update it.
	PrevBoard Board `json:"prevBoard,omitempty"`

	Passes   int    `json:"passes"`   // consecutive passes
	Captures [2]int `json:"captures"` // stones captured by each seat

	// Scores are filled in when the game ends
	BlackScore float64 `json:"blackScore,omitempty"`
	WhiteScore float64 `json:"whiteScore,omitempty"`
}

// MoveKind selects the move variant
type MoveKind string

const (
	MovePlace MoveKind = "place"
	MovePass  MoveKind = "pass"
)

// Move is either a stone placement or a pass
type Move struct {
	Kind MoveKind
	Pos  model.Position // placement point, unused for passes
}

type engine struct {
	rnd random.Random
}

// New returns the boxed go engine
func New(rnd random.Random) games.Game {
	return games.Box[State, Move](engine{rnd: rnd})
}

func (engine) Type() model.GameType {
	return model.GameGo
}

func (e engine) Init(players [2]model.PlayerID) *State {
	return &State{
		Table: games.NewTable(e.rnd, players),
		Board: newBoard(BoardSize),
	}
}

// ParseMove translates the wire shape: a destination row of -1 is the
// pass sentinel, anything else is a placement
func (engine) ParseMove(w model.WireMove) (Move, error) {
	if w.To.Row == -1 {
		return Move{Kind: MovePass}, nil
	}
	return Move{Kind: MovePlace, Pos: w.To}, nil
}

func (engine) Validate(s *State, player model.PlayerID, mv Move) error {
	if err := s.CheckTurn(player); err != nil {
		return err
	}
	if mv.Kind == MovePass {
		return nil
	}
	if !s.Board.onBoard(mv.Pos) {
		return errors.New("That point is not on the board")
	}
	if s.Board[mv.Pos.Row][mv.Pos.Col] != "" {
		return errors.New("That point is already occupied")
	}

	seat, _ := s.SeatOf(player)
	color := colors[seat]

	// Simulate the placement: captures resolve first, then the placed
	// stone's own group is checked for suicide, then the result is
	// compared against the pre-capture board for ko
	trial := s.Board.clone()
	trial[mv.Pos.Row][mv.Pos.Col] = color
	captured := trial.removeDeadNeighbors(mv.Pos, colors[seat.Other()])

	if captured == 0 {
		if _, liberties := trial.group(mv.Pos); len(liberties) == 0 {
			return errors.New("That move would be suicide")
		}
	}
	if trial.equal(s.PrevBoard) {
		return errors.New("That move would repeat the previous position (ko)")
	}
	return nil
}

func (engine) Apply(s *State, player model.PlayerID, mv Move) *State {
	next := s.clone()
	seat, _ := next.SeatOf(player)

	if mv.Kind == MovePass {
		next.Passes++
		if next.Passes >= 2 {
			score(next)
			return next
		}
		next.Turn = next.Turn.Other()
		return next
	}

	// The ko snapshot is the board before this placement
	next.PrevBoard = s.Board.clone()

	next.Board[mv.Pos.Row][mv.Pos.Col] = colors[seat]
	next.Captures[seat] += next.Board.removeDeadNeighbors(mv.Pos, colors[seat.Other()])
	next.Passes = 0
	next.Turn = next.Turn.Other()
	return next
}

func (engine) View(s *State, viewer model.PlayerID) any {
	if _, seated := s.SeatOf(viewer); !seated {
		status := "playing"
		if s.Over() {
			status = "finished"
		}
		return games.Spectate(s.Header(), status, s.Captures)
	}
	return s
}

func (engine) Winner(s *State) *model.Outcome {
	return s.Outcome()
}

func (s *State) clone() *State {
	next := *s
	next.Board = s.Board.clone()
	if s.PrevBoard != nil {
		next.PrevBoard = s.PrevBoard.clone()
	}
	return &next
}

// score applies area scoring with komi and finishes the game
func score(s *State) {
	blackArea, whiteArea := s.Board.areaScores()
	s.BlackScore = float64(blackArea)
	s.WhiteScore = float64(whiteArea) + Komi

	switch {
	case s.BlackScore > s.WhiteScore:
		s.Win(0, fmt.Sprintf("black wins %.1f to %.1f", s.BlackScore, s.WhiteScore))
	case s.WhiteScore > s.BlackScore:
		s.Win(1, fmt.Sprintf("white wins %.1f to %.1f", s.WhiteScore, s.BlackScore))
	default:
		// Unreachable with a half-point komi, kept for the equal-area
		// branch anyway
		s.Drawn("The game is a draw")
	}
}
