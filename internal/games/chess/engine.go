package chess

import (
	"errors"
	"fmt"

	"github.com/parlorhub/gameroom-go/internal/dependencies/random"
	"github.com/parlorhub/gameroom-go/internal/games"
	"github.com/parlorhub/gameroom-go/internal/model"
)

// Color names by seat: seat 0 is white and moves first
var colorNames = [2]string{"white", "black"}

// State is the full chess game state
type State struct {
	games.Table
	Board Board `json:"board"`

	// EnPassant is the capture target square, set only by the
	// immediately preceding two-square pawn advance
	EnPassant *model.Position `json:"enPassant,omitempty"`

	InCheck bool `json:"inCheck"` // side to move is in check

	// HalfmoveClock counts half-moves since the last capture or pawn
	// move; the game is drawn at 100
	HalfmoveClock int `json:"halfmoveClock"`

	Captures [2][]PieceType `json:"captures"` // pieces taken by each seat
}

type engine struct {
	rnd random.Random
}

// New returns the boxed chess engine
func New(rnd random.Random) games.Game {
	return games.Box[State, Move](engine{rnd: rnd})
}

func (engine) Type() model.GameType {
	return model.GameChess
}

func (e engine) Init(players [2]model.PlayerID) *State {
	return &State{
		Table: games.NewTable(e.rnd, players),
		Board: startingBoard(),
	}
}

func (engine) ParseMove(w model.WireMove) (Move, error) {
	mv := Move{From: w.From, To: w.To}
	switch w.Promotion {
	case "":
	case "queen", "rook", "bishop", "knight":
		mv.Promotion = PieceType(w.Promotion)
	default:
		return Move{}, fmt.Errorf("unknown promotion piece %q", w.Promotion)
	}
	return mv, nil
}

func (engine) Validate(s *State, player model.PlayerID, mv Move) error {
	if err := s.CheckTurn(player); err != nil {
		return err
	}
	if !onBoard(mv.From) || !onBoard(mv.To) {
		return errors.New("That square is not on the board")
	}
	seat, _ := s.SeatOf(player)
	piece := s.Board.at(mv.From)
	if piece == nil || piece.Color != seat {
		return errors.New("You have no piece on that square")
	}

	found := false
	for _, pm := range pseudoMoves(&s.Board, mv.From, s.EnPassant) {
		if pm.To == mv.To {
			found = true
			break
		}
	}
	if !found {
		return errors.New("That piece cannot move there")
	}
	if leavesOwnKingInCheck(&s.Board, mv, s.EnPassant) {
		return errors.New("That move would leave your king in check")
	}
	return nil
}

func (engine) Apply(s *State, player model.PlayerID, mv Move) *State {
	next := s.clone()
	seat, _ := next.SeatOf(player)

	movedPawn := next.Board.at(mv.From).Type == Pawn
	captured := applyToBoard(&next.Board, mv, next.EnPassant)
	if captured != nil {
		next.Captures[seat] = append(next.Captures[seat], captured.Type)
	}

	// A two-square pawn advance exposes its midpoint to en passant for
	// exactly one move; anything else clears the target
	next.EnPassant = nil
	if movedPawn && abs(mv.To.Row-mv.From.Row) == 2 {
		next.EnPassant = &model.Position{Row: (mv.From.Row + mv.To.Row) / 2, Col: mv.From.Col}
	}

	if movedPawn || captured != nil {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock++
	}

	opp := seat.Other()
	next.Turn = opp
	next.InCheck = next.Board.inCheck(opp)

	switch {
	case !sideHasLegalMove(&next.Board, opp, next.EnPassant):
		if next.InCheck {
			next.Win(seat, fmt.Sprintf("Checkmate - %s wins!", colorNames[seat]))
		} else {
			next.Drawn("Stalemate - it's a draw")
		}
	case next.HalfmoveClock >= 100:
		next.Drawn("Draw by the fifty-move rule")
	case insufficientMaterial(&next.Board):
		next.Drawn("Draw - insufficient material to checkmate")
	}
	return next
}

func (engine) View(s *State, viewer model.PlayerID) any {
	if _, seated := s.SeatOf(viewer); !seated {
		status := "playing"
		if s.Over() {
			status = "finished"
		}
		return games.Spectate(s.Header(), status, [2]int{len(s.Captures[0]), len(s.Captures[1])})
	}
	return s
}

func (engine) Winner(s *State) *model.Outcome {
	return s.Outcome()
}

func (s *State) clone() *State {
	next := *s
	next.Board = s.Board.clone()
	if s.EnPassant != nil {
		ep := *s.EnPassant
		next.EnPassant = &ep
	}
	for seat := range s.Captures {
		next.Captures[seat] = append([]PieceType(nil), s.Captures[seat]...)
	}
	return &next
}
