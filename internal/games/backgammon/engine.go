package backgammon

import (
	"errors"
	"fmt"

	"github.com/parlorhub/gameroom-go/internal/dependencies/random"
	"github.com/parlorhub/gameroom-go/internal/games"
	"github.com/parlorhub/gameroom-go/internal/model"
)

// Seat 0 moves toward point 1 and bears off from points 1-6; seat 1
// moves toward point 24 and bears off from points 19-24. Points are
// 1-indexed to match rule-speak; index 0 of the array is unused.
const (
	CheckersPerSeat = 15

	// Turn rerolls are bounded: if this many consecutive fresh rolls
	// produce no legal move for either seat the position simply stays
	// as it is rather than looping forever.
	rerollBound = 64
)

var sides = [2]string{"white", "black"}

// Point holds the checkers on one board point. Owner is meaningful only
// while Count is positive.
type Point struct {
	Owner model.Seat `json:"owner"`
	Count int        `json:"count"`
}

// State is the full backgammon game state
type State struct {
	games.Table
	Points   [25]Point `json:"points"` // 1..24 used
	Bar      [2]int    `json:"bar"`
	BorneOff [2]int    `json:"borneOff"`
	Dice     []int     `json:"dice"` // dice remaining this turn; doubles roll four
}

// MoveKind tags the three ways a checker can travel
type MoveKind string

const (
	MoveStep    MoveKind = "step"    // point to point
	MoveEnter   MoveKind = "enter"   // from the bar onto a point
	MoveBearOff MoveKind = "bearoff" // off the board
)

// Move is one checker movement consuming exactly one die
type Move struct {
	Kind MoveKind
	From int // source point for step and bearoff
	To   int // destination point for step and enter
}

type engine struct {
	rnd random.Random
}

// New returns the boxed backgammon engine
func New(rnd random.Random) games.Game {
	return games.Box[State, Move](engine{rnd: rnd})
}

func (engine) Type() model.GameType {
	return model.GameBackgammon
}

func (e engine) Init(players [2]model.PlayerID) *State {
	s := &State{Table: games.NewTable(e.rnd, players)}
	for seat := model.Seat(0); seat < 2; seat++ {
		for point, count := range startingPoints(seat) {
			s.Points[point] = Point{Owner: seat, Count: count}
		}
	}
	e.startTurn(s, 0)
	return s
}

// startingPoints is the standard opening layout for one seat
func startingPoints(seat model.Seat) map[int]int {
	if seat == 0 {
		return map[int]int{24: 2, 13: 5, 8: 3, 6: 5}
	}
	return map[int]int{1: 2, 12: 5, 17: 3, 19: 5}
}

// ParseMove translates the wire triple: point 0 as the source means the
// bar, point 0 as the destination means bearing off.
func (engine) ParseMove(w model.WireMove) (Move, error) {
	switch {
	case w.From.Row == 0 && w.To.Row == 0:
		return Move{}, errors.New("That is not a backgammon move")
	case w.From.Row == 0:
		return Move{Kind: MoveEnter, To: w.To.Row}, nil
	case w.To.Row == 0:
		return Move{Kind: MoveBearOff, From: w.From.Row}, nil
	default:
		return Move{Kind: MoveStep, From: w.From.Row, To: w.To.Row}, nil
	}
}

func (engine) Validate(s *State, player model.PlayerID, mv Move) error {
	if err := s.CheckTurn(player); err != nil {
		return err
	}
	seat, _ := s.SeatOf(player)

	if s.Bar[seat] > 0 && mv.Kind != MoveEnter {
		return errors.New("You must enter your checkers from the bar first")
	}

	die, err := dieFor(s, seat, mv)
	if err != nil {
		return err
	}
	if blocked(s, seat, destination(seat, mv)) {
		return errors.New("That point is blocked by your opponent")
	}

	// Tie-breaks apply only while exactly two distinct dice remain;
	// with doubles the order of equal dice never matters.
	if len(s.Dice) == 2 && s.Dice[0] != s.Dice[1] {
		lo, hi := minMax(s.Dice[0], s.Dice[1])
		other := lo
		if die == lo {
			other = hi
		}
		if bothDiceUsable(s, seat, lo) || bothDiceUsable(s, seat, hi) {
			// Some order plays both dice, so this move may not
			// strand the other die
			after := applySingle(s, seat, mv, die)
			if !dieUsable(after, seat, other) {
				return errors.New("You must play both dice when possible")
			}
		} else if die == lo && dieUsable(s, seat, hi) {
			return errors.New("You must use the higher die value when only one can be used")
		}
	}
	return nil
}

func (e engine) Apply(s *State, player model.PlayerID, mv Move) *State {
	seat, _ := s.SeatOf(player)
	die, _ := dieFor(s, seat, mv)
	next := applySingle(s, seat, mv, die)

	if next.BorneOff[seat] == CheckersPerSeat {
		next.Dice = nil
		next.Win(seat, fmt.Sprintf("%s has borne off all fifteen checkers!", sides[seat]))
		return next
	}

	// The same seat keeps moving while it has dice it can use; otherwise
	// the turn passes with a fresh roll.
	if len(next.Dice) > 0 && len(legalSingles(next, seat)) > 0 {
		return next
	}
	e.startTurn(next, seat.Other())
	return next
}

// startTurn rolls for the given seat, auto-passing to the other seat
// and rerolling whenever the roll yields no legal move
func (e engine) startTurn(s *State, seat model.Seat) {
	for i := 0; i < rerollBound; i++ {
		s.Turn = seat
		s.Dice = e.roll()
		if len(legalSingles(s, seat)) > 0 {
			return
		}
		seat = seat.Other()
	}
}

func (e engine) roll() []int {
	a, b := games.RollDie(e.rnd), games.RollDie(e.rnd)
	if a == b {
		return []int{a, a, a, a}
	}
	return []int{a, b}
}

func (engine) View(s *State, viewer model.PlayerID) any {
	if _, seated := s.SeatOf(viewer); !seated {
		status := "playing"
		if s.Over() {
			status = "finished"
		}
		return games.Spectate(s.Header(), status, [2]int{s.BorneOff[0], s.BorneOff[1]})
	}
	return s
}

func (engine) Winner(s *State) *model.Outcome {
	return s.Outcome()
}

func minMax(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}
