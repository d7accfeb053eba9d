package backgammon

import (
	"errors"

	"github.com/parlorhub/gameroom-go/internal/model"
)

// dir is the direction of travel for a seat: seat 0 descends toward
// point 1, seat 1 ascends toward point 24
func dir(seat model.Seat) int {
	if seat == 0 {
		return -1
	}
	return 1
}

// entryDie is the die value needed to enter from the bar onto a point
func entryDie(seat model.Seat, to int) int {
	if seat == 0 {
		return 25 - to
	}
	return to
}

// distOff is how far a point is from bearing off for a seat
func distOff(seat model.Seat, from int) int {
	if seat == 0 {
		return from
	}
	return 25 - from
}

// dieFor checks the move's shape, ownership, direction and dice match,
// returning the die the move would consume. Bear-off eligibility (all
// checkers home, no-higher-checker rule for oversized dice) is part of
// the dice match.
func dieFor(s *State, seat model.Seat, mv Move) (int, error) {
	switch mv.Kind {
	case MoveEnter:
		if s.Bar[seat] == 0 {
			return 0, errors.New("You have no checkers on the bar")
		}
		if mv.To < 1 || mv.To > 24 {
			return 0, errors.New("That point is not on the board")
		}
		die := entryDie(seat, mv.To)
		if die < 1 || die > 6 || !hasDie(s.Dice, die) {
			return 0, errors.New("That move does not match your dice")
		}
		return die, nil

	case MoveStep:
		if mv.From < 1 || mv.From > 24 || mv.To < 1 || mv.To > 24 {
			return 0, errors.New("That point is not on the board")
		}
		if err := ownChecker(s, seat, mv.From); err != nil {
			return 0, err
		}
		dist := (mv.To - mv.From) * dir(seat)
		if dist <= 0 {
			return 0, errors.New("You must move toward your own home board")
		}
		if dist > 6 || !hasDie(s.Dice, dist) {
			return 0, errors.New("That move does not match your dice")
		}
		return dist, nil

	case MoveBearOff:
		if mv.From < 1 || mv.From > 24 {
			return 0, errors.New("That point is not on the board")
		}
		if err := ownChecker(s, seat, mv.From); err != nil {
			return 0, err
		}
		if !allHome(s, seat) {
			return 0, errors.New("You must bring all your checkers home before bearing off")
		}
		dist := distOff(seat, mv.From)
		if hasDie(s.Dice, dist) {
			return dist, nil
		}
		// An oversized die bears off only the farthest checker
		die := smallestAbove(s.Dice, dist)
		if die == 0 {
			return 0, errors.New("That move does not match your dice")
		}
		if !farthestBack(s, seat, mv.From) {
			return 0, errors.New("You must bear off from your farthest point with that die")
		}
		return die, nil

	default:
		return 0, errors.New("That is not a backgammon move")
	}
}

func ownChecker(s *State, seat model.Seat, point int) error {
	p := s.Points[point]
	if p.Count == 0 || p.Owner != seat {
		return errors.New("You have no checker on that point")
	}
	return nil
}

// destination is the point a move lands on; bear-off lands nowhere
func destination(seat model.Seat, mv Move) int {
	if mv.Kind == MoveBearOff {
		return 0
	}
	return mv.To
}

// blocked reports whether the opponent holds the point with two or more
// checkers. Point 0 (off the board) is never blocked.
func blocked(s *State, seat model.Seat, point int) bool {
	if point < 1 || point > 24 {
		return false
	}
	p := s.Points[point]
	return p.Count >= 2 && p.Owner != seat
}

// allHome reports whether every checker of the seat is in its six-point
// home board, a precondition for bearing off
func allHome(s *State, seat model.Seat) bool {
	if s.Bar[seat] > 0 {
		return false
	}
	for point := 1; point <= 24; point++ {
		p := s.Points[point]
		if p.Count > 0 && p.Owner == seat && distOff(seat, point) > 6 {
			return false
		}
	}
	return true
}

// farthestBack reports whether no checker of the seat sits farther from
// bearing off than the given point
func farthestBack(s *State, seat model.Seat, from int) bool {
	for point := 1; point <= 24; point++ {
		p := s.Points[point]
		if p.Count > 0 && p.Owner == seat && distOff(seat, point) > distOff(seat, from) {
			return false
		}
	}
	return true
}

func hasDie(dice []int, d int) bool {
	for _, have := range dice {
		if have == d {
			return true
		}
	}
	return false
}

// smallestAbove returns the smallest die strictly greater than dist, or
// 0 when there is none
func smallestAbove(dice []int, dist int) int {
	best := 0
	for _, d := range dice {
		if d > dist && (best == 0 || d < best) {
			best = d
		}
	}
	return best
}

// legalSingles enumerates every single-checker move the seat can make
// with its remaining dice, before the higher-die and both-dice
// tie-breaks are applied
func legalSingles(s *State, seat model.Seat) []Move {
	var moves []Move
	for _, d := range distinctDice(s.Dice) {
		moves = append(moves, singlesWithDie(s, seat, d)...)
	}
	return moves
}

func singlesWithDie(s *State, seat model.Seat, die int) []Move {
	var moves []Move
	if s.Bar[seat] > 0 {
		to := entryPoint(seat, die)
		if !blocked(s, seat, to) {
			moves = append(moves, Move{Kind: MoveEnter, To: to})
		}
		return moves
	}
	home := allHome(s, seat)
	for from := 1; from <= 24; from++ {
		p := s.Points[from]
		if p.Count == 0 || p.Owner != seat {
			continue
		}
		to := from + die*dir(seat)
		if to >= 1 && to <= 24 && !blocked(s, seat, to) {
			moves = append(moves, Move{Kind: MoveStep, From: from, To: to})
		}
		if home {
			dist := distOff(seat, from)
			if die == dist || (die > dist && farthestBack(s, seat, from)) {
				moves = append(moves, Move{Kind: MoveBearOff, From: from})
			}
		}
	}
	return moves
}

// entryPoint is the point a die enters on from the bar
func entryPoint(seat model.Seat, die int) int {
	if seat == 0 {
		return 25 - die
	}
	return die
}

func distinctDice(dice []int) []int {
	var out []int
	for _, d := range dice {
		if !hasDie(out, d) {
			out = append(out, d)
		}
	}
	return out
}

// dieUsable reports whether any legal single move consumes the die
func dieUsable(s *State, seat model.Seat, die int) bool {
	return len(singlesWithDie(s, seat, die)) > 0
}

// bothDiceUsable reports whether, with exactly two distinct dice
// remaining, playing the first die in some way still leaves a legal move
// with the other die
func bothDiceUsable(s *State, seat model.Seat, first int) bool {
	other := s.Dice[0]
	if other == first {
		other = s.Dice[1]
	}
	for _, mv := range singlesWithDie(s, seat, first) {
		after := applySingle(s, seat, mv, first)
		if dieUsable(after, seat, other) {
			return true
		}
	}
	return false
}

// applySingle executes one checker movement and consumes its die,
// returning a new state. Turn advancement and terminal checks stay with
// the caller.
func applySingle(s *State, seat model.Seat, mv Move, die int) *State {
	next := *s
	next.Dice = consumeDie(s.Dice, die)

	switch mv.Kind {
	case MoveEnter:
		next.Bar[seat]--
		land(&next, seat, mv.To)
	case MoveStep:
		next.Points[mv.From].Count--
		land(&next, seat, mv.To)
	case MoveBearOff:
		next.Points[mv.From].Count--
		next.BorneOff[seat]++
	}
	return &next
}

// land places a checker on a point, hitting a lone opposing checker to
// the bar
func land(s *State, seat model.Seat, point int) {
	p := s.Points[point]
	if p.Count == 1 && p.Owner != seat {
		s.Bar[p.Owner]++
		p = Point{}
	}
	s.Points[point] = Point{Owner: seat, Count: p.Count + 1}
}

func consumeDie(dice []int, die int) []int {
	out := make([]int, 0, len(dice)-1)
	used := false
	for _, d := range dice {
		if !used && d == die {
			used = true
			continue
		}
		out = append(out, d)
	}
	return out
}
