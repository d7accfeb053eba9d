package dotsandboxes

import (
	"errors"
	"fmt"

	"github.com/parlorhub/gameroom-go/internal/dependencies/random"
	"github.com/parlorhub/gameroom-go/internal/games"
	"github.com/parlorhub/gameroom-go/internal/model"
)

// BoxesPerSide boxes per side, so BoxesPerSide+1 dots per side
const BoxesPerSide = 5

// State is the full dots-and-boxes game state. Horizontal[r][c] is the
// edge from dot (r,c) to dot (r,c+1); Vertical[r][c] runs from dot (r,c)
// to dot (r+1,c). Boxes holds the claiming seat +1, 0 for unclaimed.
type State struct {
	games.Table
	Horizontal [BoxesPerSide + 1][BoxesPerSide]bool `json:"horizontal"`
	Vertical   [BoxesPerSide][BoxesPerSide + 1]bool `json:"vertical"`
	Boxes      [BoxesPerSide][BoxesPerSide]int      `json:"boxes"`
	Scores     [2]int                               `json:"scores"`
}

// Move draws the edge between two orthogonally adjacent dots
type Move struct {
	From, To model.Position
}

type engine struct {
	rnd random.Random
}

// New returns the boxed dots-and-boxes engine
func New(rnd random.Random) games.Game {
	return games.Box[State, Move](engine{rnd: rnd})
}

func (engine) Type() model.GameType {
	return model.GameDotsAndBoxes
}

func (e engine) Init(players [2]model.PlayerID) *State {
	return &State{Table: games.NewTable(e.rnd, players)}
}

func (engine) ParseMove(w model.WireMove) (Move, error) {
	return Move{From: w.From, To: w.To}, nil
}

func (engine) Validate(s *State, player model.PlayerID, mv Move) error {
	if err := s.CheckTurn(player); err != nil {
		return err
	}
	horizontal, r, c, ok := edgeOf(mv)
	if !ok {
		return errors.New("Edges must connect two adjacent dots")
	}
	if horizontal {
		if s.Horizontal[r][c] {
			return errors.New("That edge is already drawn")
		}
	} else if s.Vertical[r][c] {
		return errors.New("That edge is already drawn")
	}
	return nil
}

func (engine) Apply(s *State, player model.PlayerID, mv Move) *State {
	next := s.clone()
	seat, _ := next.SeatOf(player)

	horizontal, r, c, _ := edgeOf(mv)
	if horizontal {
		next.Horizontal[r][c] = true
	} else {
		next.Vertical[r][c] = true
	}

	// Claim every box this edge completed; completing any box grants
	// another turn
	claimed := 0
	for br := 0; br < BoxesPerSide; br++ {
		for bc := 0; bc < BoxesPerSide; bc++ {
			if next.Boxes[br][bc] == 0 && boxComplete(next, br, bc) {
				next.Boxes[br][bc] = int(seat) + 1
				claimed++
			}
		}
	}
	next.Scores[seat] += claimed

	if allEdgesDrawn(next) {
		finish(next)
		return next
	}
	if claimed == 0 {
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
		return games.Spectate(s.Header(), status, s.Scores)
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

// edgeOf maps a dot pair to its edge coordinates. Returns ok=false for
// pairs that are not orthogonally adjacent dots on the grid.
func edgeOf(mv Move) (horizontal bool, r, c int, ok bool) {
	a, b := mv.From, mv.To
	if !dotOnGrid(a) || !dotOnGrid(b) {
		return false, 0, 0, false
	}
	if a.Row == b.Row && abs(a.Col-b.Col) == 1 {
		return true, a.Row, min(a.Col, b.Col), true
	}
	if a.Col == b.Col && abs(a.Row-b.Row) == 1 {
		return false, min(a.Row, b.Row), a.Col, true
	}
	return false, 0, 0, false
}

func dotOnGrid(p model.Position) bool {
	return p.Row >= 0 && p.Row <= BoxesPerSide && p.Col >= 0 && p.Col <= BoxesPerSide
}

func boxComplete(s *State, r, c int) bool {
	return s.Horizontal[r][c] && s.Horizontal[r+1][c] && s.Vertical[r][c] && s.Vertical[r][c+1]
}

func allEdgesDrawn(s *State) bool {
	for r := 0; r <= BoxesPerSide; r++ {
		for c := 0; c < BoxesPerSide; c++ {
			if !s.Horizontal[r][c] {
				return false
			}
		}
	}
	for r := 0; r < BoxesPerSide; r++ {
		for c := 0; c <= BoxesPerSide; c++ {
			if !s.Vertical[r][c] {
				return false
			}
		}
	}
	return true
}

func finish(s *State) {
	switch {
	case s.Scores[0] > s.Scores[1]:
		s.Win(0, fmt.Sprintf("%s wins %d boxes to %d", s.Player(0), s.Scores[0], s.Scores[1]))
	case s.Scores[1] > s.Scores[0]:
		s.Win(1, fmt.Sprintf("%s wins %d boxes to %d", s.Player(1), s.Scores[1], s.Scores[0]))
	default:
		s.Drawn(fmt.Sprintf("It's a draw at %d boxes each", s.Scores[0]))
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
