package navalbattle

import (
	"errors"
	"fmt"

	"github.com/parlorhub/gameroom-go/internal/dependencies/random"
	"github.com/parlorhub/gameroom-go/internal/games"
	"github.com/parlorhub/gameroom-go/internal/model"
)

// GridSize is the per-seat grid dimension
const GridSize = 10

// FleetSizes are the ship lengths each seat receives
var FleetSizes = []int{5, 4, 3, 3, 2}

// placementAttempts bounds the random placement retry loop. Exhausting
// it indicates a logic defect, not bad input, and aborts.
const placementAttempts = 1000

// Ship is one vessel in a fleet
type Ship struct {
	Cells []model.Position `json:"cells"`
	Hits  int              `json:"hits"`
}

// Sunk reports whether every cell of the ship has been hit
func (s *Ship) Sunk() bool {
	return s.Hits >= len(s.Cells)
}

// State is the full naval battle game state. Shots[seat] records the
// results of shots fired by that seat at the opposing grid.
type State struct {
	games.Table
	Fleets [2][]Ship                     `json:"fleets"`
	Shots  [2][GridSize][GridSize]string `json:"shots"` // "", "miss" or "hit"
}

// Move fires at Target on the opposing grid
type Move struct {
	Target model.Position
}

type engine struct {
	rnd random.Random
}

// New returns the boxed naval battle engine
func New(rnd random.Random) games.Game {
	return games.Box[State, Move](engine{rnd: rnd})
}

func (engine) Type() model.GameType {
	return model.GameNavalBattle
}

func (e engine) Init(players [2]model.PlayerID) *State {
	s := &State{Table: games.NewTable(e.rnd, players)}
	for seat := 0; seat < 2; seat++ {
		s.Fleets[seat] = placeFleet(e.rnd)
	}
	return s
}

func (engine) ParseMove(w model.WireMove) (Move, error) {
	return Move{Target: w.To}, nil
}

func (engine) Validate(s *State, player model.PlayerID, mv Move) error {
	if err := s.CheckTurn(player); err != nil {
		return err
	}
	if mv.Target.Row < 0 || mv.Target.Row >= GridSize || mv.Target.Col < 0 || mv.Target.Col >= GridSize {
		return errors.New("That cell is not on the grid")
	}
	seat, _ := s.SeatOf(player)
	if s.Shots[seat][mv.Target.Row][mv.Target.Col] != "" {
		return errors.New("You already fired at that cell")
	}
	return nil
}

func (engine) Apply(s *State, player model.PlayerID, mv Move) *State {
	next := s.clone()
	seat, _ := next.SeatOf(player)
	opp := seat.Other()

	hit := false
	for i := range next.Fleets[opp] {
		ship := &next.Fleets[opp][i]
		for _, cell := range ship.Cells {
			if cell == mv.Target {
				ship.Hits++
				hit = true
			}
		}
	}

	if hit {
		next.Shots[seat][mv.Target.Row][mv.Target.Col] = "hit"
		if fleetSunk(next.Fleets[opp]) {
			next.Win(seat, fmt.Sprintf("%s sank the entire fleet!", next.Player(seat)))
		}
		// A hit grants another shot; the turn stays
		return next
	}
	next.Shots[seat][mv.Target.Row][mv.Target.Col] = "miss"
	next.Turn = opp
	return next
}

// PlayerView is the redacted payload for one seated viewer. The
// opponent's fleet is revealed only as sunk ships; everything else the
// viewer knows comes from their own shot grid.
type PlayerView struct {
	Players     [2]model.PlayerID          `json:"players"`
	Turn        model.Seat                 `json:"turn"`
	Winner      *model.PlayerID            `json:"winner"`
	EndReason   string                     `json:"endReason,omitempty"`
	Seat        model.Seat                 `json:"seat"`
	Fleet       []Ship                     `json:"fleet"`
	Shots       [GridSize][GridSize]string `json:"shots"`
	ShotsAtYou  [GridSize][GridSize]string `json:"shotsAtYou"`
	SunkEnemies []Ship                     `json:"sunkEnemies"`
}

func (engine) View(s *State, viewer model.PlayerID) any {
	seat, seated := s.SeatOf(viewer)
	if !seated {
		status := "playing"
		if s.Over() {
			status = "finished"
		}
		return games.Spectate(s.Header(), status, [2]int{sunkCount(s.Fleets[1]), sunkCount(s.Fleets[0])})
	}

	opp := seat.Other()
	var sunk []Ship
	for _, ship := range s.Fleets[opp] {
		if ship.Sunk() {
			sunk = append(sunk, ship)
		}
	}
	return PlayerView{
		Players:     s.Players,
		Turn:        s.Turn,
		Winner:      s.WinnerID,
		EndReason:   s.EndReason,
		Seat:        seat,
		Fleet:       s.Fleets[seat],
		Shots:       s.Shots[seat],
		ShotsAtYou:  s.Shots[opp],
		SunkEnemies: sunk,
	}
}

func (engine) Winner(s *State) *model.Outcome {
	return s.Outcome()
}

func (s *State) clone() *State {
	next := *s
	for seat := range s.Fleets {
		next.Fleets[seat] = make([]Ship, len(s.Fleets[seat]))
		for i, ship := range s.Fleets[seat] {
			next.Fleets[seat][i] = Ship{
				Cells: append([]model.Position(nil), ship.Cells...),
				Hits:  ship.Hits,
			}
		}
	}
	return &next
}

func fleetSunk(fleet []Ship) bool {
	for i := range fleet {
		if !fleet[i].Sunk() {
			return false
		}
	}
	return true
}

func sunkCount(fleet []Ship) int {
	count := 0
	for i := range fleet {
		if fleet[i].Sunk() {
			count++
		}
	}
	return count
}

// placeFleet drops the standard fleet onto an empty grid at random
// positions without overlap
func placeFleet(rnd random.Random) []Ship {
	var occupied [GridSize][GridSize]bool
	fleet := make([]Ship, 0, len(FleetSizes))

	for _, size := range FleetSizes {
		placed := false
		for attempt := 0; attempt < placementAttempts; attempt++ {
			horizontal := rnd.Intn(2) == 0
			var row, col int
			if horizontal {
				row = rnd.Intn(GridSize)
				col = rnd.Intn(GridSize - size + 1)
			} else {
				row = rnd.Intn(GridSize - size + 1)
				col = rnd.Intn(GridSize)
			}

			cells := make([]model.Position, size)
			clear := true
			for i := 0; i < size; i++ {
				r, c := row, col
				if horizontal {
					c += i
				} else {
					r += i
				}
				if occupied[r][c] {
					clear = false
					break
				}
				cells[i] = model.Position{Row: r, Col: c}
			}
			if !clear {
				continue
			}

			for _, cell := range cells {
				occupied[cell.Row][cell.Col] = true
			}
			fleet = append(fleet, Ship{Cells: cells})
			placed = true
			break
		}
		if !placed {
			panic(fmt.Sprintf("navalbattle: could not place ship of size %d after %d attempts", size, placementAttempts))
		}
	}
	return fleet
}
