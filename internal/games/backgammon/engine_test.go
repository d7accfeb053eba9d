package backgammon

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/parlorhub/gameroom-go/internal/dependencies/mocks"
	"github.com/parlorhub/gameroom-go/internal/games"
	"github.com/parlorhub/gameroom-go/internal/model"
)

type EngineSuite struct {
	suite.Suite
	rnd *mocks.MockRandom
	eng engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.rnd = mocks.NewMockRandom()
	s.eng = engine{rnd: s.rnd}
}

// newGame seats alice at seat 0 and starts her turn with the given dice
func (s *EngineSuite) newGame(d1, d2 int) *State {
	s.rnd.QueueIntn(0, d1-1, d2-1)
	return s.eng.Init([2]model.PlayerID{"alice", "bob"})
}

// bareState builds a position directly, bypassing the opening layout
func bareState() *State {
	return &State{Table: games.Table{Players: [2]model.PlayerID{"alice", "bob"}, Turn: 0}}
}

func checkerCount(st *State, seat model.Seat) int {
	total := st.Bar[seat] + st.BorneOff[seat]
	for point := 1; point <= 24; point++ {
		if p := st.Points[point]; p.Count > 0 && p.Owner == seat {
			total += p.Count
		}
	}
	return total
}

func (s *EngineSuite) TestOpeningLayout() {
	st := s.newGame(1, 2)

	s.Equal(Point{Owner: 0, Count: 2}, st.Points[24])
	s.Equal(Point{Owner: 0, Count: 5}, st.Points[13])
	s.Equal(Point{Owner: 0, Count: 3}, st.Points[8])
	s.Equal(Point{Owner: 0, Count: 5}, st.Points[6])
	s.Equal(Point{Owner: 1, Count: 2}, st.Points[1])
	s.Equal(Point{Owner: 1, Count: 5}, st.Points[12])
	s.Equal(Point{Owner: 1, Count: 3}, st.Points[17])
	s.Equal(Point{Owner: 1, Count: 5}, st.Points[19])
	s.Equal(15, checkerCount(st, 0))
	s.Equal(15, checkerCount(st, 1))
	s.Equal([]int{1, 2}, st.Dice)
	s.Equal(model.Seat(0), st.Turn)
}

func (s *EngineSuite) TestDoublesRollFourDice() {
	st := s.newGame(3, 3)
	s.Equal([]int{3, 3, 3, 3}, st.Dice)
}

func (s *EngineSuite) TestParseMoveSentinels() {
	mv, err := s.eng.ParseMove(model.WireMove{From: model.Position{Row: 0}, To: model.Position{Row: 20}})
	s.Require().NoError(err)
	s.Equal(Move{Kind: MoveEnter, To: 20}, mv)

	mv, err = s.eng.ParseMove(model.WireMove{From: model.Position{Row: 6}, To: model.Position{Row: 0}})
	s.Require().NoError(err)
	s.Equal(Move{Kind: MoveBearOff, From: 6}, mv)

	mv, err = s.eng.ParseMove(model.WireMove{From: model.Position{Row: 13}, To: model.Position{Row: 9}})
	s.Require().NoError(err)
	s.Equal(Move{Kind: MoveStep, From: 13, To: 9}, mv)

	_, err = s.eng.ParseMove(model.WireMove{})
	s.Error(err)
}

func (s *EngineSuite) TestMoveConsumesOneDieAndKeepsTurn() {
	st := s.newGame(1, 2)

	mv := Move{Kind: MoveStep, From: 24, To: 23}
	s.Require().NoError(s.eng.Validate(st, "alice", mv))
	next := s.eng.Apply(st, "alice", mv)

	s.Equal([]int{2}, next.Dice)
	s.Equal(model.Seat(0), next.Turn)
	s.Equal(1, next.Points[23].Count)
	s.Equal(1, next.Points[24].Count)

	// The input state is untouched
	s.Equal([]int{1, 2}, st.Dice)
	s.Equal(2, st.Points[24].Count)
}

func (s *EngineSuite) TestCheckersConservedAcrossMoves() {
	st := s.newGame(1, 2)

	for _, mv := range []Move{
		{Kind: MoveStep, From: 24, To: 23},
		{Kind: MoveStep, From: 13, To: 11},
	} {
		s.Require().NoError(s.eng.Validate(st, "alice", mv))
		s.rnd.QueueIntn(2, 4) // next roll
		st = s.eng.Apply(st, "alice", mv)
		s.Equal(15, checkerCount(st, 0))
		s.Equal(15, checkerCount(st, 1))
	}
}

func (s *EngineSuite) TestValidateRejectsOutOfTurnAndStrangers() {
	st := s.newGame(1, 2)

	mv := Move{Kind: MoveStep, From: 12, To: 14}
	s.ErrorIs(s.eng.Validate(st, "bob", mv), model.ErrNotYourTurn)
	s.ErrorIs(s.eng.Validate(st, "carol", mv), model.ErrNotInGame)
}

func (s *EngineSuite) TestWrongDirectionRejected() {
	st := s.newGame(1, 2)

	err := s.eng.Validate(st, "alice", Move{Kind: MoveStep, From: 24, To: 25})
	s.Error(err)
	err = s.eng.Validate(st, "alice", Move{Kind: MoveStep, From: 13, To: 14})
	s.EqualError(err, "You must move toward your own home board")
}

func (s *EngineSuite) TestBlockedPointRejected() {
	st := s.newGame(5, 6)

	// Bob holds point 19 with five checkers; 24->19 is blocked
	err := s.eng.Validate(st, "alice", Move{Kind: MoveStep, From: 24, To: 19})
	s.EqualError(err, "That point is blocked by your opponent")
}

func (s *EngineSuite) TestBarMustEnterFirst() {
	st := bareState()
	st.Bar[0] = 1
	st.Points[10] = Point{Owner: 0, Count: 1}
	st.Dice = []int{1, 2}

	err := s.eng.Validate(st, "alice", Move{Kind: MoveStep, From: 10, To: 9})
	s.EqualError(err, "You must enter your checkers from the bar first")

	enter := Move{Kind: MoveEnter, To: 24} // die 1 enters at 25-1
	s.Require().NoError(s.eng.Validate(st, "alice", enter))
	next := s.eng.Apply(st, "alice", enter)
	s.Equal(0, next.Bar[0])
	s.Equal(Point{Owner: 0, Count: 1}, next.Points[24])
}

func (s *EngineSuite) TestHitSendsBlotToBar() {
	st := bareState()
	st.Points[6] = Point{Owner: 0, Count: 1}
	st.Points[5] = Point{Owner: 1, Count: 1}
	st.Dice = []int{1, 1, 1, 1}

	mv := Move{Kind: MoveStep, From: 6, To: 5}
	s.Require().NoError(s.eng.Validate(st, "alice", mv))
	next := s.eng.Apply(st, "alice", mv)

	s.Equal(1, next.Bar[1])
	s.Equal(Point{Owner: 0, Count: 1}, next.Points[5])
}

func (s *EngineSuite) TestBearOffNeedsAllCheckersHome() {
	st := bareState()
	st.Points[3] = Point{Owner: 0, Count: 1}
	st.Points[10] = Point{Owner: 0, Count: 1}
	st.BorneOff[0] = 13
	st.Dice = []int{3, 3, 3, 3}

	err := s.eng.Validate(st, "alice", Move{Kind: MoveBearOff, From: 3})
	s.EqualError(err, "You must bring all your checkers home before bearing off")
}

func (s *EngineSuite) TestBearingOffLastCheckerWins() {
	st := bareState()
	st.Points[3] = Point{Owner: 0, Count: 2}
	st.BorneOff[0] = 13
	st.Dice = []int{3, 3, 3, 3}

	mv := Move{Kind: MoveBearOff, From: 3}
	s.Require().NoError(s.eng.Validate(st, "alice", mv))
	st = s.eng.Apply(st, "alice", mv)
	s.Equal(14, st.BorneOff[0])
	s.False(st.Over())

	s.Require().NoError(s.eng.Validate(st, "alice", mv))
	st = s.eng.Apply(st, "alice", mv)
	s.Equal(15, st.BorneOff[0])
	s.Require().NotNil(st.WinnerID)
	s.Equal(model.PlayerID("alice"), *st.WinnerID)
	s.Contains(st.EndReason, "borne off")
	s.Empty(st.Dice)
}

func (s *EngineSuite) TestOversizedDieBearsOffOnlyFarthestChecker() {
	st := bareState()
	st.Points[5] = Point{Owner: 0, Count: 1}
	st.Points[2] = Point{Owner: 0, Count: 1}
	st.BorneOff[0] = 13
	st.Dice = []int{6, 6, 6, 6}

	err := s.eng.Validate(st, "alice", Move{Kind: MoveBearOff, From: 2})
	s.EqualError(err, "You must bear off from your farthest point with that die")
	s.NoError(s.eng.Validate(st, "alice", Move{Kind: MoveBearOff, From: 5}))
}

func (s *EngineSuite) TestMustUseHigherDieWhenOnlyOneFits() {
	// One checker on the bar; point 16 is blocked, so entering with the
	// 3 at point 22 strands the turn while entering with the 6 at 19 is
	// just as stuck, but only one die can be used either way.
	st := bareState()
	st.Bar[0] = 1
	st.BorneOff[0] = 14
	st.Points[16] = Point{Owner: 1, Count: 2}
	st.Dice = []int{3, 6}

	err := s.eng.Validate(st, "alice", Move{Kind: MoveEnter, To: 22})
	s.EqualError(err, "You must use the higher die value when only one can be used")
	s.NoError(s.eng.Validate(st, "alice", Move{Kind: MoveEnter, To: 19}))
}

func (s *EngineSuite) TestMustPlayBothDiceWhenAnOrderAllowsIt() {
	// Checkers on 24 and 13; points 18, 16 and 7 blocked. Playing the 2
	// as 24->22 leaves no 6; playing it as 13->11 keeps 11->5 open.
	st := bareState()
	st.Points[24] = Point{Owner: 0, Count: 1}
	st.Points[13] = Point{Owner: 0, Count: 1}
	st.Points[18] = Point{Owner: 1, Count: 2}
	st.Points[16] = Point{Owner: 1, Count: 2}
	st.Points[7] = Point{Owner: 1, Count: 2}
	st.Dice = []int{2, 6}

	err := s.eng.Validate(st, "alice", Move{Kind: MoveStep, From: 24, To: 22})
	s.EqualError(err, "You must play both dice when possible")
	s.NoError(s.eng.Validate(st, "alice", Move{Kind: MoveStep, From: 13, To: 11}))
}

func (s *EngineSuite) TestNoLegalMoveAutoPassesAndRerolls() {
	// Bob is stuck on the bar behind a closed home board, so after
	// alice's last die the turn comes straight back to her.
	st := bareState()
	st.Points[24] = Point{Owner: 0, Count: 1}
	for point := 1; point <= 6; point++ {
		st.Points[point] = Point{Owner: 0, Count: 2}
	}
	st.Bar[1] = 1
	st.Dice = []int{5}

	mv := Move{Kind: MoveStep, From: 24, To: 19}
	s.Require().NoError(s.eng.Validate(st, "alice", mv))
	s.rnd.QueueIntn(1, 2) // bob's roll, unusable
	s.rnd.QueueIntn(3, 4) // alice's reroll
	next := s.eng.Apply(st, "alice", mv)

	s.Equal(model.Seat(0), next.Turn)
	s.Equal([]int{4, 5}, next.Dice)
	s.Equal(1, next.Bar[1])
}

func (s *EngineSuite) TestWinnerIsIdempotent() {
	st := s.newGame(1, 2)
	s.Nil(s.eng.Winner(st))
	s.Nil(s.eng.Winner(st))

	st.Win(1, "bob has borne off all fifteen checkers!")
	first := s.eng.Winner(st)
	second := s.eng.Winner(st)
	s.Equal(first, second)
	s.Equal(model.PlayerID("bob"), *first.Winner)
}

func (s *EngineSuite) TestSpectatorSeesOnlySummary() {
	st := s.newGame(1, 2)
	st.BorneOff = [2]int{3, 1}

	view := s.eng.View(st, "carol")
	spec, ok := view.(games.SpectatorView)
	s.Require().True(ok)
	s.Equal("playing", spec.Status)
	s.Equal([2]int{3, 1}, spec.Scores)
}
