package checkers

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/parlorhub/gameroom-go/internal/dependencies/mocks"
	"github.com/parlorhub/gameroom-go/internal/games"
	"github.com/parlorhub/gameroom-go/internal/model"
)

type EngineSuite struct {
	suite.Suite
	eng engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.eng = engine{rnd: mocks.NewMockRandom()}
}

// newGame seats alice as red
func (s *EngineSuite) newGame() *State {
	return s.eng.Init([2]model.PlayerID{"alice", "bob"})
}

// bare returns a game with an empty board for manual setups
func (s *EngineSuite) bare() *State {
	st := s.newGame()
	st.Board = [BoardSize][BoardSize]*Piece{}
	return st
}

func (s *EngineSuite) put(st *State, seat model.Seat, king bool, row, col int) {
	st.Board[row][col] = &Piece{Seat: seat, King: king}
}

func mv(fr, fc, tr, tc int) Move {
	return Move{
		From: model.Position{Row: fr, Col: fc},
		To:   model.Position{Row: tr, Col: tc},
	}
}

func (s *EngineSuite) countPieces(st *State, seat model.Seat) int {
	count := 0
	for r := range st.Board {
		for _, p := range st.Board[r] {
			if p != nil && p.Seat == seat {
				count++
			}
		}
	}
	return count
}

func (s *EngineSuite) TestOpeningSetup() {
	st := s.newGame()
	s.Equal(12, s.countPieces(st, 0))
	s.Equal(12, s.countPieces(st, 1))
	s.Equal(model.Seat(0), st.Turn)

	for r := range st.Board {
		for c, p := range st.Board[r] {
			if p != nil {
				s.Equal(1, (r+c)%2, "pieces sit on dark squares only")
				s.False(p.King)
			}
		}
	}
}

func (s *EngineSuite) TestSimpleDiagonalMove() {
	st := s.newGame()
	s.Require().NoError(s.eng.Validate(st, "alice", mv(2, 1, 3, 0)))
	next := s.eng.Apply(st, "alice", mv(2, 1, 3, 0))

	s.Nil(next.Board[2][1])
	s.NotNil(next.Board[3][0])
	s.Equal(model.Seat(1), next.Turn)

	// Input untouched
	s.NotNil(st.Board[2][1])
}

func (s *EngineSuite) TestMenCannotMoveBackwards() {
	st := s.bare()
	s.put(st, 0, false, 3, 2)
	s.EqualError(s.eng.Validate(st, "alice", mv(3, 2, 2, 1)), "That piece cannot move backwards")

	st.Board[3][2].King = true
	s.NoError(s.eng.Validate(st, "alice", mv(3, 2, 2, 1)))
}

func (s *EngineSuite) TestMoveShapeValidation() {
	st := s.bare()
	s.put(st, 0, false, 3, 2)
	s.put(st, 1, false, 7, 0)

	s.EqualError(s.eng.Validate(st, "alice", mv(3, 2, 3, 4)), "Pieces move diagonally by one square, or two when jumping")
	s.EqualError(s.eng.Validate(st, "alice", mv(3, 2, 5, 3)), "Pieces move diagonally by one square, or two when jumping")
	s.EqualError(s.eng.Validate(st, "alice", mv(4, 4, 5, 5)), "You have no piece on that square")
	s.EqualError(s.eng.Validate(st, "alice", mv(3, 2, 8, 7)), "That square is not on the board")
	s.EqualError(s.eng.Validate(st, "alice", mv(3, 2, 5, 4)), "There is no opposing piece to jump")
}

func (s *EngineSuite) TestCapturesAreMandatory() {
	st := s.bare()
	s.put(st, 0, false, 2, 1)
	s.put(st, 0, false, 2, 5)
	s.put(st, 1, false, 3, 2)
	s.put(st, 1, false, 7, 0)

	s.EqualError(s.eng.Validate(st, "alice", mv(2, 5, 3, 4)), "You must take an available jump")
	s.Require().NoError(s.eng.Validate(st, "alice", mv(2, 1, 4, 3)))

	next := s.eng.Apply(st, "alice", mv(2, 1, 4, 3))
	s.Nil(next.Board[3][2], "the jumped piece is removed")
	s.Equal([2]int{1, 0}, next.Captured)
	s.Equal(model.Seat(1), next.Turn)
}

func (s *EngineSuite) TestMultiJumpKeepsTheTurn() {
	st := s.bare()
	s.put(st, 0, false, 2, 1)
	s.put(st, 0, false, 0, 1)
	s.put(st, 1, false, 3, 2)
	s.put(st, 1, false, 5, 4)
	s.put(st, 1, false, 7, 0)

	next := s.eng.Apply(st, "alice", mv(2, 1, 4, 3))

	s.Equal(model.Seat(0), next.Turn, "a continuing jump keeps the turn")
	s.Require().NotNil(next.MustJumpFrom)
	s.Equal(model.Position{Row: 4, Col: 3}, *next.MustJumpFrom)

	s.EqualError(s.eng.Validate(next, "alice", mv(0, 1, 1, 0)), "You must continue jumping with the same piece")
	s.Require().NoError(s.eng.Validate(next, "alice", mv(4, 3, 6, 5)))

	done := s.eng.Apply(next, "alice", mv(4, 3, 6, 5))
	s.Nil(done.MustJumpFrom)
	s.Equal([2]int{2, 0}, done.Captured)
	s.Equal(model.Seat(1), done.Turn)
}

func (s *EngineSuite) TestCrowningEndsTheJumpSequence() {
	st := s.bare()
	s.put(st, 0, false, 5, 2)
	s.put(st, 1, false, 6, 3)
	s.put(st, 1, false, 6, 5)
	s.put(st, 1, false, 5, 0)

	next := s.eng.Apply(st, "alice", mv(5, 2, 7, 4))

	crowned := next.Board[7][4]
	s.Require().NotNil(crowned)
	s.True(crowned.King)
	s.Nil(next.MustJumpFrom, "crowning ends the turn even with another jump available")
	s.Equal(model.Seat(1), next.Turn)
}

func (s *EngineSuite) TestCapturingTheLastPieceWins() {
	st := s.bare()
	s.put(st, 0, false, 2, 1)
	s.put(st, 1, false, 3, 2)

	next := s.eng.Apply(st, "alice", mv(2, 1, 4, 3))

	s.True(next.Over())
	s.Require().NotNil(next.WinnerID)
	s.Equal(model.PlayerID("alice"), *next.WinnerID)
	s.Equal("red wins - white has no moves left", next.EndReason)
	s.ErrorIs(s.eng.Validate(next, "bob", mv(0, 0, 1, 1)), model.ErrGameOver)
}

func (s *EngineSuite) TestBlockedOpponentLoses() {
	// White's last man sits in the corner behind red pieces with no
	// square to move to
	st := s.bare()
	s.put(st, 1, false, 0, 7)
	s.put(st, 0, false, 1, 6)
	s.put(st, 0, false, 2, 5)
	s.put(st, 0, false, 2, 7)
	s.put(st, 0, false, 4, 1)

	next := s.eng.Apply(st, "alice", mv(4, 1, 5, 0))

	s.True(next.Over())
	s.Require().NotNil(next.WinnerID)
	s.Equal(model.PlayerID("alice"), *next.WinnerID)
}

func (s *EngineSuite) TestSpectatorViewShowsCaptures() {
	st := s.bare()
	s.put(st, 0, false, 2, 1)
	s.put(st, 1, false, 3, 2)
	s.put(st, 1, false, 7, 0)
	next := s.eng.Apply(st, "alice", mv(2, 1, 4, 3))

	view, ok := s.eng.View(next, "carol").(games.SpectatorView)
	s.Require().True(ok)
	s.Equal([2]int{1, 0}, view.Scores)
	s.Equal("playing", view.Status)
}
