package tictactoe

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

// newGame seats alice as X
func (s *EngineSuite) newGame() *State {
	return s.eng.Init([2]model.PlayerID{"alice", "bob"})
}

func at(row, col int) Move {
	return Move{Pos: model.Position{Row: row, Col: col}}
}

// play validates and applies a move for whoever is to move
func (s *EngineSuite) play(st *State, moves ...Move) *State {
	for _, mv := range moves {
		player := st.ToMove()
		s.Require().NoError(s.eng.Validate(st, player, mv))
		st = s.eng.Apply(st, player, mv)
	}
	return st
}

func (s *EngineSuite) TestXMovesFirst() {
	st := s.newGame()
	s.Equal(model.Seat(0), st.Turn)
	s.Equal(model.PlayerID("alice"), st.ToMove())
	s.ErrorIs(s.eng.Validate(st, "bob", at(1, 1)), model.ErrNotYourTurn)
	s.ErrorIs(s.eng.Validate(st, "mallory", at(1, 1)), model.ErrNotInGame)
}

func (s *EngineSuite) TestParseMoveReadsDestination() {
	mv, err := s.eng.ParseMove(model.WireMove{To: model.Position{Row: 2, Col: 1}})
	s.Require().NoError(err)
	s.Equal(at(2, 1), mv)
}

func (s *EngineSuite) TestOccupiedSquareRejected() {
	st := s.play(s.newGame(), at(1, 1))
	err := s.eng.Validate(st, "bob", at(1, 1))
	s.EqualError(err, "That square is already taken")
}

func (s *EngineSuite) TestOffBoardRejected() {
	st := s.newGame()
	s.EqualError(s.eng.Validate(st, "alice", at(3, 0)), "That square is not on the board")
	s.EqualError(s.eng.Validate(st, "alice", at(0, -1)), "That square is not on the board")
}

func (s *EngineSuite) TestTopRowWins() {
	st := s.play(s.newGame(), at(0, 0), at(1, 0), at(0, 1), at(1, 1), at(0, 2))

	s.True(st.Over())
	s.Require().NotNil(st.WinnerID)
	s.Equal(model.PlayerID("alice"), *st.WinnerID)
	s.Equal("X wins with three in a row!", st.EndReason)

	outcome := s.eng.Winner(st)
	s.Require().NotNil(outcome)
	s.Equal(model.PlayerID("alice"), *outcome.Winner)
}

func (s *EngineSuite) TestDiagonalWinForO() {
	st := s.play(s.newGame(), at(0, 1), at(0, 0), at(0, 2), at(1, 1), at(1, 0), at(2, 2))

	s.Require().NotNil(st.WinnerID)
	s.Equal(model.PlayerID("bob"), *st.WinnerID)
	s.Equal("O wins with three in a row!", st.EndReason)
}

func (s *EngineSuite) TestFullBoardIsADraw() {
	// X O X / X X O / O X O with no line for either mark
	st := s.play(s.newGame(),
		at(0, 0), at(0, 1),
		at(0, 2), at(1, 2),
		at(1, 0), at(2, 0),
		at(1, 1), at(2, 2),
		at(2, 1),
	)

	s.True(st.Over())
	s.Nil(st.WinnerID)
	s.Equal("The board is full - it's a draw", st.EndReason)

	outcome := s.eng.Winner(st)
	s.Require().NotNil(outcome)
	s.Nil(outcome.Winner)
}

func (s *EngineSuite) TestNoMovesAfterGameOver() {
	st := s.play(s.newGame(), at(0, 0), at(1, 0), at(0, 1), at(1, 1), at(0, 2))
	s.ErrorIs(s.eng.Validate(st, "bob", at(2, 2)), model.ErrGameOver)
}

func (s *EngineSuite) TestApplyDoesNotMutateInput() {
	st := s.newGame()
	s.eng.Apply(st, "alice", at(1, 1))
	s.Empty(st.Board[1][1])
	s.Equal(model.Seat(0), st.Turn)
}

func (s *EngineSuite) TestSpectatorViewHidesNothingButStaysSmall() {
	st := s.play(s.newGame(), at(1, 1))

	view, ok := s.eng.View(st, "carol").(games.SpectatorView)
	s.Require().True(ok)
	s.Equal("playing", view.Status)
	s.Equal([2]model.PlayerID{"alice", "bob"}, view.Players)

	full, ok := s.eng.View(st, "alice").(*State)
	s.Require().True(ok)
	s.Equal("X", full.Board[1][1])
}
