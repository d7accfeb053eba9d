package cribbage

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

// pegState builds a pegging position directly: alice deals at seat 0,
// bob at seat 1 leads
func pegState() *State {
	starter := c(13, Clubs)
	return &State{
		Table:   games.Table{Players: [2]model.PlayerID{"alice", "bob"}, Turn: 1},
		Dealer:  0,
		Phase:   PhasePegging,
		Starter: &starter,
	}
}

func play(idx int) Move {
	return Move{Kind: MoveSelect, A: idx}
}

var ack = Move{Kind: MoveAck}

func (s *EngineSuite) TestDealShape() {
	st := s.eng.Init([2]model.PlayerID{"alice", "bob"})

	s.Equal(PhaseDiscarding, st.Phase)
	s.Equal(model.Seat(0), st.Dealer)
	s.Equal(st.Dealer.Other(), st.Turn)
	s.Len(st.Hands[0], 6)
	s.Len(st.Hands[1], 6)
	s.Len(st.Deck, 40)
	s.Equal(1, st.RoundCount)

	// Every card dealt exactly once
	seen := map[Card]bool{}
	for _, card := range append(append(append([]Card{}, st.Deck...), st.Hands[0]...), st.Hands[1]...) {
		s.False(seen[card])
		seen[card] = true
	}
	s.Len(seen, 52)
}

func (s *EngineSuite) TestDiscardsFillCribAndCutStartsPegging() {
	st := s.eng.Init([2]model.PlayerID{"alice", "bob"})

	s.Require().NoError(s.eng.Validate(st, "alice", Move{Kind: MoveSelect, A: 4, B: 5}))
	st = s.eng.Apply(st, "alice", Move{Kind: MoveSelect, A: 4, B: 5})
	s.Equal(PhaseDiscarding, st.Phase)
	s.Len(st.Hands[0], 4)
	s.Len(st.Crib, 2)
	s.Nil(st.Starter)

	err := s.eng.Validate(st, "alice", Move{Kind: MoveSelect, A: 0, B: 1})
	s.EqualError(err, "You have already discarded")

	s.rnd.QueueIntn(7) // the cut
	s.Require().NoError(s.eng.Validate(st, "bob", Move{Kind: MoveSelect, A: 0, B: 1}))
	st = s.eng.Apply(st, "bob", Move{Kind: MoveSelect, A: 0, B: 1})

	s.Equal(PhasePegging, st.Phase)
	s.Equal(st.Dealer.Other(), st.Turn)
	s.Len(st.Crib, 4)
	s.Require().NotNil(st.Starter)
	s.Equal(st.Deck[7], *st.Starter)
	s.Equal(st.Hands[0], st.Kept[0])
	s.Equal(st.Hands[1], st.Kept[1])
}

func (s *EngineSuite) TestCuttingAJackScoresDealerTwo() {
	deck := newDeck(s.rnd)
	st := &State{
		Table:  games.Table{Players: [2]model.PlayerID{"alice", "bob"}},
		Dealer: 0,
		Phase:  PhaseDiscarding,
		Deck:   deck[:10],
	}
	for i := 0; i < 6; i++ {
		st.Hands[0] = append(st.Hands[0], deck[10+i])
		st.Hands[1] = append(st.Hands[1], deck[20+i])
	}
	// Force the cut onto a Jack
	jack := 0
	for i, card := range st.Deck {
		if card.Rank == JackRank {
			jack = i
			break
		}
	}
	st.Deck[jack] = c(JackRank, Spades)

	st = s.eng.Apply(st, "alice", Move{Kind: MoveSelect, A: 0, B: 1})
	s.rnd.QueueIntn(jack)
	st = s.eng.Apply(st, "bob", Move{Kind: MoveSelect, A: 0, B: 1})

	s.Equal(2, st.Scores[0])
	s.Equal(0, st.Scores[1])
}

func (s *EngineSuite) TestPeggingFifteenScoresTwo() {
	st := pegState()
	st.Hands[1] = []Card{c(7, Spades), c(9, Diamonds)}
	st.Hands[0] = []Card{c(8, Clubs), c(2, Hearts)}

	s.Require().NoError(s.eng.Validate(st, "bob", play(0)))
	st = s.eng.Apply(st, "bob", play(0))
	s.Equal(7, st.PlayTotal)
	s.Equal(model.Seat(0), st.Turn)

	s.Require().NoError(s.eng.Validate(st, "alice", play(0)))
	st = s.eng.Apply(st, "alice", play(0))
	s.Equal(15, st.PlayTotal)
	s.Equal(2, st.Scores[0])
	s.Equal("15 for 2", st.LastPegScore)
}

func (s *EngineSuite) TestPeggingCannotExceedThirtyOne() {
	st := pegState()
	st.PlayTotal = 25
	st.Hands[1] = []Card{c(13, Spades), c(3, Diamonds)}

	err := s.eng.Validate(st, "bob", play(0))
	s.EqualError(err, "That would take the count over 31")
	s.NoError(s.eng.Validate(st, "bob", play(1)))
}

func (s *EngineSuite) TestGoRequiresBeingStuck() {
	st := pegState()
	st.PlayTotal = 25
	st.Hands[1] = []Card{c(3, Diamonds)}

	err := s.eng.Validate(st, "bob", ack)
	s.EqualError(err, "You must play a card if you can")
}

func (s *EngineSuite) TestGoPassesPlayWhenOpponentCanStillPlay() {
	st := pegState()
	st.PlayTotal = 25
	st.Hands[1] = []Card{c(13, Spades)}
	st.Hands[0] = []Card{c(3, Hearts)}
	st.LastPeg = 0

	s.Require().NoError(s.eng.Validate(st, "bob", ack))
	st = s.eng.Apply(st, "bob", ack)
	s.Equal(model.Seat(0), st.Turn)
	s.Equal(25, st.PlayTotal)
}

func (s *EngineSuite) TestBothStuckScoresLastCardAndResets() {
	st := pegState()
	st.PlayTotal = 25
	st.PlaySeq = []Card{c(13, Spades), c(5, Diamonds), c(10, Clubs)}
	st.Hands[1] = []Card{c(13, Hearts)}
	st.Hands[0] = []Card{c(9, Hearts)}
	st.LastPeg = 0 // alice played the last card

	s.Require().NoError(s.eng.Validate(st, "bob", ack))
	st = s.eng.Apply(st, "bob", ack)

	s.Equal(1, st.Scores[0])
	s.Equal(0, st.PlayTotal)
	s.Empty(st.PlaySeq)
	// The seat that did not play last leads the fresh sequence
	s.Equal(model.Seat(1), st.Turn)
}

func (s *EngineSuite) TestExhaustedHandsMoveToCounting() {
	st := pegState()
	st.Turn = 0
	st.PlayTotal = 10
	st.LastPeg = 1
	st.Hands[0] = []Card{c(2, Diamonds)}
	st.Hands[1] = nil
	st.Kept[0] = []Card{c(2, Diamonds), c(6, Clubs), c(9, Spades), c(12, Hearts)}
	st.Kept[1] = []Card{c(1, Spades), c(2, Diamonds), c(6, Clubs), c(8, Hearts)}

	s.Require().NoError(s.eng.Validate(st, "alice", play(0)))
	st = s.eng.Apply(st, "alice", play(0))

	// One for last card to alice, then the non-dealer's hand is scored:
	// ace, six and eight make fifteen
	s.Equal(PhaseCounting, st.Phase)
	s.Equal(CountNonDealerHand, st.CountStep)
	s.Equal(model.Seat(1), st.Turn)
	s.Equal(1, st.Scores[0])
	s.Equal(2, st.Scores[1])
}

func (s *EngineSuite) TestCountingAcksAdvanceInOrder() {
	starter := c(7, Clubs)
	st := &State{
		Table:     games.Table{Players: [2]model.PlayerID{"alice", "bob"}, Turn: 1},
		Dealer:    0,
		Phase:     PhaseCounting,
		CountStep: CountNonDealerHand,
		Starter:   &starter,
	}
	st.Kept[0] = []Card{c(7, Spades), c(8, Diamonds), c(2, Clubs), c(13, Hearts)}   // 7+8 and 7+8 with starter
	st.Kept[1] = []Card{c(2, Hearts), c(4, Spades), c(6, Diamonds), c(12, Clubs)}
	st.Crib = []Card{c(5, Spades), c(13, Diamonds), c(2, Spades), c(9, Hearts)}

	// The dealer cannot acknowledge the non-dealer's count
	s.ErrorIs(s.eng.Validate(st, "alice", ack), model.ErrNotYourTurn)

	s.Require().NoError(s.eng.Validate(st, "bob", ack))
	st = s.eng.Apply(st, "bob", ack)
	s.Equal(CountDealerHand, st.CountStep)
	s.Equal(model.Seat(0), st.Turn)
	s.Positive(st.Scores[0])

	dealerHandScore := st.Scores[0]
	s.ErrorIs(s.eng.Validate(st, "bob", ack), model.ErrNotYourTurn)

	s.Require().NoError(s.eng.Validate(st, "alice", ack))
	st = s.eng.Apply(st, "alice", ack)
	s.Equal(CountCrib, st.CountStep)
	// Crib: 5+K and 2+... the crib scores on its own
	s.GreaterOrEqual(st.Scores[0], dealerHandScore)

	s.Require().NoError(s.eng.Validate(st, "alice", ack))
	st = s.eng.Apply(st, "alice", ack)

	// Next round: dealer alternates and fresh hands go out
	s.Equal(PhaseDiscarding, st.Phase)
	s.Equal(model.Seat(1), st.Dealer)
	s.Equal(model.Seat(0), st.Turn)
	s.Len(st.Hands[0], 6)
	s.Len(st.Hands[1], 6)
	s.Empty(st.Crib)
	s.Nil(st.Starter)
}

func (s *EngineSuite) TestScoreCapsAtWinAndGameEndsImmediately() {
	st := pegState()
	st.Scores[0] = 120
	st.Hands[1] = []Card{c(7, Spades), c(9, Diamonds)}
	st.Hands[0] = []Card{c(8, Clubs), c(2, Hearts)}

	st = s.eng.Apply(st, "bob", play(0))
	st = s.eng.Apply(st, "alice", play(0)) // 15 for 2, but capped

	s.Equal(WinningScore, st.Scores[0])
	s.Require().NotNil(st.WinnerID)
	s.Equal(model.PlayerID("alice"), *st.WinnerID)
	s.ErrorIs(s.eng.Validate(st, "bob", play(0)), model.ErrGameOver)
}

func (s *EngineSuite) TestViewHidesOpponentCardsAndDeck() {
	st := pegState()
	st.Hands[0] = []Card{c(8, Clubs), c(2, Hearts)}
	st.Hands[1] = []Card{c(7, Spades), c(9, Diamonds), c(4, Clubs)}
	st.Deck = []Card{c(5, Spades), c(5, Diamonds)}
	st.Crib = []Card{c(13, Spades), c(13, Diamonds), c(12, Spades), c(9, Hearts)}

	view, ok := s.eng.View(st, "alice").(PlayerView)
	s.Require().True(ok)
	s.Equal(st.Hands[0], view.Hand)
	s.Equal(3, view.OppCards)
	s.Empty(view.Revealed[1])
	s.Empty(view.Crib)
}

func (s *EngineSuite) TestViewRevealsHandsAsCountingProgresses() {
	starter := c(7, Clubs)
	st := &State{
		Table:     games.Table{Players: [2]model.PlayerID{"alice", "bob"}, Turn: 1},
		Dealer:    0,
		Phase:     PhaseCounting,
		CountStep: CountNonDealerHand,
		Starter:   &starter,
	}
	st.Kept[0] = []Card{c(7, Spades), c(8, Diamonds), c(2, Clubs), c(13, Hearts)}
	st.Kept[1] = []Card{c(2, Hearts), c(4, Spades), c(6, Diamonds), c(12, Clubs)}
	st.Crib = []Card{c(5, Spades), c(13, Diamonds), c(2, Spades), c(9, Hearts)}

	view := s.eng.View(st, "alice").(PlayerView)
	s.Equal(st.Kept[1], view.Revealed[1])
	s.Empty(view.Revealed[0])
	s.Empty(view.Crib)

	st.CountStep = CountDealerHand
	view = s.eng.View(st, "bob").(PlayerView)
	s.Equal(st.Kept[0], view.Revealed[0])
	s.Empty(view.Crib)

	st.CountStep = CountCrib
	view = s.eng.View(st, "bob").(PlayerView)
	s.Equal(st.Crib, view.Crib)
}

func (s *EngineSuite) TestSpectatorSeesScoresOnly() {
	st := pegState()
	st.Scores = [2]int{30, 45}

	view, ok := s.eng.View(st, "carol").(games.SpectatorView)
	s.Require().True(ok)
	s.Equal([2]int{30, 45}, view.Scores)
	s.Equal("pegging", view.Status)
}
