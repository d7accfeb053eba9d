package cribbage

import (
	"errors"
	"fmt"

	"github.com/parlorhub/gameroom-go/internal/dependencies/random"
	"github.com/parlorhub/gameroom-go/internal/games"
	"github.com/parlorhub/gameroom-go/internal/model"
)

// WinningScore ends the game the moment any scoring event reaches it,
// even mid-count. Every addition is capped here.
const WinningScore = 121

// Phase of the round state machine. Dealing happens inside transitions,
// so an observed state is always in one of these three.
type Phase string

const (
	PhaseDiscarding Phase = "discarding"
	PhasePegging    Phase = "pegging"
	PhaseCounting   Phase = "counting"
)

// Counting steps, acknowledged in order
const (
	CountNonDealerHand = iota
	CountDealerHand
	CountCrib
)

// State is the full cribbage game state. Turn names the seat expected
// to act: the pegger, or the acknowledger during counting. While
// discarding, both seats act independently and Turn only marks the
// pegging leader to come.
type State struct {
	games.Table
	Dealer    model.Seat `json:"dealer"`
	Phase     Phase      `json:"phase"`
	Deck      []Card     `json:"deck"`
	Hands     [2][]Card  `json:"hands"` // depleted as pegging plays
	Kept      [2][]Card  `json:"kept"`  // the four post-discard cards, for counting
	Crib      []Card     `json:"crib"`
	Discarded [2]bool    `json:"discarded"`
	Starter   *Card      `json:"starter"`
	Scores    [2]int     `json:"scores"`

	PlaySeq      []Card     `json:"playSeq"` // current pegging sequence since last reset
	PlayTotal    int        `json:"playTotal"`
	LastPeg      model.Seat `json:"lastPeg"`          // seat that played the last card this round
	LastPegScore string     `json:"lastPeggingScore"` // description of the latest pegging score, e.g. "15 for 2"
	CountStep    int        `json:"countStep"`
	RoundCount   int        `json:"roundCount"`
}

// MoveKind distinguishes the two wire shapes; what a selection means
// depends on the current phase
type MoveKind string

const (
	// MoveSelect carries one or two hand indices: a two-card discard
	// while discarding, a single card play while pegging
	MoveSelect MoveKind = "select"
	// MoveAck is the row -1 sentinel: "Go" while pegging, a counting
	// acknowledgment while counting
	MoveAck MoveKind = "ack"
)

// Move is the wire move with its sentinel resolved
type Move struct {
	Kind MoveKind
	A, B int // hand indices for MoveSelect
}

type engine struct {
	rnd random.Random
}

// New returns the boxed cribbage engine
func New(rnd random.Random) games.Game {
	return games.Box[State, Move](engine{rnd: rnd})
}

func (engine) Type() model.GameType {
	return model.GameCribbage
}

func (e engine) Init(players [2]model.PlayerID) *State {
	s := &State{Table: games.NewTable(e.rnd, players)}
	e.deal(s)
	return s
}

// deal starts a round: fresh shuffled deck, six cards each alternating
// from the non-dealer, transient fields cleared
func (e engine) deal(s *State) {
	deck := newDeck(e.rnd)
	s.Hands = [2][]Card{}
	s.Kept = [2][]Card{}
	s.Crib = nil
	s.Discarded = [2]bool{}
	s.Starter = nil
	s.PlaySeq = nil
	s.PlayTotal = 0
	s.LastPegScore = ""
	s.CountStep = 0
	s.RoundCount++

	nonDealer := s.Dealer.Other()
	for i := 0; i < 12; i++ {
		seat := nonDealer
		if i%2 == 1 {
			seat = s.Dealer
		}
		s.Hands[seat] = append(s.Hands[seat], deck[i])
	}
	s.Deck = deck[12:]
	s.Phase = PhaseDiscarding
	s.Turn = nonDealer
}

func (engine) ParseMove(w model.WireMove) (Move, error) {
	if w.From.Row == -1 {
		return Move{Kind: MoveAck}, nil
	}
	return Move{Kind: MoveSelect, A: w.From.Row, B: w.From.Col}, nil
}

func (engine) Validate(s *State, player model.PlayerID, mv Move) error {
	if err := s.CheckPlayer(player); err != nil {
		return err
	}
	seat, _ := s.SeatOf(player)

	switch s.Phase {
	case PhaseDiscarding:
		if mv.Kind != MoveSelect {
			return errors.New("You must discard two cards to the crib")
		}
		if s.Discarded[seat] {
			return errors.New("You have already discarded")
		}
		hand := s.Hands[seat]
		if mv.A < 0 || mv.A >= len(hand) || mv.B < 0 || mv.B >= len(hand) {
			return errors.New("That card is not in your hand")
		}
		if mv.A == mv.B {
			return errors.New("You must discard two different cards")
		}
		return nil

	case PhasePegging:
		if s.ToMove() != player {
			return model.ErrNotYourTurn
		}
		if mv.Kind == MoveAck {
			if canPlay(s, seat) {
				return errors.New("You must play a card if you can")
			}
			return nil
		}
		hand := s.Hands[seat]
		if mv.A < 0 || mv.A >= len(hand) {
			return errors.New("That card is not in your hand")
		}
		if s.PlayTotal+hand[mv.A].Value() > 31 {
			return errors.New("That would take the count over 31")
		}
		return nil

	case PhaseCounting:
		if mv.Kind != MoveAck {
			return errors.New("You can only acknowledge the count")
		}
		if s.ToMove() != player {
			return model.ErrNotYourTurn
		}
		return nil

	default:
		return errors.New("The round is between phases")
	}
}

func (e engine) Apply(s *State, player model.PlayerID, mv Move) *State {
	next := s.clone()
	seat, _ := next.SeatOf(player)

	switch next.Phase {
	case PhaseDiscarding:
		e.applyDiscard(next, seat, mv)
	case PhasePegging:
		if mv.Kind == MoveAck {
			e.applyGo(next, seat)
		} else {
			e.applyPlay(next, seat, mv.A)
		}
	case PhaseCounting:
		e.applyAck(next, seat)
	}
	return next
}

func (e engine) applyDiscard(s *State, seat model.Seat, mv Move) {
	hand := s.Hands[seat]
	s.Crib = append(s.Crib, hand[mv.A], hand[mv.B])
	lo, hi := mv.A, mv.B
	if lo > hi {
		lo, hi = hi, lo
	}
	hand = append(hand[:hi], hand[hi+1:]...)
	hand = append(hand[:lo], hand[lo+1:]...)
	s.Hands[seat] = hand
	s.Discarded[seat] = true

	if !s.Discarded[seat.Other()] {
		return
	}

	// Both discards in: cut the starter and start pegging. A Jack cut
	// scores the dealer two for his heels.
	cut := e.rnd.Intn(len(s.Deck))
	starter := s.Deck[cut]
	s.Starter = &starter
	s.Kept[0] = append([]Card(nil), s.Hands[0]...)
	s.Kept[1] = append([]Card(nil), s.Hands[1]...)
	s.Phase = PhasePegging
	s.Turn = s.Dealer.Other()
	if starter.Rank == JackRank {
		addScore(s, s.Dealer, 2)
	}
}

func (e engine) applyPlay(s *State, seat model.Seat, idx int) {
	hand := s.Hands[seat]
	card := hand[idx]
	s.Hands[seat] = append(hand[:idx], hand[idx+1:]...)
	s.PlaySeq = append(s.PlaySeq, card)
	s.PlayTotal += card.Value()
	s.LastPeg = seat

	pts, desc := pegPoints(s.PlaySeq, s.PlayTotal)
	s.LastPegScore = desc
	addScore(s, seat, pts)
	if s.Over() {
		return
	}

	hitThirtyOne := s.PlayTotal == 31
	if hitThirtyOne {
		s.PlaySeq = nil
		s.PlayTotal = 0
	}

	if len(s.Hands[0]) == 0 && len(s.Hands[1]) == 0 {
		// Hands exhausted: one for last card, unless thirty-one
		// already paid the mover for it
		if !hitThirtyOne {
			s.LastPegScore = "last card for 1"
			addScore(s, seat, 1)
			if s.Over() {
				return
			}
		}
		e.startCounting(s)
		return
	}
	s.Turn = seat.Other()
}

// applyGo handles a seat that cannot play. If the opponent can, play
// passes to them; if both are stuck, the last card's player scores one
// and the seat that did not play last leads a fresh sequence.
func (e engine) applyGo(s *State, seat model.Seat) {
	opp := seat.Other()
	if canPlay(s, opp) {
		s.Turn = opp
		return
	}
	s.LastPegScore = "last card for 1"
	addScore(s, s.LastPeg, 1)
	if s.Over() {
		return
	}
	s.PlaySeq = nil
	s.PlayTotal = 0
	s.Turn = s.LastPeg.Other()
}

// applyAck advances the counting sequence one step. The scoring for a
// step happens as the step is reached, so the game can end mid-count.
func (e engine) applyAck(s *State, seat model.Seat) {
	switch s.CountStep {
	case CountNonDealerHand:
		s.CountStep = CountDealerHand
		s.Turn = s.Dealer
		addScore(s, s.Dealer, scoreHand(s.Kept[s.Dealer], *s.Starter, false))
	case CountDealerHand:
		s.CountStep = CountCrib
		addScore(s, s.Dealer, scoreHand(s.Crib, *s.Starter, true))
	case CountCrib:
		s.Dealer = s.Dealer.Other()
		e.deal(s)
	}
}

// startCounting scores the non-dealer's hand and waits for their
// acknowledgment
func (e engine) startCounting(s *State) {
	s.Phase = PhaseCounting
	s.CountStep = CountNonDealerHand
	s.Turn = s.Dealer.Other()
	addScore(s, s.Dealer.Other(), scoreHand(s.Kept[s.Dealer.Other()], *s.Starter, false))
}

// addScore credits points capped at the winning score and finishes the
// game the instant a seat reaches it
func addScore(s *State, seat model.Seat, pts int) {
	if pts == 0 || s.Over() {
		return
	}
	s.Scores[seat] += pts
	if s.Scores[seat] >= WinningScore {
		s.Scores[seat] = WinningScore
		s.Win(seat, fmt.Sprintf("%s reached 121 points!", s.Player(seat)))
	}
}

func canPlay(s *State, seat model.Seat) bool {
	for _, c := range s.Hands[seat] {
		if s.PlayTotal+c.Value() <= 31 {
			return true
		}
	}
	return false
}

// PlayerView is a seat's redacted view: the deck is never shown, the
// opponent's cards and the crib only as their counting steps reveal
// them
type PlayerView struct {
	games.Table
	Phase        Phase      `json:"phase"`
	Dealer       model.Seat `json:"dealer"`
	Seat         model.Seat `json:"seat"`
	Scores       [2]int     `json:"scores"`
	Starter      *Card      `json:"starter"`
	Hand         []Card     `json:"hand"`
	OppCards     int        `json:"oppCards"`
	Discarded    [2]bool    `json:"discarded"`
	PlaySeq      []Card     `json:"playSeq"`
	PlayTotal    int        `json:"playTotal"`
	LastPegScore string     `json:"lastPeggingScore"`
	CountStep    int        `json:"countStep"`
	Revealed     [2][]Card  `json:"revealed"` // kept hands, once counted
	Crib         []Card     `json:"crib"`     // only at the crib step
	RoundCount   int        `json:"roundCount"`
}

func (engine) View(s *State, viewer model.PlayerID) any {
	seat, seated := s.SeatOf(viewer)
	if !seated {
		status := string(s.Phase)
		if s.Over() {
			status = "finished"
		}
		return games.Spectate(s.Header(), status, s.Scores)
	}

	v := PlayerView{
		Table:        s.Table,
		Phase:        s.Phase,
		Dealer:       s.Dealer,
		Seat:         seat,
		Scores:       s.Scores,
		Starter:      s.Starter,
		Hand:         s.Hands[seat],
		OppCards:     len(s.Hands[seat.Other()]),
		Discarded:    s.Discarded,
		PlaySeq:      s.PlaySeq,
		PlayTotal:    s.PlayTotal,
		LastPegScore: s.LastPegScore,
		CountStep:    s.CountStep,
		RoundCount:   s.RoundCount,
	}
	if s.Phase == PhaseCounting || s.Over() {
		nonDealer := s.Dealer.Other()
		v.Revealed[nonDealer] = s.Kept[nonDealer]
		if s.CountStep >= CountDealerHand {
			v.Revealed[s.Dealer] = s.Kept[s.Dealer]
		}
		if s.CountStep >= CountCrib {
			v.Crib = s.Crib
		}
	}
	return v
}

func (engine) Winner(s *State) *model.Outcome {
	return s.Outcome()
}

func (s *State) clone() *State {
	next := *s
	next.Deck = append([]Card(nil), s.Deck...)
	next.Crib = append([]Card(nil), s.Crib...)
	next.PlaySeq = append([]Card(nil), s.PlaySeq...)
	for seat := 0; seat < 2; seat++ {
		next.Hands[seat] = append([]Card(nil), s.Hands[seat]...)
		next.Kept[seat] = append([]Card(nil), s.Kept[seat]...)
	}
	return &next
}
