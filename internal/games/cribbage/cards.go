package cribbage

import (
	"fmt"

	"github.com/parlorhub/gameroom-go/internal/dependencies/random"
	"github.com/parlorhub/gameroom-go/internal/games"
)

// Suit of a standard playing card
type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

var suits = [4]Suit{Hearts, Diamonds, Clubs, Spades}

const JackRank = 11

// Card is one playing card. Rank runs 1 (ace) to 13 (king).
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// Value is the card's pegging and fifteen value: face cards count ten
func (c Card) Value() int {
	if c.Rank > 10 {
		return 10
	}
	return c.Rank
}

func (c Card) String() string {
	names := map[int]string{1: "A", 11: "J", 12: "Q", 13: "K"}
	r, ok := names[c.Rank]
	if !ok {
		r = fmt.Sprintf("%d", c.Rank)
	}
	return fmt.Sprintf("%s of %s", r, c.Suit)
}

// allSuit reports whether every card matches the suit
func allSuit(cards []Card, suit Suit) bool {
	for _, c := range cards {
		if c.Suit != suit {
			return false
		}
	}
	return true
}

// newDeck returns a shuffled standard 52-card deck
func newDeck(rnd random.Random) []Card {
	deck := make([]Card, 0, 52)
	for _, suit := range suits {
		for rank := 1; rank <= 13; rank++ {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	games.Shuffle(rnd, len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}
