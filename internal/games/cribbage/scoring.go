package cribbage

import (
	"fmt"
	"sort"
	"strings"
)

// scoreHand scores four kept cards plus the starter: fifteens, pairs,
// runs, flush and nobs, each counted independently. Crib flushes need
// all five cards to match suit; hand flushes score four without the
// starter.
func scoreHand(hand []Card, starter Card, isCrib bool) int {
	cards := append(append([]Card(nil), hand...), starter)
	score := countFifteens(cards)*2 + countPairs(cards)*2 + runPoints(cards)

	if suit := hand[0].Suit; allSuit(hand, suit) {
		if starter.Suit == suit {
			score += 5
		} else if !isCrib {
			score += 4
		}
	}

	// Nobs: the Jack of the starter's suit, held in hand
	for _, c := range hand {
		if c.Rank == JackRank && c.Suit == starter.Suit {
			score++
			break
		}
	}
	return score
}

// countFifteens counts the distinct card subsets of two or more cards
// whose values sum to exactly fifteen
func countFifteens(cards []Card) int {
	count := 0
	for mask := 1; mask < 1<<len(cards); mask++ {
		sum, size := 0, 0
		for i, c := range cards {
			if mask&(1<<i) != 0 {
				sum += c.Value()
				size++
			}
		}
		if size >= 2 && sum == 15 {
			count++
		}
	}
	return count
}

// countPairs counts every same-rank pairing, not just adjacent cards
func countPairs(cards []Card) int {
	count := 0
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			if cards[i].Rank == cards[j].Rank {
				count++
			}
		}
	}
	return count
}

// runPoints finds the longest consecutive-rank run among all subsets and
// scores its length once per maximal subset achieving it. A double run
// of three scores six this way.
func runPoints(cards []Card) int {
	longest, count := 0, 0
	for mask := 1; mask < 1<<len(cards); mask++ {
		var ranks []int
		for i, c := range cards {
			if mask&(1<<i) != 0 {
				ranks = append(ranks, c.Rank)
			}
		}
		if len(ranks) < 3 || !isRun(ranks) {
			continue
		}
		switch {
		case len(ranks) > longest:
			longest, count = len(ranks), 1
		case len(ranks) == longest:
			count++
		}
	}
	return longest * count
}

// isRun reports whether the ranks form an unbroken consecutive sequence
func isRun(ranks []int) bool {
	sorted := append([]int(nil), ranks...)
	sort.Ints(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return false
		}
	}
	return true
}

// pegPoints scores the card just played: fifteen and thirty-one for
// two, tail pairs and tail runs checked longest-first. The description
// is shown to players, e.g. "15 for 2, pair for 2".
func pegPoints(seq []Card, total int) (int, string) {
	pts := 0
	var parts []string
	if total == 15 || total == 31 {
		pts += 2
		parts = append(parts, fmt.Sprintf("%d for 2", total))
	}

	// Matching ranks at the tail of the sequence
	last := seq[len(seq)-1].Rank
	matched := 1
	for i := len(seq) - 2; i >= 0 && seq[i].Rank == last; i-- {
		matched++
	}
	switch matched {
	case 2:
		pts += 2
		parts = append(parts, "pair for 2")
	case 3:
		pts += 6
		parts = append(parts, "pair royal for 6")
	case 4:
		pts += 12
		parts = append(parts, "double pair royal for 12")
	}

	// Longest run at the tail, any order, no rank repeats
	for length := len(seq); length >= 3; length-- {
		tail := make([]int, 0, length)
		for _, c := range seq[len(seq)-length:] {
			tail = append(tail, c.Rank)
		}
		if isRun(tail) {
			pts += length
			parts = append(parts, fmt.Sprintf("run of %d for %d", length, length))
			break
		}
	}
	return pts, strings.Join(parts, ", ")
}
