// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package irv

import (
	"cmp"
	"slices"
)

// Outcome says how a tabulation ended
type Outcome int

const (
	// NoWinner means no ballot cast a vote in the final round
	NoWinner Outcome = iota
	// Tied means every remaining key received the same number of votes
	Tied
	// Winner means exactly one key holds the most votes
	Winner
)

func (o Outcome) String() string {
	switch o {
	case Tied:
		return "tied"
	case Winner:
		return "winner"
	default:
		return "no_winner"
	}
}

// Round is the tally of one pass over the ballots
type Round[K cmp.Ordered] struct {
	Number     int
	Tally      map[K]int
	Eliminated []K // sorted, empty on the final round
}

// Result of an instant-runoff tabulation
type Result[K cmp.Ordered] struct {
	Outcome Outcome
	Winner  K   // set when Outcome == Winner
	Tied    []K // sorted, set when Outcome == Tied
	Rounds  []Round[K]
}

// Tabulate determines the best key using instant-runoff voting. Each ballot lists
// keys from most to least preferred. The winner is only guaranteed to hold a strict
// plurality in the last round, not a majority of all ballots.
func Tabulate[K cmp.Ordered](ballots [][]K) Result[K] {
	eliminated := make(map[K]struct{})
	var rounds []Round[K]

	for {
		tally := countRound(ballots, eliminated)
		if len(tally) == 0 {
			return Result[K]{Outcome: NoWinner, Rounds: rounds}
		}

		maxCount, minCount := extremes(tally)
		best := keysWithCount(tally, maxCount)
		round := Round[K]{Number: len(rounds) + 1, Tally: tally}

		if len(best) == 1 {
			rounds = append(rounds, round)
			return Result[K]{Outcome: Winner, Winner: best[0], Rounds: rounds}
		}

		// Nothing left to discriminate on
		if maxCount == minCount {
			rounds = append(rounds, round)
			return Result[K]{Outcome: Tied, Tied: best, Rounds: rounds}
		}

		// All keys tied for last place go out together
		round.Eliminated = keysWithCount(tally, minCount)
		for _, k := range round.Eliminated {
			eliminated[k] = struct{}{}
		}
		rounds = append(rounds, round)
	}
}

// countRound gives every ballot's vote to its highest-ranked surviving key.
// Exhausted ballots are skipped.
func countRound[K cmp.Ordered](ballots [][]K, eliminated map[K]struct{}) map[K]int {
	tally := make(map[K]int)
	for _, ballot := range ballots {
		for _, k := range ballot {
			if _, out := eliminated[k]; out {
				continue
			}
			tally[k]++
			break
		}
	}
	return tally
}

// extremes returns the highest and lowest counts of a non-empty tally
func extremes[K cmp.Ordered](tally map[K]int) (maxCount, minCount int) {
	first := true
	for _, v := range tally {
		if first {
			maxCount, minCount = v, v
			first = false
			continue
		}
		maxCount = max(maxCount, v)
		minCount = min(minCount, v)
	}
	return maxCount, minCount
}

// keysWithCount returns the sorted keys whose tally equals count
func keysWithCount[K cmp.Ordered](tally map[K]int, count int) []K {
	var keys []K
	for k, v := range tally {
		if v == count {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}
