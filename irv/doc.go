// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package irv implements single-winner instant-runoff voting.

# Tabulation

Tabulate takes ballots as ordered key lists, most preferred first:

	result := irv.Tabulate([][]string{
		{"bob", "bill", "sue"},
		{"sue", "bob", "bill"},
		{"bill", "sue", "bob"},
	})

Each round, every ballot votes for its highest-ranked key that has not been
eliminated. A key holding strictly the most votes wins. If every remaining key
has the same count the result is a tie. Otherwise all keys sharing the lowest
count are eliminated together and the next round starts.

# Results

	switch result.Outcome {
	case irv.Winner:   // result.Winner
	case irv.Tied:     // result.Tied, sorted
	case irv.NoWinner: // empty input or every ballot exhausted
	}

Result.Rounds keeps each round's tally and eliminations.

# Keys

Keys are compared by value. Callers tally stable identifiers (item IDs), not
whole records, so a record whose payload changes still matches its earlier
ballot entries.

Tabulate keeps no state between calls and never mutates its input.
*/
package irv
