// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package service holds the poll's use cases on top of a store.Store.

# Ranking Service

Result loads every ranking of an active item in one read, groups the rows
into ballots of item IDs and runs irv.Tabulate over them:

	rankings := service.NewRankingService(st, logger)
	result, err := rankings.Result(ctx)

ReplaceRankings rejects lists that name an item twice (ErrDuplicateItem) or
name an item that is unknown or retired (ErrUnknownItem), then replaces the
ballot's rankings in one transaction.

# Ballot Service

Register accepts the voter's UUID. Values that do not parse are replaced with
a new random UUID. Find returns store.ErrNotFound for unknown or malformed UUIDs.

# Item Service

BallotItems loads a ballot's ranked and unranked items concurrently. Create,
List and SetDone administer the candidate items.
*/
package service
