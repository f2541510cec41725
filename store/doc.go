// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store defines the persistence contract for items, ballots and rankings.

# Backends

Each backing store implements Store:

  - sqlstore: database/sql, PostgreSQL (lib/pq) or SQLite (modernc.org/sqlite)
  - gormstore: PostgreSQL through gorm and pgx
  - memstore: in-process maps, for tests and throwaway servers

# Snapshot Reads

RankingRepository.GetAll returns rankings of active (not done) items ordered by
ballot and rank position in one read, so a tabulation never sees a half-written
ballot.

# Ranking Replacement

RankingRepository.ReplaceBallotRankings deletes a ballot's rankings and inserts
the new list inside one transaction:

	err := s.ReplaceBallotRankings(ctx, ballot.ID, []string{first, second})

Unknown ballots return ErrNotFound. Constraint violations (duplicate or unknown
items) return ErrConflict. Any failure leaves the previous rankings intact.
*/
package store
