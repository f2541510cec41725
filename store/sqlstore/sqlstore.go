// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"modernc.org/sqlite"

	"github.com/ltungv/poll/auth"
	"github.com/ltungv/poll/models"
	"github.com/ltungv/poll/store"
)

// SQLITE_CONSTRAINT primary result code
const sqliteConstraint = 19

// Store implements store.Store on database/sql. Queries use $N placeholders,
// which both PostgreSQL and SQLite accept.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ListItems(ctx context.Context) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, done
		FROM items
		ORDER BY title, id
	`)
	if err != nil {
		return nil, s.logError("sqlstore_list_items_failed", errors.Wrap(err, "query items"))
	}
	return scanItems(rows)
}

func (s *Store) ListActiveItems(ctx context.Context) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, done
		FROM items
		WHERE NOT done
		ORDER BY title, id
	`)
	if err != nil {
		return nil, s.logError("sqlstore_list_active_items_failed", errors.Wrap(err, "query active items"))
	}
	return scanItems(rows)
}

func (s *Store) CreateItem(ctx context.Context, item models.Item) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (id, title, content, done)
		VALUES ($1, $2, $3, $4)
	`, item.ID, item.Title, item.Content, item.Done)
	if err != nil {
		if isConstraintViolation(err) {
			return store.ErrConflict
		}
		return s.logError("sqlstore_create_item_failed", errors.Wrap(err, "insert item"), "item_id", item.ID)
	}
	return nil
}

func (s *Store) SetItemDone(ctx context.Context, itemID string, done bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE items SET done = $1 WHERE id = $2`, done, itemID)
	if err != nil {
		return s.logError("sqlstore_set_item_done_failed", errors.Wrap(err, "update item"), "item_id", itemID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) FindRankedByBallot(ctx context.Context, ballotID string) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT items.id, items.title, items.content, items.done
		FROM items
		INNER JOIN rankings ON items.id = rankings.item_id
		WHERE NOT items.done AND rankings.ballot_id = $1
		ORDER BY rankings.ord ASC
	`, ballotID)
	if err != nil {
		return nil, s.logError("sqlstore_find_ranked_failed", errors.Wrap(err, "query ranked items"), "ballot_id", ballotID)
	}
	return scanItems(rows)
}

func (s *Store) FindUnrankedByBallot(ctx context.Context, ballotID string) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT items.id, items.title, items.content, items.done
		FROM items
		LEFT JOIN rankings ON items.id = rankings.item_id AND rankings.ballot_id = $1
		WHERE NOT items.done AND rankings.ballot_id IS NULL
		ORDER BY items.title, items.id
	`, ballotID)
	if err != nil {
		return nil, s.logError("sqlstore_find_unranked_failed", errors.Wrap(err, "query unranked items"), "ballot_id", ballotID)
	}
	return scanItems(rows)
}

func (s *Store) FindBallotByUUID(ctx context.Context, id uuid.UUID) (models.Ballot, error) {
	var ballot models.Ballot
	var raw string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, uuid FROM ballots WHERE uuid = $1
	`, id.String()).Scan(&ballot.ID, &raw)
	if err == sql.ErrNoRows {
		return models.Ballot{}, store.ErrNotFound
	}
	if err != nil {
		return models.Ballot{}, s.logError("sqlstore_find_ballot_failed", errors.Wrap(err, "query ballot"), "uuid", id.String())
	}
	ballot.UUID, err = uuid.Parse(raw)
	if err != nil {
		return models.Ballot{}, errors.Wrapf(err, "parse stored uuid of ballot %s", ballot.ID)
	}
	return ballot, nil
}

func (s *Store) CreateBallot(ctx context.Context, id uuid.UUID) (models.Ballot, error) {
	ballotID, err := auth.GenerateID(16)
	if err != nil {
		return models.Ballot{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ballots (id, uuid)
		VALUES ($1, $2)
		ON CONFLICT (uuid) DO NOTHING
	`, ballotID, id.String())
	if err != nil {
		return models.Ballot{}, s.logError("sqlstore_create_ballot_failed", errors.Wrap(err, "insert ballot"), "uuid", id.String())
	}

	return s.FindBallotByUUID(ctx, id)
}

func (s *Store) CountBallots(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ballots`).Scan(&count); err != nil {
		return 0, s.logError("sqlstore_count_ballots_failed", errors.Wrap(err, "count ballots"))
	}
	return count, nil
}

func (s *Store) GetAll(ctx context.Context) ([]models.Ranking, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			rankings.ord,
			items.id, items.title, items.content, items.done,
			ballots.id, ballots.uuid
		FROM rankings
		INNER JOIN items ON rankings.item_id = items.id
		INNER JOIN ballots ON rankings.ballot_id = ballots.id
		WHERE NOT items.done
		ORDER BY rankings.ballot_id ASC, rankings.ord ASC
	`)
	if err != nil {
		return nil, s.logError("sqlstore_get_rankings_failed", errors.Wrap(err, "query rankings"))
	}
	defer rows.Close()

	var rankings []models.Ranking
	for rows.Next() {
		var r models.Ranking
		var raw string
		if err := rows.Scan(
			&r.Ord,
			&r.Item.ID, &r.Item.Title, &r.Item.Content, &r.Item.Done,
			&r.Ballot.ID, &raw,
		); err != nil {
			return nil, errors.Wrap(err, "scan ranking")
		}
		if r.Ballot.UUID, err = uuid.Parse(raw); err != nil {
			return nil, errors.Wrapf(err, "parse stored uuid of ballot %s", r.Ballot.ID)
		}
		rankings = append(rankings, r)
	}
	return rankings, errors.Wrap(rows.Err(), "iterate rankings")
}

func (s *Store) ReplaceBallotRankings(ctx context.Context, ballotID string, itemIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.logError("sqlstore_begin_failed", errors.Wrap(err, "begin ranking transaction"), "ballot_id", ballotID)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM ballots WHERE id = $1)
	`, ballotID).Scan(&exists)
	if err != nil {
		return s.logError("sqlstore_check_ballot_failed", errors.Wrap(err, "check ballot"), "ballot_id", ballotID)
	}
	if !exists {
		return store.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM rankings WHERE ballot_id = $1`, ballotID); err != nil {
		return s.logError("sqlstore_delete_rankings_failed", errors.Wrap(err, "delete rankings"), "ballot_id", ballotID)
	}

	if len(itemIDs) > 0 {
		query, args := bulkInsertRankings(store.NewRankings(ballotID, itemIDs))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isConstraintViolation(err) {
				return store.ErrConflict
			}
			return s.logError("sqlstore_insert_rankings_failed", errors.Wrap(err, "insert rankings"),
				"ballot_id", ballotID,
				"count", len(itemIDs),
			)
		}
	}

	if err := tx.Commit(); err != nil {
		return s.logError("sqlstore_commit_failed", errors.Wrap(err, "commit ranking transaction"), "ballot_id", ballotID)
	}
	return nil
}

// bulkInsertRankings builds one multi-row INSERT for all rankings
func bulkInsertRankings(rankings []models.NewRanking) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO rankings (ballot_id, item_id, ord) VALUES ")

	args := make([]any, 0, len(rankings)*3)
	for i, r := range rankings {
		if i > 0 {
			b.WriteString(", ")
		}
		n := len(args)
		fmt.Fprintf(&b, "($%d, $%d, $%d)", n+1, n+2, n+3)
		args = append(args, r.BallotID, r.ItemID, r.Ord)
	}
	return b.String(), args
}

func scanItems(rows *sql.Rows) ([]models.Item, error) {
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Title, &item.Content, &item.Done); err != nil {
			return nil, errors.Wrap(err, "scan item")
		}
		items = append(items, item)
	}
	return items, errors.Wrap(rows.Err(), "iterate items")
}

// isConstraintViolation reports unique, foreign key and check failures from
// either driver
func isConstraintViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "23"
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqliteConstraint
	}
	return false
}

func (s *Store) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+4)
	fields = append(fields,
		"event", event,
		"layer", "sqlstore",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	s.logger.Error("store operation failed", fields...)
	return err
}

var _ store.Store = (*Store)(nil)
