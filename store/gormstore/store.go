// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gormstore

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"modernc.org/sqlite"

	"github.com/ltungv/poll/auth"
	"github.com/ltungv/poll/models"
	"github.com/ltungv/poll/store"
)

// Store implements store.Store on gorm. Production runs it over PostgreSQL;
// tests run it over SQLite.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(db *gorm.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) ListItems(ctx context.Context) ([]models.Item, error) {
	var rows []itemModel
	if err := s.db.WithContext(ctx).Order("title, id").Find(&rows).Error; err != nil {
		return nil, s.logError("gormstore_list_items_failed", errors.Wrap(err, "list items"))
	}
	return toItems(rows), nil
}

func (s *Store) ListActiveItems(ctx context.Context) ([]models.Item, error) {
	var rows []itemModel
	if err := s.db.WithContext(ctx).
		Where("NOT done").
		Order("title, id").
		Find(&rows).Error; err != nil {
		return nil, s.logError("gormstore_list_active_items_failed", errors.Wrap(err, "list active items"))
	}
	return toItems(rows), nil
}

func (s *Store) CreateItem(ctx context.Context, item models.Item) error {
	row := itemModelFromItem(item)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isConstraintViolation(err) {
			return store.ErrConflict
		}
		return s.logError("gormstore_create_item_failed", errors.Wrap(err, "create item"), "item_id", item.ID)
	}
	return nil
}

func (s *Store) SetItemDone(ctx context.Context, itemID string, done bool) error {
	res := s.db.WithContext(ctx).
		Model(&itemModel{}).
		Where("id = ?", itemID).
		Update("done", done)
	if res.Error != nil {
		return s.logError("gormstore_set_item_done_failed", errors.Wrap(res.Error, "update item"), "item_id", itemID)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) FindRankedByBallot(ctx context.Context, ballotID string) ([]models.Item, error) {
	var rows []itemModel
	err := s.db.WithContext(ctx).
		Table("items").
		Select("items.*").
		Joins("INNER JOIN rankings ON items.id = rankings.item_id").
		Where("NOT items.done AND rankings.ballot_id = ?", ballotID).
		Order("rankings.ord ASC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, s.logError("gormstore_find_ranked_failed", errors.Wrap(err, "find ranked items"), "ballot_id", ballotID)
	}
	return toItems(rows), nil
}

func (s *Store) FindUnrankedByBallot(ctx context.Context, ballotID string) ([]models.Item, error) {
	var rows []itemModel
	err := s.db.WithContext(ctx).
		Table("items").
		Select("items.*").
		Joins("LEFT JOIN rankings ON items.id = rankings.item_id AND rankings.ballot_id = ?", ballotID).
		Where("NOT items.done AND rankings.ballot_id IS NULL").
		Order("items.title, items.id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, s.logError("gormstore_find_unranked_failed", errors.Wrap(err, "find unranked items"), "ballot_id", ballotID)
	}
	return toItems(rows), nil
}

func (s *Store) FindBallotByUUID(ctx context.Context, id uuid.UUID) (models.Ballot, error) {
	var row ballotModel
	err := s.db.WithContext(ctx).Where("uuid = ?", id.String()).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Ballot{}, store.ErrNotFound
		}
		return models.Ballot{}, s.logError("gormstore_find_ballot_failed", errors.Wrap(err, "find ballot"), "uuid", id.String())
	}
	return row.toBallot()
}

func (s *Store) CreateBallot(ctx context.Context, id uuid.UUID) (models.Ballot, error) {
	ballotID, err := auth.GenerateID(16)
	if err != nil {
		return models.Ballot{}, err
	}

	row := ballotModel{ID: ballotID, UUID: id.String()}
	err = s.db.WithContext(ctx).
		Exec("INSERT INTO ballots (id, uuid) VALUES (?, ?) ON CONFLICT (uuid) DO NOTHING", row.ID, row.UUID).
		Error
	if err != nil {
		return models.Ballot{}, s.logError("gormstore_create_ballot_failed", errors.Wrap(err, "create ballot"), "uuid", id.String())
	}
	return s.FindBallotByUUID(ctx, id)
}

func (s *Store) CountBallots(ctx context.Context) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&ballotModel{}).Count(&count).Error; err != nil {
		return 0, s.logError("gormstore_count_ballots_failed", errors.Wrap(err, "count ballots"))
	}
	return int(count), nil
}

func (s *Store) GetAll(ctx context.Context) ([]models.Ranking, error) {
	var rows []rankingRow
	err := s.db.WithContext(ctx).
		Table("rankings").
		Select(`rankings.ord AS ord,
			items.id AS item_id, items.title AS item_title,
			items.content AS item_content, items.done AS item_done,
			ballots.id AS ballot_id, ballots.uuid AS ballot_uuid`).
		Joins("INNER JOIN items ON rankings.item_id = items.id").
		Joins("INNER JOIN ballots ON rankings.ballot_id = ballots.id").
		Where("NOT items.done").
		Order("rankings.ballot_id ASC, rankings.ord ASC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, s.logError("gormstore_get_rankings_failed", errors.Wrap(err, "get rankings"))
	}

	rankings := make([]models.Ranking, 0, len(rows))
	for _, row := range rows {
		ranking, err := row.toRanking()
		if err != nil {
			return nil, err
		}
		rankings = append(rankings, ranking)
	}
	return rankings, nil
}

func (s *Store) ReplaceBallotRankings(ctx context.Context, ballotID string, itemIDs []string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&ballotModel{}).Where("id = ?", ballotID).Count(&count).Error; err != nil {
			return errors.Wrap(err, "check ballot")
		}
		if count == 0 {
			return store.ErrNotFound
		}

		if err := tx.Where("ballot_id = ?", ballotID).Delete(&rankingModel{}).Error; err != nil {
			return errors.Wrap(err, "delete rankings")
		}

		if len(itemIDs) == 0 {
			return nil
		}
		rows := rankingModels(store.NewRankings(ballotID, itemIDs))
		if err := tx.Create(&rows).Error; err != nil {
			if isConstraintViolation(err) {
				return store.ErrConflict
			}
			return errors.Wrap(err, "insert rankings")
		}
		return nil
	})
	if err != nil && !errors.Is(err, store.ErrNotFound) && !errors.Is(err, store.ErrConflict) {
		return s.logError("gormstore_replace_rankings_failed", err,
			"ballot_id", ballotID,
			"count", len(itemIDs),
		)
	}
	return err
}

func (s *Store) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+4)
	fields = append(fields,
		"event", event,
		"layer", "gormstore",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	s.logger.Error("store operation failed", fields...)
	return err
}

// sqliteConstraint is the primary result code shared by SQLITE_CONSTRAINT_*
const sqliteConstraint = 19

// isConstraintViolation matches SQLSTATE class 23 (integrity constraint
// violation) from pgx and SQLITE_CONSTRAINT from modernc sqlite
func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return len(pgErr.Code) == 5 && pgErr.Code[:2] == "23"
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqliteConstraint
	}
	return false
}

var _ store.Store = (*Store)(nil)
