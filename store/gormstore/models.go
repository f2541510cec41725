// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gormstore

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ltungv/poll/models"
)

type itemModel struct {
	ID      string `gorm:"column:id;primaryKey"`
	Title   string `gorm:"column:title"`
	Content string `gorm:"column:content"`
	Done    bool   `gorm:"column:done"`
}

func (itemModel) TableName() string { return "items" }

type ballotModel struct {
	ID   string `gorm:"column:id;primaryKey"`
	UUID string `gorm:"column:uuid"`
}

func (ballotModel) TableName() string { return "ballots" }

type rankingModel struct {
	BallotID string `gorm:"column:ballot_id;primaryKey"`
	Ord      int    `gorm:"column:ord;primaryKey"`
	ItemID   string `gorm:"column:item_id"`
}

func (rankingModel) TableName() string { return "rankings" }

// rankingRow is the flattened snapshot join
type rankingRow struct {
	Ord         int    `gorm:"column:ord"`
	ItemID      string `gorm:"column:item_id"`
	ItemTitle   string `gorm:"column:item_title"`
	ItemContent string `gorm:"column:item_content"`
	ItemDone    bool   `gorm:"column:item_done"`
	BallotID    string `gorm:"column:ballot_id"`
	BallotUUID  string `gorm:"column:ballot_uuid"`
}

func itemModelFromItem(item models.Item) itemModel {
	return itemModel{ID: item.ID, Title: item.Title, Content: item.Content, Done: item.Done}
}

func (m itemModel) toItem() models.Item {
	return models.Item{ID: m.ID, Title: m.Title, Content: m.Content, Done: m.Done}
}

func toItems(rows []itemModel) []models.Item {
	items := make([]models.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toItem())
	}
	return items
}

func (m ballotModel) toBallot() (models.Ballot, error) {
	id, err := uuid.Parse(m.UUID)
	if err != nil {
		return models.Ballot{}, errors.Wrapf(err, "parse stored uuid of ballot %s", m.ID)
	}
	return models.Ballot{ID: m.ID, UUID: id}, nil
}

func (r rankingRow) toRanking() (models.Ranking, error) {
	ballot, err := ballotModel{ID: r.BallotID, UUID: r.BallotUUID}.toBallot()
	if err != nil {
		return models.Ranking{}, err
	}
	return models.Ranking{
		Ord: r.Ord,
		Item: models.Item{
			ID:      r.ItemID,
			Title:   r.ItemTitle,
			Content: r.ItemContent,
			Done:    r.ItemDone,
		},
		Ballot: ballot,
	}, nil
}

func rankingModels(rankings []models.NewRanking) []rankingModel {
	rows := make([]rankingModel, len(rankings))
	for i, r := range rankings {
		rows[i] = rankingModel{BallotID: r.BallotID, Ord: r.Ord, ItemID: r.ItemID}
	}
	return rows
}
