// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ltungv/poll/auth"
	"github.com/ltungv/poll/models"
	"github.com/ltungv/poll/store"
)

// ItemService serves candidate items to voters and administrators
type ItemService struct {
	items  store.ItemRepository
	logger *slog.Logger
}

func NewItemService(st store.ItemRepository, logger *slog.Logger) *ItemService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ItemService{items: st, logger: logger}
}

// BallotItems returns the ballot's ranked items in order and the active items it left out
func (s *ItemService) BallotItems(ctx context.Context, ballotID string) (ranked, unranked []models.Item, err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ranked, err = s.items.FindRankedByBallot(ctx, ballotID)
		return err
	})
	g.Go(func() error {
		var err error
		unranked, err = s.items.FindUnrankedByBallot(ctx, ballotID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("failed to load ballot items: %w", err)
	}

	if ranked == nil {
		ranked = []models.Item{}
	}
	if unranked == nil {
		unranked = []models.Item{}
	}
	return ranked, unranked, nil
}

func (s *ItemService) List(ctx context.Context) ([]models.Item, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// Create adds a new active item
func (s *ItemService) Create(ctx context.Context, title, content string) (models.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Item{}, ErrInvalidTitle
	}

	id, err := auth.GenerateID(12)
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to generate item ID: %w", err)
	}

	item := models.Item{ID: id, Title: title, Content: content}
	if err := s.items.CreateItem(ctx, item); err != nil {
		return models.Item{}, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Info("item created", "item_id", item.ID)
	return item, nil
}

// SetDone retires (done=true) or restores an item. Stored rankings are kept;
// retired items are skipped when tabulating.
func (s *ItemService) SetDone(ctx context.Context, itemID string, done bool) error {
	if err := s.items.SetItemDone(ctx, itemID, done); err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	s.logger.Info("item updated", "item_id", itemID, "done", done)
	return nil
}
