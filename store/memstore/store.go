// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package memstore

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/ltungv/poll/auth"
	"github.com/ltungv/poll/models"
	"github.com/ltungv/poll/store"
)

// Store keeps items, ballots and rankings in maps guarded by one lock.
// Rankings are replaced by swapping the whole slice under the write lock.
type Store struct {
	mu sync.RWMutex

	items    map[string]models.Item
	ballots  map[string]models.Ballot // by ballot ID
	byUUID   map[uuid.UUID]string
	rankings map[string][]string // ballot ID -> item IDs in rank order
}

func New(seed []models.Item) *Store {
	items := make(map[string]models.Item, len(seed))
	for _, item := range seed {
		items[item.ID] = item
	}
	return &Store{
		items:    items,
		ballots:  make(map[string]models.Ballot),
		byUUID:   make(map[uuid.UUID]string),
		rankings: make(map[string][]string),
	}
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) ListItems(ctx context.Context) ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedItems(func(models.Item) bool { return true }), nil
}

func (s *Store) ListActiveItems(ctx context.Context) ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedItems(func(item models.Item) bool { return !item.Done }), nil
}

func (s *Store) CreateItem(ctx context.Context, item models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; ok {
		return store.ErrConflict
	}
	s.items[item.ID] = item
	return nil
}

func (s *Store) SetItemDone(ctx context.Context, itemID string, done bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[itemID]
	if !ok {
		return store.ErrNotFound
	}
	item.Done = done
	s.items[itemID] = item
	return nil
}

func (s *Store) FindRankedByBallot(ctx context.Context, ballotID string) ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ranked := []models.Item{}
	for _, itemID := range s.rankings[ballotID] {
		if item := s.items[itemID]; !item.Done {
			ranked = append(ranked, item)
		}
	}
	return ranked, nil
}

func (s *Store) FindUnrankedByBallot(ctx context.Context, ballotID string) ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ranked := make(map[string]bool, len(s.rankings[ballotID]))
	for _, itemID := range s.rankings[ballotID] {
		ranked[itemID] = true
	}
	return s.sortedItems(func(item models.Item) bool {
		return !item.Done && !ranked[item.ID]
	}), nil
}

func (s *Store) FindBallotByUUID(ctx context.Context, id uuid.UUID) (models.Ballot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ballotID, ok := s.byUUID[id]
	if !ok {
		return models.Ballot{}, store.ErrNotFound
	}
	return s.ballots[ballotID], nil
}

func (s *Store) CreateBallot(ctx context.Context, id uuid.UUID) (models.Ballot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ballotID, ok := s.byUUID[id]; ok {
		return s.ballots[ballotID], nil
	}

	ballotID, err := auth.GenerateID(16)
	if err != nil {
		return models.Ballot{}, err
	}
	ballot := models.Ballot{ID: ballotID, UUID: id}
	s.ballots[ballotID] = ballot
	s.byUUID[id] = ballotID
	return ballot, nil
}

func (s *Store) CountBallots(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ballots), nil
}

func (s *Store) GetAll(ctx context.Context) ([]models.Ranking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ballotIDs := make([]string, 0, len(s.rankings))
	for ballotID := range s.rankings {
		ballotIDs = append(ballotIDs, ballotID)
	}
	slices.Sort(ballotIDs)

	var rankings []models.Ranking
	for _, ballotID := range ballotIDs {
		for ord, itemID := range s.rankings[ballotID] {
			item := s.items[itemID]
			if item.Done {
				continue
			}
			rankings = append(rankings, models.Ranking{
				Ord:    ord,
				Item:   item,
				Ballot: s.ballots[ballotID],
			})
		}
	}
	return rankings, nil
}

func (s *Store) ReplaceBallotRankings(ctx context.Context, ballotID string, itemIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ballots[ballotID]; !ok {
		return store.ErrNotFound
	}

	// Same constraints the SQL schema enforces: known items, each ranked once
	seen := make(map[string]bool, len(itemIDs))
	for _, itemID := range itemIDs {
		if _, ok := s.items[itemID]; !ok || seen[itemID] {
			return store.ErrConflict
		}
		seen[itemID] = true
	}

	if len(itemIDs) == 0 {
		delete(s.rankings, ballotID)
		return nil
	}
	s.rankings[ballotID] = slices.Clone(itemIDs)
	return nil
}

// sortedItems must be called with the lock held
func (s *Store) sortedItems(keep func(models.Item) bool) []models.Item {
	items := []models.Item{}
	for _, item := range s.items {
		if keep(item) {
			items = append(items, item)
		}
	}
	slices.SortFunc(items, func(a, b models.Item) int {
		return cmp.Or(cmp.Compare(a.Title, b.Title), cmp.Compare(a.ID, b.ID))
	})
	return items
}

var _ store.Store = (*Store)(nil)
