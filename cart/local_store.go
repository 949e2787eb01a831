// Package cart manages the anonymous cart a logged-out visitor builds up
// before signing in.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yashrajoria/storefront-client/logger"
	"github.com/yashrajoria/storefront-client/models"
	"github.com/yashrajoria/storefront-client/storage"
)

// LocalStore reads and writes the anonymous cart under storage.KeyAnonymousCart.
// Writes replace the whole list, so concurrent writers race with last-writer-wins.
type LocalStore struct {
	store    storage.Store
	log      *zap.Logger
	now      func() time.Time
	onChange func(ctx context.Context)
}

func NewLocalStore(store storage.Store, log *zap.Logger) *LocalStore {
	return &LocalStore{
		store: store,
		log:   logger.OrNop(log),
		now:   time.Now,
	}
}

// OnChange registers a callback run after every successful mutation,
// used to refresh the cart-count badge.
func (s *LocalStore) OnChange(fn func(ctx context.Context)) {
	s.onChange = fn
}

// Get returns the stored items, or an empty list when nothing usable is stored
func (s *LocalStore) Get(ctx context.Context) []models.CartLineItem {
	raw, ok, err := s.store.Get(ctx, storage.KeyAnonymousCart)
	if err != nil {
		s.log.Warn("reading local cart failed", zap.Error(err))
		return []models.CartLineItem{}
	}
	if !ok || raw == "" {
		return []models.CartLineItem{}
	}
	var items []models.CartLineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Warn("local cart is corrupted, treating as empty", zap.Error(err))
		return []models.CartLineItem{}
	}
	if items == nil {
		return []models.CartLineItem{}
	}
	return items
}

// Save overwrites the stored list
func (s *LocalStore) Save(ctx context.Context, items []models.CartLineItem) error {
	if items == nil {
		items = []models.CartLineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode local cart: %w", err)
	}
	return s.store.Set(ctx, storage.KeyAnonymousCart, string(data))
}

// Clear drops the stored cart entirely
func (s *LocalStore) Clear(ctx context.Context) error {
	return s.store.Remove(ctx, storage.KeyAnonymousCart)
}

// AddOne adds a single unit of itemID
func (s *LocalStore) AddOne(ctx context.Context, itemID models.ItemID) error {
	return s.Add(ctx, itemID, 1)
}

// Add increments itemID by quantity, appending a new line if it is not in the cart.
// Non-positive quantities are ignored.
func (s *LocalStore) Add(ctx context.Context, itemID models.ItemID, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	items := s.Get(ctx)

	found := false
	for i := range items {
		if items[i].ItemID == itemID {
			items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartLineItem{
			ItemID:   itemID,
			Quantity: quantity,
			ID:       s.nextID(items),
		})
	}

	return s.commit(ctx, items)
}

// SetQuantity sets the quantity of itemID, removing the line when quantity <= 0.
// Items not in the cart are left alone.
func (s *LocalStore) SetQuantity(ctx context.Context, itemID models.ItemID, quantity int) error {
	items := s.Get(ctx)

	idx := -1
	for i := range items {
		if items[i].ItemID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	if quantity <= 0 {
		items = append(items[:idx], items[idx+1:]...)
	} else {
		items[idx].Quantity = quantity
	}
	return s.commit(ctx, items)
}

// Remove drops itemID from the cart
func (s *LocalStore) Remove(ctx context.Context, itemID models.ItemID) error {
	items := s.Get(ctx)
	kept := make([]models.CartLineItem, 0, len(items))
	for _, item := range items {
		if item.ItemID != itemID {
			kept = append(kept, item)
		}
	}
	return s.commit(ctx, kept)
}

// Count sums quantities across the cart
func (s *LocalStore) Count(ctx context.Context) int {
	total := 0
	for _, item := range s.Get(ctx) {
		total += item.Quantity
	}
	return total
}

func (s *LocalStore) commit(ctx context.Context, items []models.CartLineItem) error {
	if err := s.Save(ctx, items); err != nil {
		return err
	}
	if s.onChange != nil {
		s.onChange(ctx)
	}
	return nil
}

// nextID is the current unix-millisecond timestamp, bumped past any id
// already in the cart so two adds within the same millisecond stay distinct.
func (s *LocalStore) nextID(items []models.CartLineItem) int64 {
	id := s.now().UnixMilli()
	for _, item := range items {
		if item.ID >= id {
			id = item.ID + 1
		}
	}
	return id
}
