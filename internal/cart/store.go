package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"shopfront/internal/model"
	"shopfront/internal/storage"

	"github.com/rs/zerolog"
)

// Store owns the cart state for a session: an ordered list of line items,
// at most one per product identifier. Every mutation writes the full
// snapshot to durable storage. A persistence failure is surfaced as a
// *PersistenceError without rolling back the in-memory change.
//
// Store is not safe for concurrent use; it is designed for a single
// owning caller, with all reads and writes going through this API.
type Store struct {
	items  []model.CartLineItem
	kv     storage.KV
	logger zerolog.Logger
}

// PersistenceError reports that a mutation succeeded in memory but the
// snapshot could not be written to durable storage.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("cart updated but snapshot not persisted: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewStore creates a cart store backed by kv and loads the persisted
// snapshot. An absent or malformed snapshot yields an empty cart, never
// an error.
func NewStore(ctx context.Context, kv storage.KV, logger zerolog.Logger) *Store {
	s := &Store{
		kv:     kv,
		logger: logger.With().Str("component", "cart").Logger(),
	}

	data, err := kv.Get(ctx, storage.KeyCart)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn().Err(err).Msg("failed to read cart snapshot, starting empty")
		}
		return s
	}

	var items []model.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn().Err(err).Msg("malformed cart snapshot, starting empty")
		return s
	}

	// Drop lines a broken snapshot could not support: no identifier, or a
	// quantity below 1.
	for _, item := range items {
		if item.ProductID == "" || item.Quantity < 1 {
			s.logger.Warn().
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("dropping invalid cart line from snapshot")
			continue
		}
		s.items = append(s.items, item)
	}

	s.logger.Debug().Int("lines", len(s.items)).Msg("cart snapshot loaded")
	return s
}

// Add increments the quantity of the product's line item, or appends a
// new line with quantity 1. Unrelated lines keep their order. Products
// that are unavailable or out of stock are rejected with ErrOutOfStock.
func (s *Store) Add(ctx context.Context, product model.Product) error {
	if product.ID == "" {
		return model.ErrProductNotFound
	}
	if !product.Available() {
		s.logger.Debug().Str("product_id", product.ID).Msg("rejected add for unavailable product")
		return model.ErrOutOfStock
	}

	if i := s.index(product.ID); i >= 0 {
		s.items[i].Quantity++
	} else {
		s.items = append(s.items, model.NewCartLineItem(product))
	}

	s.logger.Debug().Str("product_id", product.ID).Msg("product added to cart")
	return s.persist(ctx)
}

// Remove decrements the matching line's quantity by 1, deleting the line
// when it reaches 0. Absent identifiers are a no-op.
func (s *Store) Remove(ctx context.Context, productID string) error {
	i := s.index(productID)
	if i < 0 {
		return nil
	}

	s.items[i].Quantity--
	if s.items[i].Quantity < 1 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}

	s.logger.Debug().Str("product_id", productID).Msg("product removed from cart")
	return s.persist(ctx)
}

// Delete removes the line item regardless of quantity. Absent
// identifiers are a no-op.
func (s *Store) Delete(ctx context.Context, productID string) error {
	i := s.index(productID)
	if i < 0 {
		return nil
	}

	s.items = append(s.items[:i], s.items[i+1:]...)
	s.logger.Debug().Str("product_id", productID).Msg("product deleted from cart")
	return s.persist(ctx)
}

// Clear empties the cart and erases the persisted snapshot.
func (s *Store) Clear(ctx context.Context) error {
	s.items = nil

	if err := s.kv.Delete(ctx, storage.KeyCart); err != nil {
		s.logger.Warn().Err(err).Msg("cart cleared but snapshot not erased")
		return &PersistenceError{Err: err}
	}

	s.logger.Debug().Msg("cart cleared")
	return nil
}

// Items returns a copy of the current ordered line items.
func (s *Store) Items() []model.CartLineItem {
	items := make([]model.CartLineItem, len(s.items))
	copy(items, s.items)
	return items
}

// Total computes the cart total (price x quantity per line) fresh on
// every call.
func (s *Store) Total() float64 {
	var total float64
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// Len returns the number of distinct line items.
func (s *Store) Len() int {
	return len(s.items)
}

// index returns the position of the line for productID, or -1.
func (s *Store) index(productID string) int {
	for i, item := range s.items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// persist writes the full snapshot. The in-memory state is already
// updated when this runs; a write failure is reported, not rolled back.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.items)
	if err != nil {
		// Line items are plain structs; this should be unreachable.
		s.logger.Error().Err(err).Msg("failed to encode cart snapshot")
		return &PersistenceError{Err: err}
	}

	if err := s.kv.Set(ctx, storage.KeyCart, data); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist cart snapshot")
		return &PersistenceError{Err: err}
	}
	return nil
}
