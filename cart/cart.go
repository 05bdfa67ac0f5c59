package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"snatchup/kv"
	"snatchup/models"
)

// ErrMinQuantity rejects quantity updates below one. Lines are removed
// explicitly, never by decrementing to zero.
var ErrMinQuantity = errors.New("cart: quantity must be at least 1")

// Store keeps one line list per user under cart:<userID>. Every mutation
// persists the full list; reads rehydrate from the same key.
type Store struct {
	kv kv.Store
}

func NewStore(store kv.Store) *Store {
	return &Store{kv: store}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

// Items returns the user's current lines. A missing or corrupt record is
// treated as an empty cart.
func (s *Store) Items(ctx context.Context, userID string) []models.CartItem {
	raw, err := s.kv.Get(ctx, cartKey(userID))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Println("cart load error:", err)
		}
		return []models.CartItem{}
	}

	var items []models.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Println("cart unmarshal error, starting empty:", err)
		return []models.CartItem{}
	}
	return items
}

func (s *Store) save(ctx context.Context, userID string, items []models.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, cartKey(userID), raw)
}

// Add inserts a new line at quantity 1, or increments the quantity by 1 if
// the product is already in the cart.
func (s *Store) Add(ctx context.Context, userID string, p models.Product) ([]models.CartItem, error) {
	items := s.Items(ctx, userID)

	for i := range items {
		if items[i].ProductID == p.ID {
			items[i].Quantity++
			return items, s.save(ctx, userID, items)
		}
	}

	items = append(items, models.CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Quantity:  1,
		AddedAt:   time.Now(),
	})
	return items, s.save(ctx, userID, items)
}

// UpdateQuantity sets an existing line's quantity. Quantities below 1 are
// rejected; an unknown product id is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, userID string, productID, qty int) ([]models.CartItem, error) {
	if qty < 1 {
		return nil, ErrMinQuantity
	}

	items := s.Items(ctx, userID)
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = qty
			return items, s.save(ctx, userID, items)
		}
	}
	return items, nil
}

// Remove deletes a line. An unknown product id leaves the cart unchanged.
func (s *Store) Remove(ctx context.Context, userID string, productID int) ([]models.CartItem, error) {
	items := s.Items(ctx, userID)
	for i := range items {
		if items[i].ProductID == productID {
			items = append(items[:i], items[i+1:]...)
			return items, s.save(ctx, userID, items)
		}
	}
	return items, nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context, userID string) error {
	return s.kv.Delete(ctx, cartKey(userID))
}

// Total is the sum of price×quantity over all lines.
func (s *Store) Total(ctx context.Context, userID string) float64 {
	var total float64
	for _, it := range s.Items(ctx, userID) {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// Count is the sum of quantities, the badge count.
func (s *Store) Count(ctx context.Context, userID string) int {
	var count int
	for _, it := range s.Items(ctx, userID) {
		count += it.Quantity
	}
	return count
}
