package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"snatchup/kv"
	"snatchup/models"
)

// Store keeps each user's saved products under wishlist:<userID>. Membership
// is a set keyed by product id, independent of the cart.
type Store struct {
	kv kv.Store
}

func NewStore(store kv.Store) *Store {
	return &Store{kv: store}
}

func wishlistKey(userID string) string {
	return "wishlist:" + userID
}

// Items returns the saved products. Missing or corrupt state reads as empty.
func (s *Store) Items(ctx context.Context, userID string) []models.Product {
	raw, err := s.kv.Get(ctx, wishlistKey(userID))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Println("wishlist load error:", err)
		}
		return []models.Product{}
	}

	var items []models.Product
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Println("wishlist unmarshal error, starting empty:", err)
		return []models.Product{}
	}
	return items
}

func (s *Store) save(ctx context.Context, userID string, items []models.Product) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, wishlistKey(userID), raw)
}

// Add saves a product. Adding a product already present keeps a single
// entry.
func (s *Store) Add(ctx context.Context, userID string, p models.Product) ([]models.Product, error) {
	items := s.Items(ctx, userID)
	for _, it := range items {
		if it.ID == p.ID {
			return items, nil
		}
	}
	items = append(items, p)
	return items, s.save(ctx, userID, items)
}

// Remove drops a product; an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, userID string, productID int) ([]models.Product, error) {
	items := s.Items(ctx, userID)
	for i, it := range items {
		if it.ID == productID {
			items = append(items[:i], items[i+1:]...)
			return items, s.save(ctx, userID, items)
		}
	}
	return items, nil
}

// Toggle flips membership and reports whether the product is now saved.
func (s *Store) Toggle(ctx context.Context, userID string, p models.Product) (bool, error) {
	if s.Has(ctx, userID, p.ID) {
		_, err := s.Remove(ctx, userID, p.ID)
		return false, err
	}
	_, err := s.Add(ctx, userID, p)
	return true, err
}

// Has is the membership test.
func (s *Store) Has(ctx context.Context, userID string, productID int) bool {
	for _, it := range s.Items(ctx, userID) {
		if it.ID == productID {
			return true
		}
	}
	return false
}

// Count is the set cardinality.
func (s *Store) Count(ctx context.Context, userID string) int {
	return len(s.Items(ctx, userID))
}
