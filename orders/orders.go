package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"snatchup/kv"
	"snatchup/models"
)

// Store keeps each user's order history newest-first under orders:<userID>.
// Orders are append-only; only status changes in place.
type Store struct {
	kv kv.Store
}

func NewStore(store kv.Store) *Store {
	return &Store{kv: store}
}

func ordersKey(userID string) string {
	return "orders:" + userID
}

// All returns the user's orders, newest first. Missing or corrupt history
// reads as empty.
func (s *Store) All(ctx context.Context, userID string) []models.Order {
	raw, err := s.kv.Get(ctx, ordersKey(userID))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Println("orders load error:", err)
		}
		return []models.Order{}
	}

	var list []models.Order
	if err := json.Unmarshal(raw, &list); err != nil {
		log.Println("orders unmarshal error, starting empty:", err)
		return []models.Order{}
	}
	return list
}

func (s *Store) save(ctx context.Context, userID string, list []models.Order) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, ordersKey(userID), raw)
}

// Create stamps the draft with a time-based id, tracking number, creation
// time and the initial Processing status, then prepends it to the history.
func (s *Store) Create(ctx context.Context, userID string, draft models.Order) (models.Order, error) {
	now := time.Now()
	draft.ID = fmt.Sprintf("ORD%d", now.UnixMilli())
	draft.UserID = userID
	draft.Status = models.OrderProcessing
	draft.TrackingNumber = fmt.Sprintf("TRK%d", now.UnixMilli())
	draft.CreatedAt = now

	list := append([]models.Order{draft}, s.All(ctx, userID)...)
	if err := s.save(ctx, userID, list); err != nil {
		return models.Order{}, err
	}
	return draft, nil
}

// Get looks up one order by id.
func (s *Store) Get(ctx context.Context, userID, orderID string) (models.Order, bool) {
	for _, o := range s.All(ctx, userID) {
		if o.ID == orderID {
			return o, true
		}
	}
	return models.Order{}, false
}

// ByStatus filters the history by status.
func (s *Store) ByStatus(ctx context.Context, userID, status string) []models.Order {
	var out []models.Order
	for _, o := range s.All(ctx, userID) {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// UpdateStatus replaces the matching order's status in place. Any status may
// follow any other. An unknown id leaves the history unchanged and reports
// false.
func (s *Store) UpdateStatus(ctx context.Context, userID, orderID, status string) (bool, error) {
	list := s.All(ctx, userID)
	for i := range list {
		if list[i].ID == orderID {
			list[i].Status = status
			return true, s.save(ctx, userID, list)
		}
	}
	return false, nil
}

// Clear wipes the user's order history.
func (s *Store) Clear(ctx context.Context, userID string) error {
	return s.kv.Delete(ctx, ordersKey(userID))
}
