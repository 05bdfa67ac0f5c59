package orders

import (
	"context"
	"strings"
	"testing"

	"snatchup/kv"
	"snatchup/models"
)

func draftOrder(total float64) models.Order {
	return models.Order{
		Items: []models.CartItem{
			{ProductID: 1, Name: "Smart 4K TV", Price: total, Quantity: 1},
		},
		Subtotal: total,
		Total:    total,
	}
}

func TestCreateStampsFields(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory())

	order, err := s.Create(ctx, "u1", draftOrder(699.99))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if !strings.HasPrefix(order.ID, "ORD") {
		t.Fatalf("expected ORD-prefixed id, got %s", order.ID)
	}
	if !strings.HasPrefix(order.TrackingNumber, "TRK") {
		t.Fatalf("expected TRK-prefixed tracking number, got %s", order.TrackingNumber)
	}
	if order.Status != models.OrderProcessing {
		t.Fatalf("expected initial status Processing, got %s", order.Status)
	}
	if order.CreatedAt.IsZero() {
		t.Fatal("expected createdAt stamp")
	}
	if order.UserID != "u1" {
		t.Fatalf("expected owner u1, got %s", order.UserID)
	}
}

func TestOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory())

	first, _ := s.Create(ctx, "u1", draftOrder(10))
	second, _ := s.Create(ctx, "u1", draftOrder(20))

	list := s.All(ctx, "u1")
	if len(list) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(list))
	}
	if list[0].Total != second.Total || list[1].Total != first.Total {
		t.Fatalf("expected newest first, got %v then %v", list[0].Total, list[1].Total)
	}
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory())
	order, _ := s.Create(ctx, "u1", draftOrder(10))

	updated, err := s.UpdateStatus(ctx, "u1", order.ID, models.OrderShipped)
	if err != nil || !updated {
		t.Fatalf("update failed: updated=%v err=%v", updated, err)
	}

	got, ok := s.Get(ctx, "u1", order.ID)
	if !ok || got.Status != models.OrderShipped {
		t.Fatalf("expected Shipped, got %+v ok=%v", got, ok)
	}

	// transitions are unconstrained: Shipped back to Processing is allowed
	if updated, _ := s.UpdateStatus(ctx, "u1", order.ID, models.OrderProcessing); !updated {
		t.Fatal("expected backward transition to be permitted")
	}
}

func TestUpdateStatusUnknownIDLeavesListUnchanged(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory())
	order, _ := s.Create(ctx, "u1", draftOrder(10))

	updated, err := s.UpdateStatus(ctx, "u1", "ORD-nope", models.OrderDelivered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated {
		t.Fatal("expected no update for unknown id")
	}

	got, _ := s.Get(ctx, "u1", order.ID)
	if got.Status != models.OrderProcessing {
		t.Fatalf("existing order should be unchanged, got %s", got.Status)
	}
}

func TestByStatus(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory())
	a, _ := s.Create(ctx, "u1", draftOrder(10))
	s.Create(ctx, "u1", draftOrder(20))
	s.UpdateStatus(ctx, "u1", a.ID, models.OrderDelivered)

	delivered := s.ByStatus(ctx, "u1", models.OrderDelivered)
	if len(delivered) != 1 || delivered[0].ID != a.ID {
		t.Fatalf("expected one delivered order, got %+v", delivered)
	}
	if got := s.ByStatus(ctx, "u1", models.OrderCancelled); len(got) != 0 {
		t.Fatalf("expected no cancelled orders, got %+v", got)
	}
}

func TestClearAndCorruptHistory(t *testing.T) {
	ctx := context.Background()
	backing := kv.NewMemory()
	s := NewStore(backing)

	s.Create(ctx, "u1", draftOrder(10))
	if err := s.Clear(ctx, "u1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if got := s.All(ctx, "u1"); len(got) != 0 {
		t.Fatalf("expected empty history, got %+v", got)
	}

	backing.Set(ctx, "orders:u1", []byte("garbage"))
	if got := s.All(ctx, "u1"); len(got) != 0 {
		t.Fatalf("corrupt history should read as empty, got %+v", got)
	}
}
