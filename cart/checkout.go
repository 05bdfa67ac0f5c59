package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"snatchup/coupon"
	"snatchup/models"
	"snatchup/mq"
	"snatchup/orders"
	"snatchup/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

// CheckoutHandler freezes the cart and applied coupon into an order.
type CheckoutHandler struct {
	Cart    *Store
	Coupons *coupon.Evaluator
	Orders  *orders.Store
	Events  *mq.Emitter
}

type checkoutRequest struct {
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// PlaceOrder snapshots the cart, subtotal and applied coupon, creates the
// order, then clears both the cart and the coupon slot. An empty cart is
// rejected before any order is created.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid order payload", http.StatusBadRequest)
		return
	}

	items := h.Cart.Items(ctx, userID)
	if len(items) == 0 {
		http.Error(w, "Cart is empty", http.StatusBadRequest)
		return
	}

	subtotal := h.Cart.Total(ctx, userID)
	discount := h.Coupons.Discount(userID, subtotal)
	total := h.Coupons.FinalTotal(userID, subtotal)

	draft := models.Order{
		Items:            items,
		Subtotal:         subtotal,
		Discount:         discount,
		Total:            total,
		ShippingAddress:  req.ShippingAddress,
		PaymentSessionID: uuid.NewString(),
		PaymentMethod:    req.PaymentMethod,
		PaymentStatus:    "Paid",
	}
	if draft.PaymentMethod == "" {
		draft.PaymentMethod = "Credit Card"
	}
	if applied, ok := h.Coupons.Applied(userID); ok {
		draft.AppliedCoupon = &applied
	}

	order, err := h.Orders.Create(ctx, userID, draft)
	if err != nil {
		http.Error(w, "Order creation failed", http.StatusInternalServerError)
		return
	}

	if err := h.Cart.Clear(ctx, userID); err != nil {
		log.Println("checkout cart cleanup error:", err)
	}
	h.Coupons.Remove(userID)

	h.Events.Emit(ctx, "order-placed", userID, order.ID)

	utils.RespondWithJSON(w, http.StatusCreated, order)
}
