package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"snatchup/models"
	"snatchup/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	Orders *Store
}

var validStatuses = map[string]bool{
	models.OrderProcessing: true,
	models.OrderShipped:    true,
	models.OrderDelivered:  true,
	models.OrderCancelled:  true,
}

// GetOrders lists the user's history, optional ?status= filter.
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		list := h.Orders.ByStatus(ctx, userID, status)
		if list == nil {
			list = []models.Order{}
		}
		utils.RespondWithJSON(w, http.StatusOK, list)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, h.Orders.All(ctx, userID))
}

// GetOrder returns one order by id; used by the post-checkout confirmation
// screen.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	order, ok := h.Orders.Get(ctx, userID, ps.ByName("orderid"))
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order)
}

// UpdateStatus sets an order's status; unknown ids change nothing.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if !validStatuses[payload.Status] {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	updated, err := h.Orders.UpdateStatus(ctx, userID, ps.ByName("orderid"), payload.Status)
	if err != nil {
		http.Error(w, "Failed to update order", http.StatusInternalServerError)
		return
	}
	if !updated {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": payload.Status})
}

// ClearOrders empties the user's order history.
func (h *Handler) ClearOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.Orders.Clear(ctx, userID); err != nil {
		http.Error(w, "Failed to clear orders", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
