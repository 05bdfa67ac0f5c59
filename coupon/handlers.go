package coupon

import (
	"encoding/json"
	"net/http"

	"snatchup/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	Evaluator *Evaluator
}

type couponRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
}

type couponResponse struct {
	Valid    bool    `json:"valid"`
	Discount float64 `json:"discount"` // absolute amount, not %
	Message  string  `json:"message"`
}

// ListCoupons returns the promotional catalog. For an authenticated caller
// it also reports the coupon currently sitting in their applied slot.
func (h *Handler) ListCoupons(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resp := map[string]any{"coupons": Available()}
	if userID := utils.GetUserIDFromRequest(r); userID != "" {
		if applied, ok := h.Evaluator.Applied(userID); ok {
			resp["applied"] = applied
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ValidateCoupon checks a code against a subtotal without applying it.
func (h *Handler) ValidateCoupon(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req couponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Code == "" {
		utils.RespondWithJSON(w, http.StatusOK, couponResponse{Valid: false, Message: "No coupon provided"})
		return
	}

	c, err := Validate(req.Code, req.Subtotal)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, couponResponse{Valid: false, Message: err.Error()})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, couponResponse{
		Valid:    true,
		Discount: discountFor(c, req.Subtotal),
		Message:  "Coupon applied successfully",
	})
}

// ApplyCoupon fills the caller's applied slot.
func (h *Handler) ApplyCoupon(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req couponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request")
		return
	}

	c, err := h.Evaluator.Apply(userID, req.Code, req.Subtotal)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, couponResponse{Valid: false, Message: err.Error()})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"valid":  true,
		"coupon": c,
		"total":  h.Evaluator.FinalTotal(userID, req.Subtotal),
	})
}

// RemoveCoupon clears the caller's applied slot.
func (h *Handler) RemoveCoupon(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	h.Evaluator.Remove(userID)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
