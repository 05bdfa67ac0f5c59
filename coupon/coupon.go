package coupon

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"snatchup/models"
)

// Promotional code catalog. Static, read-only.
var available = []models.Coupon{
	{Code: "WELCOME10", Discount: 10, Type: models.CouponPercentage, MinAmount: 50, MaxDiscount: 25, Description: "10% off on orders over $50", Valid: true},
	{Code: "SAVE20", Discount: 20, Type: models.CouponPercentage, MinAmount: 100, MaxDiscount: 50, Description: "20% off on orders over $100", Valid: true},
	{Code: "FREESHIP", Discount: 10, Type: models.CouponFixed, MinAmount: 75, MaxDiscount: 10, Description: "$10 off on orders over $75", Valid: true},
	{Code: "FLASH25", Discount: 25, Type: models.CouponPercentage, MinAmount: 150, MaxDiscount: 75, Description: "25% off on orders over $150", Valid: true},
}

var (
	ErrInvalidCode = errors.New("invalid coupon code")
	ErrInactive    = errors.New("coupon is no longer valid")
)

// MinAmountError reports a subtotal below the coupon's minimum spend.
type MinAmountError struct {
	Min float64
}

func (e *MinAmountError) Error() string {
	return fmt.Sprintf("minimum order amount of $%g required", e.Min)
}

// Available returns the full promotional catalog.
func Available() []models.Coupon {
	out := make([]models.Coupon, len(available))
	copy(out, available)
	return out
}

// Validate looks up a code case-insensitively and checks it against the
// subtotal. It does not touch the applied slot.
func Validate(code string, subtotal float64) (models.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range available {
		if c.Code != code {
			continue
		}
		if !c.Valid {
			return models.Coupon{}, ErrInactive
		}
		if subtotal < c.MinAmount {
			return models.Coupon{}, &MinAmountError{Min: c.MinAmount}
		}
		return c, nil
	}
	return models.Coupon{}, ErrInvalidCode
}

// discountFor is the absolute amount a coupon grants on a subtotal:
// percentage coupons take subtotal×rate/100 capped at MaxDiscount, fixed
// coupons the flat amount. The result never exceeds the subtotal.
func discountFor(c models.Coupon, subtotal float64) float64 {
	var discount float64
	if c.Type == models.CouponPercentage {
		discount = subtotal * c.Discount / 100
		if discount > c.MaxDiscount {
			discount = c.MaxDiscount
		}
	} else {
		discount = c.Discount
	}

	if discount > subtotal {
		discount = subtotal
	}
	return discount
}

// Evaluator holds the single "applied coupon" slot per user. The slot is
// session-scoped: it lives in memory only and is gone after a restart.
type Evaluator struct {
	mu      sync.Mutex
	applied map[string]models.Coupon
	errs    map[string]string
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		applied: make(map[string]models.Coupon),
		errs:    make(map[string]string),
	}
}

// Apply validates the code and on success fills the user's applied slot and
// clears any recorded error. On failure the error is recorded and a
// previously applied coupon is left untouched.
func (e *Evaluator) Apply(userID, code string, subtotal float64) (models.Coupon, error) {
	c, err := Validate(code, subtotal)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.errs[userID] = err.Error()
		return models.Coupon{}, err
	}
	e.applied[userID] = c
	delete(e.errs, userID)
	return c, nil
}

// Remove clears the applied slot and any recorded error.
func (e *Evaluator) Remove(userID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.applied, userID)
	delete(e.errs, userID)
}

// Applied reports the currently applied coupon, if any.
func (e *Evaluator) Applied(userID string) (models.Coupon, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.applied[userID]
	return c, ok
}

// LastError returns the most recent application failure message.
func (e *Evaluator) LastError(userID string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errs[userID]
}

// Discount computes the discount the applied coupon grants on the subtotal.
func (e *Evaluator) Discount(userID string, subtotal float64) float64 {
	c, ok := e.Applied(userID)
	if !ok {
		return 0
	}
	return discountFor(c, subtotal)
}

// FinalTotal is the subtotal after the applied discount, floored at zero.
func (e *Evaluator) FinalTotal(userID string, subtotal float64) float64 {
	total := subtotal - e.Discount(userID, subtotal)
	if total < 0 {
		return 0
	}
	return total
}
