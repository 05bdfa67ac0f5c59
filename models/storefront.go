package models

import "time"

// Product is an entry in the immutable reference catalog.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
	Description string  `json:"description"`
}

// CartItem is one product+quantity line in a user's cart. Price, name and
// image are cached from the product at the time it was added.
type CartItem struct {
	ProductID int       `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	ImageURL  string    `json:"imageUrl"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// Coupon kinds
const (
	CouponPercentage = "percentage"
	CouponFixed      = "fixed"
)

// Coupon is a promotional code reducing the order total, subject to a
// minimum spend and a maximum discount cap.
type Coupon struct {
	Code        string  `json:"code"`
	Discount    float64 `json:"discount"` // percent for percentage kind, flat amount for fixed
	Type        string  `json:"type"`
	MinAmount   float64 `json:"minAmount"`
	MaxDiscount float64 `json:"maxDiscount"`
	Description string  `json:"description"`
	Valid       bool    `json:"valid"`
}

// ShippingAddress is the address snapshot frozen into an order at checkout.
type ShippingAddress struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

// Order statuses. Any status may follow any other; there is no transition
// validation.
const (
	OrderProcessing = "Processing"
	OrderShipped    = "Shipped"
	OrderDelivered  = "Delivered"
	OrderCancelled  = "Cancelled"
)

// Order is a finalized order: a snapshot of the cart, applied coupon and
// shipping form captured at checkout time.
type Order struct {
	ID               string          `json:"id"`
	UserID           string          `json:"userId"`
	Items            []CartItem      `json:"items"`
	Subtotal         float64         `json:"subtotal"`
	Discount         float64         `json:"discount"`
	Total            float64         `json:"total"`
	AppliedCoupon    *Coupon         `json:"appliedCoupon,omitempty"`
	ShippingAddress  ShippingAddress `json:"shippingAddress"`
	PaymentSessionID string          `json:"paymentSessionId,omitempty"`
	PaymentMethod    string          `json:"paymentMethod"`
	PaymentStatus    string          `json:"paymentStatus"`
	Status           string          `json:"status"`
	TrackingNumber   string          `json:"trackingNumber"`
	CreatedAt        time.Time       `json:"createdAt"`
}
