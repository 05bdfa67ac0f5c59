package routes

import (
	"snatchup/auth"
	"snatchup/cart"
	"snatchup/catalog"
	"snatchup/coupon"
	"snatchup/middleware"
	"snatchup/orders"
	"snatchup/ratelim"
	"snatchup/wishlist"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler, am *middleware.Auth, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(h.Register))
	router.POST("/api/auth/login", rl.Limit(h.Login))
	router.POST("/api/auth/logout", am.Authenticate(h.Logout))
	router.GET("/api/auth/me", am.Authenticate(h.Me))
	router.PUT("/api/auth/profile", am.Authenticate(h.UpdateProfile))
}

func AddProductRoutes(router *httprouter.Router) {
	router.GET("/api/products", catalog.GetProducts)
	router.GET("/api/products/:productid", catalog.GetProduct)
	router.GET("/api/categories", catalog.GetCategories)
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handler, checkout *cart.CheckoutHandler, am *middleware.Auth, rl *ratelim.RateLimiter) {
	router.GET("/api/cart", am.Authenticate(h.GetCart))
	router.POST("/api/cart", am.Authenticate(h.AddToCart))
	router.PUT("/api/cart/:productid", am.Authenticate(h.UpdateQuantity))
	router.DELETE("/api/cart/:productid", am.Authenticate(h.RemoveFromCart))
	router.DELETE("/api/cart", am.Authenticate(h.ClearCart))

	router.POST("/api/checkout", rl.Limit(am.Authenticate(checkout.PlaceOrder)))
}

func AddCouponRoutes(router *httprouter.Router, h *coupon.Handler, am *middleware.Auth) {
	router.GET("/api/coupons", am.OptionalAuth(h.ListCoupons))
	router.POST("/api/coupons/validate", am.OptionalAuth(h.ValidateCoupon))
	router.POST("/api/coupons/apply", am.Authenticate(h.ApplyCoupon))
	router.DELETE("/api/coupons/applied", am.Authenticate(h.RemoveCoupon))
}

func AddOrderRoutes(router *httprouter.Router, h *orders.Handler, am *middleware.Auth) {
	router.GET("/api/orders", am.Authenticate(h.GetOrders))
	router.GET("/api/orders/:orderid", am.Authenticate(h.GetOrder))
	router.GET("/api/orders/:orderid/receipt", am.Authenticate(h.Receipt))
	router.PUT("/api/orders/:orderid/status", am.Authenticate(h.UpdateStatus))
	router.DELETE("/api/orders", am.Authenticate(h.ClearOrders))
}

func AddWishlistRoutes(router *httprouter.Router, h *wishlist.Handler, am *middleware.Auth) {
	router.GET("/api/wishlist", am.Authenticate(h.GetWishlist))
	router.POST("/api/wishlist", am.Authenticate(h.ToggleWishlist))
	router.DELETE("/api/wishlist/:productid", am.Authenticate(h.RemoveFromWishlist))
}
