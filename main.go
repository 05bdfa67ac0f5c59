package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snatchup/auth"
	"snatchup/cart"
	"snatchup/coupon"
	"snatchup/kv"
	"snatchup/middleware"
	"snatchup/mq"
	"snatchup/orders"
	"snatchup/ratelim"
	"snatchup/routes"
	"snatchup/wishlist"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		log.Printf("%s %s from %s - %v", r.Method, r.RequestURI, r.RemoteAddr, duration)
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

// openStore picks the persistence backend from the STORE env var:
// memory (default), redis, or mongo.
func openStore(ctx context.Context) (kv.Store, func()) {
	switch os.Getenv("STORE") {
	case "redis":
		store := kv.DialRedis()
		return store, func() { store.Conn().Close() }
	case "mongo":
		store, client, err := kv.DialMongo(ctx)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		return store, func() { client.Disconnect(context.Background()) }
	default:
		return kv.NewMemory(), func() {}
	}
}

func setupRouter(deps appDeps) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	routes.AddAuthRoutes(router, deps.auth, deps.authGuard, deps.rateLimiter)
	routes.AddProductRoutes(router)
	routes.AddCartRoutes(router, deps.cart, deps.checkout, deps.authGuard, deps.rateLimiter)
	routes.AddCouponRoutes(router, deps.coupons, deps.authGuard)
	routes.AddOrderRoutes(router, deps.orders, deps.authGuard)
	routes.AddWishlistRoutes(router, deps.wishlist, deps.authGuard)

	return router
}

type appDeps struct {
	rateLimiter *ratelim.RateLimiter
	authGuard   *middleware.Auth
	auth        *auth.Handler
	cart        *cart.Handler
	checkout    *cart.CheckoutHandler
	coupons     *coupon.Handler
	orders      *orders.Handler
	wishlist    *wishlist.Handler
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	// read port
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore := openStore(ctx)
	defer closeStore()

	// event emitter publishes over Redis when available
	var events *mq.Emitter
	if redisStore, ok := store.(*kv.Redis); ok {
		events = mq.NewEmitter(redisStore.Conn())
		go events.StartWorker(ctx)
	} else {
		events = mq.NewEmitter(nil)
	}

	identity := auth.NewMockIdentity(store, 500*time.Millisecond)
	cartStore := cart.NewStore(store)
	orderStore := orders.NewStore(store)
	wishlistStore := wishlist.NewStore(store)
	evaluator := coupon.NewEvaluator()

	deps := appDeps{
		rateLimiter: ratelim.NewRateLimiter(),
		authGuard:   middleware.NewAuth(store),
		auth:        &auth.Handler{Identity: identity, Sessions: store, Events: events},
		cart:        &cart.Handler{Cart: cartStore},
		checkout:    &cart.CheckoutHandler{Cart: cartStore, Coupons: evaluator, Orders: orderStore, Events: events},
		coupons:     &coupon.Handler{Evaluator: evaluator},
		orders:      &orders.Handler{Orders: orderStore},
		wishlist:    &wishlist.Handler{Wishlist: wishlistStore},
	}

	router := setupRouter(deps)

	// apply middleware: CORS -> security headers -> logging -> router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly")
}
