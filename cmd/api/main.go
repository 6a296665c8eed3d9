package main

import (
	"context"
	"log"
	"time"

	"settlement-engine/internal/core/cache"
	"settlement-engine/internal/core/config"
	"settlement-engine/internal/core/database"
	"settlement-engine/internal/core/logger"
	"settlement-engine/internal/core/server"
	cartadapter "settlement-engine/internal/features/carts/adapters"
	carthandler "settlement-engine/internal/features/carts/handler"
	cartservice "settlement-engine/internal/features/carts/service"
	catalogadapter "settlement-engine/internal/features/catalog/adapters"
	checkouthandler "settlement-engine/internal/features/checkout/handler"
	checkoutservice "settlement-engine/internal/features/checkout/service"
	couponadapter "settlement-engine/internal/features/coupons/adapters"
	couponhandler "settlement-engine/internal/features/coupons/handler"
	couponservice "settlement-engine/internal/features/coupons/service"
	orderadapter "settlement-engine/internal/features/orders/adapters"
	orderhandler "settlement-engine/internal/features/orders/handler"
	orderservice "settlement-engine/internal/features/orders/service"
	paymentadapter "settlement-engine/internal/features/payments/adapters"

	"go.uber.org/zap"
)

// @title Settlement Engine API
// @version 1.0
// @description Checkout and order settlement API: server-side pricing, coupon validation, prepaid and cash-on-delivery settlement, order lifecycle.
// @contact.name API Support
// @contact.email support@settlement-engine.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	ctx := context.Background()

	// Document store
	mongo, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		l.Fatal("Mongo connection failed", zap.Error(err))
	}
	defer mongo.Close(ctx)
	l.Info("Mongo connection verified", zap.String("database", cfg.Mongo.Database))

	// Cache
	redis, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Redis connection failed", zap.Error(err))
	}
	defer redis.Close()
	if err := redis.Ping(ctx); err != nil {
		l.Fatal("Redis ping failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// Catalog
	catalog := catalogadapter.NewMongoCatalog(mongo.DB)

	// Coupons
	couponRepo := couponadapter.NewMongoCouponRepository(mongo.DB)
	couponValidator := couponservice.NewValidator(couponRepo, catalog)
	couponHdl := couponhandler.NewCouponHandler(couponValidator)

	// Carts
	cartStore := cartadapter.NewRedisCartStore(redis)
	cartSvc := cartservice.NewCartService(cartStore)
	cartHdl := carthandler.NewCartHandler(cartSvc)

	// Orders
	orderRepo := orderadapter.NewMongoOrderRepository(mongo.DB)
	orderSvc := orderservice.NewOrderService(orderRepo)
	orderHdl := orderhandler.NewOrderHandler(orderSvc)

	// Payments
	gateway := paymentadapter.NewRestGatewayAdapter(cfg.Gateway)
	attemptStore := paymentadapter.NewRedisAttemptStore(
		redis,
		time.Duration(cfg.Checkout.AttemptTTLMinutes)*time.Minute,
	)

	// Checkout
	checkoutSvc := checkoutservice.NewCheckoutService(
		catalog,
		couponValidator,
		gateway,
		attemptStore,
		orderSvc,
		cartSvc,
		cfg.Gateway.Currency,
	)
	checkoutHdl := checkouthandler.NewCheckoutHandler(checkoutSvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Post("/coupons/check", couponHdl.CheckCoupon)

	srv.App.Put("/cart", cartHdl.SetCart)
	srv.App.Get("/cart", cartHdl.GetCart)
	srv.App.Delete("/cart", cartHdl.ClearCart)

	srv.App.Post("/orders", orderHdl.CreateOrder)
	srv.App.Get("/orders", orderHdl.ListOrders)
	srv.App.Get("/orders/:id", orderHdl.GetOrder)
	srv.App.Put("/orders/:id", orderHdl.UpdateStatus)

	srv.App.Post("/checkout", checkoutHdl.PlaceOrder)
	srv.App.Post("/checkout/payment", checkoutHdl.InitiatePayment)
	srv.App.Post("/checkout/payment/confirm", checkoutHdl.ConfirmPayment)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
