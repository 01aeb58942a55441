package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayledger/config"
	"stayledger/cron"
	"stayledger/database"
	billRepo "stayledger/database/repository/bill"
	bookingRepo "stayledger/database/repository/booking"
	generatedBillRepo "stayledger/database/repository/generatedbill"
	orderRepo "stayledger/database/repository/order"
	roomRepo "stayledger/database/repository/room"
	roomImageRepo "stayledger/database/repository/roomimage"
	userRepo "stayledger/database/repository/user"
	"stayledger/handlers"
	"stayledger/middleware"
	"stayledger/routes"
	"stayledger/services/billing"
	"stayledger/services/booking"
	"stayledger/services/delivery"
	"stayledger/services/payment"
	"stayledger/services/storage"
	"stayledger/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

// triggerRunner is implemented by both scheduler backends.
type triggerRunner interface {
	handlers.Dispatcher
	Start() error
	Shutdown()
}

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()
	stripe.Key = cfg.StripeKey
	clock := utils.SystemClock{Location: cfg.Location()}

	var redisClients []*redis.Client
	if cfg.SchedulerBackend == config.SchedulerAsynq {
		rdb, err := utils.NewRedisClient(cfg)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to connect to redis: %v", err)
		}
		defer rdb.Close()
		redisClients = append(redisClients, rdb)
	}

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, 30*time.Second, redisClients, func(ctx context.Context) error {
		return database.MongoClient.Ping(ctx, nil)
	})

	cld, err := utils.Cloudinary(cfg)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	rooms := roomRepo.NewMongoRoomRepo()
	utilityBills := billRepo.NewMongoUtilityBillRepo()
	users := userRepo.NewMongoUserRepo()
	generatedBills := generatedBillRepo.NewMongoGeneratedBillRepo()
	orders := orderRepo.NewMongoOrderRepo()
	roomImages := roomImageRepo.NewMongoRoomImageRepo()

	// services.
	billingService := &billing.DefaultBillingService{
		Bookings:       bookings,
		Rooms:          rooms,
		UtilityBills:   utilityBills,
		Users:          users,
		GeneratedBills: generatedBills,
		Clock:          clock,
		Logger:         logger.Named("billing"),
	}

	pipeline := &delivery.Pipeline{
		Bills: generatedBills,
		Renderer: delivery.NewPDFRenderer(delivery.Letterhead{
			Name:    cfg.PropertyName,
			Address: cfg.PropertyAddress,
			Phone:   cfg.PropertyPhone,
			Email:   cfg.PropertyEmail,
		}),
		Mailer: delivery.NewSMTPMailer(delivery.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}),
		Clock:  clock,
		Logger: logger.Named("delivery"),
	}

	bookingService := &booking.DefaultBookingService{
		Repo:   bookings,
		Rooms:  rooms,
		Users:  users,
		Clock:  clock,
		Logger: logger.Named("booking"),
	}

	paymentService := &payment.DefaultPaymentService{
		Orders:        orders,
		Bills:         generatedBills,
		Gateway:       payment.StripeGateway{},
		WebhookSecret: cfg.StripeWebhookSecret,
		Currency:      cfg.PaymentCurrency,
		Logger:        logger.Named("payment"),
	}

	imageService := &storage.RoomImageService{
		Store:  storage.NewCloudinaryStore(cld),
		Images: roomImages,
		Rooms:  rooms,
		Logger: logger.Named("storage"),
	}

	// scheduled triggers.
	jobs := &cron.Jobs{
		Billing:  billingService,
		Delivery: pipeline,
		Clock:    clock,
		Logger:   logger.Named("triggers"),
	}
	var runner triggerRunner
	if cfg.SchedulerBackend == config.SchedulerLocal {
		runner = cron.NewLocalRunner(cfg, jobs, logger)
	} else {
		runner = cron.NewWorker(cfg, jobs, logger)
	}
	if err := runner.Start(); err != nil {
		logger.Sugar().Fatalf("main: failed to start trigger scheduler: %v", err)
	}

	adminHandler := &handlers.AdminHandler{
		Billing:      billingService,
		Delivery:     pipeline,
		Triggers:     runner,
		Rooms:        rooms,
		UtilityBills: utilityBills,
		Users:        users,
	}
	bookingHandler := handlers.NewBookingHandler(bookingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	storageHandler := handlers.NewStorageHandler(imageService)
	roomHandler := handlers.NewRoomHandler(rooms)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AdminSecret: []byte(cfg.AdminJWTSecret),
		Health:      handlers.HealthHandler,

		// Admin endpoints.
		ListBillsHandler:         adminHandler.ListBillsHandler,
		GetBillHandler:           adminHandler.GetBillHandler,
		ListTenantBillsHandler:   adminHandler.ListTenantBillsHandler,
		ResendBillHandler:        adminHandler.ResendBillHandler,
		RunTriggerHandler:        adminHandler.RunTriggerHandler,
		CreateRoomHandler:        adminHandler.CreateRoomHandler,
		CreateUtilityBillHandler: adminHandler.CreateUtilityBillHandler,
		CreateTenantHandler:      adminHandler.CreateTenantHandler,

		// Booking endpoints.
		CreateBookingHandler:  bookingHandler.CreateBookingHandler,
		GetBookingHandler:     bookingHandler.GetBookingHandler,
		CancelBookingHandler:  bookingHandler.CancelBookingHandler,
		UpdateCheckOutHandler: bookingHandler.UpdateCheckOutHandler,

		// Payment endpoints.
		CreateOrderHandler:   paymentHandler.CreateOrderHandler,
		StripeWebhookHandler: paymentHandler.StripeWebhookHandler,

		// Room endpoints.
		ListRoomsHandler: roomHandler.ListRoomsHandler,

		// Room image endpoints.
		UploadRoomImageHandler: storageHandler.UploadFileHandler,
		ListRoomImagesHandler:  storageHandler.ListImagesHandler,
		DeleteRoomImageHandler: storageHandler.DeleteImageHandler,
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(handlers.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("scheduler", cfg.SchedulerBackend))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	runner.Shutdown()

	shutdownCtx, cancelDB := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelDB()
	if err := database.MongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Warn("main: disconnecting mongo", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
