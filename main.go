package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"apnakam/config"
	"apnakam/cron"
	"apnakam/database"
	bookingRepo "apnakam/database/repository/booking"
	contactRepo "apnakam/database/repository/contact"
	paymentRepo "apnakam/database/repository/payment"
	reviewRepo "apnakam/database/repository/review"
	userRepoPkg "apnakam/database/repository/user"
	"apnakam/handlers"
	"apnakam/middleware"
	"apnakam/routes"
	"apnakam/services/admin"
	"apnakam/services/blog"
	"apnakam/services/booking"
	"apnakam/services/contact"
	ai "apnakam/services/intelligence"
	"apnakam/services/notification"
	"apnakam/services/payment"
	"apnakam/services/review"
	"apnakam/services/search"
	"apnakam/services/storage"
	"apnakam/services/tasks"
	"apnakam/services/user"
	"apnakam/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

const summaryCacheTTL = 6 * time.Hour

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	cfg := config.AppConfig

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	mongoClient, err := database.Connect(rootCtx)
	if err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	db := database.Database(mongoClient)

	cacheClient, err := utils.InitCache()
	if err != nil {
		logger.Fatal("main: failed to connect to Redis", zap.Error(err))
	}
	queueClient := utils.NewQueueRedisClient()

	if err := utils.FirebaseInit(rootCtx); err != nil {
		logger.Fatal("main: failed to initialize Firebase", zap.Error(err))
	}
	stripe.Key = cfg.StripeKey
	utils.SetJWTSecret(cfg.JWTSecret)
	loc := config.Location()

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo(db)
	bookingStore := bookingRepo.NewMongoBookingRepo(db)
	reviewStore := reviewRepo.NewMongoReviewRepo(db)
	paymentStore := paymentRepo.NewMongoPaymentRepo(db)
	contactStore := contactRepo.NewMongoContactRepo(db)

	// intelligence. Without an API key the AI features are disabled and
	// search falls back to the structured query.
	var (
		summarizer review.Summarizer
		suggester  user.SkillSuggester
		drafter    blog.DraftGenerator
		toolRunner search.ToolRunner
	)
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(rootCtx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Fatal("main: failed to initialize Gemini", zap.Error(err))
		}
		defer gemini.Close()
		aiSvc := ai.NewService(gemini, ai.NewRedisSummaryStore(cacheClient, summaryCacheTTL), logger)
		summarizer, suggester, drafter, toolRunner = aiSvc, aiSvc, aiSvc, gemini
	} else {
		logger.Warn("main: GEMINI_API_KEY not set, AI features disabled")
	}

	// background delivery.
	notificationService, err := notification.NewDefaultNotificationService(userRepo, utils.FCMClient, logger)
	if err != nil {
		logger.Fatal("main: failed to build notification service", zap.Error(err))
	}
	queueOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisReminderQueueDB,
	}
	asynqClient := asynq.NewClient(queueOpt)
	defer asynqClient.Close()
	reminderWorker, err := cron.InitReminderWorker(queueOpt, bookingStore, notificationService, logger)
	if err != nil {
		logger.Fatal("main: failed to start reminder worker", zap.Error(err))
	}

	// services.
	listCache := booking.NewRedisListCache(cacheClient, cfg.BookingCacheTTL, logger)
	userService := user.NewDefaultUserService(userRepo, suggester, logger)
	bookingService := booking.NewDefaultBookingService(
		bookingStore,
		userRepo,
		listCache,
		notificationService,
		tasks.NewAsynqReminderScheduler(asynqClient, loc),
		loc,
		logger,
	)
	reviewService := review.NewDefaultReviewService(reviewStore, listCache, summarizer, review.Options{
		Timeout:     cfg.ReviewTxnTimeout,
		MaxAttempts: cfg.ReviewTxnMaxAttempts,
		BaseBackoff: cfg.ReviewTxnBaseBackoff,
	}, logger)
	searchService := search.NewDefaultSearchService(userRepo, toolRunner, logger)

	storageService, err := storage.NewCloudinaryStorageService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize cloudinary storage service", zap.Error(err))
	}
	paymentService := payment.NewDefaultPaymentService(paymentStore, userRepo, userService, payment.StripeGateway{}, cfg.ContactFeePaisa, logger)
	contactService := contact.NewDefaultContactService(contactStore, logger)
	blogService, err := blog.NewFileBlogService(cfg.PostsDir, drafter, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize blog", zap.Error(err))
	}
	adminService := admin.NewDefaultAdminService(admin.Credentials{
		Username:     cfg.AdminUsername,
		PasswordHash: cfg.AdminPasswordHash,
	}, userService, logger)

	utils.StartHealthMonitor(rootCtx, 30*time.Second, []*redis.Client{cacheClient, queueClient}, mongoClient)

	handlerBundle := handlers.NewHandlerBundle(handlers.Services{
		Bookings: bookingService,
		Reviews:  reviewService,
		Search:   searchService,
		Users:    userService,
		Storage:  storageService,
		Payments: paymentService,
		Contact:  contactService,
		Blog:     blogService,
		Admin:    adminService,
		Health:   utils.GetHealthStatus,
	})
	firebaseAuth := middleware.NewFirebaseAuth(utils.FirebaseAuthClient, userService, cacheClient, logger)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(handlers.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))
	routes.RegisterRoutes(router, handlerBundle, firebaseAuth, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	reminderWorker.Shutdown()
	stop()
	if err := mongoClient.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}
	_ = cacheClient.Close()
	_ = queueClient.Close()

	logger.Info("main: server stopped gracefully")
}
