package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripflow/config"
	"tripflow/cron"
	"tripflow/database"
	sessionRepo "tripflow/database/repository/session"
	"tripflow/handlers"
	"tripflow/routes"
	"tripflow/services/gathering"
	"tripflow/services/intake"
	"tripflow/services/intelligence"
	"tripflow/services/itinerary"
	"tripflow/services/notification"
	"tripflow/services/planner"
	"tripflow/services/tasks"
	"tripflow/services/transcription"
	"tripflow/store"
	"tripflow/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.FirebaseInit()

	// Session store backend, selected by SESSION_STORE. Both satisfy the
	// same interface.
	var sessionStore store.SessionStore
	switch config.AppConfig.SessionStore {
	case "redis":
		ttl := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
		sessionStore = store.NewRedisStore(utils.GetSessionCacheClient(), ttl)
	case "mongo", "":
		database.InitDB()
		sessionStore = sessionRepo.NewMongoSessionRepo()
	default:
		logger.Sugar().Fatalf("main: unknown SESSION_STORE %q", config.AppConfig.SessionStore)
	}

	// Language capability: Gemini when a key is configured, the
	// heuristic extractor otherwise.
	var langSvc intelligence.LanguageService
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := intelligence.NewGeminiLanguageService(config.AppConfig.GeminiAPIKey)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize gemini language service: %v", err)
		}
		langSvc = gemini
	} else {
		logger.Sugar().Warn("main: GEMINI_API_KEY not set, using heuristic language service")
		langSvc = intelligence.NewFallbackLanguageService()
	}

	var geocoder intelligence.Geocoder = intelligence.NullGeocoder{}
	if config.AppConfig.GoogleAPIKey != "" {
		geocoder = intelligence.NewGoogleGeocoder(config.AppConfig.GoogleAPIKey)
	}

	eventHub := notification.NewHub()
	var notifier notification.Publisher = eventHub
	if utils.FCMClient != nil {
		fcmPub := notification.NewFCMPublisher(utils.FCMClient)
		handlers.PushPublisher = fcmPub
		notifier = notification.MultiPublisher{eventHub, fcmPub}
	}

	providerTimeout := time.Duration(config.AppConfig.ProviderTimeoutSeconds) * time.Second
	gatherSvc := gathering.NewDefaultGatheringService(providerTimeout)
	slotFillSvc := intake.NewDefaultSlotFillService(langSvc)
	assemblerSvc := itinerary.NewDefaultAssemblerService(langSvc, geocoder)

	plannerSvc := planner.NewDefaultPlannerService(
		sessionStore,
		langSvc,
		slotFillSvc,
		gatherSvc,
		assemblerSvc,
		notifier,
		tasks.NewAsynqEnqueuer(),
	)

	var transcriber transcription.Transcriber = transcription.NullTranscriber{}
	if config.AppConfig.GoogleCredentialsFile != "" {
		transcriber = transcription.NewGoogleTranscriber()
	}

	handlers.PlannerSvc = plannerSvc
	handlers.EventHub = eventHub
	handlers.TranscriberSvc = transcriber

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	routes.RegisterRoutes(router, handlers.DefaultHandlerBundle())

	// Start the async planner worker.
	cron.InitPlanWorker(plannerSvc)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
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
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
