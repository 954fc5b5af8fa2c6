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

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/marchelxyz/mariko-vld-sub000/internal/app/background"
	"github.com/marchelxyz/mariko-vld-sub000/internal/config"
	"github.com/marchelxyz/mariko-vld-sub000/internal/delivery/http/handlers"
	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/cache"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/configcache"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/iiko"
	kafkainfra "github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/kafka"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/messenger"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/metrics"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/migrate"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/postgres"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/postgres/repository"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/yookassa"
	"github.com/marchelxyz/mariko-vld-sub000/internal/usecase"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if migrationsPath := os.Getenv("FULFILLMENT_MIGRATIONS_PATH"); migrationsPath != "" {
		if err := migrate.RunMigrations(db, migrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	paymentEventPublisher := kafkainfra.NewKafkaPublisher(brokers, kafkainfra.PaymentEventsTopic)

	// Init repositories
	paymentRepo := repository.NewDefaultPaymentRepository(db)
	orderRepo := repository.NewDefaultOrderRepository(db)
	jobLogRepo := repository.NewDefaultJobLogRepository(db)
	notificationRepo := repository.NewDefaultNotificationRepository(db)
	integrationConfigRepo := repository.NewDefaultIntegrationConfigRepository(db)

	// Init metrics
	pipelineMetrics := metrics.NewPipelineMetrics()

	// TTL caches are process-local; each instance has its own view
	configProvider := configcache.NewCachedConfigProvider(
		integrationConfigRepo,
		cache.NewMemoryCache(),
		time.Duration(cfg.IntegrationCache.TTLSeconds)*time.Second,
	)

	// Init external clients
	posClient := iiko.NewClient(cfg.IikoService, cache.NewMemoryCache())
	gatewayClient := yookassa.NewClient(cfg.YookassaService)

	// Init usecases
	paymentUsecase := usecase.NewDefaultPaymentUsecase(paymentRepo, orderRepo, gatewayClient, paymentEventPublisher, pipelineMetrics)
	dispatchUsecase := usecase.NewDefaultDispatchUsecase(orderRepo, jobLogRepo, posClient, pipelineMetrics)

	senders := map[domain.NotificationPlatform]domain.MessageSender{
		domain.PlatformTelegram: messenger.NewTelegramSender(cfg.Messengers.TelegramBotToken),
		domain.PlatformVK:       messenger.NewVKSender(cfg.Messengers.VkAccessToken),
	}
	notificationUsecase := usecase.NewDefaultNotificationUsecase(notificationRepo, senders, cfg.NotificationWorker.BatchSize, pipelineMetrics)

	// Init handlers
	webhookHandler := handlers.NewPaymentWebhookHandler(paymentUsecase, dispatchUsecase, orderRepo, configProvider, pipelineMetrics)
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase, jobLogRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationUsecase)

	router := mux.NewRouter()
	router.HandleFunc("/webhooks/payment", webhookHandler.Handle).Methods(http.MethodPost)
	router.HandleFunc("/payments", paymentHandler.Create).Methods(http.MethodPost)
	router.HandleFunc("/payments/{id}", paymentHandler.GetStatus).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}/dispatches", paymentHandler.ListDispatches).Methods(http.MethodGet)
	router.HandleFunc("/notifications", notificationHandler.Create).Methods(http.MethodPost)
	router.Handle("/metrics", promhttp.Handler())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Notification outbox worker
	tasks := background.NewBackgroundTasks(notificationUsecase, time.Duration(cfg.NotificationWorker.IntervalSeconds)*time.Second)
	tasks.StartAll(ctx)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler: router,
	}

	go func() {
		log.Printf("HTTP server started on %s:%s\n", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to serve: %v\n", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v\n", err)
	}
}
