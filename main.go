package main

import (
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"

	"github.com/velocityrides/template-store/config"
	"github.com/velocityrides/template-store/internal/consumer"
	"github.com/velocityrides/template-store/internal/handler"
	"github.com/velocityrides/template-store/internal/middleware"
	"github.com/velocityrides/template-store/internal/notifier"
	"github.com/velocityrides/template-store/internal/repository"
	"github.com/velocityrides/template-store/internal/service"
	"github.com/velocityrides/template-store/pkg/cache"
	"github.com/velocityrides/template-store/pkg/clock"
	"github.com/velocityrides/template-store/pkg/database"
	"github.com/velocityrides/template-store/pkg/logger"
	"github.com/velocityrides/template-store/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, "template-store")

	db, err := database.NewPostgresDB(cfg.DSN())
	if err != nil {
		log.Fatal("failed to connect to postgres", "error", err)
	}

	seeded, err := database.SeedTemplates(db, cfg.SeedFile)
	if err != nil {
		log.Fatal("failed to seed catalog", "error", err)
	}
	if seeded > 0 {
		log.Info("seeded catalog", "templates", seeded)
	}

	redisClient, closeRedis := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	defer closeRedis()

	// Repositories
	templateRepo := repository.NewTemplateRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	userRepo := repository.NewUserRepository(db)
	txManager := repository.NewTxManager(db)

	// Services
	clk := clock.NewSystem()
	webhook := notifier.NewWebhookNotifier(cfg.WebhookURL, log, notifier.WithTimeout(cfg.WebhookTimeout))
	scheduleSvc := service.NewScheduleService(clk)
	notificationSvc := service.NewNotificationService(notificationRepo, clk)
	reservationSvc := service.NewReservationService(
		templateRepo, reservationRepo, wishlistRepo, txManager,
		notificationSvc, webhook, scheduleSvc, clk,
		service.WithPickupDates(cfg.PickupDatesEnabled),
	)
	catalogSvc := service.NewCatalogService(templateRepo, reservationRepo, wishlistRepo)
	reportSvc := service.NewReportService(templateRepo, webhook, notificationSvc)
	draftStore := service.NewRedisDraftStore(redisClient)
	draftSvc := service.NewDraftService(
		draftStore, reservationSvc, templateRepo, scheduleSvc, clk,
		service.WithDraftPickupDates(cfg.PickupDatesEnabled),
	)

	// RabbitMQ consumer: purchase completions settled by the payment system.
	// Optional; without a broker URL completions only arrive via the admin API.
	if cfg.RabbitURL != "" {
		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			log.Fatal("failed to connect to RabbitMQ", "error", err)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatal("failed to start consuming", "error", err)
		}
		consumer.NewCompletionConsumer(reservationSvc, log).Start(msgs)
	}

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "template-store"})
	})

	handler.NewTemplateHandler(catalogSvc, reservationSvc, reportSvc).RegisterRoutes(e)
	handler.NewNotificationHandler(notificationSvc).RegisterRoutes(e)
	handler.NewScheduleHandler(scheduleSvc).RegisterRoutes(e)
	handler.NewSessionHandler(userRepo, clk).RegisterRoutes(e)
	handler.NewDraftHandler(draftSvc).RegisterRoutes(e)

	log.Info("template store starting", "port", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
