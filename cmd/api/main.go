package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/noc-fault-service/internal/api/http"
	"github.com/spec-kit/noc-fault-service/internal/api/http/handlers"
	"github.com/spec-kit/noc-fault-service/internal/auth"
	"github.com/spec-kit/noc-fault-service/internal/config"
	"github.com/spec-kit/noc-fault-service/internal/events"
	"github.com/spec-kit/noc-fault-service/internal/observability"
	"github.com/spec-kit/noc-fault-service/internal/persistence"
	"github.com/spec-kit/noc-fault-service/internal/repository"
	"github.com/spec-kit/noc-fault-service/internal/service"
	"github.com/spec-kit/noc-fault-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	faultRepo := repository.NewFaultRepository(pool)
	historyRepo := repository.NewFaultHistoryRepository(pool)
	noteRepo := repository.NewFaultNoteRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	faultService := service.NewFaultService(service.FaultDependencies{
		FaultRepo:      faultRepo,
		HistoryRepo:    historyRepo,
		NoteRepo:       noteRepo,
		CustomerRepo:   customerRepo,
		DepartmentRepo: departmentRepo,
		UserRepo:       userRepo,
		Dispatcher:     dispatcher,
		Idempotency:    redis,
		IdempotencyTTL: cfg.Redis.IdempotencyTTL(),
	})
	exportService := service.NewExportService(faultRepo, customerRepo, departmentRepo)
	authService := service.NewAuthService(*cfg, userRepo)
	directoryService := service.NewDirectoryService(departmentRepo, customerRepo, userRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis),
		Faults:         handlers.NewFaultsHandler(faultService, exportService),
		Users:          handlers.NewUsersHandler(authService, directoryService),
		Departments:    handlers.NewDepartmentsHandler(directoryService),
		Customers:      handlers.NewCustomersHandler(directoryService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
