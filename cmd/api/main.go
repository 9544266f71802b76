package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/swiftapp/staff-service/internal/api/http"
	"github.com/swiftapp/staff-service/internal/api/http/handlers"
	"github.com/swiftapp/staff-service/internal/auth"
	"github.com/swiftapp/staff-service/internal/config"
	"github.com/swiftapp/staff-service/internal/events"
	"github.com/swiftapp/staff-service/internal/fixtures"
	"github.com/swiftapp/staff-service/internal/observability"
	"github.com/swiftapp/staff-service/internal/persistence"
	"github.com/swiftapp/staff-service/internal/repository"
	"github.com/swiftapp/staff-service/internal/service"
	"github.com/swiftapp/staff-service/internal/worker"
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

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	repos := buildRepositories(ctx, cfg, pg, logger)

	revocations := auth.NewMemoryRevocationStore()
	if redis.Enabled() {
		revocations = auth.NewRedisRevocationStore(redis.Client())
	}

	dispatcher, err := events.NewPoolDispatcher(cfg.Notification.PoolSize, logger)
	if err != nil {
		logger.Fatal("failed to create event pool", zap.Error(err))
	}
	defer dispatcher.Close()

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService, logger)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:    repos.Users,
		Revocations: revocations,
		Logger:      logger,
	})
	if err := authService.BootstrapAdmin(ctx, cfg.Auth.BootstrapAdminEmail, cfg.Auth.BootstrapAdminPassword); err != nil {
		logger.Fatal("failed to bootstrap admin", zap.Error(err))
	}
	staffService := service.NewStaffService(service.StaffDependencies{
		StaffRepo:     repos.Staff,
		DirectoryRepo: repos.Directory,
		Dispatcher:    dispatcher,
		Logger:        logger,
	})
	calendarService := service.NewCalendarService(repos.Jobs, cfg.App.Location())

	var scheduler *worker.Scheduler
	if cfg.Scheduler.Enabled {
		scheduler, err = worker.NewScheduler(logger)
		if err != nil {
			logger.Fatal("failed to create scheduler", zap.Error(err))
		}
		job := worker.NewInvitationExpiryJob(staffService, cfg.Scheduler.InvitationTTL(), cfg.Scheduler.ExpiryInterval(), logger)
		if err := scheduler.Register(job); err != nil {
			logger.Fatal("failed to register job", zap.Error(err))
		}
		scheduler.Start()
	}

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Staff:          handlers.NewStaffHandler(staffService),
		Calendar:       handlers.NewCalendarHandler(calendarService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), repos.Users),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if scheduler != nil {
		scheduler.Stop()
	}
	_ = app.Shutdown()
}

func buildRepositories(ctx context.Context, cfg *config.Config, pg *persistence.Postgres, logger *zap.Logger) repository.Repositories {
	var ds *fixtures.Dataset
	if cfg.App.SeedFixtures {
		loaded, err := fixtures.Load()
		if err != nil {
			logger.Fatal("failed to load fixtures", zap.Error(err))
		}
		ds = loaded
	}

	if !pg.Enabled() {
		return repository.NewMemoryRepositories(ds)
	}

	repos := repository.NewPostgresRepositories(pg.Pool())
	if ds != nil {
		seeded, err := repos.Seed(ctx, ds)
		if err != nil {
			logger.Fatal("failed to seed fixtures", zap.Error(err))
		}
		if seeded {
			logger.Info("seeded empty database from fixtures")
		}
	}
	return repos
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
