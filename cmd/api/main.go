package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/cybervibe/helpdesk/internal/api/http"
	"github.com/cybervibe/helpdesk/internal/api/http/handlers"
	"github.com/cybervibe/helpdesk/internal/auth"
	"github.com/cybervibe/helpdesk/internal/config"
	"github.com/cybervibe/helpdesk/internal/events"
	"github.com/cybervibe/helpdesk/internal/observability"
	"github.com/cybervibe/helpdesk/internal/persistence"
	"github.com/cybervibe/helpdesk/internal/relay"
	"github.com/cybervibe/helpdesk/internal/repository"
	"github.com/cybervibe/helpdesk/internal/service"
	"github.com/cybervibe/helpdesk/internal/worker"
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
	ticketRepo := repository.NewTicketRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	sheetRelay := relay.NewSheetRelay(cfg.Sheet, logger, metrics)
	worker.StartRelayWorker(sheetRelay, dispatcher)
	defer sheetRelay.Stop()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
		RoleRepo:    roleRepo,
		Cache:       redis,
		Logger:      logger,
	})
	adminService := service.NewAdminService(*cfg, service.AdminDependencies{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
		RoleRepo:    roleRepo,
		AuthService: authService,
		Logger:      logger,
	})
	adminService.SeedAdmin(ctx, cfg.Bootstrap)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:      ticketRepo,
		Dispatcher:      dispatcher,
		Logger:          logger,
		Metrics:         metrics,
		EnforceTaxonomy: cfg.Tickets.EnforceTaxonomy,
	})
	statsService := service.NewStatsService(ticketService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, profileRepo, authService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		AdminUsers:     handlers.NewAdminUsersHandler(adminService),
		Stats:          handlers.NewStatsHandler(statsService),
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
