package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/edutec/campus-backend/internal/api/http"
	"github.com/edutec/campus-backend/internal/api/http/handlers"
	"github.com/edutec/campus-backend/internal/auth"
	"github.com/edutec/campus-backend/internal/config"
	"github.com/edutec/campus-backend/internal/events"
	"github.com/edutec/campus-backend/internal/idp"
	"github.com/edutec/campus-backend/internal/observability"
	"github.com/edutec/campus-backend/internal/persistence"
	"github.com/edutec/campus-backend/internal/repository"
	"github.com/edutec/campus-backend/internal/service"
	"github.com/edutec/campus-backend/internal/worker"
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
	accountRepo := repository.NewAccountRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	careerRepo := repository.NewCareerRepository(pool)
	cycleRepo := repository.NewCycleRepository(pool)
	sectionRepo := repository.NewSectionRepository(pool)
	classroomRepo := repository.NewClassroomRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	invitationRepo := repository.NewInvitationRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)

	tokenManager, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	revocations := auth.NewRevocationStore(tokenManager, logger, cfg.Auth.SweepInterval(), cfg.Auth.ExpiredCacheMaxSize)
	go revocations.Run(ctx)

	gate := auth.NewRequestGate(auth.DefaultRules(), tokenManager, revocations, accountRepo, logger)

	dispatcher := events.NewInMemoryDispatcher(logger)
	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	var provider idp.Provider
	if p, err := idp.NewGoogleProvider(cfg.OAuth); err != nil {
		logger.Warn("google identity provider disabled", zap.Error(err))
	} else {
		provider = p
	}

	sessionService := service.NewSessionService(accountRepo, tokenManager, revocations, logger)
	identityLinker := service.NewIdentityLinker(accountRepo, tokenManager, dispatcher, cfg.Auth.AllowedEmailDomain, cfg.Auth.BcryptCost, logger)
	accountService := service.NewAccountService(accountRepo, cfg.Auth.AllowedEmailDomain, cfg.Auth.BcryptCost)
	academicService := service.NewAcademicService(departmentRepo, careerRepo, cycleRepo, sectionRepo)
	classroomService := service.NewClassroomService(classroomRepo, enrollmentRepo)
	invitationService := service.NewInvitationService(invitationRepo, classroomService, accountRepo, dispatcher)
	announcementService := service.NewAnnouncementService(announcementRepo, redis.Client, dispatcher, logger)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Gate:          gate,
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:          handlers.NewAuthHandler(sessionService, identityLinker, provider, cfg.Frontend, logger),
		Accounts:      handlers.NewAccountsHandler(accountService),
		Academics:     handlers.NewAcademicsHandler(academicService),
		Classrooms:    handlers.NewClassroomsHandler(classroomService),
		Invitations:   handlers.NewInvitationsHandler(invitationService),
		Announcements: handlers.NewAnnouncementsHandler(announcementService),
		Debug:         handlers.NewDebugHandler(sessionService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
