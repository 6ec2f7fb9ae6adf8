package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	_ "github.com/osse101/DreamJournal_Go/docs"
	"github.com/osse101/DreamJournal_Go/internal/account"
	"github.com/osse101/DreamJournal_Go/internal/admin"
	"github.com/osse101/DreamJournal_Go/internal/bootstrap"
	"github.com/osse101/DreamJournal_Go/internal/config"
	"github.com/osse101/DreamJournal_Go/internal/database"
	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/invite"
	"github.com/osse101/DreamJournal_Go/internal/profile"
	"github.com/osse101/DreamJournal_Go/internal/progression"
	"github.com/osse101/DreamJournal_Go/internal/quest"
	"github.com/osse101/DreamJournal_Go/internal/scheduler"
	"github.com/osse101/DreamJournal_Go/internal/server"
	"github.com/osse101/DreamJournal_Go/internal/session"
	"github.com/osse101/DreamJournal_Go/internal/shop"
	"github.com/osse101/DreamJournal_Go/internal/sse"
	"github.com/osse101/DreamJournal_Go/internal/verification"
	"github.com/osse101/DreamJournal_Go/internal/worker"
)

const (
	levelTableTTL     = time.Minute
	backgroundWorkers = 2
	backgroundQueue   = 8
	startupTimeout    = 30 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// @title DreamJournal API
// @version 1.0
// @description Workshop member journal: invites, quests, ascension and the YC shop.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	envWarnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Warn("Environment check failed", "error", err)
	}
	for _, w := range envWarnings {
		slog.Warn("Environment warning", "detail", w)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), startupTimeout)
	defer cancelStart()

	dbPool, err := database.NewPool(startCtx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	version, err := database.Migrate(startCtx, dbPool)
	if err != nil {
		return err
	}
	slog.Info("Database ready", "schema_version", version)

	repos := bootstrap.InitializeRepositories(dbPool)

	if err := bootstrap.SyncCatalogFromFile(startCtx, cfg.CatalogPath, cfg.CatalogSchemaPath, repos.CatalogStore); err != nil {
		return err
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	day := domain.DayBoundary{Location: cfg.ResetLocation(), ResetHour: cfg.DailyResetHour}
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	levels := progression.NewLevelTable(repos.Catalog, levelTableTTL)

	profileService := profile.NewService(repos.Profile, levels, cfg.ProfileCacheSize, cfg.ProfileCacheTTL)

	verificationOpts := verification.Options{Timeout: cfg.VerificationTimeout}
	if cfg.QRStorageEnabled() {
		store, err := verification.NewS3Store(startCtx, verification.S3Config{
			Bucket:          cfg.QRBucket,
			Endpoint:        cfg.QREndpoint,
			Region:          cfg.QRRegion,
			AccessKeyID:     cfg.QRAccessKeyID,
			SecretAccessKey: cfg.QRSecretAccessKey,
			PublicBaseURL:   cfg.QRPublicBaseURL,
		})
		if err != nil {
			return err
		}
		verificationOpts.Store = store
	}
	verificationService := verification.NewService(repos.Verification, publisher, verificationOpts)
	notifier := verification.NewNotifier(bus)
	waiter := verification.NewWaiter(verificationService, notifier, cfg.VerificationPollInterval, nil)

	limiter := invite.NewLoginLimiter(repos.LoginLimit, cfg.DailyLoginLimit, day)
	inviteService := invite.NewService(invite.Deps{
		Invites:   repos.Invite,
		Accounts:  repos.Account,
		Limiter:   limiter,
		Codec:     invite.NewTokenCodec(cfg.InviteSecret, cfg.LegacyInviteKey, cfg.InviteTokenTTL),
		Sessions:  sessions,
		Publisher: publisher,
		Secret:    cfg.InviteSecret,
		BaseURL:   cfg.InviteBaseURL,
	})
	accountService := account.NewService(repos.Account, limiter, sessions, publisher)

	questService := quest.NewService(quest.Deps{
		Quests:      repos.Quest,
		Catalog:     repos.Catalog,
		Profiles:    repos.Profile,
		Verifier:    verificationService,
		Waiter:      waiter,
		Publisher:   publisher,
		Invalidator: profileService,
		Day:         day,
	})
	progressionService := progression.NewService(progression.Deps{
		Profiles:     repos.Profile,
		Progression:  repos.Progression,
		Levels:       levels,
		Exams:        verificationService,
		Publisher:    publisher,
		Invalidator:  profileService,
		RequiresExam: cfg.AscensionRequiresExam,
	})
	shopService := shop.NewService(repos.Shop, repos.Catalog, publisher, profileService)
	adminService := admin.NewService(admin.Deps{
		Catalog:   repos.Catalog,
		Admin:     repos.Admin,
		Users:     profileService,
		Levels:    levels,
		Invites:   inviteService,
		Scanner:   verificationService,
		Publisher: publisher,
		Day:       day,
	})

	hub := sse.NewHub()
	hub.Start()

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:       bus,
		ProfileService: profileService,
		Hub:            hub,
	}); err != nil {
		return err
	}

	pool := worker.NewPool(backgroundWorkers, backgroundQueue)
	pool.Start()
	jobs := scheduler.New(pool)
	jobs.Schedule("verification-expiry", cfg.VerificationSweepInterval, worker.NewVerificationExpiryJob(verificationService))

	dailyReset := worker.NewDailyResetWorker(limiter, publisher, cfg.ResetLocation(), cfg.DailyResetHour)
	if err := dailyReset.Start(); err != nil {
		return err
	}

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Detector:       server.DefaultDetectorConfig,
	}, server.Deps{
		DB:            dbPool,
		Sessions:      sessions,
		Hub:           hub,
		Gatherer:      prometheus.DefaultGatherer,
		Resetter:      dailyReset,
		Invites:       inviteService,
		Accounts:      accountService,
		Profiles:      profileService,
		Quests:        questService,
		Verifications: verificationService,
		Progression:   progressionService,
		Shop:          shopService,
		Admin:         adminService,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stop:
		slog.Info("Signal received", "signal", sig.String())
	case runErr = <-serverErr:
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:             srv,
		Hub:                hub,
		Scheduler:          jobs,
		Pool:               pool,
		DailyResetWorker:   dailyReset,
		ResilientPublisher: publisher,
	})
	return runErr
}
