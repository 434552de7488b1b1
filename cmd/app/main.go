package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/examsaathi/examsaathi-web/api/routes"
	"github.com/examsaathi/examsaathi-web/internal/booking"
	"github.com/examsaathi/examsaathi-web/internal/guard"
	"github.com/examsaathi/examsaathi-web/internal/profile"
	"github.com/examsaathi/examsaathi-web/internal/session"
	"github.com/examsaathi/examsaathi-web/internal/signup"
	"github.com/examsaathi/examsaathi-web/pkg/config"
	"github.com/examsaathi/examsaathi-web/pkg/identity"
	"github.com/examsaathi/examsaathi-web/pkg/keyvalue"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
	"github.com/examsaathi/examsaathi-web/pkg/studentapi"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "app"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "app",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state, err := openState(ctx, cfg)
	if err != nil {
		logg.Error(ctx, "failed to open state store", err)
		os.Exit(1)
	}

	provider, err := identity.NewClient(ctx, cfg.Identity, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap identity provider", err)
		os.Exit(1)
	}

	students, err := studentapi.NewClient(cfg.Backend, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap student API client", err)
		os.Exit(1)
	}

	store, err := session.NewStore(session.StoreParams{
		Provider:     provider,
		State:        state,
		Students:     students,
		Logger:       logg,
		PublicOrigin: cfg.Site.PublicOrigin,
	})
	if err != nil {
		logg.Error(ctx, "failed to create session store", err)
		os.Exit(1)
	}

	routeGuard, err := guard.New(store, students, logg)
	if err != nil {
		logg.Error(ctx, "failed to create route guard", err)
		os.Exit(1)
	}

	signupService, err := signup.NewService(store, students, logg, cfg.Signup)
	if err != nil {
		logg.Error(ctx, "failed to create signup service", err)
		os.Exit(1)
	}

	profileService, err := profile.NewService(store, students, logg)
	if err != nil {
		logg.Error(ctx, "failed to create profile service", err)
		os.Exit(1)
	}

	bookings, err := booking.NewManager(booking.SimulatedCharger{Delay: cfg.Booking.ChargeDelay}, logg)
	if err != nil {
		logg.Error(ctx, "failed to create booking manager", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	runCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(runCtx, "starting app server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, state, store, routeGuard, signupService, profileService, bookings),
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return store.Run(groupCtx)
	})
	group.Go(func() error {
		changes, unsubscribe := store.Subscribe()
		defer unsubscribe()
		for {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			case <-changes:
				// Identity changed; any in-flight guard check is stale.
				routeGuard.Invalidate()
			}
		}
	})
	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && err != context.Canceled {
		logg.Error(runCtx, "app server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(runCtx, "app server stopped")
}

// openState picks the durable state backend from config. The file backend is
// the default; memory suits tests and redis suits shared deployments.
func openState(ctx context.Context, cfg *config.Config) (keyvalue.Store, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		return keyvalue.NewMemory(), nil
	case config.StorageBackendRedis:
		return keyvalue.OpenRedis(ctx, cfg.Redis)
	default:
		return keyvalue.OpenFile(cfg.Storage.Path)
	}
}
