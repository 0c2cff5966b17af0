package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	"dispatch/internal/adapters/in/seed"
	"dispatch/internal/adapters/out/push"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional, the environment always wins.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cmd.NewCompositionRoot(config, logger)
	if err = run(ctx, app, config, logger); err != nil {
		log.Fatalf("Dispatch service stopped: %v", err)
	}
}

func run(ctx context.Context, app cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) error {
	if err := loadSeed(ctx, app, config.SeedFile); err != nil {
		return err
	}

	jobManager, err := app.CreateJobManager()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	publishers := push.Fanout{app.Hub()}
	if config.PushEnabled() {
		sender, senderErr := newPushSender(ctx, config)
		if senderErr != nil {
			return senderErr
		}
		fcm := push.NewFCMPublisher(sender, app.Store(), logger)
		publishers = append(publishers, fcm)
		g.Go(func() error { return fcm.Run(gctx) })
	}
	app.Store().SetPublisher(publishers)

	e := newEcho(app)
	g.Go(func() error {
		logger.InfoContext(gctx, "HTTP server listening", "port", config.HTTPPort, "oracle", config.OracleProvider)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	g.Go(func() error { return app.Hub().Run(gctx) })
	g.Go(func() error { return jobManager.Run(gctx) })

	return g.Wait()
}

func loadSeed(ctx context.Context, app cmd.CompositionRoot, path string) error {
	if path == "" {
		return nil
	}
	f, err := seed.Load(path)
	if err != nil {
		return err
	}
	if err = seed.Apply(ctx, app.UoWFactory(), app.Clock(), f); err != nil {
		return fmt.Errorf("apply seed file %s: %w", path, err)
	}
	slog.InfoContext(ctx, "Seed loaded", "file", path, "drivers", len(f.Drivers), "orders", len(f.Orders))
	return nil
}

func newPushSender(ctx context.Context, config cmd.Config) (push.Sender, error) {
	if config.FirebaseCredentialsFile != "" {
		return push.NewSenderFromFile(ctx, config.FirebaseCredentialsFile)
	}
	return push.NewSenderFromBase64(ctx, config.FirebaseCredentialsBase64)
}

func newEcho(app cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.WARN)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			slog.LogAttrs(c.Request().Context(), level, "HTTP request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	app.CreateHTTPServer().Register(e)
	e.GET("/ws", app.CreateWebSocketHandler().Serve)
	return e
}
