package commands

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hostelhub_backend/internals/configs"
	database "hostelhub_backend/internals/databases"
	"hostelhub_backend/internals/features/users/auth/scheduler"
	middlewares "hostelhub_backend/internals/middlewares"
	routes "hostelhub_backend/internals/route"
	"hostelhub_backend/internals/seeds"
)

const (
	cleanupInterval = time.Hour
	shutdownTimeout = 5 * time.Second
)

func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
	cmd.Flags().Bool("migrate", true, "create or update tables before serving")
	cmd.Flags().Bool("seed", false, "load demo data when the database is empty")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
		if err := database.AutoMigrate(e.DB); err != nil {
			return err
		}
	}
	auth := e.authService()
	if err := e.ensureAdmin(ctx, auth); err != nil {
		return err
	}
	if seed, _ := cmd.Flags().GetBool("seed"); seed {
		if _, err := seeds.RunAllSeeds(ctx, e.DB, e.Runner, e.hasher(), e.Clock, e.Log); err != nil {
			return err
		}
	}
	database.WarmUpQueries(e.DB, e.Log)

	// scheduler after the DB is ready
	scheduler.StartRegistrationCleanupScheduler(ctx, auth, cleanupInterval, e.Log)

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	middlewares.SetupMiddlewares(app, e.Log)
	routes.SetupRoutes(app, routes.Deps{
		DB:       e.DB,
		Runner:   e.Runner,
		Clock:    e.Clock,
		Auth:     auth,
		Log:      e.Log,
		Cache:    e.statsCache(ctx),
		StatsTTL: configs.DashboardCacheTTL,
	})

	errCh := make(chan error, 1)
	go func() {
		e.Log.Info("[HTTP] listening", zap.String("port", configs.Port))
		errCh <- app.Listen("0.0.0.0:" + configs.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	e.Log.Info("[HTTP] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
