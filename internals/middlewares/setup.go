package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"go.uber.org/zap"

	"hostelhub_backend/internals/middlewares/logger"
)

const requestTimeout = 10 * time.Second

// SetupMiddlewares installs the global chain. Recovery sits first so it also
// covers panics raised by the other middlewares.
func SetupMiddlewares(app *fiber.App, log *zap.Logger) {
	app.Use(RecoveryMiddleware(log))
	app.Use(logger.LoggerMiddleware(log, requestTimeout))
	app.Use(CorsMiddleware())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(GlobalRateLimiter())
}
