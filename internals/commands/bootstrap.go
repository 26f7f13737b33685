package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hostelhub_backend/internals/configs"
	database "hostelhub_backend/internals/databases"
	residentService "hostelhub_backend/internals/features/hostel/residents/service"
	authService "hostelhub_backend/internals/features/users/auth/service"
	"hostelhub_backend/internals/helpers/cache"
	"hostelhub_backend/internals/helpers/dbtime"
	"hostelhub_backend/internals/helpers/lockset"
	"hostelhub_backend/internals/helpers/txretry"
	"hostelhub_backend/internals/logger"
)

const serviceName = "hostelhub"

// env is what every command shares: config, logger, db and the tx runner.
type env struct {
	Log    *zap.Logger
	DB     *gorm.DB
	Runner *txretry.Runner
	Clock  dbtime.Clock

	redisClient *redis.Client
}

func setup() (*env, error) {
	configs.LoadEnv()

	log, err := logger.NewLogger(configs.LogLevel, configs.LogFormat, serviceName)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	zap.ReplaceGlobals(log)

	db, err := database.ConnectDB(configs.NewGormLogger(log))
	if err != nil {
		return nil, err
	}
	database.TunePool(db)

	return &env{
		Log:    log,
		DB:     db,
		Runner: txretry.New(db, lockset.New(), configs.TxMaxAttempts, log),
		Clock:  dbtime.SystemClock(),
	}, nil
}

func (e *env) close() {
	if e.redisClient != nil {
		_ = e.redisClient.Close()
	}
	if sqlDB, err := e.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = e.Log.Sync()
}

func (e *env) hasher() authService.Hasher {
	return authService.NewBcryptHasher(0)
}

func (e *env) authService() *authService.AuthService {
	return &authService.AuthService{
		DB:         e.DB,
		Runner:     e.Runner,
		Residents:  residentService.NewResidentService(e.DB, e.Runner, e.Clock),
		Hasher:     e.hasher(),
		Tokens:     authService.NewTokenService(configs.JWTSecret, configs.JWTTTL, e.Clock),
		Mailer:     e.mailer(),
		Clock:      e.Clock,
		AdminEmail: configs.AdminEmail,
		Log:        e.Log,
	}
}

// mailer posts to the relay when MAIL_WEBHOOK_URL is set and logs the link otherwise.
func (e *env) mailer() authService.Mailer {
	if configs.MailWebhookURL == "" {
		return authService.NewLogMailer(configs.VerifyBaseURL, e.Log)
	}
	e.Log.Info("[BOOT] verification mail via webhook")
	return authService.NewWebhookMailer(configs.MailWebhookURL, configs.MailWebhookToken, configs.VerifyBaseURL, e.Log)
}

// statsCache connects to Redis when REDIS_ADDR is set. An unreachable
// server is logged and the API runs uncached.
func (e *env) statsCache(ctx context.Context) cache.KV {
	if configs.RedisAddr == "" {
		return nil
	}
	client := cache.NewRedisClient(configs.RedisAddr, configs.RedisPassword, configs.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx, client); err != nil {
		e.Log.Warn("[BOOT] redis unreachable, dashboard cache disabled", zap.String("addr", configs.RedisAddr), zap.Error(err))
		_ = client.Close()
		return nil
	}
	e.redisClient = client
	e.Log.Info("[BOOT] redis connected", zap.String("addr", configs.RedisAddr))
	return cache.NewRedisKV(client)
}

// ensureAdmin creates the configured admin or re-verifies it.
func (e *env) ensureAdmin(ctx context.Context, auth *authService.AuthService) error {
	if configs.AdminPassword == "" {
		e.Log.Warn("[BOOT] ADMIN_PASSWORD empty, admin bootstrap skipped")
		return nil
	}
	created, err := auth.EnsureAdmin(ctx, configs.AdminEmail, configs.AdminPassword)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	if created {
		e.Log.Info("[BOOT] admin account created", zap.String("email", configs.AdminEmail))
	}
	return nil
}
