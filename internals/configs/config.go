package configs

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	AppEnv        string
	Port          string
	LogLevel      string
	LogFormat     string
	JWTSecret     string
	JWTTTL        time.Duration
	AdminEmail    string
	AdminPassword string
	TxMaxAttempts uint
	VerifyBaseURL string
	CorsOrigins   string

	MailWebhookURL   string
	MailWebhookToken string

	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	DashboardCacheTTL time.Duration
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	}

	AppEnv = GetEnv("APP_ENV", "development")
	Port = GetEnv("PORT", "3000")
	LogLevel = GetEnv("LOG_LEVEL", "info")
	LogFormat = GetEnv("LOG_FORMAT", "json")
	JWTSecret = GetEnv("JWT_SECRET")
	JWTTTL = time.Duration(GetEnvInt("JWT_TTL_HOURS", 24)) * time.Hour
	AdminEmail = strings.ToLower(GetEnv("ADMIN_EMAIL", "admin@hostelhub.com"))
	AdminPassword = GetEnv("ADMIN_PASSWORD", "admin123")
	TxMaxAttempts = uint(GetEnvInt("TX_MAX_ATTEMPTS", 3))
	VerifyBaseURL = GetEnv("VERIFY_BASE_URL", "http://localhost:"+Port+"/api/auth/verify")
	CorsOrigins = GetEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")

	MailWebhookURL = GetEnv("MAIL_WEBHOOK_URL")
	MailWebhookToken = GetEnv("MAIL_WEBHOOK_TOKEN")

	RedisAddr = GetEnv("REDIS_ADDR")
	RedisPassword = GetEnv("REDIS_PASSWORD")
	RedisDB = GetEnvInt("REDIS_DB", 0)
	DashboardCacheTTL = time.Duration(GetEnvInt("DASHBOARD_CACHE_TTL_SECONDS", 15)) * time.Second

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	} else {
		log.Println("✅ JWT_SECRET loaded.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// =======================
// GORM LOGGER (zap)
// =======================
type GormLogger struct {
	Log           *zap.Logger
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger(l *zap.Logger) gormLogger.Interface {
	level := gormLogger.Warn
	if l.Core().Enabled(zap.DebugLevel) {
		level = gormLogger.Info
	}
	return &GormLogger{
		Log:           l.Named("gorm"),
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		l.Log.Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		l.Log.Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		l.Log.Sugar().Errorf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("file", utils.FileWithLineNum()),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		l.Log.Error("query failed", append(fields, zap.Error(err))...)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		l.Log.Warn("slow sql", fields...)
	case l.LogLevel >= gormLogger.Info:
		l.Log.Debug("query", fields...)
	}
}
