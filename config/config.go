package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Triaksa-Space/cookie-notice/pkg/logger"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
)

var DB *sqlx.DB

// Config is the service configuration read from .env and the environment.
type Config struct {
	Port        string
	Environment string
	LogLevel    string

	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnMaxIdleTime time.Duration

	RedisURL        string
	OptionsCacheTTL time.Duration

	JWTSecret          string
	CORSAllowedOrigins []string

	BackupS3Bucket string
	BackupS3Prefix string
	AWSRegion      string

	AdminRateLimit float64
	AdminRateBurst int
}

// IsProduction reports whether ENVIRONMENT is production.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", time.Minute)
	v.SetDefault("OPTIONS_CACHE_TTL", 5*time.Minute)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("BACKUP_S3_PREFIX", "cookie-notice")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("ADMIN_RATE_LIMIT", 5.0)
	v.SetDefault("ADMIN_RATE_BURST", 20)
}

// InitConfig reads .env from the working directory when it exists, then the
// environment, into the global viper instance.
func InitConfig() (Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}
	return Load(viper.GetViper()), nil
}

// Load builds a Config from v, applying defaults for unset keys.
func Load(v *viper.Viper) Config {
	setDefaults(v)
	return Config{
		Port:               v.GetString("PORT"),
		Environment:        v.GetString("ENVIRONMENT"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		DBMaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:     v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime:  v.GetDuration("DB_CONN_MAX_LIFETIME"),
		DBConnMaxIdleTime:  v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		RedisURL:           v.GetString("REDIS_URL"),
		OptionsCacheTTL:    v.GetDuration("OPTIONS_CACHE_TTL"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		BackupS3Bucket:     v.GetString("BACKUP_S3_BUCKET"),
		BackupS3Prefix:     v.GetString("BACKUP_S3_PREFIX"),
		AWSRegion:          v.GetString("AWS_REGION"),
		AdminRateLimit:     v.GetFloat64("ADMIN_RATE_LIMIT"),
		AdminRateBurst:     v.GetInt("ADMIN_RATE_BURST"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// mysqlDSN appends the connection parameters the service relies on unless the
// URL already sets them.
func mysqlDSN(dsn string) string {
	params := []struct{ key, value string }{
		{"parseTime", "true"},
		{"loc", "UTC"},
		{"timeout", "10s"},
		{"readTimeout", "30s"},
		{"writeTimeout", "30s"},
	}
	for _, p := range params {
		if strings.Contains(dsn, p.key+"=") {
			continue
		}
		sep := "&"
		if !strings.Contains(dsn, "?") {
			sep = "?"
		} else if strings.HasSuffix(dsn, "?") || strings.HasSuffix(dsn, "&") {
			sep = ""
		}
		dsn += sep + p.key + "=" + p.value
	}
	return dsn
}

// InitDB connects to MySQL, tunes the pool and verifies the connection. The
// connection is also kept in DB.
func InitDB(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", mysqlDSN(cfg.DatabaseURL))
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.DBConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Get().WithComponent("config").Info("Database connected",
		logger.Int("max_open", cfg.DBMaxOpenConns),
		logger.Int("max_idle", cfg.DBMaxIdleConns),
		logger.Duration("max_lifetime_ms", cfg.DBConnMaxLifetime),
	)
	DB = db
	return db, nil
}

// CloseDB closes the global connection.
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
