package config

import (
	"ClassFeed/models"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Config holds all configuration for the application.
type Config struct {
	Port string
	Env  string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisURL                string
	FirebaseCredentialsPath string

	// TwitterEnabled switches social posting on for the whole process.
	TwitterEnabled bool
	TwitterAPIURL  string

	JWTSecret          string
	RateLimitPerMinute int
}

// Load reads configuration from the environment, after loading .env when
// one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file, using environment variables")
	}

	cfg := &Config{
		Port:                    getEnv("PORT", "8000"),
		Env:                     getEnv("ENV", "development"),
		DBHost:                  os.Getenv("DB_HOST"),
		DBUser:                  os.Getenv("DB_USER"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  os.Getenv("DB_NAME"),
		DBPort:                  getEnv("DB_PORT", "5432"),
		DBSSLMode:               os.Getenv("DB_SSLMODE"),
		RedisURL:                os.Getenv("REDIS_URL"),
		FirebaseCredentialsPath: os.Getenv("FIREBASE_CREDENTIALS_PATH"),
		TwitterEnabled:          parseBool(os.Getenv("TWITTER_ENABLED")),
		TwitterAPIURL:           os.Getenv("TWITTER_API_URL"),
		JWTSecret:               os.Getenv("JWT_SECRET"),
		RateLimitPerMinute:      getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if cfg.DBSSLMode == "" {
		if strings.Contains(cfg.DBHost, "render.com") {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	if cfg.Env == "production" && cfg.JWTSecret == "" {
		panic("JWT_SECRET is required in production")
	}

	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// DSN is the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func InitDatabase(cfg *Config) error {
	zap.L().Info("connecting to database",
		zap.String("host", cfg.DBHost),
		zap.String("user", cfg.DBUser),
		zap.String("dbname", cfg.DBName),
		zap.String("port", cfg.DBPort),
		zap.String("sslmode", cfg.DBSSLMode))

	db, err := gorm.Open(postgres.Open(cfg.DSN()), GormConfig())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return err
	}

	DB = db
	zap.L().Info("connected to database")
	return nil
}

// GormConfig is shared by the service and the tests. Users and classrooms
// are written by the accounts service, so no foreign keys point at them.
func GormConfig() *gorm.Config {
	return &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true}
}

// Migrate creates or updates the feed tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Classroom{},
		&models.Message{},
		&models.MessageReply{},
		&models.MessageLike{},
	)
}

// InitRedis connects to REDIS_URL. It returns nil, nil when Redis is not
// configured and the service runs as a single instance.
func InitRedis(ctx context.Context, cfg *Config) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// parseBool treats any non-empty value other than an explicit false as on.
func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}
