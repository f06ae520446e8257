package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	AppEnv      string   `env:"APP_ENV" envDefault:"development"`
	Port        string   `env:"PORT" envDefault:"8080"`
	DBHost      string   `env:"DB_HOST" envDefault:"localhost"`
	DBPort      int      `env:"DB_PORT" envDefault:"5432"`
	DBUser      string   `env:"DB_USER" envDefault:"postgres"`
	DBPassword  string   `env:"DB_PASSWORD"`
	DBName      string   `env:"DB_NAME" envDefault:"roster"`
	DBSSLMode   string   `env:"DB_SSLMODE" envDefault:"disable"`
	DBTimeZone  string   `env:"DB_TIMEZONE" envDefault:"UTC"`
	JWTSecret   string   `env:"JWT_SECRET,required,notEmpty"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.DBTimeZone)
}

// ConfigureLogging sets the global zerolog logger: human-readable console
// output at debug level in development, JSON at info level otherwise.
func ConfigureLogging(c *Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if c.IsDevelopment() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// ConnectDatabase opens the Postgres store. Driver errors such as unique
// violations are translated to gorm errors.
func ConnectDatabase(c *Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if c.IsDevelopment() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(c.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info().Str("host", c.DBHost).Str("database", c.DBName).Msg("Database connected")
	return db, nil
}
