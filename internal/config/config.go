// Package config загружает конфигурацию приложения из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- Database ---
	// Приложение локальное, база живёт на той же машине,
	// поэтому дефолт DB_HOST=localhost (в отличие от docker-сетапов).
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"ledger"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"ledger"`
	DBName     string `envconfig:"DB_NAME" default:"member_ledger"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	// Пользователь один, процесс один — большой пул не нужен.
	DBMaxConns int32 `envconfig:"DB_MAX_CONNS" default:"4"`
	DBMinConns int32 `envconfig:"DB_MIN_CONNS" default:"1"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"info"`
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"Europe/Moscow"`

	// --- Ledger ---
	// Стартовый баланс нового участника. Десятичная строка, например "0" или "100.50".
	LedgerStartingBalance string `envconfig:"LEDGER_STARTING_BALANCE" default:"0"`
	// Префикс имени по умолчанию: user_<ID>, если имя не указано при регистрации.
	LedgerUsernamePrefix string `envconfig:"LEDGER_USERNAME_PREFIX" default:"user_"`

	// --- Feature Flags ---
	FeatureDailySummary bool `envconfig:"FEATURE_DAILY_SUMMARY" default:"true"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// StartingBalance парсит LEDGER_STARTING_BALANCE в decimal.
func (c *Config) StartingBalance() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.LedgerStartingBalance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("LEDGER_STARTING_BALANCE не является числом: %w", err)
	}
	return d, nil
}

func (c *Config) Validate() error {
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	start, err := c.StartingBalance()
	if err != nil {
		return err
	}
	if start.IsNegative() {
		return fmt.Errorf("LEDGER_STARTING_BALANCE не может быть отрицательным")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
