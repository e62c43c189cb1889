// Package config предоставляет структуры и функции для загрузки конфигурации
// сервиса: YAML-файл (CONFIG_PATH), переменные окружения и .env-файл.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Provider   Provider  `yaml:"provider"`
	Checkout   Checkout  `yaml:"checkout"`
	RateLimit  RateLimit `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"0.0.0.0:3000"`
	TimeoutHTTP time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"35s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Provider настройки клиента платёжного провайдера (Circle).
type Provider struct {
	APIKey  string        `yaml:"api_key" env:"CIRCLE_API_KEY" env-required:"true"`
	APIURL  string        `yaml:"api_url" env:"CIRCLE_API_URL" env-default:"https://api-sandbox.circle.com"`
	Timeout time.Duration `yaml:"timeout" env:"CIRCLE_TIMEOUT" env-default:"15s"`
	KeyID   string        `yaml:"key_id" env:"CIRCLE_KEY_ID" env-default:"key1"`
}

// Checkout фиксированные параметры платежа, которые не приходят из формы.
type Checkout struct {
	Currency    string `yaml:"currency" env-default:"USD"`
	Description string `yaml:"description" env-default:"Test payment"`
	// LegacyStatusOK отдаёт 200 на любой результат, как исходная форма.
	LegacyStatusOK bool           `yaml:"legacy_status_ok" env:"LEGACY_STATUS_OK"`
	Billing        BillingDetails `yaml:"billing_details"`
}

// BillingDetails платёжный адрес, подставляемый в каждую карту.
type BillingDetails struct {
	Name       string `yaml:"name" env-default:"Test User"`
	City       string `yaml:"city" env-default:"Test City"`
	Country    string `yaml:"country" env-default:"US"`
	Line1      string `yaml:"line1" env-default:"Test Address"`
	PostalCode string `yaml:"postal_code" env-default:"12345"`
}

// RateLimit настройки ограничителя запросов на /process-payment.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"5"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"10"`
}

// Load читает .env (если есть), затем YAML из CONFIG_PATH (если задан) и
// переменные окружения.
func Load() (*Config, error) {
	const op = "config.Load"

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var cfg Config
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return validate(&cfg)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return validate(&cfg)
}

func validate(cfg *Config) (*Config, error) {
	const op = "config.validate"

	if cfg.RateLimit.RPS <= 0 {
		return nil, fmt.Errorf("%s: rate_limit.rps must be positive, got %g", op, cfg.RateLimit.RPS)
	}
	if cfg.RateLimit.Burst <= 0 {
		return nil, fmt.Errorf("%s: rate_limit.burst must be positive, got %d", op, cfg.RateLimit.Burst)
	}
	return cfg, nil
}

// MustLoad загружает конфиг и завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Provider:\n"+
			"  APIKey: %s\n"+
			"  APIURL: %s\n"+
			"  Timeout: %s\n"+
			"  KeyID: %s\n"+
			"Checkout:\n"+
			"  Currency: %s\n"+
			"  Description: %s\n"+
			"  LegacyStatusOK: %t\n"+
			"RateLimit:\n"+
			"  RPS: %g\n"+
			"  Burst: %d\n",
		c.Env,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		mask(c.Provider.APIKey),
		c.Provider.APIURL,
		c.Provider.Timeout,
		c.Provider.KeyID,
		c.Checkout.Currency,
		c.Checkout.Description,
		c.Checkout.LegacyStatusOK,
		c.RateLimit.RPS,
		c.RateLimit.Burst,
	)
}

func mask(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
