// config предоставляет структуру конфигурации сервиса и функции
// загрузки из файла/переменных окружения с предсказуемым приоритетом.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/crypto/bcrypt"
)

// Ошибки валидации конфигурации. Любая из них фатальна на старте процесса:
// сервис с недоконфигурированными секретами подписи не должен подняться.
var (
	// ErrMissingAccessSecret — не задан секрет подписи access-токенов.
	ErrMissingAccessSecret = errors.New("access secret is not configured")
	// ErrMissingRefreshSecret — не задан секрет подписи refresh-токенов.
	ErrMissingRefreshSecret = errors.New("refresh secret is not configured")
	// ErrSecretsNotDistinct — секреты access и refresh совпадают;
	// раздельные секреты — граница изоляции: компрометация одного
	// не должна позволять подделывать токены другого типа.
	ErrSecretsNotDistinct = errors.New("access and refresh secrets must differ")
	// ErrInvalidBcryptCost — cost-фактор вне допустимого диапазона bcrypt.
	ErrInvalidBcryptCost = errors.New("bcrypt cost out of range")
)

// Config — корневая конфигурация сервиса.
// Источники значений (по убыванию приоритета):
//  1. явный путь через флаг --config;
//  2. путь в переменной окружения CONFIG_PATH;
//  3. файл local.yaml из рабочей директории;
//  4. переменные окружения (cleanenv).
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	Ops      OpsConfig     `yaml:"ops"`
	Auth     AuthConfig    `yaml:"auth"`
	DB       DBConfig      `yaml:"db"`
	Redis    RedisConfig   `yaml:"redis"`
	Mail     MailConfig    `yaml:"mail"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// HTTPConfig — сетевые настройки публичного HTTP API.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

// OpsConfig — сетевые настройки служебного листенера (livez/healthz/metrics).
type OpsConfig struct {
	Host string `yaml:"host" env:"OPS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"OPS_PORT" env-default:"9090"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// Addr возвращает адрес в формате host:port.
func (o OpsConfig) Addr() string {
	return net.JoinHostPort(o.Host, o.Port)
}

// AuthConfig содержит параметры выпуска и валидации токенов и хэширования паролей.
//
// AccessSecret и RefreshSecret обязательны и должны различаться (см. Validate).
// RecoveryTokenTTL — срок жизни токена восстановления пароля; такой токен
// несёт отдельный purpose-клейм и не принимается как access-токен.
type AuthConfig struct {
	AccessSecret     string        `yaml:"access_secret" env:"ACCESS_SECRET" env-required:"true"`
	RefreshSecret    string        `yaml:"refresh_secret" env:"REFRESH_SECRET" env-required:"true"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"1h"`
	RefreshTokenTTL  time.Duration `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL" env-default:"168h"`
	RecoveryTokenTTL time.Duration `yaml:"recovery_token_ttl" env:"RECOVERY_TOKEN_TTL" env-default:"30m"`
	Issuer           string        `yaml:"issuer" env:"ISSUER" env-default:"account-service"`
	Audience         []string      `yaml:"audience" env:"AUDIENCE" env-default:"account-api"`
	BcryptCost       int           `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
}

// DBConfig — настройки подключения к базе данных.
type DBConfig struct {
	DatabaseURL string `yaml:"db_url" env:"DATABASE_URL" env-required:"true"`
}

// RedisConfig — настройки Redis для лимитера попыток входа.
// Пустой URL означает, что лимитер выключен.
type RedisConfig struct {
	RedisURL string `yaml:"redis_url" env:"REDIS_URL"`

	// MaxLoginAttempts — число неудачных попыток входа до временной блокировки.
	MaxLoginAttempts int `yaml:"max_login_attempts" env:"MAX_LOGIN_ATTEMPTS" env-default:"10"`
	// LoginCooldown — окно, в течение которого копятся и действуют попытки.
	LoginCooldown time.Duration `yaml:"login_cooldown" env:"LOGIN_COOLDOWN" env-default:"15m"`
}

// MailConfig — настройки SMTP для писем восстановления пароля.
type MailConfig struct {
	Host        string `yaml:"host" env:"MAIL_HOST"`
	Port        int    `yaml:"port" env:"MAIL_PORT" env-default:"587"`
	User        string `yaml:"user" env:"MAIL_USER"`
	Password    string `yaml:"password" env:"MAIL_PASS"`
	From        string `yaml:"from" env:"MAIL_FROM"`
	FrontendURL string `yaml:"frontend_url" env:"FRONTEND_URL"`
}

// Validate проверяет инварианты, которые cleanenv выразить не может.
func (c *Config) Validate() error {
	if c.Auth.AccessSecret == "" {
		return ErrMissingAccessSecret
	}

	if c.Auth.RefreshSecret == "" {
		return ErrMissingRefreshSecret
	}

	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return ErrSecretsNotDistinct
	}

	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return ErrInvalidBcryptCost
	}

	return nil
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// ВАЖНО: после чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		return tryRead("local.yaml")
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
