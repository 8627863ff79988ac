package infra

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config — корневая структура конфигурации всех сервисов бэк-офиса.
// Каждый бинарь читает один и тот же файл и берет свои секции.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Clients  ClientsConfig  `mapstructure:"clients"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig описывает настройки HTTP-сервера.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig описывает подключение к PostgreSQL.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
	MinConns int32  `mapstructure:"min_conns"`
}

// RedisConfig описывает подключение к Redis (шина событий по требованиям).
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig содержит настройки JWT (HS512) и bcrypt.
type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret"` // base64, генерируется cmd/auth -gen-secret
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`
}

// GatewayConfig — таблица адресов бэкендов и политика CORS шлюза.
// Логические имена (customer-service и т.д.) резолвятся здесь,
// статически, без runtime service discovery.
type GatewayConfig struct {
	AllowedOrigin string            `mapstructure:"allowed_origin"`
	Services      map[string]string `mapstructure:"services"` // имя -> базовый URL
}

// ClientsConfig настраивает исходящие вызовы policy-сервиса
// к customer-сервису (таймаут и ручки надежности).
type ClientsConfig struct {
	CustomerBaseURL string        `mapstructure:"customer_base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`

	// Attempts=1 означает "без ретраев" — поведение по умолчанию.
	RetryAttempts uint    `mapstructure:"retry_attempts"`
	RateLimit     float64 `mapstructure:"rate_limit"`
	RateBurst     int     `mapstructure:"rate_burst"`

	// Настройки Circuit Breaker для исходящего lookup-а
	CBMaxRequests uint32        `mapstructure:"cb_max_requests"`
	CBInterval    time.Duration `mapstructure:"cb_interval"`
	CBTimeout     time.Duration `mapstructure:"cb_timeout"`
}

// LoggerConfig настраивает поведение zap логгера.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// LoadConfig инициализирует конфигурацию, объединяя значения из файла и ENV.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. Настройка поиска файла
	v.SetConfigName("config")    // имя файла без расширения
	v.SetConfigType("yaml")      // формат
	v.AddConfigPath(".")         // ищем в корне
	v.AddConfigPath("./configs") // и в папке с конфигами

	// 2. Настройка переменных окружения (ENV)
	// Позволяет перекрывать конфиг: SERVER_PORT=9000 перекроет server.port
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 3. Установка дефолтных значений
	setDefaults(v)

	// 4. Чтение файла
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Если файла нет — работаем на ENV и дефолтах
	}

	// 5. Маппинг в структуру
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("database.max_conns", 15)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("gateway.allowed_origin", "http://localhost:3000")
	v.SetDefault("gateway.services", map[string]string{
		"customer-service": "http://localhost:8081",
		"policy-service":   "http://localhost:8082",
		"auth-service":     "http://localhost:8083",
	})

	v.SetDefault("clients.customer_base_url", "http://localhost:8081")
	v.SetDefault("clients.timeout", 10*time.Second)
	// Один вызов на lookup — ретраи включаются явно, через конфиг
	v.SetDefault("clients.retry_attempts", 1)
	v.SetDefault("clients.rate_limit", 100)
	v.SetDefault("clients.rate_burst", 20)
	v.SetDefault("clients.cb_max_requests", 3)
	v.SetDefault("clients.cb_interval", 5*time.Second)
	v.SetDefault("clients.cb_timeout", 30*time.Second)
}
