// AngelaMos | 2026
// config.go

package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App           AppConfig       `koanf:"app"`
	Server        ServerConfig    `koanf:"server"`
	Database      DatabaseConfig  `koanf:"database"`
	Redis         RedisConfig     `koanf:"redis"`
	JWT           JWTConfig       `koanf:"jwt"`
	RateLimit     RateLimitConfig `koanf:"rate_limit"`
	AuthRateLimit RateLimitConfig `koanf:"auth_rate_limit"`
	OTP           OTPConfig       `koanf:"otp"`
	Mail          MailConfig      `koanf:"mail"`
	CORS          CORSConfig      `koanf:"cors"`
	Log           LogConfig       `koanf:"log"`
	Otel          OtelConfig      `koanf:"otel"`
	Metrics       MetricsConfig   `koanf:"metrics"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL                  string        `koanf:"url"`
	MaxOpenConns         int           `koanf:"max_open_conns"`
	MaxIdleConns         int           `koanf:"max_idle_conns"`
	ConnMaxLifetime      time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime      time.Duration `koanf:"conn_max_idle_time"`
	ConnectRetries       int           `koanf:"connect_retries"`
	ConnectRetryInterval time.Duration `koanf:"connect_retry_interval"`
	AutoMigrate          bool          `koanf:"auto_migrate"`
}

type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

type JWTConfig struct {
	PrivateKeyPath    string        `koanf:"private_key_path"`
	PublicKeyPath     string        `koanf:"public_key_path"`
	AccessTokenExpire time.Duration `koanf:"access_token_expire"`
	Issuer            string        `koanf:"issuer"`
	Audience          string        `koanf:"audience"`
}

type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
	Burst    int           `koanf:"burst"`
}

type OTPConfig struct {
	Length    int           `koanf:"length"`
	TTL       time.Duration `koanf:"ttl"`
	KeyPrefix string        `koanf:"key_prefix"`
}

// MailConfig configures SMTP delivery. An empty Host selects the log sender.
type MailConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	From     string `koanf:"from"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

var (
	cfg  *Config
	once sync.Once
)

func Load(configPath string) (*Config, error) {
	var loadErr error

	once.Do(func() {
		cfg, loadErr = load(configPath)
	})

	if loadErr != nil {
		return nil, loadErr
	}

	return cfg, nil
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKeyReplacer), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	c := &Config{}
	if err := k.Unmarshal("", c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

func Get() *Config {
	if cfg == nil {
		panic("config not loaded: call Load() first")
	}
	return cfg
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":        "tenanthub",
		"app.version":     "1.0.0",
		"app.environment": "development",

		"server.host":             "0.0.0.0",
		"server.port":             3000,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",

		"database.max_open_conns":         25,
		"database.max_idle_conns":         5,
		"database.conn_max_lifetime":      "1h",
		"database.conn_max_idle_time":     "30m",
		"database.connect_retries":        5,
		"database.connect_retry_interval": "5s",
		"database.auto_migrate":           true,

		"redis.pool_size":      10,
		"redis.min_idle_conns": 5,

		"jwt.access_token_expire": "720h",
		"jwt.issuer":              "tenanthub",
		"jwt.audience":            "tenanthub-api",
		"jwt.private_key_path":    "keys/private.pem",
		"jwt.public_key_path":     "keys/public.pem",

		"rate_limit.requests": 100,
		"rate_limit.window":   "1m",
		"rate_limit.burst":    20,

		"auth_rate_limit.requests": 10,
		"auth_rate_limit.window":   "1m",
		"auth_rate_limit.burst":    5,

		"otp.length":     6,
		"otp.ttl":        "5m",
		"otp.key_prefix": "otp:",

		"mail.port": 587,
		"mail.from": "no-reply@tenanthub.local",

		"cors.allowed_origins": []string{
			"http://localhost:3000",
			"http://localhost:3001",
			"http://localhost:3002",
		},
		"cors.allowed_methods": []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
		},
		"cors.allowed_headers": []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		"cors.allow_credentials": true,
		"cors.max_age":           300,

		"log.level":  "info",
		"log.format": "json",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "tenanthub",

		"metrics.enabled": true,
		"metrics.path":    "/metrics",
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"DATABASE_URL":                    "database.url",
	"DATABASE_CONNECT_RETRIES":        "database.connect_retries",
	"DATABASE_CONNECT_RETRY_INTERVAL": "database.connect_retry_interval",
	"DATABASE_AUTO_MIGRATE":           "database.auto_migrate",
	"REDIS_URL":                       "redis.url",
	"ENVIRONMENT":                     "app.environment",
	"NODE_ENV":                        "app.environment",
	"HOST":                            "server.host",
	"PORT":                            "server.port",
	"LOG_LEVEL":                       "log.level",
	"LOG_FORMAT":                      "log.format",
	"JWT_PRIVATE_KEY_PATH":            "jwt.private_key_path",
	"JWT_PUBLIC_KEY_PATH":             "jwt.public_key_path",
	"JWT_EXPIRES_IN":                  "jwt.access_token_expire",
	"JWT_ACCESS_TOKEN_EXPIRE":         "jwt.access_token_expire",
	"JWT_ISSUER":                      "jwt.issuer",
	"JWT_AUDIENCE":                    "jwt.audience",
	"RATE_LIMIT_REQUESTS":             "rate_limit.requests",
	"RATE_LIMIT_WINDOW":               "rate_limit.window",
	"RATE_LIMIT_BURST":                "rate_limit.burst",
	"OTP_TTL":                         "otp.ttl",
	"OTP_EXPIRATION":                  "otp.ttl",
	"SMTP_HOST":                       "mail.host",
	"SMTP_PORT":                       "mail.port",
	"EMAIL_USER":                      "mail.username",
	"EMAIL_PASS":                      "mail.password",
	"EMAIL_FROM":                      "mail.from",
	"OTEL_ENDPOINT":                   "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT":     "otel.endpoint",
	"OTEL_SERVICE_NAME":               "otel.service_name",
	"OTEL_ENABLED":                    "otel.enabled",
	"OTEL_INSECURE":                   "otel.insecure",
	"OTEL_SAMPLE_RATE":                "otel.sample_rate",
	"METRICS_ENABLED":                 "metrics.enabled",
}

func envKeyReplacer(s string) string {
	if mapped, ok := envKeyMap[s]; ok {
		return mapped
	}
	return ""
}

func validate(c *Config) error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.JWT.PrivateKeyPath == "" {
		return fmt.Errorf("JWT_PRIVATE_KEY_PATH is required")
	}

	if c.JWT.PublicKeyPath == "" {
		return fmt.Errorf("JWT_PUBLIC_KEY_PATH is required")
	}

	if c.JWT.AccessTokenExpire <= 0 {
		return fmt.Errorf("jwt.access_token_expire must be positive")
	}

	if c.Database.ConnectRetries < 1 {
		return fmt.Errorf("database.connect_retries must be at least 1")
	}

	if c.Database.ConnectRetryInterval < 0 {
		return fmt.Errorf("database.connect_retry_interval must not be negative")
	}

	if c.OTP.TTL <= 0 {
		return fmt.Errorf("otp.ttl must be positive")
	}

	if c.OTP.Length < 4 || c.OTP.Length > 10 {
		return fmt.Errorf("otp.length must be between 4 and 10")
	}

	if c.CORS.AllowCredentials {
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf(
					"CORS wildcard '*' cannot be used with AllowCredentials",
				)
			}
		}
	}

	if c.IsProduction() {
		if c.Otel.Enabled && c.Otel.Insecure {
			return fmt.Errorf("OTEL_INSECURE must be false in production")
		}
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}


func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
