package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "config/local.yaml"

type HTTPServer struct {
	Addr            string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"1m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

// RateConfig bounds checkout submissions per session (Redis sliding window)
// and overall API traffic per client IP (token bucket).
type RateConfig struct {
	MaxAttempts       int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"3"`
	WindowSize        time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"10m"`
	RequestsPerSecond float64       `yaml:"REQUESTS_PER_SECOND" env:"REQUESTS_PER_SECOND" env-default:"10"`
	Burst             int           `yaml:"BURST" env:"BURST" env-default:"20"`
}

type SendGrid struct {
	APIKey    string `yaml:"API_KEY" env:"SENDGRID_API_KEY"`
	FromEmail string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"no-reply@industrialparts.com.br"`
	FromName  string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"IndustrialParts"`
}

type Security struct {
	JWTKey             string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
	SessionExpiryHours int    `yaml:"SESSION_EXPIRY_HOURS" env:"SESSION_EXPIRY_HOURS" env-default:"168"`
	SecureCookie       bool   `yaml:"SECURE_COOKIE" env:"SECURE_COOKIE" env-default:"true"`
}

type OtelConfig struct {
	Enabled          bool    `yaml:"ENABLED" env:"OTEL_ENABLED" env-default:"false"`
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"industrial-parts-storefront"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"http://localhost:4318/v1/traces"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

// CacheConfig selects where cart sessions live. DefaultTTL applies to
// catalog lookups, SessionTTL to saved carts and checkout progress.
const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

type CacheConfig struct {
	Backend         string        `yaml:"backend" env:"CACHE_BACKEND" env-default:"redis"`
	DefaultTTL      time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
	SessionTTL      time.Duration `yaml:"session_ttl" env:"CACHE_SESSION_TTL" env-default:"168h"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"CACHE_CLEANUP_INTERVAL" env-default:"10m"`
}

type Storefront struct {
	CompanyName   string `yaml:"company_name" env:"STOREFRONT_COMPANY_NAME" env-default:"IndustrialParts"`
	ContactEmail  string `yaml:"contact_email" env:"STOREFRONT_CONTACT_EMAIL" env-default:"contato@industrialparts.com"`
	ContactPhone  string `yaml:"contact_phone" env:"STOREFRONT_CONTACT_PHONE" env-default:"(11) 1234-5678"`
	SalesEmail    string `yaml:"sales_email" env:"STOREFRONT_SALES_EMAIL" env-default:"vendas@industrialparts.com"`
	SalesName     string `yaml:"sales_name" env:"STOREFRONT_SALES_NAME" env-default:"Equipe Comercial"`
	Timezone      string `yaml:"timezone" env:"STOREFRONT_TIMEZONE" env-default:"America/Sao_Paulo"`
	CatalogSource string `yaml:"catalog_source" env:"STOREFRONT_CATALOG_SOURCE" env-default:"static"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Security     Security     `yaml:"security"`
	Otel         OtelConfig   `yaml:"otel"`
	Cache        CacheConfig  `yaml:"cache"`
	Storefront   Storefront   `yaml:"storefront"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the YAML config file")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			configPath = defaultConfigPath
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not load config: %s", err.Error())
	}

	return cfg

}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	return &cfg, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}

func (s *Security) SessionTTL() time.Duration {
	return time.Duration(s.SessionExpiryHours) * time.Hour
}

// Location falls back to UTC when the zone database lacks the configured name.
func (s *Storefront) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}
