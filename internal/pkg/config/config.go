package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (TTLs, domains, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Tenancy TenancyConfig
	Cache   CacheConfig
	Assets  AssetsConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
	// Proxy addresses or CIDR blocks whose forwarded headers are believed.
	// Empty means no proxy is trusted and X-Forwarded-* is ignored.
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES" default:""`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"true"`
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// TenancyConfig drives tenant resolution: which host names count as the
// discovery/platform host and which identities hold platform-wide admin rights.
type TenancyConfig struct {
	BaseDomain     string   `envconfig:"TENANCY_BASE_DOMAIN" default:"promenu.valueappsolutions.com"`
	LocalLabel     string   `envconfig:"TENANCY_LOCAL_LABEL" default:"localhost"`
	PlatformAdmins []string `envconfig:"PLATFORM_ADMINS" default:""`
}

// CacheConfig holds the freshness windows used by the tenant data gateway.
// The cache store itself is TTL-agnostic; freshness policy lives here.
type CacheConfig struct {
	ListingTTL time.Duration `envconfig:"CACHE_LISTING_TTL" default:"5m"`
	TenantTTL  time.Duration `envconfig:"CACHE_TENANT_TTL" default:"10m"`
}

type AssetsConfig struct {
	BaseURL string `envconfig:"ASSETS_BASE_URL" default:"/assets"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Enabled: false,
		},
		Log: LogConfig{
			Level: "error", // Error level only for tests
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Tenancy: TenancyConfig{
			BaseDomain: "promenu.valueappsolutions.com",
			LocalLabel: "localhost",
		},
		Cache: CacheConfig{
			ListingTTL: 5 * time.Minute,
			TenantTTL:  10 * time.Minute,
		},
		Assets: AssetsConfig{
			BaseURL: "/assets",
		},
	}
}
