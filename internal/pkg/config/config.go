package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// DatabaseURL is the Postgres DSN shared by the administrative tables
	// and the FreeRADIUS tables; both must live in one database so that a
	// single transaction can span them.
	DatabaseURL string `env:"DATABASE_URL, required"`

	JWTSecret string        `env:"JWT_SECRET, required"`
	JWTExpiry time.Duration `env:"JWT_EXPIRES_IN, default=1h"`

	// AllowRegistration leaves POST /register open. Turn off after the
	// first admin account exists; the endpoint then requires an admin
	// token.
	AllowRegistration bool `env:"ALLOW_REGISTRATION, default=true"`

	// BlockedGroup is the radusergroup groupname whose membership marks a
	// guest as blocked.
	BlockedGroup string `env:"RADIUS_BLOCKED_GROUP, required"`

	SMTP  SMTPConfig
	Redis RedisConfig
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, required"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USER, required"`
	Password string `env:"SMTP_PASS, required"`
	// From defaults to Username when empty.
	From string `env:"SMTP_FROM_ADDRESS"`
	// InsecureSkipVerify tolerates self-signed certificates on the SMTP
	// gateway.
	InsecureSkipVerify bool `env:"SMTP_TLS_SKIP_VERIFY, default=false"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,  default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// Missing required variables abort startup.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}
	return &cfg
}
