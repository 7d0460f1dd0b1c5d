package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Env struct {
	AppAddr  string `envconfig:"APP_ADDR" default:":8080"`
	GinMode  string `envconfig:"GIN_MODE"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// DB_DSN wins over the split DB_* parts when set.
	DBDSN      string `envconfig:"DB_DSN"`
	DBUser     string `envconfig:"DB_USER" default:"root"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBHost     string `envconfig:"DB_HOST" default:"127.0.0.1:3306"`
	DBName     string `envconfig:"DB_NAME" default:"khanza_repaint"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"khanza-repaint-secret-key-change-me"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@khanzarepaint.com"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"123123"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173"`

	BookingSlotExclusive bool          `envconfig:"BOOKING_SLOT_EXCLUSIVE" default:"true"`
	RateLimitWindow      time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
	RedisAddr            string        `envconfig:"REDIS_ADDR"`

	SeedCatalog bool `envconfig:"SEED_CATALOG" default:"true"`
}

// LoadEnv reads an optional .env file, then the process environment.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("load env: %w", err)
	}
	env.GinMode = strings.TrimSpace(env.GinMode)
	env.AdminEmail = strings.ToLower(strings.TrimSpace(env.AdminEmail))

	origins := env.CORSAllowedOrigins[:0]
	for _, o := range env.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	env.CORSAllowedOrigins = origins
	return env, nil
}

func (e Env) DSN() string {
	if dsn := strings.TrimSpace(e.DBDSN); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
		e.DBUser,
		e.DBPassword,
		e.DBHost,
		e.DBName,
	)
}
