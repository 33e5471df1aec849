package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Default allowed origins for development.
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// Config is read from the environment exactly once at startup and passed by
// reference into whatever needs it; nothing reads env vars mid-operation.
type Config struct {
	Port string `env:"PORT" env-default:"3000"`

	MongoURI string `env:"MONGODB_URI" env-required:"true"`
	DBName   string `env:"DB_NAME" env-required:"true"`

	JWTSecret  string `env:"JWT_SECRET" env-required:"true"`
	SaltRounds int    `env:"SALT_ROUNDS" env-default:"10"`

	ClientURL      string `env:"CLIENT_URL" env-default:""`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" env-default:""`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}

// CORSOrigins returns the development defaults plus the configured client URL
// and any comma-separated extra origins.
func (c Config) CORSOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if c.ClientURL != "" {
		origins = append(origins, c.ClientURL)
	}

	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
