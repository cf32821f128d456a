package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	RTE     RTEConfig
	Tracker TrackerConfig
	UI      UIConfig
}

// RTEConfig holds the gateway location and the fixed password-grant credentials.
type RTEConfig struct {
	BaseURL   string        `env:"RTE_BASE_URL,     default=https://tracking-apigateway.rte.com.br"`
	AuthType  string        `env:"RTE_AUTH_TYPE,    default=DEV"`
	GrantType string        `env:"RTE_GRANT_TYPE,   default=password"`
	Username  string        `env:"RTE_USERNAME,     required"`
	Password  string        `env:"RTE_PASSWORD,     required"`
	Timeout   time.Duration `env:"RTE_HTTP_TIMEOUT, default=20s"`
}

// TrackerConfig tunes the lateness heuristic and receipt handling.
type TrackerConfig struct {
	// DefaultExpectedDate is used when the gateway omits ExpectedDeliveryDate.
	// Pending product confirmation; see DESIGN.md.
	DefaultExpectedDate string   `env:"RTE_DEFAULT_EXPECTED_DATE, default=27/02/2025"`
	CompletionPhrases   []string `env:"RTE_COMPLETION_PHRASES,    default=Entrega finalizada,delivery completed"`
	Timezone            string   `env:"RTE_TIMEZONE,              default=America/Sao_Paulo"`
	ReceiptDir          string   `env:"RTE_RECEIPT_DIR,           default=."`
	BatchWorkers        int      `env:"RTE_BATCH_WORKERS,         default=4"`
}

type UIConfig struct {
	Addr string `env:"UI_ADDR, default=127.0.0.1:8080"`
}

// Location resolves Timezone, falling back to the process local zone.
func (c TrackerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Load reads an optional .env file and then the environment using go-envconfig.
// Variables already present in the environment win over the .env file.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
