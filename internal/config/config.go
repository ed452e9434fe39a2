package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

type Config struct {
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	FPLAPI      FPLAPI
	Server      Server
	TelegramBot TelegramBot
	Report      Report
}

type FPLAPI struct {
	BaseURL         string        `envconfig:"FPL_BASE_URL" default:"https://fantasy.premierleague.com/api"`
	UserAgent       string        `envconfig:"FPL_USER_AGENT" default:"Mozilla/5.0 (compatible; tempad/1.0)"`
	Timeout         time.Duration `envconfig:"FPL_TIMEOUT" default:"10s"`
	RateLimit       float64       `envconfig:"FPL_RATE_LIMIT" default:"10"`
	RateBurst       int           `envconfig:"FPL_RATE_BURST" default:"5"`
	BootstrapTTL    time.Duration `envconfig:"FPL_BOOTSTRAP_TTL" default:"5m"`
	BreakerFailures uint32        `envconfig:"FPL_BREAKER_FAILURES" default:"5"`
	BreakerTimeout  time.Duration `envconfig:"FPL_BREAKER_TIMEOUT" default:"30s"`
}

type Server struct {
	Addr string `envconfig:"HTTP_ADDR" default:":8080"`
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

// Enabled reports whether a bot token was configured.
func (t TelegramBot) Enabled() bool {
	return t.Token != ""
}

type Report struct {
	ManagerID int    `envconfig:"REPORT_MANAGER_ID" default:"0"`
	Schedule  string `envconfig:"REPORT_SCHEDULE" default:"30 7 * * 2"`
	Timezone  string `envconfig:"REPORT_TIMEZONE" default:"Europe/London"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if _, err := cron.ParseStandard(c.Report.Schedule); err != nil {
		return fmt.Errorf("invalid REPORT_SCHEDULE %q: %w", c.Report.Schedule, err)
	}
	if c.FPLAPI.RateLimit <= 0 {
		return fmt.Errorf("FPL_RATE_LIMIT must be positive, got %v", c.FPLAPI.RateLimit)
	}
	if c.FPLAPI.BootstrapTTL <= 0 {
		return fmt.Errorf("FPL_BOOTSTRAP_TTL must be positive, got %s", c.FPLAPI.BootstrapTTL)
	}
	if c.Report.ManagerID < 0 {
		return fmt.Errorf("REPORT_MANAGER_ID must not be negative, got %d", c.Report.ManagerID)
	}
	return nil
}
