package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	"vct-tracker/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

const defaultBaseURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vRmmWiBmMMD43m5VtZq54nKlmj0ZtythsA1qCpegwx-iRptx2HEsG0T3cQlG1r2AIiKxBWnaurJZQ9Q/pub?gid={{GID}}&output=csv"

// RegionSource is one spreadsheet export tab: a region name and the sheet
// GID that selects its tab in the published document.
type RegionSource struct {
	Name string `yaml:"name"`
	GID  string `yaml:"gid"`
}

type Config struct {
	SheetBaseURL string
	Regions      []RegionSource

	DBPath     string
	ServerPort string

	PollInterval time.Duration

	PushURL   string
	PushToken string

	SocialAPIURL string
	SocialToken  string
}

// URLFor expands the {{GID}} placeholder in the base URL for one region tab.
func (c *Config) URLFor(r RegionSource) string {
	return strings.ReplaceAll(c.SheetBaseURL, "{{GID}}", r.GID)
}

func defaultRegions() []RegionSource {
	return []RegionSource{
		{Name: "AMERICAS", GID: "1856086064"},
		{Name: "EMEA", GID: "0"},
		{Name: "CN", GID: "1474170664"},
		{Name: "PACIFIC", GID: "1819901194"},
	}
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		SheetBaseURL: getEnv("SHEET_BASE_URL", defaultBaseURL),
		Regions:      defaultRegions(),
		DBPath:       getEnv("DB_PATH", "tracker.db"),
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		PollInterval: constants.PollInterval,
		PushURL:      getEnv("PUSH_URL", "https://exp.host/--/api/v2/push/send"),
		PushToken:    getEnv("PUSH_TOKEN", ""),
		SocialAPIURL: getEnv("SOCIAL_API_URL", "https://api.x.com/2/tweets"),
		SocialToken:  getEnv("SOCIAL_TOKEN", ""),
	}

	if raw := getEnv("POLL_INTERVAL", ""); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid POLL_INTERVAL %q: %w", raw, err)
		}
		cfg.PollInterval = interval
	}

	if path := getEnv("REGIONS_FILE", ""); path != "" {
		regions, err := loadRegionsFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Regions = regions
	}

	if !strings.Contains(cfg.SheetBaseURL, "{{GID}}") {
		return nil, fmt.Errorf("SHEET_BASE_URL must contain a {{GID}} placeholder")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Dur("poll_interval", cfg.PollInterval).
		Int("regions", len(cfg.Regions)).
		Bool("push_enabled", cfg.PushToken != "").
		Bool("social_enabled", cfg.SocialToken != "").
		Msg("configuration loaded")

	return cfg, nil
}

// loadRegionsFile reads an ordered region list from YAML. Order matters:
// regions are processed in file order every tick.
func loadRegionsFile(path string) ([]RegionSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read regions file: %w", err)
	}

	var doc struct {
		Regions []RegionSource `yaml:"regions"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse regions file: %w", err)
	}
	if len(doc.Regions) == 0 {
		return nil, fmt.Errorf("regions file %s defines no regions", path)
	}
	for _, r := range doc.Regions {
		if r.Name == "" || r.GID == "" {
			return nil, fmt.Errorf("regions file %s: every region needs name and gid", path)
		}
	}
	return doc.Regions, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
