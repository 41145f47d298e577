package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"

	"kosehub/domain"
)

type Config struct {
	WatchInterval time.Duration

	PGHost     string
	PGPort     int
	PGUser     string
	PGPassword string
	PGDatabase string

	ControlAddr string
	SourcesFile string
	LogLevel    string
}

func Load() Config {
	interval := parseDurationEnv("KOSEHUB_WATCH_INTERVAL", 6*time.Hour)
	pgPort := parseIntEnv("POSTGRES_PORT", 5432)
	return Config{
		WatchInterval: interval,
		PGHost:        getenv("POSTGRES_HOST", "localhost"),
		PGPort:        pgPort,
		PGUser:        getenv("POSTGRES_USER", "postgres"),
		PGPassword:    getenv("POSTGRES_PASSWORD", "changeme"),
		PGDatabase:    getenv("POSTGRES_DBNAME", "kosehub"),
		ControlAddr:   getenv("CONTROL_ADDR", "127.0.0.1:8089"),
		SourcesFile:   getenv("KOSEHUB_SOURCES", "sources.yml"),
		LogLevel:      getenv("KOSEHUB_LOG_LEVEL", "info"),
	}
}

// Source describes one site's entry points for discovery and link resolution.
type Source struct {
	Listing string `yaml:"listing"`
	BaseURL string `yaml:"base_url"`
}

type Output struct {
	Domain  string `yaml:"domain"`
	FeedDir string `yaml:"feed_dir"`
	OutDir  string `yaml:"out_dir"`
}

// Sources is the roster file: which sites we scrape and where generated
// artifacts go.
type Sources struct {
	Sources map[string]Source `yaml:"sources"`
	Output  Output            `yaml:"output"`
}

func LoadSources(path string) (*Sources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Sources
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if s.Output.FeedDir == "" {
		s.Output.FeedDir = "rss"
	}
	if s.Output.OutDir == "" {
		s.Output.OutDir = s.Output.FeedDir
	}
	return &s, nil
}

// ForKind returns the roster entry for one parser kind.
func (s *Sources) ForKind(kind domain.ParserKind) (Source, bool) {
	src, ok := s.Sources[string(kind)]
	return src, ok
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseIntEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
