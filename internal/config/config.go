package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all replaykit configuration.
type Config struct {
	Source  SourceConfig
	Fetch   FetchConfig
	Export  ExportConfig
	Archive ArchiveConfig
	Server  ServerConfig
	Log     LogConfig
}

// SourceConfig holds upstream API settings.
type SourceConfig struct {
	Provider string
	Endpoint string
	Token    string
	Timeout  time.Duration
}

// FetchConfig holds load-cycle settings.
type FetchConfig struct {
	Organization string
	FetchLimit   int
}

// ExportConfig holds snapshot destination settings.
type ExportConfig struct {
	Format  string // "json" or "yaml"
	Pretty  bool
	File    string // NDJSON timeline path, empty = disabled
	Webhook string // POST destination, empty = disabled
}

// ArchiveConfig holds persistence settings.
type ArchiveConfig struct {
	DSN string // Postgres DSN, empty = in-memory
}

// ServerConfig holds serving façade settings.
type ServerConfig struct {
	Addr string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// Load reads configuration from an optional replaykit.yaml (working
// directory or $HOME/.config/replaykit) with REPLAYKIT_* environment
// overrides and sensible defaults.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("replaykit")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/replaykit")

	v.SetEnvPrefix("REPLAYKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("source.provider", "sentry")
	v.SetDefault("source.endpoint", "")
	v.SetDefault("source.token", "")
	v.SetDefault("source.timeout", "30s")
	v.SetDefault("fetch.organization", "")
	v.SetDefault("fetch.limit", 4)
	v.SetDefault("export.format", "json")
	v.SetDefault("export.pretty", false)
	v.SetDefault("export.file", "")
	v.SetDefault("export.webhook", "")
	v.SetDefault("archive.dsn", "")
	v.SetDefault("server.addr", ":8484")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("reading replaykit.yaml: %w", err)
		}
		// No config file — env and defaults only.
	}

	timeout, err := time.ParseDuration(v.GetString("source.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid source.timeout: %w", err)
	}

	return Config{
		Source: SourceConfig{
			Provider: v.GetString("source.provider"),
			Endpoint: v.GetString("source.endpoint"),
			Token:    v.GetString("source.token"),
			Timeout:  timeout,
		},
		Fetch: FetchConfig{
			Organization: v.GetString("fetch.organization"),
			FetchLimit:   v.GetInt("fetch.limit"),
		},
		Export: ExportConfig{
			Format:  v.GetString("export.format"),
			Pretty:  v.GetBool("export.pretty"),
			File:    v.GetString("export.file"),
			Webhook: v.GetString("export.webhook"),
		},
		Archive: ArchiveConfig{
			DSN: v.GetString("archive.dsn"),
		},
		Server: ServerConfig{
			Addr: v.GetString("server.addr"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}, nil
}
