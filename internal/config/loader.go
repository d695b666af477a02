package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if UNIRANK_CONFIG is set
//  3. env (prefix UNIRANK_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("UNIRANK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: UNIRANK_TRANSPORT, UNIRANK_CSV_PATH, ...
	// Map env keys like UNIRANK_CSV_PATH -> csv_path to match koanf tags.
	envProvider := env.Provider("UNIRANK_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "unirank_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("%w: transport %q (want stdio or http)", ErrInvalidConfig, cfg.Transport)
	}
	if cfg.Transport == "http" && cfg.MCPAddr == "" {
		return fmt.Errorf("%w: mcp_addr must not be empty for http transport", ErrInvalidConfig)
	}
	if cfg.CSVPath == "" {
		return fmt.Errorf("%w: csv_path must not be empty", ErrInvalidConfig)
	}
	if cfg.TopUniversitiesCap < 1 || cfg.MaxTopN < 1 {
		return fmt.Errorf("%w: top_n caps must be positive", ErrInvalidConfig)
	}
	return nil
}
