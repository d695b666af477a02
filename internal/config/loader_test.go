package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/unirank/unirank/internal/config"
)

var configEnvVars = []string{
	"UNIRANK_CONFIG",
	"UNIRANK_LOG_LEVEL",
	"UNIRANK_TRANSPORT",
	"UNIRANK_MCP_ADDR",
	"UNIRANK_METRICS_ADDR",
	"UNIRANK_CSV_PATH",
	"UNIRANK_TOP_UNIVERSITIES_CAP",
	"UNIRANK_MAX_TOP_N",
}

func clearConfigEnvVars() {
	for _, v := range configEnvVars {
		_ = os.Unsetenv(v)
	}
}

func TestConfigLoader(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given a config loader", t, func() {
		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.Transport, convey.ShouldEqual, "stdio")
				convey.So(cfg.MCPAddr, convey.ShouldEqual, ":9000")
				convey.So(cfg.MetricsAddr, convey.ShouldEqual, ":9080")
				convey.So(cfg.CSVPath, convey.ShouldEqual, "rankings.csv")
				convey.So(cfg.TopUniversitiesCap, convey.ShouldEqual, 100)
				convey.So(cfg.MaxTopN, convey.ShouldEqual, 500)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("UNIRANK_TRANSPORT", "http")
			_ = os.Setenv("UNIRANK_MCP_ADDR", ":9001")
			_ = os.Setenv("UNIRANK_CSV_PATH", "/data/rankings.csv")
			_ = os.Setenv("UNIRANK_MAX_TOP_N", "250")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Transport, convey.ShouldEqual, "http")
				convey.So(cfg.MCPAddr, convey.ShouldEqual, ":9001")
				convey.So(cfg.CSVPath, convey.ShouldEqual, "/data/rankings.csv")
				convey.So(cfg.MaxTopN, convey.ShouldEqual, 250)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
log_level: debug
transport: http
mcp_addr: ":9100"
csv_path: "/srv/rankings.csv"
top_universities_cap: 50
`
			tmpFile := filepath.Join(t.TempDir(), "config.yaml")
			convey.So(os.WriteFile(tmpFile, []byte(yamlContent), 0o644), convey.ShouldBeNil)

			_ = os.Setenv("UNIRANK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Transport, convey.ShouldEqual, "http")
				convey.So(cfg.MCPAddr, convey.ShouldEqual, ":9100")
				convey.So(cfg.CSVPath, convey.ShouldEqual, "/srv/rankings.csv")
				convey.So(cfg.TopUniversitiesCap, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When env vars override the YAML file", func() {
			yamlContent := "transport: http\nmcp_addr: \":9100\"\n"
			tmpFile := filepath.Join(t.TempDir(), "config.yaml")
			convey.So(os.WriteFile(tmpFile, []byte(yamlContent), 0o644), convey.ShouldBeNil)

			_ = os.Setenv("UNIRANK_CONFIG", tmpFile)
			_ = os.Setenv("UNIRANK_MCP_ADDR", ":9200")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the env var wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MCPAddr, convey.ShouldEqual, ":9200")
			})
		})

		convey.Convey("When the transport is unrecognized", func() {
			_ = os.Setenv("UNIRANK_TRANSPORT", "carrier-pigeon")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails with an invalid-config error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the csv path is emptied", func() {
			_ = os.Setenv("UNIRANK_CSV_PATH", "")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails with an invalid-config error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
