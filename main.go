package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/spo0nman/databricks-mcp-server/config"
	"github.com/spo0nman/databricks-mcp-server/databricks"
	"github.com/spo0nman/databricks-mcp-server/server"
)

const (
	name    = "databricks-mcp"
	version = "1.0.0"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (env vars take precedence)")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", name)
		fmt.Fprintf(os.Stderr, "An MCP server exposing Databricks cluster, job, notebook, DBFS, and SQL operations as tools.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment variables:\n")
		fmt.Fprintf(os.Stderr, "  DATABRICKS_HOST      Workspace URL, e.g. https://example.databricks.net\n")
		fmt.Fprintf(os.Stderr, "  DATABRICKS_TOKEN     API token\n")
		fmt.Fprintf(os.Stderr, "  DATABRICKS_TIMEOUT   Request timeout, e.g. 30s (default)\n")
		fmt.Fprintf(os.Stderr, "  LOG_LEVEL            debug, info, warn, or error (default: info)\n")
	}
	flag.Parse()

	if *showVersion {
		fmt.Fprintf(os.Stderr, "%s v%s\n", name, version)
		os.Exit(0)
	}

	// Logging to stderr (stdout is MCP protocol)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("configuration error")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	logger.Info().Str("host", cfg.Host).Dur("timeout", cfg.Timeout).Msg("connecting to Databricks workspace")

	client := databricks.NewClient(cfg.Host, cfg.Token, cfg.Timeout, logger)
	srv, err := server.NewServer(name, version, client, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build server")
	}

	err = srv.Run()
	if errors.Is(err, io.EOF) {
		logger.Info().Msg("client disconnected")
		return
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
