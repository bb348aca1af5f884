package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/graft/internal/cli"
	"github.com/aretw0/graft/internal/config"
	"github.com/aretw0/graft/internal/logging"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "graft",
	Short: "graft mirrors command trees between execution domains",
	Long: `graft maps a command tree declared for one execution domain onto another,
keeping permissions, redirects and autocompletion consistent across the boundary.

Definitions are read from --defs (a file or a directory holding graft.yaml,
graft.jsonc or graft.toml). Without definitions the built-in demo commands are used.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("defs", "", "Definition file or directory (defaults to graft.* in the current directory, then the demo commands)")
	rootCmd.PersistentFlags().String("namespace", "", "Namespace for qualified command names (env GRAFT_NAMESPACE)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (env GRAFT_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("redis", "", "Publish commands to the Redis server at this address (env GRAFT_REDIS_ADDR)")
}

// setup resolves configuration from the environment and flags and builds the engine.
func setup(cmd *cobra.Command) (*cli.Engine, config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, nil, err
	}

	flags := cmd.Flags()
	if v, _ := flags.GetString("namespace"); v != "" {
		cfg.Namespace = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := flags.GetString("redis"); v != "" {
		cfg.RedisAddr = v
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, cfg, nil, err
	}
	logger := logging.New(level)

	defs, _ := flags.GetString("defs")
	if defs == "" {
		if path, ok := cli.FindDefinitions("."); ok {
			defs = path
		}
	}
	if defs == "" {
		logger.Debug("No definitions found, using demo commands")
	}

	engine, err := cli.CreateEngine(cli.Options{
		Definitions: defs,
		Namespace:   cfg.Namespace,
		RedisAddr:   cfg.RedisAddr,
		RedisPrefix: cfg.RedisPrefix,
		Out:         os.Stdout,
	}, logger)
	if err != nil {
		return nil, cfg, nil, err
	}
	return engine, cfg, logger, nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
