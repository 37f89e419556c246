// Package command contains the CLI command constructors.
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"tracker/internal/config"
	"tracker/internal/observability"
)

type configKey struct{}

// RootCommand instantiates the root command, with all sub-commands bound.
func RootCommand() *cobra.Command {
	var configFilePath string
	cmd := &cobra.Command{
		Use:          "tracker [command] [flags]",
		Short:        "Multi-user project and task tracker",
		Version:      version(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFilePath, cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := observability.InitSlog(os.Stderr, cfg.LogLevel, cfg.LogFormat)
			slog.SetDefault(logger)
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&configFilePath, "config", "c", "", "path to a YAML or JSON configuration file")
	flags.String("database-url", "", "PostgreSQL connection string")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", "auto", "log format: auto, text or json")

	cmd.AddCommand(
		serveCommand(),
		migrateCommand(),
		userCommand(),
	)

	return cmd
}

func configFrom(ctx context.Context) (*config.Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok {
		return nil, errors.New("configuration was not resolved")
	}
	return cfg, nil
}

func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown-dev"
	}
	ver := "unknown"
	dirty := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			ver = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if dirty {
		ver += "-dev"
	}
	return ver
}
