package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reglet-dev/metamodelgen/internal/infrastructure/container"
)

// CommandContext provides common command dependencies.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
}

// CommandHandler is a function that executes with initialized dependencies.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// withContainer wraps a command handler with container initialization.
// The project config comes from --config, or from the file viper found.
func withContainer(handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		configPath := cfgFile
		if configPath == "" {
			configPath = viper.ConfigFileUsed()
		}

		logger := slog.Default()

		c, err := container.New(container.Options{
			ConfigPath:  configPath,
			Logger:      logger,
			Diagnostics: cmd.ErrOrStderr(),
		})
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		ctx := &CommandContext{
			Container: c,
			Logger:    logger,
			Context:   cmd.Context(),
		}
		if ctx.Context == nil {
			ctx.Context = context.Background()
		}

		return handler(ctx, cmd, args)
	}
}

// exitError carries a specific exit code for outcomes that are not failures
// of the tool itself, such as a profile mismatch.
type exitError struct {
	code    int
	message string
}

func (e *exitError) Error() string {
	return e.message
}
