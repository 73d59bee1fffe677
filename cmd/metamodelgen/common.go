package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// Exit codes besides 0 (success) and 1 (error).
const (
	// exitMismatch: the profile sets differ and nothing was written.
	exitMismatch = 2
	// exitOutdated: --check found the metamodel would change.
	exitOutdated = 3
)

// CommonOptions contains flags shared across commands.
type CommonOptions struct {
	Timeout time.Duration
}

// DefaultCommonOptions returns sensible defaults.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{
		Timeout: time.Minute,
	}
}

// RegisterFlags adds common flags to a cobra command.
func (opts *CommonOptions) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout,
		"Timeout for the whole run (0 to disable)")
}

// ApplyToContext applies timeout to context.
// Returns new context and cancel function.
func (opts *CommonOptions) ApplyToContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	// No timeout - return no-op cancel
	return ctx, func() {}
}

// ValidateFlags validates common options.
func (opts *CommonOptions) ValidateFlags() error {
	if opts.Timeout < 0 {
		return fmt.Errorf("--timeout must not be negative, got %s", opts.Timeout)
	}
	return nil
}

// splitProfileCodes flattens comma-separated entries and drops blanks.
// Environment values reach viper as one whitespace-split string.
func splitProfileCodes(entries []string) []string {
	codes := make([]string, 0, len(entries))
	for _, entry := range entries {
		for _, code := range strings.Split(entry, ",") {
			if code = strings.TrimSpace(code); code != "" {
				codes = append(codes, code)
			}
		}
	}
	return codes
}
