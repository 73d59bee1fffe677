// Package main provides the metamodelgen CLI, which merges a profile
// definition into an application metamodel.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(Execute(ctx))
}
