package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tartampluch/go-softclock/internal/cli"
	"github.com/tartampluch/go-softclock/internal/config"
)

// main delegates to runMain so deferred calls run before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain wires signal handling and returns the process exit code.
func runMain() int {
	// Create a root context that cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s: %v\n", config.CommandName, config.ErrAppFailed, err)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}
