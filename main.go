// Package main is the entry point for the IPH service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"iph/bootstrap"
)

// run initializes and starts the IPH service.
func run(configPath string) error {
	ctx := context.Background()

	app, err := bootstrap.NewApp(ctx, configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	app.Start()

	err = app.WaitForShutdown()

	app.Shutdown()

	return err
}

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
