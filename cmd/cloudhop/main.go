package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cloudhop/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "cloudhop: %v\n", err)
		cancel()
		os.Exit(1)
	}
}
