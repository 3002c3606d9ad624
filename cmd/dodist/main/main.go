package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/dodist/cmd/dodist"
	"github.com/arthur-debert/dodist/pkg/style"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Interrupts stop scheduling; files already being written are finished.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := dodist.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Print the error in red
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		return 1
	}
	return 0
}
