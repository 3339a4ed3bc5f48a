package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/droidsdk/cmd/droidsdk"
	"github.com/arthur-debert/droidsdk/pkg/output/styles"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := droidsdk.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, styles.Get("Error").Render(fmt.Sprintf("Error: %v", err)))
		stop()
		os.Exit(1)
	}
}
