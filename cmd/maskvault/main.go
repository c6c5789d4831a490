// Command maskvault manages a privacy-safe local test dataset: it seeds,
// anonymizes, encrypts, decrypts and lists user records stored in a local
// database file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("✗"), err)
		os.Exit(1)
	}
}
