// Command subdeck searches a business-management dataset: platforms,
// digital products, sales, and credit movements.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nzemmouri/subdeck/cmd/subdeck/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.NewRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
