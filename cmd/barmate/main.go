// Barmate tracks the ingredients on your shelf and the cocktail recipes you
// can make with them.
//
// Usage:
//
//	barmate [--config FILE] [-o table|json|yaml] [-v|-q] <command>
//	barmate shell
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
