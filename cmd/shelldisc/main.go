package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ZebulonRouseFrantzich/shelldisc/internal/config"
)

// Version will be set at build time via -ldflags
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(os.Stdout, os.Stderr)
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", config.FormatError(err, a.debug))
		stop()
		os.Exit(1)
	}
}
