package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Apurer/choufli-storefront/internal/app/storefront"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := storefront.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		stop()
		os.Exit(1)
	}
}
