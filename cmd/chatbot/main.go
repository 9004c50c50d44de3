package main

import (
	"context"
	"fmt"
	"os"

	"github.com/humanbelnik/cinebot/internal/app"
	"github.com/humanbelnik/cinebot/internal/config"
)

func main() {
	if err := app.Run(context.Background(), config.Load(), os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
