package main

import (
	"os"

	"github.com/hakdo/pengesjekk/internal/commands"
	applog "github.com/hakdo/pengesjekk/internal/log"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		applog.ForComponent(applog.ComponentApp).Error("Command failed", "error", err)
		os.Exit(1)
	}
}
