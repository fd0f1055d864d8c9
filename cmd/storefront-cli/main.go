package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tair/storefront/internal/catalog"
	"github.com/tair/storefront/internal/config"
	"github.com/tair/storefront/pkg/logger"
)

func main() {
	cfg := config.Load("storefront-cli", "")

	// The terminal belongs to the TUI, so logs only go to a file in debug mode
	if cfg.LogLevel == "debug" {
		f, err := tea.LogToFile("storefront-cli.log", "storefront-cli")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger.Init(logger.Options{Service: cfg.ServiceName, Level: cfg.LogLevel, Output: f})
	}

	c, err := loadCatalog(cfg.SeedFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	if _, err := tea.NewProgram(newModel(c)).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadCatalog(seedFile string) (*catalog.Catalog, error) {
	if seedFile == "" {
		return catalog.DefaultSeed()
	}
	return catalog.LoadSeedFile(seedFile)
}
