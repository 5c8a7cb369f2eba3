package main

import (
	"github.com/fretlog/fretlog/internal/config"
	"github.com/fretlog/fretlog/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
