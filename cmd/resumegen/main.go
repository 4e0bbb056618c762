package main

import (
	"log/slog"
	"os"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// main is the entry point for the resumegen CLI binary.
func main() {
	logger := newLogger(os.Stderr, slog.LevelInfo)
	if err := execute(os.Args[1:], logger); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
