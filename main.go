// Package main is the entry point for the burnchart CLI.
package main

import (
	"fmt"
	"os"

	"github.com/mterada1228/release-burnup-chart/cmd"
	"github.com/mterada1228/release-burnup-chart/internal/logging"
)

// main executes the root command and handles any errors that occur.
func main() {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logging.Info("starting burnchart", "version", "1.0.0", "log_level", logLevel)

	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
