// Package main provides the cleaner command-line tool for the Stack Overflow answers dataset.
package main

import (
	"flag"
	"fmt"
	"os"

	"socleaner/internal/config"
	"socleaner/internal/logger"
	"socleaner/internal/pipeline"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("cleaner", flag.ContinueOnError)

	configPath := fs.String("config", "", "Path to YAML config file (optional)")
	inputPath := fs.String("input", "", "Input CSV (overrides config)")
	outputPath := fs.String("output", "", "Output CSV (overrides config)")
	minLength := fs.Int("min-length", 0, "Minimum answer length in characters (overrides config)")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	dumpConfig := fs.String("dump-config", "", "Write the effective configuration to this YAML file and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		return 1
	}

	if *inputPath != "" {
		cfg.Input.Path = *inputPath
	}

	if *outputPath != "" {
		cfg.Output.Path = *outputPath
	}

	if *minLength != 0 {
		cfg.Filters.MinLength = *minLength
	}

	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ invalid configuration: %v\n", err)
		fs.PrintDefaults()

		return 1
	}

	if *dumpConfig != "" {
		if err := cfg.SaveConfig(*dumpConfig); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			return 1
		}

		fmt.Printf("✅ Configuration written: %s\n", *dumpConfig)

		return 0
	}

	log := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	log.Debug("configuration loaded", "config", cfg.String())

	summary, err := pipeline.New(cfg, log).Run()
	if err != nil {
		log.Error("cleaning failed", "error", err)
		return 1
	}

	if err := summary.Render(os.Stdout); err != nil {
		log.Error("failed to print summary", "error", err)
		return 1
	}

	return 0
}
