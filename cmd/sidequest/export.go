// Package main is the entry point for the sidequest application.
// This file contains the export subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"

	"sidequest/internal/config"
	"sidequest/internal/fsutil"
	"sidequest/internal/reports"
	"sidequest/internal/storage"
)

// exportHelpText is the help message for the export subcommand.
const exportHelpText = `sidequest export - Export your data

USAGE:
    sidequest export [OPTIONS]

OPTIONS:
    --report             Generate a progress report instead of raw data
    --days N             Days of history in the report (default 7)
    -f, --format FORMAT  Report format: markdown or json (default markdown)
    -o, --output FILE    Write to a file instead of stdout
    -h, --help           Show this help message

DESCRIPTION:
    By default, prints your full data snapshot as JSON. The output can
    be re-imported with 'sidequest import snapshot'.

    With --report, generates a progress summary instead: level, XP,
    streak, board counts, quest lines, and a task histogram for the
    last N days.

EXAMPLES:
    # Dump the raw snapshot
    sidequest export > sidequest-export.json

    # Progress report for the last week
    sidequest export --report

    # Two weeks of history as JSON, written to a file
    sidequest export --report --days 14 -f json -o report.json
`

// runExport handles the "sidequest export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	reportFlag := fs.Bool("report", false, "generate a progress report")
	daysFlag := fs.Int("days", 7, "days of history in the report")

	formatFlag := fs.String("format", "markdown", "report format: markdown or json")
	fs.StringVar(formatFlag, "f", "markdown", "report format (shorthand)")

	outputFlag := fs.String("output", "", "write to a file instead of stdout")
	fs.StringVar(outputFlag, "o", "", "output file (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(exportHelpText)
		os.Exit(0)
	}

	// Load config to get data directory
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	var output []byte
	if *reportFlag {
		output, err = buildReport(store, *daysFlag, *formatFlag)
	} else {
		output, err = store.ExportJSON()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *outputFlag != "" {
		if err := fsutil.WriteFileAtomic(*outputFlag, output, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Written to %s\n", *outputFlag)
		return
	}

	fmt.Println(string(output))
}

// buildReport generates a progress report in the requested format.
func buildReport(store *storage.Store, days int, format string) ([]byte, error) {
	if days < 1 {
		return nil, fmt.Errorf("--days must be at least 1")
	}

	gen := reports.NewGenerator(store)
	report, err := gen.Generate(days)
	if err != nil {
		return nil, err
	}

	switch format {
	case "markdown", "md":
		return []byte(reports.FormatMarkdown(report)), nil
	case "json":
		return reports.FormatJSON(report)
	default:
		return nil, fmt.Errorf("unknown format %q (use markdown or json)", format)
	}
}
