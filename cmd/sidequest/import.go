// Package main is the entry point for the sidequest application.
// This file contains the import subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"sidequest/internal/config"
	"sidequest/internal/importer"
	"sidequest/internal/storage"
)

// importHelpText is the help message for the import subcommand.
const importHelpText = `sidequest import - Import quests from other apps

USAGE:
    sidequest import [OPTIONS] FORMAT FILE

FORMATS:
    snapshot       A sidequest export (full snapshot, replaces your data)
    todoist        Todoist CSV backup (one quest per project)
    taskwarrior    Taskwarrior JSON export (one quest per project)

OPTIONS:
    --dry-run      Preview what would be imported without writing
    -h, --help     Show this help message

DESCRIPTION:
    Imports quests from a file exported by another app. Imported quests
    land in the available column. Tasks already done in the source keep
    their checkmark but do not award XP or feed your streak.

    The snapshot format is different: it replaces your entire data file
    with the exported snapshot, migrating old versions if needed.

EXAMPLES:
    # Preview a Todoist import
    sidequest import --dry-run todoist backup.csv

    # Import from Taskwarrior
    sidequest import taskwarrior tasks.json

    # Restore an exported snapshot
    sidequest import snapshot sidequest-export.json
`

// runImport handles the "sidequest import" subcommand.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	dryRun := fs.Bool("dry-run", false, "preview import without writing")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, importHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(importHelpText)
		os.Exit(0)
	}

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: import requires a format and a file")
		fmt.Fprintf(os.Stderr, "Supported formats: %s\n", strings.Join(importer.SupportedFormats(), ", "))
		fmt.Fprintln(os.Stderr, "Run 'sidequest import --help' for usage.")
		os.Exit(1)
	}

	format := fs.Arg(0)
	path := fs.Arg(1)

	imp := importer.GetImporter(format)
	if imp == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", format)
		fmt.Fprintf(os.Stderr, "Supported formats: %s\n", strings.Join(importer.SupportedFormats(), ", "))
		os.Exit(1)
	}

	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if *dryRun {
		previewImport(imp, file)
		return
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

	result, err := imp.Import(file, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		os.Exit(1)
	}

	if result.Replaced {
		fmt.Println("✓ Snapshot imported, previous data replaced")
	} else {
		fmt.Println("✓ Import complete")
	}
	fmt.Printf("  Quests: %d, Tasks: %d\n", result.Quests, result.Tasks)
	if result.Skipped > 0 {
		fmt.Printf("  Skipped: %d\n", result.Skipped)
	}
	for _, e := range result.Errors {
		fmt.Printf("  ⚠ %s\n", e)
	}
}

// previewImport shows what would be imported without writing anything.
func previewImport(imp importer.Importer, file *os.File) {
	previews, err := imp.Preview(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	if len(previews) == 0 {
		fmt.Println("Nothing to import.")
		return
	}

	fmt.Printf("Would import %d quest(s):\n", len(previews))
	for _, q := range previews {
		done := 0
		for _, t := range q.Tasks {
			if t.Done {
				done++
			}
		}
		fmt.Printf("  %s  (%d/%d tasks done)\n", q.Title, done, len(q.Tasks))
	}
	fmt.Println()
	fmt.Println("Run without --dry-run to import.")
}
