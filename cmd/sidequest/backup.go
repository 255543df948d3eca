// Package main is the entry point for the sidequest application.
// This file contains the backup subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"sidequest/internal/backup"
	"sidequest/internal/config"
)

// backupHelpText is the help message for the backup subcommand.
const backupHelpText = `sidequest backup - Create and manage backups

USAGE:
    sidequest backup [OPTIONS]

OPTIONS:
    -l, --list           List available backups
    --prune N            Delete all but the N newest backups
    -h, --help           Show this help message

DESCRIPTION:
    Creates a timestamped backup of your quest data snapshot.
    Backups are stored in ~/.sidequest/backups/ and can be restored later.

EXAMPLES:
    # Create a new backup
    sidequest backup

    # List all available backups
    sidequest backup --list

    # Keep only the ten newest backups
    sidequest backup --prune 10
`

// runBackup handles the "sidequest backup" subcommand.
func runBackup(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	listFlag := fs.Bool("list", false, "list available backups")
	fs.BoolVar(listFlag, "l", false, "list available backups (shorthand)")
	pruneFlag := fs.Int("prune", -1, "delete all but the N newest backups")
	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")
	fs.Usage = func() { fmt.Fprint(os.Stderr, backupHelpText) }

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *helpFlag {
		fmt.Print(backupHelpText)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	manager := backup.NewManager(cfg.GetDataDir(), version)

	switch {
	case *listFlag:
		listBackups(manager)
	case *pruneFlag >= 0:
		pruneBackups(manager, *pruneFlag)
	default:
		createBackup(manager)
	}
}

// createBackup creates a new backup and displays the result.
func createBackup(manager *backup.Manager) {
	name, err := manager.Create()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating backup: %v\n", err)
		os.Exit(1)
	}

	info, err := manager.GetBackup(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading backup info: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Backup created: %s\n", name)
	fmt.Printf("  Quests: %d, Tasks: %d, Quest lines: %d\n",
		info.Stats["quests"], info.Stats["tasks"], info.Stats["quest_lines"])
	fmt.Printf("  Location: %s\n", info.Path)
}

// listBackups lists all available backups, newest first.
func listBackups(manager *backup.Manager) {
	backups, err := manager.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing backups: %v\n", err)
		os.Exit(1)
	}

	if len(backups) == 0 {
		fmt.Println("No backups available.")
		fmt.Println("Run 'sidequest backup' to create one.")
		return
	}

	fmt.Println("Available backups:")
	for _, b := range backups {
		fmt.Printf("  %s  (%s)   Quests: %d, Tasks: %d\n",
			b.Name, formatAge(b.CreatedAt), b.Stats["quests"], b.Stats["tasks"])
	}
}

// pruneBackups trims the backup directory down to keepCount entries.
func pruneBackups(manager *backup.Manager, keepCount int) {
	deleted, err := manager.Prune(keepCount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error pruning backups: %v\n", err)
		os.Exit(1)
	}
	if deleted == 0 {
		fmt.Printf("Nothing to prune; %d or fewer backups exist.\n", keepCount)
		return
	}
	fmt.Printf("✓ Deleted %d old backup(s), kept the %d newest.\n", deleted, keepCount)
}

// formatAge returns a human-readable age string.
func formatAge(t time.Time) string {
	d := time.Since(t)
	plural := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("1 %s ago", unit)
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	default:
		return plural(int(d.Hours()/24/7), "week")
	}
}
