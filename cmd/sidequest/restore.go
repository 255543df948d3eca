// Package main is the entry point for the sidequest application.
// This file contains the restore subcommand handler.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"sidequest/internal/backup"
	"sidequest/internal/config"
)

// restoreHelpText is the help message for the restore subcommand.
const restoreHelpText = `sidequest restore - Restore data from a backup

USAGE:
    sidequest restore [OPTIONS] [BACKUP_NAME]

OPTIONS:
    --latest       Restore from the most recent backup
    --force, -f    Skip confirmation prompt
    -h, --help     Show this help message

ARGUMENTS:
    BACKUP_NAME    Name of the backup to restore (e.g., 2025-12-15_143022_000)
                   Use 'sidequest backup --list' to see available backups.

DESCRIPTION:
    Restores the quest data snapshot from a specific backup.
    A safety backup is automatically created before restoring.

EXAMPLES:
    # Restore from a specific backup
    sidequest restore 2025-12-15_143022_000

    # Restore from the most recent backup
    sidequest restore --latest

    # Restore without confirmation prompt
    sidequest restore --force 2025-12-15_143022_000
`

// runRestore handles the "sidequest restore" subcommand.
func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	latestFlag := fs.Bool("latest", false, "restore from most recent backup")
	forceFlag := fs.Bool("force", false, "skip confirmation prompt")
	fs.BoolVar(forceFlag, "f", false, "skip confirmation prompt (shorthand)")
	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")
	fs.Usage = func() { fmt.Fprint(os.Stderr, restoreHelpText) }

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *helpFlag {
		fmt.Print(restoreHelpText)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	manager := backup.NewManager(cfg.GetDataDir(), version)

	backupName := resolveBackupName(fs, manager, *latestFlag)

	info, err := manager.GetBackup(backupName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Restoring from backup: %s\n", info.Name)
	fmt.Printf("  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Quests: %d, Tasks: %d, Quest lines: %d\n",
		info.Stats["quests"], info.Stats["tasks"], info.Stats["quest_lines"])
	fmt.Println()

	if !*forceFlag && !confirmOverwrite() {
		fmt.Println("Restore cancelled.")
		os.Exit(0)
	}

	fmt.Println("✓ Creating safety backup first...")
	if err := manager.Restore(backupName); err != nil {
		fmt.Fprintf(os.Stderr, "Error restoring backup: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Restored successfully from %s\n", backupName)
}

// resolveBackupName picks the backup to restore from the flag and args,
// exiting with usage hints when neither names one.
func resolveBackupName(fs *flag.FlagSet, manager *backup.Manager, latest bool) string {
	if latest {
		backups, err := manager.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing backups: %v\n", err)
			os.Exit(1)
		}
		if len(backups) == 0 {
			fmt.Fprintln(os.Stderr, "No backups available.")
			os.Exit(1)
		}
		return backups[0].Name
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no backup specified")
		fmt.Fprintln(os.Stderr, "Use 'sidequest restore BACKUP_NAME' or 'sidequest restore --latest'")
		fmt.Fprintln(os.Stderr, "Run 'sidequest backup --list' to see available backups.")
		os.Exit(1)
	}
	return fs.Arg(0)
}

// confirmOverwrite asks before replacing the live snapshot.
func confirmOverwrite() bool {
	fmt.Println("⚠ This will overwrite your current data.")
	fmt.Print("Continue? [y/N] ")

	response, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
