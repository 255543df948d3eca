// Package main is the entry point for the sidequest application.
// This file contains the sync subcommand handler.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"sidequest/internal/config"
	"sidequest/internal/storage"
	"sidequest/internal/sync"
)

// syncHelpText is the help message for the sync subcommand.
const syncHelpText = `sidequest sync - Cloud backup via GitHub Gist

USAGE:
    sidequest sync [OPTIONS]

OPTIONS:
    --status       Show sync configuration and last result
    --pull         Replace local data with the gist contents
    --validate     Check that the configured token works
    -h, --help     Show this help message

DESCRIPTION:
    Pushes your data snapshot to a private GitHub Gist. With no options,
    performs an immediate push. While the app is running, pushes happen
    automatically a few seconds after each change.

    Sync requires a GitHub personal access token with the 'gist' scope
    in your config file:

        sync:
          enabled: true
          token: ghp_yourtoken

    The gist id is stored back into the config after the first push.

EXAMPLES:
    # Push now
    sidequest sync

    # Check configuration
    sidequest sync --status

    # Pull the remote snapshot (overwrites local data)
    sidequest sync --pull
`

// syncTimeout bounds one-shot CLI operations against the Gist API.
const syncTimeout = 30 * time.Second

// runSync handles the "sidequest sync" subcommand.
func runSync(args []string) {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)

	statusFlag := fs.Bool("status", false, "show sync status")
	pullFlag := fs.Bool("pull", false, "pull data from the gist")
	validateFlag := fs.Bool("validate", false, "validate the configured token")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, syncHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(syncHelpText)
		os.Exit(0)
	}

	// Load config to get sync settings and data directory
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *statusFlag {
		showSyncStatus(cfg)
		return
	}

	if !cfg.Sync.Enabled || cfg.Sync.Token == "" {
		fmt.Fprintln(os.Stderr, "Sync is not configured.")
		fmt.Fprintln(os.Stderr, "Add a token under 'sync:' in your config file and set enabled: true.")
		fmt.Fprintln(os.Stderr, "Run 'sidequest sync --help' for details.")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	client := sync.NewClient(cfg.Sync.Token)

	if *validateFlag {
		login, err := client.ValidateToken(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ Token validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Token is valid (authenticated as %s)\n", login)
		return
	}

	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	if *pullFlag {
		pullFromGist(ctx, client, cfg, store)
		return
	}

	pushToGist(ctx, client, cfg, store)
}

// showSyncStatus prints the sync configuration without touching the network.
func showSyncStatus(cfg *config.Config) {
	fmt.Println("Sync status:")
	if !cfg.Sync.Enabled {
		fmt.Println("  Enabled: no")
		return
	}
	fmt.Println("  Enabled: yes")
	if cfg.Sync.Token == "" {
		fmt.Println("  Token:   not set")
	} else {
		fmt.Println("  Token:   set")
	}
	if cfg.Sync.GistID == "" {
		fmt.Println("  Gist:    not created yet (first push creates it)")
	} else {
		fmt.Printf("  Gist:    %s\n", cfg.Sync.GistID)
	}
}

// pushToGist uploads the local snapshot, creating the gist on first push.
func pushToGist(ctx context.Context, client *sync.Client, cfg *config.Config, store *storage.Store) {
	data, err := store.ExportJSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading data: %v\n", err)
		os.Exit(1)
	}

	if cfg.Sync.GistID == "" {
		gistID, err := client.Create(ctx, data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating gist: %v\n", err)
			os.Exit(1)
		}
		cfg.Sync.GistID = gistID
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save gist id: %v\n", err)
		}
		fmt.Printf("✓ Pushed to new gist %s\n", gistID)
		return
	}

	if err := client.Update(ctx, cfg.Sync.GistID, data); err != nil {
		fmt.Fprintf(os.Stderr, "Error pushing to gist: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Pushed to gist %s\n", cfg.Sync.GistID)
}

// pullFromGist replaces local data with the remote snapshot.
func pullFromGist(ctx context.Context, client *sync.Client, cfg *config.Config, store *storage.Store) {
	if cfg.Sync.GistID == "" {
		fmt.Fprintln(os.Stderr, "Error: no gist to pull from (push first)")
		os.Exit(1)
	}

	data, err := client.Fetch(ctx, cfg.Sync.GistID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching gist: %v\n", err)
		os.Exit(1)
	}

	if err := store.ImportSnapshot(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error applying snapshot: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Pulled data from gist %s\n", cfg.Sync.GistID)
}
