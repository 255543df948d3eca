// Package main is the entry point for the sidequest application.
// It loads configuration, initializes storage, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"sidequest/internal/config"
	"sidequest/internal/quest"
	"sidequest/internal/sound"
	"sidequest/internal/storage"
	"sidequest/internal/sync"
	"sidequest/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `sidequest - A gamified quest tracker for your terminal

USAGE:
    sidequest [OPTIONS]
    sidequest <command> [ARGS]

COMMANDS:
    backup           Create a backup of your quest data
    backup --list    List available backups
    restore NAME     Restore from a specific backup
    restore --latest Restore from the most recent backup
    export           Export your data as JSON
    export --report  Generate a progress report (Markdown)
    sync             Push data to the backup gist now
    sync --status    Show cloud sync status
    sync --pull      Pull data from the backup gist
    import           Import quests from other apps
    import snapshot  Import an exported data file
    import todoist   Import from Todoist CSV backup
    import taskwarrior  Import from Taskwarrior JSON

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    sidequest is a terminal quest board that turns your projects into
    quests. Track them, finish their tasks, earn XP, keep your daily
    streak alive, and level up.

FEATURES:
    • Board      - Quests move across available, tracking, and complete
    • Tasks      - Each quest carries an ordered task checklist
    • Leveling   - Completions award XP scaled by your streak
    • Local Data - A single JSON snapshot in ~/.sidequest/

KEYBINDINGS:
    Global:
        Tab          Next column
        1, 2, 3      Jump to a column
        ?            Show help overlay
        q            Quit

    Board:
        j/k, ↓/↑     Navigate
        a            Add quest
        Enter        Track / complete quest
        Backspace    Move quest back
        p            Pin quest
        J/K          Reorder quest
        s            Cycle sort mode
        x            Delete quest
        l/→          Open tasks

    Tasks:
        d/Space      Toggle task
        a            Add task
        x            Delete task
        h/Esc        Back to board

DATA STORAGE:
    All data is stored in ~/.sidequest/sidequest.json as plain JSON.

CONFIGURATION:
    Optional config file: ~/.config/sidequest/config.yaml
    See documentation for configuration options.

EXAMPLES:
    # Start the app
    sidequest

    # Create a backup
    sidequest backup

    # Restore from a backup
    sidequest restore --latest

    # Progress report
    sidequest export --report

    # Show version
    sidequest --version

For more information, visit: https://github.com/yourusername/sidequest
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "sync":
			runSync(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		}
	}

	// Define flags
	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("sidequest version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	// Reject unknown arguments
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration (from ~/.config/sidequest/config.yaml or defaults)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Initialize storage with configured data directory
	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	// Set up cloud sync if enabled
	var syncer *sync.Syncer
	if cfg.Sync.Enabled && cfg.Sync.Token != "" {
		syncer = sync.NewSyncer(sync.Config{
			Enabled: cfg.Sync.Enabled,
			Token:   cfg.Sync.Token,
			GistID:  cfg.Sync.GistID,
		})

		// Persist the gist id created on first push so later runs
		// update the same gist.
		syncer.SetOnGistCreated(func(gistID string) {
			cfg.Sync.GistID = gistID
			if err := cfg.Save(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not save gist id: %v\n", err)
			}
		})

		store.SetOnSave(syncer.Schedule)
	}

	styles := ui.NewStylesFromTheme(&cfg.Theme)

	appCfg := &ui.AppConfig{
		Keys:             &cfg.Keys,
		ConfirmDeletions: cfg.UX.ConfirmDeletions,
		DefaultSort:      quest.SortMode(cfg.UX.DefaultSort),
	}

	player := sound.New(cfg.Sound.Enabled)

	if err := ui.RunWithServices(store, styles, appCfg, syncer, player); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}

	// Flush any pending cloud sync before exit
	if syncer != nil {
		syncer.Flush()
		syncer.Stop()
	}
}
