package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagLimit int
	flagPlain bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Browse journaled sessions",
	Long: `List recent sessions from the journal.

On a terminal this opens an interactive browser where Enter replays the
selected session and d deletes it. With --plain, or when output is not a
terminal, a table is printed instead.

Examples:
  snake sessions
  snake sessions --plain --limit 5`,
	Args: cobra.NoArgs,
	Run:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of sessions to list (plain mode)")
	sessionsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a table instead of the browser")
}

func runSessions(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr("opening session journal: %v", err)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height, sizeErr := term.GetSize(fd)
		if sizeErr != nil {
			width, height = 80, 24
		}
		if err := tui.RunJournal(store, width, height); err != nil {
			store.Close()
			exitErr("%v", err)
		}
		return
	}

	sessions, err := store.RecentSessions(flagLimit)
	if err != nil {
		store.Close()
		exitErr("reading sessions: %v", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to start the journal!")
		return
	}

	// Print header
	fmt.Printf("  %-6s  %-16s  %-12s  %-10s  %s\n", "ID", "Started", "Player", "Difficulty", "Ticks")
	fmt.Printf("  %-6s  %-16s  %-12s  %-10s  %s\n", "--", "-------", "------", "----------", "-----")

	for _, s := range sessions {
		player := s.Player
		if player == "" {
			player = "local"
		}
		ticks := fmt.Sprintf("%d", s.Ticks)
		if !s.Ended {
			ticks = "-"
		}
		fmt.Printf("  %-6d  %-16s  %-12s  %-10s  %s\n",
			s.ID, s.StartedAt.Format("2006-01-02 15:04"), player, s.Difficulty, ticks)
	}
}
