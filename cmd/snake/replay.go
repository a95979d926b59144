package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagStrict bool

var replayCmd = &cobra.Command{
	Use:   "replay <session-id>",
	Short: "Re-simulate a journaled session",
	Long: `Replay a session from the journal without waiting in real time and
print the final board.

The replay uses the recorded seed and velocity changes, so it ends in
exactly the state the game was left in.

Examples:
  snake replay 12
  snake replay 12 --strict`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagStrict, "strict", false, "Reject recorded velocities that are not a single step")
}

func runReplay(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		exitErr("invalid session id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr("opening session journal: %v", err)
	}
	defer store.Close()

	sess, err := store.Session(id)
	if err != nil {
		store.Close()
		exitErr("%v", err)
	}
	if sess == nil {
		store.Close()
		exitErr("session %d not found", id)
	}

	r, err := tui.ReplaySession(store, *sess, flagStrict)
	if err != nil {
		store.Close()
		exitErr("replaying session %d: %v", id, err)
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(tui.RenderScreen(r.Board.Screen))
	} else {
		fmt.Println(r.Board.Screen.String())
	}

	sched := r.Scheduler
	st := sched.State()
	fmt.Printf("Session %d (%s, seed %d)\n", sess.ID, sess.Difficulty, sess.Seed)
	fmt.Printf("  ticks:  %d\n", sched.Ticks())
	fmt.Printf("  inputs: %d\n", r.Inputs)
	fmt.Printf("  tail:   %d\n", st.TailSize)
	fmt.Printf("  speed:  %.2f steps/s\n", sched.StepsPerSecond())
	if !sess.Ended {
		fmt.Println("  (session did not end cleanly; replayed to its start)")
	}
}
