package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"communityhub/internal/client/connectivity"
)

func newSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replay queued writes now",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.restoreSession(cmd.Context()); err != nil {
				return fmt.Errorf("not signed in")
			}
			if err := app.syncer.Replay(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sync complete")
			return nil
		},
	}
}

// watch keeps the process alive so the background watcher can replay queued
// writes whenever connectivity returns, reporting transitions as they happen.
func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stay running and sync queued writes whenever the server is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.restoreSession(cmd.Context()); err != nil {
				return fmt.Errorf("not signed in")
			}

			out := cmd.OutOrStdout()
			events, cancel := app.monitor.Subscribe()
			defer cancel()

			fmt.Fprintln(out, "Watching connectivity; press Ctrl+C to stop")
			for {
				select {
				case e, ok := <-events:
					if !ok {
						return nil
					}
					switch e.Kind {
					case connectivity.EventOnline:
						fmt.Fprintln(out, "Back online")
					case connectivity.EventOffline:
						fmt.Fprintln(out, "Server unreachable; changes will be queued")
					case connectivity.EventSyncFinished:
						fmt.Fprintln(out, "Queued changes sent")
					}
				case <-cmd.Context().Done():
					return nil
				}
			}
		},
	}
}
