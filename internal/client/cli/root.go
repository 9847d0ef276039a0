package cli

import (
	"context"

	"github.com/spf13/cobra"

	"communityhub/internal/client/config"
)

func newRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "communityhub",
		Short:         "Community hub client",
		Long:          "Browse community resources and discussions, online or offline.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newRegisterCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newProfileCmd(app),
		newStatusCmd(app),
		newSyncCmd(app),
		newWatchCmd(app),
		newResourceCmd(app),
		newDiscussionCmd(app),
	)

	return root
}

// Run wires the application and executes the command line.
func Run(ctx context.Context) error {
	cfg := config.LoadConfig()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	// Queued writes replay as soon as the server is reachable again, for
	// however long the invoked command runs.
	syncCtx, stopSync := context.WithCancel(ctx)
	defer stopSync()
	app.startBackgroundSync(syncCtx)

	return newRootCmd(app).ExecuteContext(ctx)
}
