package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"communityhub/internal/client/models"
)

func newDiscussionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discussion",
		Short: "Browse and take part in discussions",
	}
	cmd.AddCommand(
		newDiscussionListCmd(app),
		newDiscussionGetCmd(app),
		newDiscussionAddCmd(app),
		newDiscussionCommentCmd(app),
		newDiscussionDeleteCmd(app),
	)
	return cmd
}

func newDiscussionListCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discussion threads",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.restoreSession(cmd.Context()); err != nil {
				return fmt.Errorf("not signed in")
			}

			res, err := app.discussions.List(cmd.Context(), category)
			if err != nil {
				return err
			}
			notifyFromCache(cmd.OutOrStdout(), res.FromCache)

			for _, d := range res.Items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  [%s] %s (%d replies)\n",
					d.ID, d.Category, d.Title, len(d.Comments))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category")
	return cmd
}

func newDiscussionGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one thread with its replies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.restoreSession(cmd.Context()); err != nil {
				return fmt.Errorf("not signed in")
			}

			res, err := app.discussions.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			notifyFromCache(cmd.OutOrStdout(), res.FromCache)

			d := res.Item
			fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]\n%s\n", d.Title, d.Category, d.Content)
			for _, c := range d.Comments {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s| %s\n", c.ID, c.Content)
			}
			return nil
		},
	}
}

func newDiscussionAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Start a discussion",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.restoreSession(cmd.Context()); err != nil {
				return fmt.Errorf("not signed in")
			}

			out := cmd.OutOrStdout()
			title, err := getSimpleText(app.reader, "Enter title", out)
			if err != nil {
				return err
			}
			content, err := getSimpleText(app.reader, "Enter content", out)
			if err != nil {
				return err
			}
			category, err := getSimpleText(app.reader, "Enter category", out)
			if err != nil {
				return err
			}

			outcome, err := app.discussions.Create(cmd.Context(), &models.Discussion{
				Title: title, Content: content, Category: category,
			})
			if outcome != nil && outcome.Queued {
				notifyQueued(out, true)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Discussion started")
			return nil
		},
	}
}

func newDiscussionCommentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <discussion-id>",
		Short: "Reply to a thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.restoreSession(cmd.Context()); err != nil {
				return fmt.Errorf("not signed in")
			}

			content, err := getSimpleText(app.reader, "Enter reply", cmd.OutOrStdout())
			if err != nil {
				return err
			}

			outcome, err := app.discussions.AddComment(cmd.Context(), args[0], content)
			if outcome != nil && outcome.Queued {
				notifyQueued(cmd.OutOrStdout(), true)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reply posted")
			return nil
		},
	}
}

func newDiscussionDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.restoreSession(cmd.Context()); err != nil {
				return fmt.Errorf("not signed in")
			}

			outcome, err := app.discussions.Delete(cmd.Context(), args[0])
			if outcome != nil && outcome.Queued {
				notifyQueued(cmd.OutOrStdout(), true)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Discussion deleted")
			return nil
		},
	}
}
