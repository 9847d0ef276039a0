package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"communityhub/internal/client/models"
	"communityhub/internal/client/services"
)

func notifyQueued(w io.Writer, queued bool) {
	if queued {
		fmt.Fprintln(w, "Server unreachable; change saved and will be sent when back online")
	}
}

func notifyFromCache(w io.Writer, fromCache bool) {
	if fromCache {
		fmt.Fprintln(w, "(offline: showing last cached copy)")
	}
}

func newResourceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Browse and manage community resources",
	}
	cmd.AddCommand(
		newResourceListCmd(app),
		newResourceGetCmd(app),
		newResourceAddCmd(app),
		newResourceDeleteCmd(app),
	)
	return cmd
}

func newResourceListCmd(app *App) *cobra.Command {
	var query services.ResourceQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.restoreSession(cmd.Context()); err != nil {
				return fmt.Errorf("not signed in")
			}

			res, err := app.resources.List(cmd.Context(), query)
			if err != nil {
				return err
			}
			notifyFromCache(cmd.OutOrStdout(), res.FromCache)

			for _, r := range res.Items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  [%s] %s\n", r.ID, r.Category, r.Title)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&query.Category, "category", "c", "", "filter by category")
	cmd.Flags().StringVarP(&query.Title, "title", "t", "", "filter by title substring")
	cmd.Flags().StringSliceVar(&query.Tags, "tag", nil, "filter by tag (repeatable)")
	cmd.Flags().StringVar(&query.SortBy, "sort", "", "sort order: newest or oldest")
	return cmd
}

func newResourceGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.restoreSession(cmd.Context()); err != nil {
				return fmt.Errorf("not signed in")
			}

			res, err := app.resources.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			notifyFromCache(cmd.OutOrStdout(), res.FromCache)

			r := res.Item
			fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]\n%s\n", r.Title, r.Category, r.Description)
			if r.URL != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Link: %s\n", r.URL)
			}
			if r.PhoneNumber != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Phone: %s\n", r.PhoneNumber)
			}
			if r.BusinessAddress != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Address: %s\n", r.BusinessAddress)
			}
			return nil
		},
	}
}

func newResourceAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Add a resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.restoreSession(cmd.Context()); err != nil {
				return fmt.Errorf("not signed in")
			}

			out := cmd.OutOrStdout()
			title, err := getSimpleText(app.reader, "Enter title", out)
			if err != nil {
				return err
			}
			description, err := getSimpleText(app.reader, "Enter description", out)
			if err != nil {
				return err
			}
			category, err := getSimpleText(app.reader, "Enter category", out)
			if err != nil {
				return err
			}

			outcome, err := app.resources.Create(cmd.Context(), &models.Resource{
				Title: title, Description: description, Category: category,
			})
			if outcome != nil && outcome.Queued {
				notifyQueued(out, true)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Resource added")
			return nil
		},
	}
}

func newResourceDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.restoreSession(cmd.Context()); err != nil {
				return fmt.Errorf("not signed in")
			}

			outcome, err := app.resources.Delete(cmd.Context(), args[0])
			if outcome != nil && outcome.Queued {
				notifyQueued(cmd.OutOrStdout(), true)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Resource deleted")
			return nil
		},
	}
}
