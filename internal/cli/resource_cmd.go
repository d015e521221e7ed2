package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/studysync/internal/cli/formatter"
)

var errDraftingDisabled = errors.New("AI drafting is disabled; set llm.enabled in the config to use it")

func newResourceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resource",
		Aliases: []string{"res"},
		Short:   "Manage learning resources",
	}
	cmd.AddCommand(
		newResourceListCmd(app),
		newResourceAddCmd(app),
		newResourceDraftCmd(app),
		newResourceRenameCmd(app),
		newResourceRemoveCmd(app),
	)
	return cmd
}

func newResourceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List resources and their modules",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderResourceTree(app.Study.State().Resources))
			return nil
		},
	}
}

func newResourceAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add [NAME]",
		Short: "Add a resource with one general module",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			res, err := app.Catalog.AddManualResource(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added resource %s %s\n", formatter.TruncID(res.ID), formatter.Bold(res.Name))
			return nil
		},
	}
}

func newResourceDraftCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "draft TOPIC",
		Short: "Let the model draft a resource for a topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Drafts == nil {
				return errDraftingDisabled
			}
			topic := strings.Join(args, " ")

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Drafting "+topic+"...")
			}
			tpl := app.Drafts.Draft(cmd.Context(), topic)
			stop()
			if tpl == nil {
				return fmt.Errorf("could not draft a resource for %q, try again or add it by hand", topic)
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatDraft(tpl))
			ok, err := confirm(app, "Add this resource?", tpl.Name)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Discarded.")
				return nil
			}
			res, err := app.Catalog.AddFromTemplate(cmd.Context(), tpl)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Added resource %s %s with %d modules\n", formatter.TruncID(res.ID), formatter.Bold(res.Name), len(res.Modules))
			return nil
		},
	}
}

func newResourceRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a resource",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := resolveResource(app.Study.State(), args[0])
			if err != nil {
				return err
			}
			name := strings.Join(args[1:], " ")
			if err := app.Catalog.RenameResource(cmd.Context(), res.ID, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", res.Name, formatter.Bold(name))
			return nil
		},
	}
}

func newResourceRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a resource and today's tasks for it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := resolveResource(app.Study.State(), args[0])
			if err != nil {
				return err
			}
			ok, err := confirm(app, fmt.Sprintf("Remove %s?", res.Name),
				"Its modules and today's tasks for it are deleted. Review items are kept.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			if _, err := app.Catalog.DeleteResource(cmd.Context(), res.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed resource %s\n", res.Name)
			return nil
		},
	}
}
