package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/studysync/internal/cli/formatter"
	"github.com/alexanderramin/studysync/internal/domain"
)

func newModuleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "module",
		Aliases: []string{"mod"},
		Short:   "Manage the modules of a resource",
	}
	cmd.AddCommand(
		newModuleAddCmd(app),
		newModuleRemoveCmd(app),
		newModuleSetTotalCmd(app),
	)
	return cmd
}

func newModuleAddCmd(app *App) *cobra.Command {
	var name, kind string
	var total int

	cmd := &cobra.Command{
		Use:   "add RESOURCE",
		Short: "Add a module to a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := resolveResource(app.Study.State(), args[0])
			if err != nil {
				return err
			}
			unit, err := domain.ParseUnitKind(kind)
			if err != nil {
				return err
			}
			mod, err := app.Catalog.AddModule(cmd.Context(), res.ID, domain.Module{
				Name:       name,
				Kind:       unit,
				TotalItems: total,
			})
			if err != nil {
				return err
			}
			if mod == nil {
				return fmt.Errorf("resource %s no longer exists", res.Name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added module %s %s (%s) to %s\n",
				formatter.TruncID(mod.ID), formatter.Bold(mod.Name), formatter.Amount(mod.TotalItems, mod.Kind), res.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Module name")
	cmd.Flags().IntVar(&total, "total", 0, "Number of items in the module")
	cmd.Flags().StringVar(&kind, "kind", string(domain.UnitQuestions), "Unit kind: Questions, Sections, Articles or Pages")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("total")

	return cmd
}

func newModuleRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove RESOURCE MODULE",
		Aliases: []string{"rm"},
		Short:   "Remove a module and today's tasks for it",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := resolveResource(app.Study.State(), args[0])
			if err != nil {
				return err
			}
			mod, err := resolveModule(res, args[1])
			if err != nil {
				return err
			}
			ok, err := confirm(app, fmt.Sprintf("Remove %s from %s?", mod.Name, res.Name),
				"Today's tasks for this module are deleted.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			if _, err := app.Catalog.DeleteModule(cmd.Context(), res.ID, mod.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed module %s\n", mod.Name)
			return nil
		},
	}
}

func newModuleSetTotalCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-total RESOURCE MODULE TOTAL",
		Short: "Change how many items a module has",
		Long:  "Change how many items a module has. Completed items are clamped to the new total.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("total must be a number, got %q", args[2])
			}
			res, err := resolveResource(app.Study.State(), args[0])
			if err != nil {
				return err
			}
			mod, err := resolveModule(res, args[1])
			if err != nil {
				return err
			}
			if err := app.Catalog.SetModuleTotal(cmd.Context(), res.ID, mod.ID, total); err != nil {
				return err
			}
			_, updated := app.Study.State().FindModule(res.ID, mod.ID)
			if updated == nil {
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%s\n", updated.Name, updated.CompletedItems, formatter.Amount(updated.TotalItems, updated.Kind))
			return nil
		},
	}
}
