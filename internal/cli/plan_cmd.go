package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/studysync/internal/cli/formatter"
	"github.com/alexanderramin/studysync/internal/domain"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate and inspect today's plan",
	}
	cmd.AddCommand(
		newPlanRunCmd(app),
		newPlanAddCmd(app),
		newPlanListCmd(app),
		newPlanHistoryCmd(app),
	)
	return cmd
}

func newPlanRunCmd(app *App) *cobra.Command {
	var stage domain.StudyStage

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Append a generated batch of tasks to today's plan",
		Long: `Append a generated batch of tasks to today's plan.

The current study stage decides the mix: review items first, then the
core question bank, then supporting resources. Running it again adds
another batch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if cmd.Flags().Changed("stage") {
				if err := app.Study.SetStage(ctx, stage); err != nil {
					return err
				}
			}
			plan, err := app.Study.GeneratePlan(ctx)
			if err != nil {
				return fmt.Errorf("generating plan: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGenerated(plan))
			return nil
		},
	}

	cmd.Flags().Var(&stage, "stage", "Switch to this stage before generating (Foundation, Review or Sprint)")
	return cmd
}

func newPlanAddCmd(app *App) *cobra.Command {
	var resourceID, moduleID string
	var amount int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a manual task to today's plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := app.Study.State()
			res, err := resolveResource(state, resourceID)
			if err != nil {
				return err
			}
			mod, err := resolveModule(res, moduleID)
			if err != nil {
				return err
			}
			task, err := app.Study.AddTask(cmd.Context(), res.ID, mod.ID, amount)
			if err != nil {
				return err
			}
			if task == nil {
				return fmt.Errorf("module %s no longer exists", mod.Name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s: %s · %s ×%d\n",
				formatter.TruncID(task.ID), task.ResourceName, task.ModuleName, task.TargetAmount)
			return nil
		},
	}

	cmd.Flags().StringVar(&resourceID, "resource", "", "Resource ID prefix or name")
	cmd.Flags().StringVar(&moduleID, "module", "", "Module ID prefix")
	cmd.Flags().IntVar(&amount, "amount", 0, "How many items to do")
	_ = cmd.MarkFlagRequired("resource")
	_ = cmd.MarkFlagRequired("module")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show today's tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(app.Study.State().DailyPlan))
			return nil
		},
	}
}

func newPlanHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent plan runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := app.Study.PlanHistory(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("loading plan history: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(runs, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of runs to show")
	return cmd
}
