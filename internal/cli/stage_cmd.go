package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/studysync/internal/cli/formatter"
	"github.com/alexanderramin/studysync/internal/domain"
)

func newStageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Show or change the study stage",
	}
	cmd.AddCommand(newStageShowCmd(app), newStageSetCmd(app))
	return cmd
}

func newStageShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current study stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StageBadge(app.Study.State().StudyStage))
			return nil
		},
	}
}

func newStageSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "set STAGE",
		Short:     "Switch the planner policy (Foundation, Review or Sprint)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"Foundation", "Review", "Strengthen", "Sprint"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var stage domain.StudyStage
			if err := stage.Set(args[0]); err != nil {
				return err
			}
			if err := app.Study.SetStage(cmd.Context(), stage); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stage set to %s\n", formatter.StageBadge(stage))
			return nil
		},
	}
}
