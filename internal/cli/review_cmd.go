package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/studysync/internal/cli/formatter"
)

func newReviewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Inspect the review queue",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List review items in the order plans will pick them up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReviewQueue(app.Study.State().ReviewQueue, app.now()))
			return nil
		},
	})
	return cmd
}
