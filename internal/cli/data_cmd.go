package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/studysync/internal/cli/formatter"
)

func newDataCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Export, import or reset all saved data",
	}
	cmd.AddCommand(
		newDataExportCmd(app),
		newDataImportCmd(app),
		newDataResetCmd(app),
	)
	return cmd
}

func newDataExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a save code with everything in it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := app.Transfer.Export(cmd.Context())
			if err != nil {
				return fmt.Errorf("exporting: %w", err)
			}
			if outPath == "" || outPath == "-" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(raw))
				return err
			}
			if err := os.WriteFile(outPath, append(raw, '\n'), 0o600); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved to %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "File to write instead of stdout")
	return cmd
}

func newDataImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import [FILE|-]",
		Short: "Replace all data with a save code",
		Long: `Replace all data with a save code.

Reads FILE, or stdin when FILE is "-" or omitted. Both the enveloped
export format and a bare state object are accepted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readSaveCode(app, args)
			if err != nil {
				return err
			}
			state, preview, err := app.Transfer.Preview(raw)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatPreview(preview))
			ok, err := confirm(app, "Replace all current data?", "Resources, today's plan, the review queue and the stage are overwritten.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Import cancelled.")
				return nil
			}
			if err := app.Transfer.Import(cmd.Context(), state); err != nil {
				return fmt.Errorf("importing: %w", err)
			}
			fmt.Fprintln(out, formatter.StyleGreen.Render("Import complete."))
			return nil
		},
	}
}

func readSaveCode(app *App, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		raw, err := io.ReadAll(app.stdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", args[0], err)
	}
	return raw, nil
}

func newDataResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete everything and start over with the built-in resources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirm(app, "Delete all data?", "This cannot be undone. Export first if you want a backup.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled.")
				return nil
			}
			if err := app.Transfer.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("resetting: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All data cleared.")
			return nil
		},
	}
}
