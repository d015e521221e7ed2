package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/studysync/internal/cli/formatter"
	"github.com/alexanderramin/studysync/internal/domain"
)

var errTipsDisabled = errors.New("knowledge tips are disabled; set llm.enabled in the config to use them")

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Work through today's tasks",
	}
	cmd.AddCommand(
		newTaskClickCmd(app),
		newTaskToggleCmd(app),
		newTaskSettleCmd(app),
		newTaskEditCmd(app),
		newTaskRemoveCmd(app),
		newTaskTipCmd(app),
	)
	return cmd
}

// settlementFlags are shared by click and settle.
type settlementFlags struct {
	wrong int
	point string
}

func (f *settlementFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.wrong, "wrong", 0, "How many items you got wrong")
	cmd.Flags().StringVar(&f.point, "point", "", "Knowledge point the mistakes were about")
}

// collect returns the flag values when either flag was given or no
// terminal is attached, and asks through the prompter otherwise.
func (f *settlementFlags) collect(cmd *cobra.Command, app *App, task *domain.DailyTask) (domain.Settlement, error) {
	if cmd.Flags().Changed("wrong") || cmd.Flags().Changed("point") || !app.interactive() {
		return domain.Settlement{WrongCount: f.wrong, KnowledgePoint: f.point}, nil
	}
	return app.Prompter.Settle(task)
}

func newTaskClickCmd(app *App) *cobra.Command {
	var flags settlementFlags

	cmd := &cobra.Command{
		Use:   "click ID",
		Short: "Finish a pending task, or reopen a finished one",
		Long: `Finish a pending task, or reopen a finished one.

Finishing asks how many items went wrong. A non-zero answer puts the
module on the review queue.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(app.Study.State(), args[0])
			if err != nil {
				return err
			}
			outcome, err := app.Study.ClickTask(cmd.Context(), task.ID)
			if err != nil {
				return err
			}
			switch outcome {
			case domain.ClickUncompleted:
				fmt.Fprintf(cmd.OutOrStdout(), "Reopened %s · %s\n", task.ResourceName, task.ModuleName)
				return nil
			case domain.ClickNeedsSettlement:
				in, err := flags.collect(cmd, app, task)
				if err != nil {
					return err
				}
				return settle(cmd, app, task, in)
			default:
				return fmt.Errorf("task %s no longer exists", formatter.ShortID(task.ID))
			}
		},
	}

	flags.register(cmd)
	return cmd
}

func newTaskSettleCmd(app *App) *cobra.Command {
	var flags settlementFlags

	cmd := &cobra.Command{
		Use:   "settle ID",
		Short: "Finish a pending task and report mistakes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(app.Study.State(), args[0])
			if err != nil {
				return err
			}
			if task.IsCompleted {
				fmt.Fprintf(cmd.OutOrStdout(), "%s · %s is already done\n", task.ResourceName, task.ModuleName)
				return nil
			}
			in, err := flags.collect(cmd, app, task)
			if err != nil {
				return err
			}
			return settle(cmd, app, task, in)
		},
	}

	flags.register(cmd)
	return cmd
}

func settle(cmd *cobra.Command, app *App, task *domain.DailyTask, in domain.Settlement) error {
	item, err := app.Study.SettleTask(cmd.Context(), task.ID, in)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s Done: %s · %s ×%d\n", formatter.StyleGreen.Render("✔"), task.ResourceName, task.ModuleName, task.TargetAmount)
	fmt.Fprint(out, formatter.FormatQueued(item))
	return nil
}

func newTaskToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Flip a task between done and pending without settling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(app.Study.State(), args[0])
			if err != nil {
				return err
			}
			if _, err := app.Study.ToggleTask(cmd.Context(), task.ID); err != nil {
				return err
			}
			state := "done"
			if task.IsCompleted {
				state = "pending"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s · %s is now %s\n", task.ResourceName, task.ModuleName, state)
			return nil
		},
	}
}

func newTaskEditCmd(app *App) *cobra.Command {
	var target, completed int

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Correct a task's target or completed amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(app.Study.State(), args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("target") {
				target = task.TargetAmount
			}
			if !cmd.Flags().Changed("completed") {
				completed = task.CompletedAmount
			}
			if err := app.Study.EditTask(cmd.Context(), task.ID, target, completed); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s · %s: %d/%d\n", task.ResourceName, task.ModuleName, completed, target)
			return nil
		},
	}

	cmd.Flags().IntVar(&target, "target", 0, "New target amount")
	cmd.Flags().IntVar(&completed, "completed", 0, "New completed amount")
	cmd.MarkFlagsOneRequired("target", "completed")
	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a task and take back the progress it recorded",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(app.Study.State(), args[0])
			if err != nil {
				return err
			}
			if _, err := app.Study.DeleteTask(cmd.Context(), task.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed task %s · %s\n", task.ResourceName, task.ModuleName)
			return nil
		},
	}
}

func newTaskTipCmd(app *App) *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "tip ID",
		Short: "Generate a knowledge tip for a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			task, err := resolveTask(app.Study.State(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cached {
				fmt.Fprint(out, formatter.FormatTip(task))
				return nil
			}
			if app.Tips == nil {
				return errTipsDisabled
			}

			h, err := app.Tips.Request(ctx, task.ID)
			if err != nil {
				return fmt.Errorf("requesting tip: %w", err)
			}
			if h == nil {
				return fmt.Errorf("task %s no longer exists", formatter.ShortID(task.ID))
			}

			if app.interactive() {
				abandoned, err := runTipSpinner(ctx, app.stdin(), cmd.ErrOrStderr(), task, h.Done())
				if err != nil {
					return err
				}
				if abandoned {
					if err := app.Tips.Abandon(ctx, task.ID); err != nil {
						return err
					}
					fmt.Fprintln(out, formatter.Dim("Stopped waiting; no tip was saved."))
					return nil
				}
			} else {
				select {
				case <-h.Done():
				case <-ctx.Done():
					return ctx.Err()
				}
			}

			return printTipResult(out, app, task.ID, h.Result)
		},
	}

	cmd.Flags().BoolVar(&cached, "cached", false, "Show the stored tip without asking for a new one")
	return cmd
}

func printTipResult(out io.Writer, app *App, taskID string, result func() (string, bool)) error {
	tip, applied := result()
	if current := app.Study.State().FindTask(taskID); current != nil && applied {
		fmt.Fprint(out, formatter.FormatTip(current))
		return nil
	}
	if tip == "" {
		fmt.Fprintln(out, formatter.Dim("The tip request was dropped."))
		return nil
	}
	fmt.Fprintln(out, formatter.Dim("The task changed before the tip arrived; it was not saved."))
	fmt.Fprintln(out, tip)
	return nil
}
