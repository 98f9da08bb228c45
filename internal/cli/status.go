package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dayflow/internal/model"
)

var statusFlags struct {
	template uint
	day      string
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task completed",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetStatus(cmd, args, model.StatusCompleted)
	},
}

var skipCmd = &cobra.Command{
	Use:   "skip <id>",
	Short: "Mark a task skipped",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetStatus(cmd, args, model.StatusSkipped)
	},
}

var reopenCmd = &cobra.Command{
	Use:   "reopen <id>",
	Short: "Put a task back to to-do",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetStatus(cmd, args, model.StatusToDo)
	},
}

func init() {
	for _, c := range []*cobra.Command{doneCmd, skipCmd, reopenCmd} {
		c.Flags().UintVar(&statusFlags.template, "template", 0, "recurring template id; mutates that template's instance for the day")
		c.Flags().StringVar(&statusFlags.day, "day", "", "day of the recurring instance (YYYY-MM-DD, default today)")
	}
}

func runSetStatus(cmd *cobra.Command, args []string, status model.TaskStatus) error {
	ctx := cmd.Context()

	if statusFlags.template != 0 {
		day, err := parseDayFlag(statusFlags.day)
		if err != nil {
			return err
		}
		task, err := svc.SetVirtualStatus(ctx, statusFlags.template, day, status)
		if err != nil {
			return err
		}
		fmt.Printf("task %d (%s) is now %s for %s\n", task.ID, task.Description, task.Status, model.DayKey(day))
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("task id or --template required")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	task, err := svc.SetStatus(ctx, id, status)
	if err != nil {
		return err
	}
	fmt.Printf("task %d (%s) is now %s\n", task.ID, task.Description, task.Status)
	return nil
}
