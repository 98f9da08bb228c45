package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dayflow/internal/model"
	"dayflow/internal/planner"
)

var todayFlags struct {
	day string
	all bool
}

var todayCmd = &cobra.Command{
	Use:   "today [id]",
	Short: "Toggle a task's do-today state for one day",
	Long: "Toggle whether a task counts for the day. The task record itself is never " +
		"changed, and the toggle does not carry over to other days. With --all, every " +
		"visible to-do task flips to the opposite of the current majority.",
	Args: cobra.MaximumNArgs(1),
	RunE: runToday,
}

func init() {
	todayCmd.Flags().StringVar(&todayFlags.day, "day", "", "day to toggle for (YYYY-MM-DD, default today)")
	todayCmd.Flags().BoolVar(&todayFlags.all, "all", false, "toggle every visible to-do task")
}

func runToday(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	day, err := parseDayFlag(todayFlags.day)
	if err != nil {
		return err
	}

	if todayFlags.all {
		status := model.StatusToDo
		visible := svc.Project(svc.TasksForDay(day), planner.Filters{Status: &status})
		if err := svc.ToggleAllDoToday(ctx, day, visible); err != nil {
			return err
		}
		fmt.Printf("toggled %d task(s) for %s\n", len(visible), model.DayKey(day))
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("task id or --all required")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	task, err := svc.Task(id)
	if err != nil {
		return err
	}
	off, err := svc.ToggleDoToday(ctx, planner.ExclusionKey(task), day)
	if err != nil {
		return err
	}
	if off {
		fmt.Printf("task %d is off for %s\n", id, model.DayKey(day))
	} else {
		fmt.Printf("task %d is back on for %s\n", id, model.DayKey(day))
	}
	return nil
}
