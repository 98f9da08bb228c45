package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dayflow/internal/model"
	"dayflow/internal/planner"
	"dayflow/internal/service"
)

var editFlags struct {
	desc          string
	notes         string
	link          string
	priority      string
	due           string
	clearDue      bool
	category      string
	clearCategory bool
	recur         string
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task's fields",
	Long:  "Edit a task. Only the flags given change; --clear-due and --clear-category null their field.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editFlags.desc, "desc", "", "new description")
	editCmd.Flags().StringVar(&editFlags.notes, "notes", "", "new notes")
	editCmd.Flags().StringVar(&editFlags.link, "link", "", "new link URL")
	editCmd.Flags().StringVarP(&editFlags.priority, "priority", "p", "", "priority: none, low, medium, high, urgent")
	editCmd.Flags().StringVarP(&editFlags.due, "due", "d", "", "due date (YYYY-MM-DD)")
	editCmd.Flags().BoolVar(&editFlags.clearDue, "clear-due", false, "remove the due date")
	editCmd.Flags().StringVarP(&editFlags.category, "category", "c", "", "category name (created when missing)")
	editCmd.Flags().BoolVar(&editFlags.clearCategory, "clear-category", false, "remove the category")
	editCmd.Flags().StringVarP(&editFlags.recur, "recur", "r", "", "recurring: none, daily, weekly, monthly")
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var patch service.TaskPatch
	if cmd.Flags().Changed("desc") {
		patch.Description = &editFlags.desc
	}
	if cmd.Flags().Changed("notes") {
		patch.Notes = &editFlags.notes
	}
	if cmd.Flags().Changed("link") {
		patch.Link = &editFlags.link
	}
	if editFlags.priority != "" {
		p := model.Priority(editFlags.priority)
		patch.Priority = &p
	}
	if editFlags.clearDue {
		patch.ClearDueDate = true
	} else if editFlags.due != "" {
		due, err := time.ParseInLocation(model.DayFormat, editFlags.due, time.Local)
		if err != nil {
			return fmt.Errorf("%w: invalid due date %q", planner.ErrValidation, editFlags.due)
		}
		patch.DueDate = &due
	}
	if editFlags.clearCategory {
		patch.ClearCategory = true
	} else if editFlags.category != "" {
		category, err := svc.EnsureCategory(ctx, editFlags.category)
		if err != nil {
			return err
		}
		patch.CategoryID = &category.ID
	}
	if editFlags.recur != "" {
		r := model.RecurringType(editFlags.recur)
		patch.RecurringType = &r
	}

	task, err := svc.UpdateTask(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Printf("updated task %d: %s\n", task.ID, task.Description)
	return nil
}
