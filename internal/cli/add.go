package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dayflow/internal/model"
	"dayflow/internal/planner"
	"dayflow/internal/service"
)

var addFlags struct {
	section  string
	category string
	priority string
	due      string
	parent   uint
	notes    string
	link     string
	recur    string
}

var addCmd = &cobra.Command{
	Use:   "add <text>...",
	Short: "Add a task",
	Long: "Add a task. Inline markers pre-fill fields: #category, @section, " +
		"!low|!medium|!high|!urgent, today/tomorrow/YYYY-MM-DD, a URL, and ' // notes'. " +
		"Flags win over markers.",
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addFlags.section, "section", "s", "", "section name")
	addCmd.Flags().StringVarP(&addFlags.category, "category", "c", "", "category name (created when missing)")
	addCmd.Flags().StringVarP(&addFlags.priority, "priority", "p", "", "priority: low, medium, high, urgent")
	addCmd.Flags().StringVarP(&addFlags.due, "due", "d", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().UintVar(&addFlags.parent, "parent", 0, "parent task id (makes this a subtask)")
	addCmd.Flags().StringVar(&addFlags.notes, "notes", "", "notes")
	addCmd.Flags().StringVar(&addFlags.link, "link", "", "link URL")
	addCmd.Flags().StringVarP(&addFlags.recur, "recur", "r", "", "recurring: daily, weekly, monthly")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sg := suggest.Suggest(strings.Join(args, " "))

	input := service.TaskInput{
		Description: sg.Description,
		Notes:       sg.Notes,
		Link:        sg.Link,
		Priority:    sg.Priority,
		DueDate:     sg.DueDate,
	}
	if addFlags.notes != "" {
		input.Notes = addFlags.notes
	}
	if addFlags.link != "" {
		input.Link = addFlags.link
	}
	if addFlags.priority != "" {
		input.Priority = model.Priority(addFlags.priority)
	}
	if addFlags.due != "" {
		due, err := time.ParseInLocation(model.DayFormat, addFlags.due, time.Local)
		if err != nil {
			return fmt.Errorf("%w: invalid due date %q", planner.ErrValidation, addFlags.due)
		}
		input.DueDate = &due
	}
	if addFlags.recur != "" {
		input.RecurringType = model.RecurringType(addFlags.recur)
	}
	if addFlags.parent != 0 {
		parent := addFlags.parent
		input.ParentTaskID = &parent
		if p, err := svc.Task(parent); err == nil {
			input.SectionID = p.SectionID
		}
	}

	sectionName := addFlags.section
	if sectionName == "" {
		sectionName = sg.Section
	}
	if sectionName != "" && input.ParentTaskID == nil {
		section, err := svc.SectionByName(sectionName)
		if err != nil {
			if !errors.Is(err, planner.ErrNotFound) || addFlags.section != "" {
				return err
			}
			// a guessed section that does not exist is just text
		} else {
			input.SectionID = &section.ID
		}
	}

	categoryName := addFlags.category
	if categoryName == "" {
		categoryName = sg.Category
	}
	if categoryName != "" {
		category, err := svc.EnsureCategory(ctx, categoryName)
		if err != nil {
			return err
		}
		input.CategoryID = &category.ID
	}

	task, err := svc.CreateTask(ctx, input)
	if err != nil {
		return err
	}
	fmt.Printf("added task %d: %s\n", task.ID, task.Description)
	return nil
}
