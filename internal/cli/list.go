package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dayflow/internal/model"
	"dayflow/internal/planner"
)

var listFlags struct {
	day      string
	all      bool
	section  string
	category string
	status   string
	priority string
	search   string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks for a day, grouped by section",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listFlags.day, "day", "", "day to view (YYYY-MM-DD, default today)")
	listCmd.Flags().BoolVarP(&listFlags.all, "all", "a", false, "include completed, skipped, and archived tasks")
	listCmd.Flags().StringVarP(&listFlags.section, "section", "s", "", "only this section (use 'none' for the no-section bucket)")
	listCmd.Flags().StringVarP(&listFlags.category, "category", "c", "", "only this category")
	listCmd.Flags().StringVar(&listFlags.status, "status", "", "only this status")
	listCmd.Flags().StringVarP(&listFlags.priority, "priority", "p", "", "only this priority")
	listCmd.Flags().StringVar(&listFlags.search, "search", "", "substring match on description")
}

func runList(cmd *cobra.Command, _ []string) error {
	day, err := parseDayFlag(listFlags.day)
	if err != nil {
		return err
	}

	filters := planner.Filters{Search: listFlags.search}
	if !listFlags.all && listFlags.status == "" {
		status := model.StatusToDo
		filters.Status = &status
	}
	if listFlags.status != "" {
		status := model.TaskStatus(listFlags.status)
		filters.Status = &status
	}
	if listFlags.priority != "" {
		priority := model.Priority(listFlags.priority)
		filters.Priority = &priority
	}
	if listFlags.category != "" {
		category, err := svc.CategoryByName(listFlags.category)
		if err != nil {
			return err
		}
		filters.CategoryID = &category.ID
	}
	if listFlags.section != "" {
		if strings.EqualFold(listFlags.section, "none") {
			filters.NoSection = true
		} else {
			section, err := svc.SectionByName(listFlags.section)
			if err != nil {
				return err
			}
			filters.SectionID = &section.ID
		}
	}

	tasks := svc.Project(svc.TasksForDay(day), filters)
	if len(tasks) == 0 {
		fmt.Println("nothing to show")
		return nil
	}

	categories := make(map[uint]string)
	for _, cat := range svc.Categories() {
		categories[cat.ID] = cat.Name
	}

	bySection := make(map[uint][]model.Task)
	for _, t := range tasks {
		var key uint
		if t.SectionID != nil {
			key = *t.SectionID
		}
		bySection[key] = append(bySection[key], t)
	}

	printGroup := func(header string, group []model.Task) {
		if len(group) == 0 {
			return
		}
		fmt.Printf("%s\n", header)
		printTree(group, 0, 0, categories, day)
	}
	for _, sec := range svc.Sections() {
		printGroup(sec.Name, bySection[sec.ID])
	}
	printGroup("(no section)", bySection[0])
	return nil
}

// printTree renders the tasks under one parent, indenting each subtree.
func printTree(group []model.Task, parent uint, depth int, categories map[uint]string, day time.Time) {
	for i := range group {
		t := group[i]
		var p uint
		if t.ParentTaskID != nil {
			p = *t.ParentTaskID
		}
		if p != parent {
			continue
		}
		fmt.Printf("%s%s\n", strings.Repeat("  ", depth+1), formatTask(&t, categories, day))
		if t.Persisted() {
			printTree(group, t.ID, depth+1, categories, day)
		}
	}
}

func formatTask(t *model.Task, categories map[uint]string, day time.Time) string {
	mark := " "
	switch t.Status {
	case model.StatusCompleted:
		mark = "x"
	case model.StatusSkipped:
		mark = "-"
	case model.StatusArchived:
		mark = "a"
	}

	var b strings.Builder
	if t.Persisted() {
		fmt.Fprintf(&b, "[%s] %4d  %s", mark, t.ID, t.Description)
	} else {
		fmt.Fprintf(&b, "[%s]    ~  %s", mark, t.Description)
	}
	if t.Priority != model.PriorityNone {
		fmt.Fprintf(&b, "  !%s", t.Priority)
	}
	if t.CategoryID != nil {
		if name, ok := categories[*t.CategoryID]; ok {
			fmt.Fprintf(&b, "  #%s", name)
		}
	}
	if t.RecurringType != model.RecurNone {
		fmt.Fprintf(&b, "  (%s)", t.RecurringType)
	}
	if t.DueDate != nil {
		fmt.Fprintf(&b, "  due %s", t.DueDate.Format(model.DayFormat))
	}
	if svc.IsDoTodayOff(t, day) {
		b.WriteString("  [off today]")
	}
	return b.String()
}
