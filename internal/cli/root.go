// Package cli implements the command-line surface over the planner
// service.
package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"dayflow/internal/model"
	"dayflow/internal/service"
)

var (
	svc     *service.PlannerService
	suggest service.Suggester
)

var rootCmd = &cobra.Command{
	Use:           "dayflow",
	Short:         "Personal daily planner",
	Long:          "dayflow manages tasks, sections, and categories with per-day recurrence, do-today overlays, and a focus queue.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(
		addCmd,
		editCmd,
		listCmd,
		doneCmd,
		skipCmd,
		reopenCmd,
		deleteCmd,
		moveCmd,
		sectionCmd,
		categoryCmd,
		focusCmd,
		todayCmd,
		maintainCmd,
	)
}

// Execute runs the CLI against the given planner service.
func Execute(ctx context.Context, planner *service.PlannerService, suggester service.Suggester) error {
	svc = planner
	suggest = suggester
	return rootCmd.ExecuteContext(ctx)
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}

func parseDayFlag(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	day, err := time.ParseInLocation(model.DayFormat, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q, expected YYYY-MM-DD", raw)
	}
	return day, nil
}
