package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var focusFlags struct {
	day string
	all bool
}

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Show the next available task and the upcoming queue",
	RunE:  runFocus,
}

func init() {
	focusCmd.Flags().StringVar(&focusFlags.day, "day", "", "day to plan for (YYYY-MM-DD, default today)")
	focusCmd.Flags().BoolVar(&focusFlags.all, "all", false, "ignore section focus-mode flags")
}

func runFocus(_ *cobra.Command, _ []string) error {
	day, err := parseDayFlag(focusFlags.day)
	if err != nil {
		return err
	}
	focusOnly := !focusFlags.all

	next := svc.NextAvailable(day, focusOnly)
	if next == nil {
		fmt.Println("nothing left to do, the day is clear")
		return nil
	}
	if next.Persisted() {
		fmt.Printf("next: %d  %s\n", next.ID, next.Description)
	} else {
		fmt.Printf("next:    ~  %s (recurring)\n", next.Description)
	}

	upcoming := svc.Upcoming(day, focusOnly)
	if len(upcoming) == 0 {
		return nil
	}
	fmt.Println("upcoming:")
	for _, t := range upcoming {
		if t.Persisted() {
			fmt.Printf("  %4d  %s\n", t.ID, t.Description)
		} else {
			fmt.Printf("     ~  %s (recurring)\n", t.Description)
		}
	}
	return nil
}
