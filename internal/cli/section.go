package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Manage sections",
}

var sectionAddFlags struct {
	noFocus bool
}

var sectionAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a section at the end of the list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, err := svc.CreateSection(cmd.Context(), strings.Join(args, " "), !sectionAddFlags.noFocus)
		if err != nil {
			return err
		}
		fmt.Printf("added section %d: %s\n", section.ID, section.Name)
		return nil
	},
}

var sectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sections in order",
	RunE: func(_ *cobra.Command, _ []string) error {
		sections := svc.Sections()
		if len(sections) == 0 {
			fmt.Println("no sections")
			return nil
		}
		for _, sec := range sections {
			focus := ""
			if !sec.IncludeInFocusMode {
				focus = "  [out of focus mode]"
			}
			fmt.Printf("%4d  %s%s\n", sec.ID, sec.Name, focus)
		}
		return nil
	},
}

var sectionRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a section",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		name := strings.Join(args[1:], " ")
		section, err := svc.UpdateSection(cmd.Context(), id, &name, nil)
		if err != nil {
			return err
		}
		fmt.Printf("section %d is now %q\n", section.ID, section.Name)
		return nil
	},
}

var sectionFocusCmd = &cobra.Command{
	Use:   "focus <id> <on|off>",
	Short: "Include or exclude a section from focus mode",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		include := args[1] == "on"
		if !include && args[1] != "off" {
			return fmt.Errorf("expected 'on' or 'off', got %q", args[1])
		}
		if _, err := svc.UpdateSection(cmd.Context(), id, nil, &include); err != nil {
			return err
		}
		fmt.Printf("section %d focus mode: %s\n", id, args[1])
		return nil
	},
}

var sectionMoveFlags struct {
	before uint
	after  uint
}

var sectionMoveCmd = &cobra.Command{
	Use:   "move <id>",
	Short: "Move a section within the list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		var overID *uint
		forward := false
		switch {
		case sectionMoveFlags.before != 0:
			overID = &sectionMoveFlags.before
		case sectionMoveFlags.after != 0:
			overID = &sectionMoveFlags.after
			forward = true
		}
		if err := svc.ReorderSection(cmd.Context(), id, overID, forward); err != nil {
			return err
		}
		fmt.Printf("moved section %d\n", id)
		return nil
	},
}

var sectionRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a section; its tasks move to the no-section bucket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := svc.DeleteSection(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("deleted section %d\n", id)
		return nil
	},
}

func init() {
	sectionAddCmd.Flags().BoolVar(&sectionAddFlags.noFocus, "no-focus", false, "exclude the section from focus mode")
	sectionMoveCmd.Flags().UintVar(&sectionMoveFlags.before, "before", 0, "place before this section id")
	sectionMoveCmd.Flags().UintVar(&sectionMoveFlags.after, "after", 0, "place after this section id")
	sectionCmd.AddCommand(sectionAddCmd, sectionListCmd, sectionRenameCmd, sectionFocusCmd, sectionMoveCmd, sectionRmCmd)
}
