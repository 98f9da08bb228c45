package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dayflow/internal/planner"
)

var moveFlags struct {
	before     uint
	after      uint
	parent     uint
	section    string
	sectionTop string
	root       bool
}

var moveCmd = &cobra.Command{
	Use:   "move <id>",
	Short: "Move a task to a new position, parent, or section",
	Long: "Move a task. --before/--after place it around another task in that task's " +
		"group; --parent appends it under a parent; --section appends it to a section's " +
		"top level; --section-top drops it on the section header; --root appends it to " +
		"the no-section top level.",
	Args: cobra.ExactArgs(1),
	RunE: runMove,
}

func init() {
	moveCmd.Flags().UintVar(&moveFlags.before, "before", 0, "place before this task id")
	moveCmd.Flags().UintVar(&moveFlags.after, "after", 0, "place after this task id")
	moveCmd.Flags().UintVar(&moveFlags.parent, "parent", 0, "append under this parent task")
	moveCmd.Flags().StringVar(&moveFlags.section, "section", "", "append to this section")
	moveCmd.Flags().StringVar(&moveFlags.sectionTop, "section-top", "", "insert at the top of this section")
	moveCmd.Flags().BoolVar(&moveFlags.root, "root", false, "append to the top level, no section")
}

func buildMoveRequest(activeID uint) (planner.ReorderRequest, error) {
	req := planner.ReorderRequest{ActiveID: activeID}

	switch {
	case moveFlags.before != 0 || moveFlags.after != 0:
		overID := moveFlags.before
		if moveFlags.after != 0 {
			overID = moveFlags.after
			req.MovingForward = true
		}
		over, err := svc.Task(overID)
		if err != nil {
			return req, err
		}
		req.OverTaskID = &overID
		req.NewParentID = over.ParentTaskID
		req.NewSectionID = over.SectionID
	case moveFlags.parent != 0:
		parentID := moveFlags.parent
		parent, err := svc.Task(parentID)
		if err != nil {
			return req, err
		}
		req.NewParentID = &parentID
		req.NewSectionID = parent.SectionID
	case moveFlags.sectionTop != "":
		section, err := svc.SectionByName(moveFlags.sectionTop)
		if err != nil {
			return req, err
		}
		req.OverSectionID = &section.ID
	case moveFlags.section != "":
		section, err := svc.SectionByName(moveFlags.section)
		if err != nil {
			return req, err
		}
		req.NewSectionID = &section.ID
	case moveFlags.root:
		// zero request: append to top level, no section
	default:
		return req, fmt.Errorf("one of --before, --after, --parent, --section, --section-top, --root is required")
	}
	return req, nil
}

func runMove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	req, err := buildMoveRequest(id)
	if err != nil {
		return err
	}

	if err := svc.BeginDrag(id); err != nil {
		return err
	}
	if _, err := svc.UpdateDrag(req); err != nil {
		svc.CancelDrag()
		return err
	}
	if err := svc.CommitDrag(cmd.Context(), req); err != nil {
		return err
	}
	fmt.Printf("moved task %d\n", id)
	return nil
}
