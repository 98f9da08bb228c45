package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dayflow/internal/model"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
}

var categoryAddFlags struct {
	color string
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a category",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := svc.CreateCategory(cmd.Context(), strings.Join(args, " "), categoryAddFlags.color)
		if err != nil {
			return err
		}
		fmt.Printf("added category %d: %s (%s)\n", category.ID, category.Name, category.Color)
		return nil
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE: func(_ *cobra.Command, _ []string) error {
		categories := svc.Categories()
		if len(categories) == 0 {
			fmt.Println("no categories")
			return nil
		}
		for _, cat := range categories {
			fmt.Printf("%4d  %s (%s)\n", cat.ID, cat.Name, cat.Color)
		}
		return nil
	},
}

var categoryRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a category; its tasks keep everything else",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := svc.DeleteCategory(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("deleted category %d\n", id)
		return nil
	},
}

func init() {
	categoryAddCmd.Flags().StringVar(&categoryAddFlags.color, "color", "",
		"palette key: "+strings.Join(model.CategoryColors, ", "))
	categoryCmd.AddCommand(categoryAddCmd, categoryListCmd, categoryRmCmd)
}
