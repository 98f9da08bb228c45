package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var maintainCmd = &cobra.Command{
	Use:   "maintain",
	Short: "Run the daily maintenance now",
	Long:  "Prune do-today state from past days and archive completed tasks past the archive window. The scheduler runs this automatically in serve mode.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := svc.Maintenance(cmd.Context(), time.Now()); err != nil {
			return err
		}
		fmt.Println("maintenance done")
		return nil
	},
}
