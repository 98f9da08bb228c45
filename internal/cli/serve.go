package cli

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"dayflow/internal/service"
)

var (
	sched           *service.SchedulerService
	maintenanceTime string
)

// SetScheduler hands the serve command its cron runner and the daily
// maintenance time (HH:MM).
func SetScheduler(s *service.SchedulerService, timeStr string) {
	sched = s
	maintenanceTime = timeStr
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run in the background, performing daily maintenance on schedule",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// catch up in case the process was down over midnight
	if err := svc.Maintenance(ctx, time.Now()); err != nil {
		log.Printf("[warn] startup maintenance: %v", err)
	}

	if _, err := sched.ScheduleDaily(maintenanceTime, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := svc.Maintenance(jobCtx, time.Now()); err != nil {
			log.Printf("[warn] maintenance: %v", err)
		}
	}); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	log.Printf("[info] dayflow serving; maintenance daily at %s", maintenanceTime)
	<-ctx.Done()
	log.Println("[info] shutdown complete")
	return nil
}
