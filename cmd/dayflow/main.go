package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dayflow/internal/cli"
	"dayflow/internal/config"
	"dayflow/internal/repository"
	"dayflow/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	store := repository.NewGormStore(db)
	plannerSvc := service.NewPlannerService(store, cfg)
	if err := plannerSvc.Load(ctx); err != nil {
		log.Fatalf("load state: %v", err)
	}

	cli.SetScheduler(service.NewSchedulerService(time.Local), cfg.MaintenanceTime)

	if err := cli.Execute(ctx, plannerSvc, &service.HeuristicSuggester{}); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("dayflow: %v", err)
	}
}
