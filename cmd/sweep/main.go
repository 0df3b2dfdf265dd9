package main

import (
	"context"
	"log"

	"ai-chat-be/internal/config"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/database"
	"ai-chat-be/pkg/retention"
	retentionEvents "ai-chat-be/pkg/retention/events"

	"github.com/fatih/color"
)

// One-shot sweep over every user with auto-delete enabled. Meant for cron or
// manual runs; the REST server runs the same pass on an interval.
func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Events are skipped in one-shot mode; a nil publisher is a no-op.
	sweeper := retention.NewSweeper(uowFactory, retentionEvents.NewNatsPublisher(nil, sysLogger), sysLogger)

	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserSettingsRepository().FindAllAutoDelete(ctx)
	if err != nil {
		color.Red("Failed to enumerate users: %v", err)
		return
	}

	color.Cyan("Sweeping %d users with auto-delete enabled...", len(users))

	totalDeleted := 0
	failed := 0
	for _, settings := range users {
		deleted, err := sweeper.Sweep(ctx, settings.UserId)
		if err != nil {
			color.Red("  %s: sweep failed: %v", settings.UserId, err)
			failed++
			continue
		}
		if deleted > 0 {
			color.Yellow("  %s: deleted %d expired sessions", settings.UserId, deleted)
		}
		totalDeleted += deleted
	}

	if failed > 0 {
		color.Red("Done with errors: %d sessions deleted, %d users failed", totalDeleted, failed)
		return
	}
	color.Green("Done: %d sessions deleted across %d users", totalDeleted, len(users))
}
