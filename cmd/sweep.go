package cmd

import (
	"context"
	"fmt"
	"log"

	"sportsbook/config"
	"sportsbook/database"
	"sportsbook/domain/interfaces"
	"sportsbook/domain/services"
	"sportsbook/infrastructure"
	"sportsbook/repository"
	"sportsbook/sportsdata"
)

// RunSweep settles every claimable wager across all users and exits. The
// engine never schedules this itself; run it from cron or a job runner.
func RunSweep(ctx context.Context) error {
	cfg := config.Get()

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	publisher := infrastructure.NewNoopPublisher()
	if cfg.KafkaBrokers != "" {
		writer := infrastructure.NewKafkaWriter(cfg.KafkaBrokers, cfg.WagerEventTopic)
		kafkaPublisher := infrastructure.NewKafkaEventPublisher(writer)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	uowFactory := repository.NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		return infrastructure.NewTransactionalPublisher(publisher)
	})

	provider := sportsdata.New(cfg.SportsDataURL)
	wagerRepo := repository.NewWagerRepository(db)
	lifecycle := services.NewLifecycleService(uowFactory)
	settlement := services.NewSettlementService(wagerRepo, provider, lifecycle)

	uids, err := wagerRepo.ListUsersWithPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users with pending wagers: %w", err)
	}

	total := 0
	for _, uid := range uids {
		settled, err := settlement.ClaimAll(ctx, uid)
		total += settled
		if err != nil {
			// One user's unreachable fixture should not block the rest
			log.Printf("Sweep for user %d stopped early: %v", uid, err)
			continue
		}
	}

	log.Printf("Sweep finished: %d wagers settled across %d users", total, len(uids))
	return nil
}
