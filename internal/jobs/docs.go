// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// OutboxRelayJob publishes order lifecycle events (order.created, order.updated,
// order.deleted, order.finalized, order.completed) that command handlers wrote
// to the outbox table. Each run relays at most one batch; a message is marked
// published only after the broker accepted it, so delivery is at least once.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, "*/5 * * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use six field cron expressions with a leading seconds field.
// Overlapping runs are skipped, so a slow broker never stacks batches.
package jobs
