package jobs

import (
	"context"
	"log/slog"

	"steelorders/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxRelaySchedule runs the relay every five seconds.
const DefaultOutboxRelaySchedule = "*/5 * * * * *"

// OutboxRelayer moves one batch of pending outbox messages to the broker.
type OutboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob periodically publishes order lifecycle events stored in the outbox.
type OutboxRelayJob struct {
	handler  OutboxRelayer
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOutboxRelayJob creates the relay job. schedule is a six field cron
// expression (with seconds); empty means DefaultOutboxRelaySchedule.
func NewOutboxRelayJob(handler OutboxRelayer, schedule string, logger *slog.Logger) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	return &OutboxRelayJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "outbox_relay_job"),
	}
}

// Start schedules the relay.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// RunOnce relays a single batch and logs the outcome.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) {
	cmd, err := commands.NewRelayOutboxCommand(commands.DefaultRelayBatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		return
	}

	published, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "published", published, "error", err)
		return
	}
	if published > 0 {
		j.logger.InfoContext(ctx, "Outbox messages published", "published", published)
	}
}

// Stop stops the relay and waits for a running batch to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
