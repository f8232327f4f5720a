package commands

import (
	"context"
	"fmt"
	"time"

	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/ports"
)

// RelayOutboxCommandHandler publishes pending outbox messages in the order they
// were written. Delivery is at least once: a message is marked only after the
// broker accepted it.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
}

func NewRelayOutboxCommandHandler(uowFactory OutboxUoWFactory, publisher ports.EventPublisher) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns the number of messages relayed. When publishing fails the
// messages sent before the failure are still marked and committed, and the
// error is returned.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	pending, err := outbox.GetUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	published := make([]kernel.UUID, 0, len(pending))
	var publishErr error
	for _, message := range pending {
		if publishErr = h.publisher.Publish(ctx, message); publishErr != nil {
			publishErr = fmt.Errorf("publish %s %s: %w", message.EventType, message.ID, publishErr)
			break
		}
		published = append(published, message.ID)
	}

	if len(published) > 0 {
		if err = outbox.MarkPublished(ctx, published, time.Now().UTC()); err != nil {
			return 0, err
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, err
		}
	}

	return len(published), publishErr
}
