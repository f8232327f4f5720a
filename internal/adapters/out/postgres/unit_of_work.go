// Package postgres provides the GORM based Unit of Work and schema migration.
//
// A unit of work owns one transaction. Repositories handed out by it share the
// transaction, and aggregates they write are tracked. On Commit the domain
// events recorded by tracked aggregates are written to the outbox inside the
// same transaction, so a change is never committed without its events.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Update(ctx, o, order.Finalized); err != nil {
//	    return err
//	}
//	if err := uow.AuditLogRepository().Append(ctx, entry); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance is used by a single goroutine; concurrent requests
// create their own instances.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"steelorders/internal/adapters/out/postgres/auditrepo"
	"steelorders/internal/adapters/out/postgres/orderrepo"
	"steelorders/internal/adapters/out/postgres/outboxrepo"
	"steelorders/internal/adapters/out/postgres/userrepo"
	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create with the concrete type, for callers that need
// GetTrackedAggregates.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction and tracks the aggregates
// written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit stores the pending domain events of tracked aggregates in the outbox
// and commits. If either step fails the transaction is rolled back.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.flushDomainEvents(ctx); err != nil {
		_ = uow.tx.Rollback()
		uow.tx = nil
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active, which makes
// a deferred Rollback after a successful Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns a repository bound to the current transaction, or to
// the plain connection when no transaction is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) AuditLogRepository() ports.AuditLogRepository {
	return auditrepo.NewGormAuditLogRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// GetTrackedAggregates returns the ids of aggregates written so far.
func (uow *GormUnitOfWork) GetTrackedAggregates() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		ids = append(ids, tracked.ID)
	}
	return ids
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// flushDomainEvents moves pending events of tracked aggregates into the outbox.
// An aggregate tracked twice yields its events once, since they are cleared.
func (uow *GormUnitOfWork) flushDomainEvents(ctx context.Context) error {
	var messages []ports.OutboxMessage
	for _, tracked := range uow.trackedAggregates {
		source, ok := tracked.Aggregate.(kernel.EventSource)
		if !ok {
			continue
		}

		for _, event := range source.DomainEvents() {
			payload, err := json.Marshal(event)
			if err != nil {
				return fmt.Errorf("failed to encode %s event: %w", event.EventType(), err)
			}
			messages = append(messages, ports.OutboxMessage{
				ID:          kernel.NewUUID(),
				EventType:   event.EventType(),
				AggregateID: tracked.ID,
				Payload:     payload,
				OccurredAt:  event.OccurredOn(),
			})
		}
		source.ClearDomainEvents()
	}

	return outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, messages...)
}
