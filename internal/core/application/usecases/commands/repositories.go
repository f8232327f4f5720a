// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
//
// Every handler follows the same steps: validate the command, open a unit of
// work, load the aggregate, check the actor against the access policy, apply
// the domain operation, persist it with a conditional write, append the audit
// entry, commit. Any failure rolls the whole unit of work back.
package commands

import (
	"context"

	"steelorders/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// UserRepoFactory provides access to user repository within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// AuditLogRepoFactory provides access to the audit log within a transaction.
	AuditLogRepoFactory interface {
		AuditLogRepository() ports.AuditLogRepository
	}

	// OutboxRepoFactory provides access to the outbox within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW is used by order lifecycle commands: the order change and its
	// audit entry share one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.OrderRepository().Update(ctx, o, order.Draft)
	//   err = uow.AuditLogRepository().Append(ctx, entry)
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AuditLogRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UserUoW is used by account commands.
	UserUoW interface {
		TxManager
		UserRepoFactory
		AuditLogRepoFactory
	}

	// UserUoWFactory creates new user unit of work instances.
	UserUoWFactory interface {
		Create() UserUoW
	}

	// OutboxUoW is used by the outbox relay.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
