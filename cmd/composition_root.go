package cmd

import (
	"fmt"

	httpin "steelorders/internal/adapters/in/http"
	"steelorders/internal/adapters/out/postgres"
	"steelorders/internal/core/application/usecases/commands"
	"steelorders/internal/core/application/usecases/queries"
	"steelorders/internal/core/domain/services"
	"steelorders/internal/core/ports"
	"steelorders/internal/pkg/password"
	"steelorders/internal/pkg/token"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	policy     *services.AccessPolicy
	hasher     ports.PasswordHasher
	tokens     *token.Manager
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (*CompositionRoot, error) {
	policy, err := services.NewAccessPolicy()
	if err != nil {
		return nil, fmt.Errorf("failed to build access policy: %w", err)
	}

	tokens, err := token.NewManager(config.JWTSecret, config.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to build token manager: %w", err)
	}

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:     policy,
		hasher:     password.NewBcryptHasher(config.BcryptCost),
		tokens:     tokens,
	}, nil
}

func (c *CompositionRoot) Tokens() *token.Manager {
	return c.tokens
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateFinalizeOrderCommandHandler() commands.FinalizeOrderCommandHandler {
	return commands.NewFinalizeOrderCommandHandler(c.orderUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.orderUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateUpdateProfileCommandHandler() commands.UpdateProfileCommandHandler {
	return commands.NewUpdateProfileCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateChangePasswordCommandHandler() commands.ChangePasswordCommandHandler {
	return commands.NewChangePasswordCommandHandler(c.userUoWFactory(), c.hasher)
}

func (c *CompositionRoot) CreateChangeUserRoleCommandHandler() commands.ChangeUserRoleCommandHandler {
	return commands.NewChangeUserRoleCommandHandler(c.userUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWFactory(), c.hasher)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler(publisher ports.EventPublisher) commands.RelayOutboxCommandHandler {
	return commands.NewRelayOutboxCommandHandler(c.outboxUoWFactory(), publisher)
}

// CreateHTTPHandlers wires every use case served by the HTTP adapter.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:    c.CreateCreateOrderCommandHandler(),
		UpdateOrder:    c.CreateUpdateOrderCommandHandler(),
		DeleteOrder:    c.CreateDeleteOrderCommandHandler(),
		FinalizeOrder:  c.CreateFinalizeOrderCommandHandler(),
		CompleteOrder:  c.CreateCompleteOrderCommandHandler(),
		UpdateProfile:  c.CreateUpdateProfileCommandHandler(),
		ChangePassword: c.CreateChangePasswordCommandHandler(),
		ChangeUserRole: c.CreateChangeUserRoleCommandHandler(),

		Authenticate:    queries.NewAuthenticateQueryHandler(c.gormDB, c.hasher),
		GetActor:        queries.NewGetActorQueryHandler(c.gormDB),
		ListOrders:      queries.NewListOrdersQueryHandler(c.gormDB, c.policy),
		GetOrder:        queries.NewGetOrderQueryHandler(c.gormDB, c.policy),
		GetProfile:      queries.NewGetProfileQueryHandler(c.gormDB),
		ListUsers:       queries.NewListUsersQueryHandler(c.gormDB, c.policy),
		GetAdminStats:   queries.NewGetAdminStatsQueryHandler(c.gormDB, c.policy),
		GetRecentOrders: queries.NewGetRecentOrdersQueryHandler(c.gormDB, c.policy),
		GetOrderHistory: queries.NewGetOrderHistoryQueryHandler(c.gormDB, c.policy),
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
