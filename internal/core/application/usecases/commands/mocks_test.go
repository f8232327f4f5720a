package commands_test

import (
	"context"
	"testing"
	"time"

	"steelorders/internal/core/application/usecases/commands"
	"steelorders/internal/core/domain/model/audit"
	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/core/domain/model/user"
	"steelorders/internal/core/domain/services"
	"steelorders/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, expected order.Status) error {
	return m.Called(ctx, o, expected).Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, o *order.Order, expected order.Status) error {
	return m.Called(ctx, o, expected).Error(0)
}

func (m *MockOrderRepository) NextNumber(ctx context.Context, year int) (order.Number, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(order.Number), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockAuditLogRepository struct{ mock.Mock }

func (m *MockAuditLogRepository) Append(ctx context.Context, entry *audit.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, messages ...ports.OutboxMessage) error {
	return m.Called(ctx, messages).Error(0)
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	messages, _ := args.Get(0).([]ports.OutboxMessage)
	return messages, args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	return m.Called(ctx, ids, at).Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	return m.Called(ctx, message).Error(0)
}

type MockPasswordHasher struct{ mock.Mock }

func (m *MockPasswordHasher) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hash, plain string) error {
	return m.Called(hash, plain).Error(0)
}

type MockTx struct{ mock.Mock }

func (m *MockTx) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockOrderUoW struct {
	MockTx
	orders *MockOrderRepository
	audit  *MockAuditLogRepository
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository       { return m.orders }
func (m *MockOrderUoW) AuditLogRepository() ports.AuditLogRepository { return m.audit }

type MockOrderUoWFactory struct{ uow *MockOrderUoW }

func (f MockOrderUoWFactory) Create() commands.OrderUoW { return f.uow }

type MockUserUoW struct {
	MockTx
	users *MockUserRepository
	audit *MockAuditLogRepository
}

func (m *MockUserUoW) UserRepository() ports.UserRepository         { return m.users }
func (m *MockUserUoW) AuditLogRepository() ports.AuditLogRepository { return m.audit }

type MockUserUoWFactory struct{ uow *MockUserUoW }

func (f MockUserUoWFactory) Create() commands.UserUoW { return f.uow }

type MockOutboxUoW struct {
	MockTx
	outbox *MockOutboxRepository
}

func (m *MockOutboxUoW) OutboxRepository() ports.OutboxRepository { return m.outbox }

type MockOutboxUoWFactory struct{ uow *MockOutboxUoW }

func (f MockOutboxUoWFactory) Create() commands.OutboxUoW { return f.uow }

func newOrderUoW() *MockOrderUoW {
	uow := &MockOrderUoW{orders: &MockOrderRepository{}, audit: &MockAuditLogRepository{}}
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return uow
}

func newUserUoW() *MockUserUoW {
	uow := &MockUserUoW{users: &MockUserRepository{}, audit: &MockAuditLogRepository{}}
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return uow
}

func newPolicy(t *testing.T) *services.AccessPolicy {
	t.Helper()
	policy, err := services.NewAccessPolicy()
	require.NoError(t, err)
	return policy
}

func newActor(t *testing.T, role user.Role) user.Actor {
	t.Helper()
	actor, err := user.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

func validDetails() order.Details {
	return order.Details{
		Destination:         "Tata Steel",
		MaterialCode:        "MAT001",
		Party:               "Steel Supplier A",
		Mill:                "Blast Furnace",
		Priority:            1,
		MaterialDescription: "HR coil",
		OrderQuantity:       1000,
		ValidUntil:          time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func newDraftOrder(t *testing.T, ownerID kernel.UUID) *order.Order {
	t.Helper()
	number, err := order.NewNumber(2026, 1)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), number, ownerID, validDetails(), time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func newFinalizedOrder(t *testing.T, ownerID kernel.UUID) *order.Order {
	t.Helper()
	o := newDraftOrder(t, ownerID)
	require.NoError(t, o.Finalize(time.Now().UTC().Add(-time.Minute)))
	o.ClearDomainEvents()
	return o
}

func auditAction(action audit.Action) any {
	return mock.MatchedBy(func(e *audit.Entry) bool {
		return e != nil && e.Action() == action
	})
}

func newUser(t *testing.T, role user.Role, passwordHash *string) *user.User {
	t.Helper()
	u, err := user.NewUser(
		kernel.NewUUID(),
		"jane.doe@steel.example",
		role,
		user.Profile{FirstName: "Jane", LastName: "Doe", ProfilePhoto: "/photos/jane.png"},
		user.Credentials{PasswordHash: passwordHash},
		time.Now().UTC().Add(-24*time.Hour),
	)
	require.NoError(t, err)
	return u
}
