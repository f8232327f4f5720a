package queries_test

import (
	"context"
	"testing"
	"time"

	"steelorders/internal/adapters/out/postgres/orderrepo"
	"steelorders/internal/adapters/out/postgres/pgtest"
	"steelorders/internal/adapters/out/postgres/userrepo"
	"steelorders/internal/core/application/usecases/queries"
	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/core/domain/model/user"
	"steelorders/internal/core/domain/services"
	"steelorders/internal/pkg/errs"
	"steelorders/internal/pkg/password"

	"github.com/stretchr/testify/suite"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

var baseTime = time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)

type QueriesIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	policy   *services.AccessPolicy
	sequence int64

	owner   *user.User
	other   *user.User
	manager *user.User
	admin   *user.User
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(QueriesIntegrationTestSuite))
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database

	suite.policy, err = services.NewAccessPolicy()
	suite.Require().NoError(err)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate())
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.sequence = 0

	suite.owner = suite.addUser(user.RoleUser, 0)
	suite.other = suite.addUser(user.RoleUser, 1)
	suite.manager = suite.addUser(user.RoleOperationsManager, 2)
	suite.admin = suite.addUser(user.RoleAdmin, 3)
}

func (suite *QueriesIntegrationTestSuite) addUser(role user.Role, minutes int) *user.User {
	u, err := pgtest.NewUser(role, baseTime.Add(time.Duration(minutes)*time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(userrepo.NewGormUserRepository(suite.database.DB, noopTracker{}).Add(context.Background(), u))
	return u
}

// addOrders stores n orders with increasing creation times.
func (suite *QueriesIntegrationTestSuite) addOrders(owner *user.User, status order.Status, n int) []*order.Order {
	repo := orderrepo.NewGormOrderRepository(suite.database.DB, noopTracker{})
	orders := make([]*order.Order, 0, n)
	for range n {
		suite.sequence++
		o, err := pgtest.NewOrder(owner.ID(), suite.sequence, status, baseTime.Add(time.Duration(suite.sequence)*time.Hour))
		suite.Require().NoError(err)
		suite.Require().NoError(repo.Add(context.Background(), o))
		orders = append(orders, o)
	}
	return orders
}

func (suite *QueriesIntegrationTestSuite) list(actor user.Actor, page, limit int, view queries.View) queries.ListOrdersQueryResponse {
	query, err := queries.NewListOrdersQuery(actor, page, limit, view)
	suite.Require().NoError(err)
	result, err := queries.NewListOrdersQueryHandler(suite.database.DB, suite.policy).Handle(context.Background(), query)
	suite.Require().NoError(err)
	return result
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_UserSeesOnlyOwnOrders() {
	suite.addOrders(suite.owner, order.Draft, 2)
	suite.addOrders(suite.owner, order.Finalized, 1)
	suite.addOrders(suite.other, order.Draft, 4)

	result := suite.list(suite.owner.Actor(), 1, 10, "")

	suite.Len(result.Orders, 3)
	for _, o := range result.Orders {
		suite.True(o.UserID.IsEqual(suite.owner.ID()))
		suite.Require().NotNil(o.Owner)
		suite.Equal(suite.owner.Email(), o.Owner.Email)
	}
	suite.Equal(queries.Pagination{Page: 1, Limit: 10, Total: 3, Pages: 1}, result.Pagination)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_NewestFirstWithPagination() {
	created := suite.addOrders(suite.owner, order.Draft, 5)

	result := suite.list(suite.admin.Actor(), 2, 2, "")

	suite.Equal(queries.Pagination{Page: 2, Limit: 2, Total: 5, Pages: 3}, result.Pagination)
	suite.Require().Len(result.Orders, 2)
	suite.True(result.Orders[0].ID.IsEqual(created[2].ID()))
	suite.True(result.Orders[1].ID.IsEqual(created[1].ID()))
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_AdminSeesEverything() {
	suite.addOrders(suite.owner, order.Draft, 1)
	suite.addOrders(suite.other, order.Finalized, 1)
	suite.addOrders(suite.other, order.Completed, 1)

	result := suite.list(suite.admin.Actor(), 1, 10, "")

	suite.EqualValues(3, result.Pagination.Total)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_ManagerPendingQueue() {
	suite.addOrders(suite.owner, order.Draft, 2)
	finalized := suite.addOrders(suite.owner, order.Finalized, 3)
	suite.addOrders(suite.other, order.Completed, 1)

	result := suite.list(suite.manager.Actor(), 1, 10, queries.ViewPending)

	suite.Require().Len(result.Orders, 3)
	for _, o := range result.Orders {
		suite.Equal(order.Finalized, o.Status)
	}
	suite.True(result.Orders[0].ID.IsEqual(finalized[2].ID()))
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_ManagerHistoryIsCapped() {
	suite.addOrders(suite.owner, order.Finalized, 1)
	completed := suite.addOrders(suite.owner, order.Completed, queries.HistoryCap+5)

	first := suite.list(suite.manager.Actor(), 1, 40, queries.ViewHistory)
	suite.EqualValues(queries.HistoryCap, first.Pagination.Total)
	suite.Equal(2, first.Pagination.Pages)
	suite.Len(first.Orders, 40)
	suite.True(first.Orders[0].ID.IsEqual(completed[len(completed)-1].ID()))
	suite.Equal(950, *first.Orders[0].DispatchQuantity)

	second := suite.list(suite.manager.Actor(), 2, 40, queries.ViewHistory)
	suite.Len(second.Orders, queries.HistoryCap-40)

	third := suite.list(suite.manager.Actor(), 3, 40, queries.ViewHistory)
	suite.Empty(third.Orders)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_EmptyResult() {
	result := suite.list(suite.owner.Actor(), 1, 10, "")

	suite.NotNil(result.Orders)
	suite.Empty(result.Orders)
	suite.Equal(0, result.Pagination.Pages)
}

func (suite *QueriesIntegrationTestSuite) getOrder(actor user.Actor, id kernel.UUID) (queries.OrderReadModel, error) {
	query, err := queries.NewGetOrderQuery(actor, id)
	suite.Require().NoError(err)
	return queries.NewGetOrderQueryHandler(suite.database.DB, suite.policy).Handle(context.Background(), query)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_ViewRule() {
	draft := suite.addOrders(suite.owner, order.Draft, 1)[0]
	finalized := suite.addOrders(suite.owner, order.Finalized, 1)[0]

	got, err := suite.getOrder(suite.owner.Actor(), draft.ID())
	suite.Require().NoError(err)
	suite.Equal(draft.Number().String(), got.OrderNumber)
	suite.Equal(order.Draft, got.Status)

	_, err = suite.getOrder(suite.other.Actor(), draft.ID())
	suite.Require().ErrorIs(err, errs.ErrAccessDenied)

	_, err = suite.getOrder(suite.manager.Actor(), draft.ID())
	suite.Require().ErrorIs(err, errs.ErrAccessDenied)

	_, err = suite.getOrder(suite.manager.Actor(), finalized.ID())
	suite.Require().NoError(err)

	_, err = suite.getOrder(suite.admin.Actor(), draft.ID())
	suite.Require().NoError(err)

	_, err = suite.getOrder(suite.admin.Actor(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) adminQuery(actor user.Actor) queries.AdminQuery {
	query, err := queries.NewAdminQuery(actor)
	suite.Require().NoError(err)
	return query
}

func (suite *QueriesIntegrationTestSuite) TestAdminStats() {
	suite.addOrders(suite.owner, order.Draft, 2)
	suite.addOrders(suite.owner, order.Finalized, 3)
	suite.addOrders(suite.other, order.Completed, 1)

	stats, err := queries.NewGetAdminStatsQueryHandler(suite.database.DB, suite.policy).
		Handle(context.Background(), suite.adminQuery(suite.admin.Actor()))

	suite.Require().NoError(err)
	suite.Equal(queries.AdminStats{
		TotalUsers:      4,
		TotalOrders:     6,
		DraftOrders:     2,
		FinalizedOrders: 3,
		CompletedOrders: 1,
	}, stats)

	_, err = queries.NewGetAdminStatsQueryHandler(suite.database.DB, suite.policy).
		Handle(context.Background(), suite.adminQuery(suite.manager.Actor()))
	suite.Require().ErrorIs(err, errs.ErrAccessDenied)
}

func (suite *QueriesIntegrationTestSuite) TestOrderHistory() {
	created := suite.addOrders(suite.owner, order.Draft, 3)

	points, err := queries.NewGetOrderHistoryQueryHandler(suite.database.DB, suite.policy).
		Handle(context.Background(), suite.adminQuery(suite.admin.Actor()))

	suite.Require().NoError(err)
	suite.Require().Len(points, 3)
	suite.True(points[0].ID.IsEqual(created[2].ID()))
	suite.Equal(created[2].CreatedAt(), points[0].CreatedAt)
	suite.Equal(order.Draft, points[0].Status)
}

func (suite *QueriesIntegrationTestSuite) TestRecentOrders() {
	suite.addOrders(suite.owner, order.Draft, queries.RecentOrdersLimit+2)

	recent, err := queries.NewGetRecentOrdersQueryHandler(suite.database.DB, suite.policy).
		Handle(context.Background(), suite.adminQuery(suite.admin.Actor()))

	suite.Require().NoError(err)
	suite.Len(recent, queries.RecentOrdersLimit)
	suite.Require().NotNil(recent[0].Owner)
	suite.Equal("Test", recent[0].Owner.FirstName)

	_, err = queries.NewGetRecentOrdersQueryHandler(suite.database.DB, suite.policy).
		Handle(context.Background(), suite.adminQuery(suite.owner.Actor()))
	suite.Require().ErrorIs(err, errs.ErrAccessDenied)
}

func (suite *QueriesIntegrationTestSuite) TestListUsers() {
	users, err := queries.NewListUsersQueryHandler(suite.database.DB, suite.policy).
		Handle(context.Background(), suite.adminQuery(suite.admin.Actor()))

	suite.Require().NoError(err)
	suite.Require().Len(users, 4)
	suite.True(users[0].ID.IsEqual(suite.admin.ID()))
	suite.Equal(user.RoleAdmin, users[0].Role)

	_, err = queries.NewListUsersQueryHandler(suite.database.DB, suite.policy).
		Handle(context.Background(), suite.adminQuery(suite.manager.Actor()))
	suite.Require().ErrorIs(err, errs.ErrAccessDenied)
}

func (suite *QueriesIntegrationTestSuite) TestGetActor_ReadsCurrentRole() {
	ctx := context.Background()
	handler := queries.NewGetActorQueryHandler(suite.database.DB)
	query, err := queries.NewGetActorQuery(suite.owner.ID())
	suite.Require().NoError(err)

	actor, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(user.RoleUser, actor.Role())

	_, err = suite.owner.ChangeRole(user.RoleOperationsManager, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(userrepo.NewGormUserRepository(suite.database.DB, noopTracker{}).Update(ctx, suite.owner))

	actor, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(user.RoleOperationsManager, actor.Role())

	missing, _ := queries.NewGetActorQuery(kernel.NewUUID())
	_, err = handler.Handle(ctx, missing)
	suite.Require().ErrorIs(err, errs.ErrUnauthorized)
}

func (suite *QueriesIntegrationTestSuite) TestProfileAndAuthenticate() {
	ctx := context.Background()
	hasher := password.NewBcryptHasher(4)
	hash, err := hasher.Hash("correct horse")
	suite.Require().NoError(err)
	_, err = suite.owner.SetPasswordHash(hash, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(userrepo.NewGormUserRepository(suite.database.DB, noopTracker{}).Update(ctx, suite.owner))

	profileQuery, _ := queries.NewGetProfileQuery(suite.owner.Actor())
	profile, err := queries.NewGetProfileQueryHandler(suite.database.DB).Handle(ctx, profileQuery)
	suite.Require().NoError(err)
	suite.Equal(suite.owner.Email(), profile.Email)
	suite.True(profile.HasPassword)

	authenticate := queries.NewAuthenticateQueryHandler(suite.database.DB, hasher)

	ok, _ := queries.NewAuthenticateQuery(suite.owner.Email(), "correct horse")
	got, err := authenticate.Handle(ctx, ok)
	suite.Require().NoError(err)
	suite.True(got.ID.IsEqual(suite.owner.ID()))

	wrong, _ := queries.NewAuthenticateQuery(suite.owner.Email(), "wrong horse")
	_, err = authenticate.Handle(ctx, wrong)
	suite.Require().ErrorIs(err, errs.ErrUnauthorized)

	noPassword, _ := queries.NewAuthenticateQuery(suite.other.Email(), "anything")
	_, err = authenticate.Handle(ctx, noPassword)
	suite.Require().ErrorIs(err, errs.ErrUnauthorized)

	unknown, _ := queries.NewAuthenticateQuery("nobody@plant.example", "anything")
	_, err = authenticate.Handle(ctx, unknown)
	suite.Require().ErrorIs(err, errs.ErrUnauthorized)
}
