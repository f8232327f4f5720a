package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"steelorders/internal/adapters/out/postgres/pgtest"

	"github.com/stretchr/testify/suite"
)

type SeedIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	root     *CompositionRoot
	file     SeedFile
	logger   *slog.Logger
}

func (suite *SeedIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database

	suite.root, err = NewCompositionRoot(Config{
		JWTSecret:  "integration-secret",
		JWTTTL:     time.Hour,
		BcryptCost: 4,
	}, database.DB)
	suite.Require().NoError(err)

	suite.file, err = LoadSeedFile("../seed/users.yaml")
	suite.Require().NoError(err)

	suite.logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func (suite *SeedIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *SeedIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate())
}

func (suite *SeedIntegrationTestSuite) countOrders(status string) int64 {
	var n int64
	suite.Require().NoError(suite.database.DB.Table("orders").Where("status = ?", status).Count(&n).Error)
	return n
}

func (suite *SeedIntegrationTestSuite) TestSeed_FreshDatabase() {
	result, err := suite.root.Seed(suite.T().Context(), suite.file, suite.logger)

	suite.Require().NoError(err)
	suite.Equal(SeedResult{UsersCreated: 3, OrdersCreated: 3}, result)
	suite.Equal(int64(1), suite.countOrders("DRAFT"))
	suite.Equal(int64(1), suite.countOrders("FINALIZED"))
	suite.Equal(int64(1), suite.countOrders("COMPLETED"))

	var dispatched int
	suite.Require().NoError(suite.database.DB.Table("orders").
		Where("status = ?", "COMPLETED").Select("dispatch_quantity").Scan(&dispatched).Error)
	suite.Equal(950, dispatched)

	var userCreated int64
	suite.Require().NoError(suite.database.DB.Table("audit_logs").
		Where("action = ?", "USER_CREATED").Count(&userCreated).Error)
	suite.Equal(int64(3), userCreated)
}

func (suite *SeedIntegrationTestSuite) TestSeed_SecondRunIsIdempotent() {
	_, err := suite.root.Seed(suite.T().Context(), suite.file, suite.logger)
	suite.Require().NoError(err)

	result, err := suite.root.Seed(suite.T().Context(), suite.file, suite.logger)

	suite.Require().NoError(err)
	suite.Equal(SeedResult{UsersExisting: 3}, result)

	var orders int64
	suite.Require().NoError(suite.database.DB.Table("orders").Count(&orders).Error)
	suite.Equal(int64(3), orders)
}

func (suite *SeedIntegrationTestSuite) TestSeed_InvalidRoleStopsTheRun() {
	file := SeedFile{Users: []SeedUser{{Email: "x@plant.example", Password: "password1", Role: "GUEST"}}}

	_, err := suite.root.Seed(suite.T().Context(), file, suite.logger)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "x@plant.example")
}

func TestSeedIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(SeedIntegrationTestSuite))
}
