package queries_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repository's aggregate tracker in query tests.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// QueryHandlersIntegrationTestSuite exercises the read-side handlers against
// a real PostgreSQL schema populated through the write-side repository.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orderRepo *orderrepo.GormOrderRepository

	byIDHandler     queries.GetOrderByIDQueryHandler
	allHandler      queries.GetAllOrdersQueryHandler
	byStatusHandler queries.GetOrdersByStatusQueryHandler
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))

	suite.orderRepo = orderrepo.NewGormOrderRepository(db, noopTracker{})
	suite.byIDHandler = queries.NewGetOrderByIDQueryHandler(db)
	suite.allHandler = queries.NewGetAllOrdersQueryHandler(db)
	suite.byStatusHandler = queries.NewGetOrdersByStatusQueryHandler(db)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items").Error)
}

func (suite *QueryHandlersIntegrationTestSuite) addOrder(customer string, mutate func(*order.Order)) *order.Order {
	item, err := order.NewItem("Laptop", 2, decimal.RequireFromString("999.99"))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), customer, []order.Item{item})
	suite.Require().NoError(err)
	if mutate != nil {
		mutate(o)
	}

	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderByID_ReturnsFullOrder() {
	o := suite.addOrder("Alice", func(o *order.Order) {
		suite.Require().NoError(o.Place())
		suite.Require().NoError(o.MarkPaid("paypal"))
	})

	query, err := queries.NewGetOrderByIDQuery(o.ID())
	suite.Require().NoError(err)

	resp, err := suite.byIDHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(o.ID(), resp.ID)
	suite.Equal("Alice", resp.CustomerName)
	suite.Equal("PAID", resp.Status)
	suite.Equal("paypal", resp.PaymentMethod)
	suite.True(resp.TotalAmount.Equal(decimal.RequireFromString("1999.98")))
	suite.Require().Len(resp.Items, 1)
	suite.Equal("Laptop", resp.Items[0].ProductName)
	suite.Equal(2, resp.Items[0].Quantity)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderByID_NotFound() {
	query, err := queries.NewGetOrderByIDQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.byIDHandler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderByID_InvalidQuery() {
	_, err := suite.byIDHandler.Handle(context.Background(), queries.GetOrderByIDQuery{})
	suite.Require().ErrorIs(err, queries.ErrGetOrderByIDQueryIsNotConstructed)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetAllOrders_EmptyDatabase() {
	result, err := suite.allHandler.Handle(context.Background(), queries.NewGetAllOrdersQuery())
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetAllOrders_ReturnsAllSortedByID() {
	suite.addOrder("Alice", nil)
	suite.addOrder("Bob", nil)
	suite.addOrder("Carol", nil)

	result, err := suite.allHandler.Handle(context.Background(), queries.NewGetAllOrdersQuery())
	suite.Require().NoError(err)
	suite.Require().Len(result, 3)

	for i := range len(result) - 1 {
		suite.Less(result[i].ID.String(), result[i+1].ID.String())
	}
	for _, r := range result {
		suite.Len(r.Items, 1)
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrdersByStatus_FiltersByStatus() {
	pending := suite.addOrder("Alice", nil)
	suite.addOrder("Bob", func(o *order.Order) {
		suite.Require().NoError(o.Place())
	})
	suite.addOrder("Carol", func(o *order.Order) {
		suite.Require().NoError(o.Cancel())
	})

	query, err := queries.NewGetOrdersByStatusQuery(order.Pending)
	suite.Require().NoError(err)

	result, err := suite.byStatusHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(pending.ID(), result[0].ID)
	suite.Equal("PENDING", result[0].Status)

	query, err = queries.NewGetOrdersByStatusQuery(order.Shipped)
	suite.Require().NoError(err)

	result, err = suite.byStatusHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(result)
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
