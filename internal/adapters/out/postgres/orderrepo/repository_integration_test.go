package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"pizzeria/internal/adapters/out/postgres/orderrepo"
	"pizzeria/internal/adapters/out/postgres/postgrestest"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/pizza"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

var now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *postgrestest.Database
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := postgrestest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.database.Truncate("orders"))
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_EmptyOrder_RoundTrips() {
	ctx := context.Background()

	// Given
	customerID := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), customerID, now)
	suite.Require().NoError(err)

	// When
	_, err = suite.repository.Save(ctx, o)
	suite.Require().NoError(err)
	found, err := suite.repository.FindByID(ctx, o.ID())

	// Then
	suite.Require().NoError(err)
	suite.Equal(order.Pending, found.Status())
	suite.True(customerID.IsEqual(found.CustomerID()))
	suite.Empty(found.Items())
	suite.Nil(found.DeliveryAddress())
	suite.Nil(found.Payment())
	suite.True(now.Equal(found.CreatedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_FullOrder_KeepsSnapshotsAndMaskedPayment() {
	ctx := context.Background()

	// Given
	o := suite.checkoutReadyOrder()

	// When
	_, err := suite.repository.Save(ctx, o)
	suite.Require().NoError(err)
	found, err := suite.repository.FindByID(ctx, o.ID())

	// Then
	suite.Require().NoError(err)
	suite.Require().Len(found.Items(), 1)
	item := found.Items()[0]
	suite.Equal(2, item.Quantity())
	suite.Equal("11.69", item.Price().String())
	suite.Equal("Margherita", item.Pizza().Name())
	suite.Equal([]string{"dairy", "gluten"}, item.Pizza().Allergens())
	suite.Equal("23.38", found.CalculateTotal().String())

	suite.Require().NotNil(found.DeliveryAddress())
	suite.Equal("62704", found.DeliveryAddress().ZipCode())
	suite.Equal("Ring twice", found.DeliveryAddress().Instructions())

	suite.Require().NotNil(found.Payment())
	suite.Equal(order.CreditCard, found.Payment().Method())
	suite.Equal("**** **** **** 1234", found.Payment().CardNumber())
	suite.Equal("1234", found.Payment().LastFour())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusChange() {
	ctx := context.Background()
	o := suite.checkoutReadyOrder()
	_, err := suite.repository.Save(ctx, o)
	suite.Require().NoError(err)

	suite.Require().NoError(o.Confirm(now.Add(time.Minute)))
	_, err = suite.repository.Update(ctx, o)
	suite.Require().NoError(err)

	found, err := suite.repository.FindByID(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, found.Status())
	suite.WithinDuration(now.Add(time.Minute), found.UpdatedAt(), time.Microsecond)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateInStatus_RefusesMovedOrder() {
	ctx := context.Background()
	o := suite.checkoutReadyOrder()
	_, err := suite.repository.Save(ctx, o)
	suite.Require().NoError(err)

	stale, err := suite.repository.FindByID(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(o.Confirm(now.Add(time.Minute)))
	_, err = suite.repository.Update(ctx, o)
	suite.Require().NoError(err)

	_, err = suite.repository.UpdateInStatus(ctx, stale, order.Pending)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	found, err := suite.repository.FindByID(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, found.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateInStatus_WritesPendingOrder() {
	ctx := context.Background()
	o := suite.checkoutReadyOrder()
	_, err := suite.repository.Save(ctx, o)
	suite.Require().NoError(err)

	suite.Require().NoError(o.Cancel(now.Add(time.Minute)))
	_, err = suite.repository.UpdateInStatus(ctx, o, order.Pending)
	suite.Require().NoError(err)

	found, err := suite.repository.FindByID(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, found.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_DropsRemovedItems() {
	ctx := context.Background()
	o := suite.checkoutReadyOrder()
	_, err := suite.repository.Save(ctx, o)
	suite.Require().NoError(err)

	o.RemoveItem(o.Items()[0].PizzaID(), now)
	_, err = suite.repository.Update(ctx, o)
	suite.Require().NoError(err)

	found, err := suite.repository.FindByID(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Empty(found.Items())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrder_ReturnsNotFound() {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), now)
	suite.Require().NoError(err)

	_, err = suite.repository.Update(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindByID_NonExistent_ReturnsNotFound() {
	_, err := suite.repository.FindByID(context.Background(), kernel.NewUUID())

	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
	suite.Equal("order", notFound.ParamName)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFinders_FilterByCustomerAndStatus() {
	ctx := context.Background()

	// Given
	alice, bob := kernel.NewUUID(), kernel.NewUUID()
	first := suite.newOrder(alice)
	second := suite.newOrder(bob)
	third := suite.newOrder(alice)
	suite.Require().NoError(third.Cancel(now))
	for _, o := range []*order.Order{first, second, third} {
		_, err := suite.repository.Save(ctx, o)
		suite.Require().NoError(err)
	}

	// When
	byAlice, err := suite.repository.FindByCustomerID(ctx, alice)
	suite.Require().NoError(err)
	pending, err := suite.repository.FindByStatus(ctx, order.Pending)
	suite.Require().NoError(err)
	all, err := suite.repository.FindAll(ctx)
	suite.Require().NoError(err)

	// Then
	suite.Require().Len(byAlice, 2)
	suite.True(first.ID().IsEqual(byAlice[0].ID()))
	suite.True(third.ID().IsEqual(byAlice[1].ID()))

	suite.Require().Len(pending, 2)
	suite.True(first.ID().IsEqual(pending[0].ID()))
	suite.True(second.ID().IsEqual(pending[1].ID()))

	suite.Len(all, 3)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_ReportsExistence() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID())
	_, err := suite.repository.Save(ctx, o)
	suite.Require().NoError(err)

	deleted, err := suite.repository.Delete(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(deleted)

	_, err = suite.repository.FindByID(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	deleted, err = suite.repository.Delete(ctx, o.ID())
	suite.Require().NoError(err)
	suite.False(deleted)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(customerID kernel.UUID) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), customerID, now)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) checkoutReadyOrder() *order.Order {
	basePrice, err := kernel.MoneyFromString("8.99")
	suite.Require().NoError(err)
	margherita, err := pizza.NewPizza(kernel.NewUUID(), "Margherita", basePrice, pizza.Medium,
		pizza.DefaultBaseAllergens(), nil, now)
	suite.Require().NoError(err)

	address, err := order.NewDeliveryAddress("1 Main St", "Springfield", "IL", "62704", "US", "Ring twice")
	suite.Require().NoError(err)
	payment, err := order.NewPayment(order.PaymentDetails{
		Method:         order.CreditCard,
		CardNumber:     "4111 1111 1111 1234",
		CardHolder:     "Jane Doe",
		ExpirationDate: "12/29",
		CVV:            "123",
	})
	suite.Require().NoError(err)

	o := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(o.AddItem(margherita, 2, now))
	suite.Require().NoError(o.SetDeliveryAddress(address, now))
	suite.Require().NoError(o.SetPayment(payment, now))
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test: requires docker")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
