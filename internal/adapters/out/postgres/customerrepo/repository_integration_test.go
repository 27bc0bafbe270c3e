package customerrepo_test

import (
	"context"
	"testing"
	"time"

	"pizzeria/internal/adapters/out/masking"
	"pizzeria/internal/adapters/out/postgres/customerrepo"
	"pizzeria/internal/adapters/out/postgres/postgrestest"
	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

var now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type CustomerRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *postgrestest.Database
	repository *customerrepo.GormCustomerRepository
}

func (suite *CustomerRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := postgrestest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *CustomerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("customers"))
	suite.repository = customerrepo.NewGormCustomerRepository(suite.database.DB, masking.NewMarkerMasker())
}

func (suite *CustomerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestSave_ThenFindByID_RestoresAllergies() {
	ctx := context.Background()

	// Given
	c := suite.newCustomer("jane@example.com")
	peanuts, err := customer.NewAllergy("peanuts", customer.Severe, "carries an epipen")
	suite.Require().NoError(err)
	suite.Require().NoError(c.AddAllergy(peanuts, now))

	// When
	_, err = suite.repository.Save(ctx, c)
	suite.Require().NoError(err)
	found, err := suite.repository.FindByID(ctx, c.ID())

	// Then
	suite.Require().NoError(err)
	suite.Equal("Jane Doe", found.Name())
	suite.Equal("jane@example.com", found.Email())
	suite.Require().Len(found.Allergies(), 1)
	suite.True(peanuts.Equals(found.Allergies()[0]))
	suite.Equal("carries an epipen", found.Allergies()[0].Notes())
	suite.True(now.Equal(found.CreatedAt()))
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestSave_StoresOnlyMaskedAllergies() {
	ctx := context.Background()

	// Given
	c := suite.newCustomer("jane@example.com")
	dairy, err := customer.NewAllergy("dairy", customer.Mild, "")
	suite.Require().NoError(err)
	suite.Require().NoError(c.AddAllergy(dairy, now))

	// When
	_, err = suite.repository.Save(ctx, c)
	suite.Require().NoError(err)

	// Then
	var row customerrepo.CustomerDTO
	suite.Require().NoError(suite.database.DB.First(&row, "id = ?", c.ID().Bytes()).Error)
	suite.Require().Len(row.Allergies, 1)
	suite.True(row.Allergies[0].Protected)
	suite.Equal("jane@example.com", row.EmailKey)
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestFindByEmail_IgnoresCase() {
	ctx := context.Background()
	c := suite.newCustomer("Jane@Example.com")
	_, err := suite.repository.Save(ctx, c)
	suite.Require().NoError(err)

	found, err := suite.repository.FindByEmail(ctx, "JANE@example.COM")

	suite.Require().NoError(err)
	suite.True(c.ID().IsEqual(found.ID()))
	suite.Equal("Jane@Example.com", found.Email())
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestFindByEmail_Unknown_ReturnsNotFound() {
	_, err := suite.repository.FindByEmail(context.Background(), "nobody@example.com")

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestSave_DuplicateEmailOfAnotherCustomer_Fails() {
	ctx := context.Background()
	_, err := suite.repository.Save(ctx, suite.newCustomer("jane@example.com"))
	suite.Require().NoError(err)

	_, err = suite.repository.Save(ctx, suite.newCustomer("JANE@example.com"))

	suite.Require().Error(err)
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestUpdate_ChangesProfileAndAllergies() {
	ctx := context.Background()
	c := suite.newCustomer("jane@example.com")
	gluten, err := customer.NewAllergy("gluten", customer.Moderate, "")
	suite.Require().NoError(err)
	suite.Require().NoError(c.AddAllergy(gluten, now))
	_, err = suite.repository.Save(ctx, c)
	suite.Require().NoError(err)

	later := now.Add(time.Hour)
	suite.Require().NoError(c.UpdateProfile("", "jane.doe@example.com", "", later))
	c.RemoveAllergy("GLUTEN", later)
	_, err = suite.repository.Update(ctx, c)
	suite.Require().NoError(err)

	found, err := suite.repository.FindByEmail(ctx, "jane.doe@example.com")
	suite.Require().NoError(err)
	suite.Equal("Jane Doe", found.Name())
	suite.Empty(found.Allergies())
	suite.WithinDuration(later, found.UpdatedAt(), time.Microsecond)

	_, err = suite.repository.FindByEmail(ctx, "jane@example.com")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestUpdate_UnknownCustomer_ReturnsNotFound() {
	_, err := suite.repository.Update(context.Background(), suite.newCustomer("ghost@example.com"))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestFindAll_KeepsInsertionOrder() {
	ctx := context.Background()
	for _, email := range []string{"b@example.com", "a@example.com"} {
		_, err := suite.repository.Save(ctx, suite.newCustomer(email))
		suite.Require().NoError(err)
	}

	all, err := suite.repository.FindAll(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.Equal("b@example.com", all[0].Email())
	suite.Equal("a@example.com", all[1].Email())
}

func (suite *CustomerRepositoryIntegrationTestSuite) newCustomer(email string) *customer.Customer {
	c, err := customer.NewCustomer(kernel.NewUUID(), "Jane Doe", email, "+1 555 0100", now)
	suite.Require().NoError(err)
	return c
}

func TestCustomerRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test: requires docker")
	}
	suite.Run(t, new(CustomerRepositoryIntegrationTestSuite))
}
