// Package postgres wires the GORM repositories of the pizzeria to one PostgreSQL database.
//
// Usage:
//
//	db, err := postgres.Open(postgres.Config{Host: "localhost", Port: "5432", ...})
//	if err != nil {
//	    return err
//	}
//	if err = postgres.Migrate(ctx, db); err != nil {
//	    return err
//	}
//	repos := postgres.NewRepositories(db, masking.NewMarkerMasker())
//	orders := usecases.NewOrderService(repos.Orders, repos.Pizzas, repos.Customers, ...)
//
// Every repository call is a single statement; no operation spans a transaction. Two
// read-modify-write sequences on the same aggregate end with the last write winning.
package postgres

import (
	"context"
	"fmt"

	"pizzeria/internal/adapters/out/postgres/customerrepo"
	"pizzeria/internal/adapters/out/postgres/orderrepo"
	"pizzeria/internal/adapters/out/postgres/pizzarepo"
	"pizzeria/internal/core/ports"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the connection settings.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the key/value connection string understood by the postgres driver.
func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, sslMode)
}

// Open connects to the database. GORM's own logger is silenced; callers log failures.
func Open(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgresdriver.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the tables of every repository.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&pizzarepo.ToppingDTO{},
		&pizzarepo.PizzaDTO{},
		&customerrepo.CustomerDTO{},
		&orderrepo.OrderDTO{},
	)
}

// Repositories bundles one repository per aggregate, all bound to the same database.
type Repositories struct {
	Pizzas    ports.PizzaRepository
	Toppings  ports.ToppingRepository
	Customers ports.CustomerRepository
	Orders    ports.OrderRepository
}

// NewRepositories builds the repositories. The customer repository applies masker to
// allergy records on every write and reverses it on every read.
func NewRepositories(db *gorm.DB, masker ports.AllergyMasker) Repositories {
	return Repositories{
		Pizzas:    pizzarepo.NewGormPizzaRepository(db),
		Toppings:  pizzarepo.NewGormToppingRepository(db),
		Customers: customerrepo.NewGormCustomerRepository(db, masker),
		Orders:    orderrepo.NewGormOrderRepository(db),
	}
}
