// Package usecases implements the application services of the pizzeria.
//
// The package includes:
//   - PizzaService: catalog reads, custom pizzas, topping changes and allergen checks
//   - CustomerService: registration, profile updates and allergy records
//   - OrderService: the shopping cart, checkout and the order lifecycle
//   - SeedCatalog: loads the sample menu into empty repositories
//
// Every operation loads aggregates through the ports, mutates them through their own
// methods and writes them back with Update. Nothing here locks: two concurrent
// read-modify-write sequences on the same aggregate end with the last write winning.
//
// Example usage:
//
//	orders := usecases.NewOrderService(orderRepo, pizzaRepo, customerRepo, ids, clock, logger)
//	o, err := orders.CreateOrder(ctx, customerID)
//	if err != nil {
//	    return err
//	}
//	o, err = orders.AddPizzaToOrder(ctx, o.ID(), pizzaID, 2)
package usecases
