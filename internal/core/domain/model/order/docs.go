// Package order implements the Order aggregate: the shopping cart, checkout data and the
// order lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding cart items, address, payment and status
//   - Item: a cart line with a pizza snapshot and its snapshot price
//   - Status: the lifecycle state machine (pending, confirmed, preparing, delivering,
//     delivered, cancelled)
//   - DeliveryAddress: a validated US postal address
//   - Payment: payment data with the card number masked and the CVV redacted at construction
//
// Item prices are snapshots. Changing a catalog pizza after it was added to an order does
// not change the order until RepriceItem is called for it.
package order
