// Package order provides the Order aggregate root of the dispatch engine.
//
// The package includes:
//   - Order: identity, addresses, items, driver assignment and lifecycle
//   - Status: the Pending -> InProgress -> Delivered | Failed state machine
//   - Item and ProofOfDelivery value objects
//
// Key business rules:
//   - Orders are created Pending and unassigned
//   - Assignment moves an order to InProgress; reassignment is allowed while InProgress
//   - Delivered and Failed are terminal; only InProgress orders reach them
//   - Releasing an InProgress order returns it to Pending without a driver
//   - Proof of delivery needs a signature or a photo
//   - Only Delivered orders can be rated, from 1 to 5
package order
