// Package services contains the domain services of the order-processing core:
// the inventory ledger that applies stock reservations, the validation chain
// that vets candidate orders, and the payment dispatcher that maps payment
// method keys to executors.
package services
