// Package product contains the Product entity of the catalog.
// Products carry the stock that the inventory ledger reserves and releases
// on behalf of orders; the entity enforces the rule that stock never goes
// negative.
package product
