// Package catalog manages the sales catalog: categories, items,
// modifier groups, options and discounts. The hierarchy is
// category -> item -> modifier -> option, with deletes cascading
// downward. Discounts stand alone.
package catalog
