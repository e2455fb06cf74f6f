package ident

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
)

// Namespace is an entity category within which identifier uniqueness is
// enforced. Each namespace maps to a fixed prefix and a storage table.
type Namespace int

const (
	NamespaceStaff Namespace = iota
	NamespaceItem
	NamespaceCategory
	NamespaceModifier
	NamespaceOption
	NamespaceDiscount
)

// Suffix bounds: identifiers carry a fixed-width six-digit random suffix.
const (
	suffixMin  = 100000
	suffixSpan = 900000
)

// Prefix returns the namespace's identifier prefix, e.g. "item" in "item482913".
func (n Namespace) Prefix() string {
	switch n {
	case NamespaceStaff:
		return "staff"
	case NamespaceItem:
		return "item"
	case NamespaceCategory:
		return "category"
	case NamespaceModifier:
		return "modifier"
	case NamespaceOption:
		return "option"
	case NamespaceDiscount:
		return "discount"
	default:
		return ""
	}
}

// Table returns the storage table holding the namespace's records.
func (n Namespace) Table() string {
	switch n {
	case NamespaceStaff:
		return "staff"
	case NamespaceItem:
		return "items"
	case NamespaceCategory:
		return "categories"
	case NamespaceModifier:
		return "modifiers"
	case NamespaceOption:
		return "options"
	case NamespaceDiscount:
		return "discounts"
	default:
		return ""
	}
}

// IDColumn returns the identifier column within the namespace's table.
func (n Namespace) IDColumn() string {
	switch n {
	case NamespaceStaff:
		return "staff_id"
	case NamespaceItem:
		return "item_id"
	case NamespaceCategory:
		return "category_id"
	case NamespaceModifier:
		return "modifier_id"
	case NamespaceOption:
		return "option_id"
	case NamespaceDiscount:
		return "discount_id"
	default:
		return ""
	}
}

// Allocator produces identifiers that are unused in a namespace at the
// moment of allocation.
//
// The check-then-insert gap is deliberately not closed here: two concurrent
// allocations can observe the same candidate as free. Callers must rely on
// the PRIMARY KEY constraint of the target table and retry the create on a
// uniqueness violation.
type Allocator struct {
	db *sql.DB
}

// NewAllocator creates an allocator probing the given database.
func NewAllocator(db *sql.DB) *Allocator {
	return &Allocator{db: db}
}

// Allocate returns an identifier of the form prefix+NNNNNN that no committed
// row in the namespace currently uses. It draws random candidates until one
// is free; with a six-digit suffix space and POS-scale tables, more than a
// couple of draws is vanishingly rare. The loop is unbounded but honours
// context cancellation.
func (a *Allocator) Allocate(ctx context.Context, ns Namespace) (string, error) {
	if ns.Table() == "" {
		return "", fmt.Errorf("unknown namespace %d", ns)
	}

	// Table and column names come from the Namespace enum, never from input.
	query := "SELECT 1 FROM " + ns.Table() + " WHERE " + ns.IDColumn() + " = ?"

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		id := ns.Prefix() + strconv.Itoa(suffixMin+rand.Intn(suffixSpan))

		var one int
		err := a.db.QueryRowContext(ctx, query, id).Scan(&one)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return id, nil
		case err != nil:
			return "", fmt.Errorf("checking candidate %s: %w", id, err)
		}
		// Candidate taken; draw again.
	}
}
