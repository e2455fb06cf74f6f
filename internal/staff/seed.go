package staff

import (
	"context"
	"fmt"

	"github.com/posdesk/core/internal/ident"
)

// Allocator is the identifier allocation dependency for seeding.
type Allocator interface {
	Allocate(ctx context.Context, ns ident.Namespace) (string, error)
}

// SeedAdmin creates the default admin account on first boot if no staff
// exist. Returns the created record, or nil if seeding was skipped.
func SeedAdmin(ctx context.Context, repo Repository, alloc Allocator, pin string) (*Staff, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking staff count: %w", err)
	}
	if count > 0 {
		return nil, nil
	}

	if err := ValidatePIN(pin); err != nil {
		return nil, fmt.Errorf("seed admin pin: %w", err)
	}

	id, err := alloc.Allocate(ctx, ident.NamespaceStaff)
	if err != nil {
		return nil, fmt.Errorf("allocating admin id: %w", err)
	}

	admin := &Staff{
		ID:         id,
		PINHash:    HashPIN(pin),
		FirstName:  "Admin",
		LastName:   "User",
		HourlyWage: 30.0,
		IsAdmin:    true,
	}

	if err := repo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("creating seed admin: %w", err)
	}

	return admin, nil
}
