package catalog

import (
	"context"
	"fmt"

	"github.com/posdesk/core/internal/ident"
)

// Allocator is the identifier allocation dependency for seeding.
type Allocator interface {
	Allocate(ctx context.Context, ns ident.Namespace) (string, error)
}

// SeedSampleCatalog populates a small demonstration catalog on first
// boot if the catalog is empty. It gives a fresh install something to
// show on the register without any back office work.
func SeedSampleCatalog(ctx context.Context, repo Repository, alloc Allocator) error {
	count, err := repo.CountCategories(ctx)
	if err != nil {
		return fmt.Errorf("checking catalog state: %w", err)
	}
	if count > 0 {
		return nil
	}

	beverages, err := seedCategory(ctx, repo, alloc, "Beverages", 0)
	if err != nil {
		return err
	}
	food, err := seedCategory(ctx, repo, alloc, "Food", 1)
	if err != nil {
		return err
	}
	desserts, err := seedCategory(ctx, repo, alloc, "Desserts", 2)
	if err != nil {
		return err
	}

	coffee, err := seedItem(ctx, repo, alloc, beverages, "Coffee", 3.50, 4.00, 0)
	if err != nil {
		return err
	}
	if _, err := seedItem(ctx, repo, alloc, beverages, "Tea", 2.75, 3.25, 1); err != nil {
		return err
	}
	if _, err := seedItem(ctx, repo, alloc, food, "Sandwich", 8.50, 9.50, 0); err != nil {
		return err
	}
	if _, err := seedItem(ctx, repo, alloc, desserts, "Cake Slice", 5.00, 5.50, 0); err != nil {
		return err
	}

	size, err := seedModifier(ctx, repo, alloc, coffee, "Size", true, 0)
	if err != nil {
		return err
	}
	for i, opt := range []struct {
		name  string
		price float64
	}{
		{"Small", 0},
		{"Medium", 0.50},
		{"Large", 1.00},
	} {
		if err := seedOption(ctx, repo, alloc, size, opt.name, opt.price, i); err != nil {
			return err
		}
	}

	extras, err := seedModifier(ctx, repo, alloc, coffee, "Extras", false, 1)
	if err != nil {
		return err
	}
	for i, opt := range []struct {
		name  string
		price float64
	}{
		{"Extra Shot", 0.75},
		{"Oat Milk", 0.50},
		{"Whipped Cream", 0.50},
	} {
		if err := seedOption(ctx, repo, alloc, extras, opt.name, opt.price, i); err != nil {
			return err
		}
	}

	discount := &Discount{Name: "Staff Discount", IsPercentage: true, Amount: 20, Available: true}
	discount.ID, err = alloc.Allocate(ctx, ident.NamespaceDiscount)
	if err != nil {
		return fmt.Errorf("allocating discount id: %w", err)
	}
	if err := repo.CreateDiscount(ctx, discount); err != nil {
		return fmt.Errorf("seeding discount: %w", err)
	}

	return nil
}

func seedCategory(ctx context.Context, repo Repository, alloc Allocator, name string, order int) (string, error) {
	id, err := alloc.Allocate(ctx, ident.NamespaceCategory)
	if err != nil {
		return "", fmt.Errorf("allocating category id: %w", err)
	}
	c := &Category{ID: id, Name: name, SortOrder: order}
	if err := repo.CreateCategory(ctx, c); err != nil {
		return "", fmt.Errorf("seeding category %q: %w", name, err)
	}
	return id, nil
}

func seedItem(ctx context.Context, repo Repository, alloc Allocator, categoryID, name string, regular, event float64, order int) (string, error) {
	id, err := alloc.Allocate(ctx, ident.NamespaceItem)
	if err != nil {
		return "", fmt.Errorf("allocating item id: %w", err)
	}
	i := &Item{
		ID:           id,
		CategoryID:   categoryID,
		Name:         name,
		RegularPrice: regular,
		EventPrice:   event,
		SortOrder:    order,
		Available:    true,
	}
	if err := repo.CreateItem(ctx, i); err != nil {
		return "", fmt.Errorf("seeding item %q: %w", name, err)
	}
	return id, nil
}

func seedModifier(ctx context.Context, repo Repository, alloc Allocator, itemID, name string, single bool, order int) (string, error) {
	id, err := alloc.Allocate(ctx, ident.NamespaceModifier)
	if err != nil {
		return "", fmt.Errorf("allocating modifier id: %w", err)
	}
	m := &Modifier{ID: id, ItemID: itemID, Name: name, SingleSelection: single, SortOrder: order}
	if err := repo.CreateModifier(ctx, m); err != nil {
		return "", fmt.Errorf("seeding modifier %q: %w", name, err)
	}
	return id, nil
}

func seedOption(ctx context.Context, repo Repository, alloc Allocator, modifierID, name string, price float64, order int) error {
	id, err := alloc.Allocate(ctx, ident.NamespaceOption)
	if err != nil {
		return fmt.Errorf("allocating option id: %w", err)
	}
	o := &Option{ID: id, ModifierID: modifierID, Name: name, Price: price, Available: true, SortOrder: order}
	if err := repo.CreateOption(ctx, o); err != nil {
		return fmt.Errorf("seeding option %q: %w", name, err)
	}
	return nil
}
