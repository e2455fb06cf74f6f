package catalog

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		PRAGMA foreign_keys = ON;

		CREATE TABLE categories (
			category_id TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			sort_order  INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE items (
			item_id       TEXT PRIMARY KEY,
			category_id   TEXT NOT NULL,
			name          TEXT NOT NULL,
			regular_price REAL NOT NULL,
			event_price   REAL NOT NULL,
			sort_order    INTEGER NOT NULL DEFAULT 0,
			available     INTEGER NOT NULL DEFAULT 1,
			FOREIGN KEY (category_id) REFERENCES categories (category_id)
				ON DELETE CASCADE
		);

		CREATE TABLE modifiers (
			modifier_id      TEXT PRIMARY KEY,
			item_id          TEXT NOT NULL,
			name             TEXT NOT NULL,
			single_selection INTEGER NOT NULL DEFAULT 1,
			sort_order       INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (item_id) REFERENCES items (item_id)
				ON DELETE CASCADE
		);

		CREATE TABLE options (
			option_id   TEXT PRIMARY KEY,
			modifier_id TEXT NOT NULL,
			name        TEXT NOT NULL,
			price       REAL NOT NULL,
			available   INTEGER NOT NULL DEFAULT 1,
			sort_order  INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (modifier_id) REFERENCES modifiers (modifier_id)
				ON DELETE CASCADE
		);

		CREATE TABLE discounts (
			discount_id   TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			is_percentage INTEGER NOT NULL DEFAULT 1,
			amount        REAL NOT NULL,
			available     INTEGER NOT NULL DEFAULT 1,
			sort_order    INTEGER NOT NULL DEFAULT 0
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func seedTestCategory(t *testing.T, repo *SQLiteRepository, id, name string, order int) {
	t.Helper()
	if err := repo.CreateCategory(context.Background(), &Category{ID: id, Name: name, SortOrder: order}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
}

func seedTestItem(t *testing.T, repo *SQLiteRepository, id, categoryID, name string) {
	t.Helper()
	i := &Item{ID: id, CategoryID: categoryID, Name: name, RegularPrice: 5, EventPrice: 6, Available: true}
	if err := repo.CreateItem(context.Background(), i); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
}

func TestCategoryCRUD(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	seedTestCategory(t, repo, "category100001", "Beverages", 1)

	got, err := repo.GetCategory(ctx, "category100001")
	if err != nil {
		t.Fatalf("GetCategory: %v", err)
	}
	if got.Name != "Beverages" {
		t.Errorf("unexpected category: %+v", got)
	}

	got.Name = "Drinks"
	if err := repo.UpdateCategory(ctx, got); err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	updated, err := repo.GetCategory(ctx, "category100001")
	if err != nil {
		t.Fatalf("GetCategory after update: %v", err)
	}
	if updated.Name != "Drinks" {
		t.Errorf("update not applied: %+v", updated)
	}

	if err := repo.DeleteCategory(ctx, "category100001"); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if _, err := repo.GetCategory(ctx, "category100001"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("got %v, want ErrCategoryNotFound", err)
	}
}

func TestListCategoriesOrdered(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))

	seedTestCategory(t, repo, "category100001", "Desserts", 2)
	seedTestCategory(t, repo, "category100002", "Beverages", 0)
	seedTestCategory(t, repo, "category100003", "Food", 1)

	list, err := repo.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(list))
	}
	want := []string{"Beverages", "Food", "Desserts"}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("position %d: got %q, want %q", i, list[i].Name, name)
		}
	}
}

func TestCreateCategoryDuplicateID(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))

	seedTestCategory(t, repo, "category100001", "Beverages", 0)
	err := repo.CreateCategory(context.Background(), &Category{ID: "category100001", Name: "Food"})
	if !errors.Is(err, ErrIDExists) {
		t.Errorf("got %v, want ErrIDExists", err)
	}
}

func TestCreateItemMissingCategory(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))

	i := &Item{ID: "item100001", CategoryID: "category999999", Name: "Coffee", RegularPrice: 3.5, EventPrice: 4}
	err := repo.CreateItem(context.Background(), i)
	if !errors.Is(err, ErrParentNotFound) {
		t.Errorf("got %v, want ErrParentNotFound", err)
	}
}

func TestItemsByCategory(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	seedTestCategory(t, repo, "category100001", "Beverages", 0)
	seedTestCategory(t, repo, "category100002", "Food", 1)
	seedTestItem(t, repo, "item100001", "category100001", "Coffee")
	seedTestItem(t, repo, "item100002", "category100001", "Tea")
	seedTestItem(t, repo, "item100003", "category100002", "Sandwich")

	beverages, err := repo.ListItemsByCategory(ctx, "category100001")
	if err != nil {
		t.Fatalf("ListItemsByCategory: %v", err)
	}
	if len(beverages) != 2 {
		t.Errorf("expected 2 beverage items, got %d", len(beverages))
	}

	all, err := repo.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 items total, got %d", len(all))
	}
}

func TestDeleteCategoryCascades(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	seedTestCategory(t, repo, "category100001", "Beverages", 0)
	seedTestItem(t, repo, "item100001", "category100001", "Coffee")

	m := &Modifier{ID: "modifier100001", ItemID: "item100001", Name: "Size", SingleSelection: true}
	if err := repo.CreateModifier(ctx, m); err != nil {
		t.Fatalf("CreateModifier: %v", err)
	}
	o := &Option{ID: "option100001", ModifierID: "modifier100001", Name: "Large", Price: 1, Available: true}
	if err := repo.CreateOption(ctx, o); err != nil {
		t.Fatalf("CreateOption: %v", err)
	}

	if err := repo.DeleteCategory(ctx, "category100001"); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	if _, err := repo.GetItem(ctx, "item100001"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("item survived cascade: %v", err)
	}
	if _, err := repo.GetModifier(ctx, "modifier100001"); !errors.Is(err, ErrModifierNotFound) {
		t.Errorf("modifier survived cascade: %v", err)
	}
	if _, err := repo.GetOption(ctx, "option100001"); !errors.Is(err, ErrOptionNotFound) {
		t.Errorf("option survived cascade: %v", err)
	}
}

func TestOptionsByModifier(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	seedTestCategory(t, repo, "category100001", "Beverages", 0)
	seedTestItem(t, repo, "item100001", "category100001", "Coffee")
	m := &Modifier{ID: "modifier100001", ItemID: "item100001", Name: "Size", SingleSelection: true}
	if err := repo.CreateModifier(ctx, m); err != nil {
		t.Fatalf("CreateModifier: %v", err)
	}

	for i, name := range []string{"Small", "Medium", "Large"} {
		o := &Option{ID: "option10000" + string(rune('1'+i)), ModifierID: "modifier100001", Name: name, SortOrder: i, Available: true}
		if err := repo.CreateOption(ctx, o); err != nil {
			t.Fatalf("CreateOption %s: %v", name, err)
		}
	}

	options, err := repo.ListOptionsByModifier(ctx, "modifier100001")
	if err != nil {
		t.Fatalf("ListOptionsByModifier: %v", err)
	}
	if len(options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(options))
	}
	if options[0].Name != "Small" || options[2].Name != "Large" {
		t.Errorf("options not ordered by sort_order: %+v", options)
	}
}

func TestDiscountCRUD(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	d := &Discount{ID: "discount100001", Name: "Staff Discount", IsPercentage: true, Amount: 20, Available: true}
	if err := repo.CreateDiscount(ctx, d); err != nil {
		t.Fatalf("CreateDiscount: %v", err)
	}

	got, err := repo.GetDiscount(ctx, "discount100001")
	if err != nil {
		t.Fatalf("GetDiscount: %v", err)
	}
	if !got.IsPercentage || got.Amount != 20 {
		t.Errorf("unexpected discount: %+v", got)
	}

	got.Amount = 15
	if err := repo.UpdateDiscount(ctx, got); err != nil {
		t.Fatalf("UpdateDiscount: %v", err)
	}

	if err := repo.DeleteDiscount(ctx, "discount100001"); err != nil {
		t.Fatalf("DeleteDiscount: %v", err)
	}
	if err := repo.DeleteDiscount(ctx, "discount100001"); !errors.Is(err, ErrDiscountNotFound) {
		t.Errorf("got %v, want ErrDiscountNotFound", err)
	}
}

func TestUpdateMissingRecords(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.UpdateCategory(ctx, &Category{ID: "category999999", Name: "X"}); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("category: got %v, want ErrCategoryNotFound", err)
	}
	if err := repo.UpdateDiscount(ctx, &Discount{ID: "discount999999", Name: "X"}); !errors.Is(err, ErrDiscountNotFound) {
		t.Errorf("discount: got %v, want ErrDiscountNotFound", err)
	}
}
