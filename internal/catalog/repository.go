package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Repository defines persistence for the sales catalog: categories,
// items, modifiers, options and discounts.
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id string) error

	CreateItem(ctx context.Context, i *Item) error
	GetItem(ctx context.Context, id string) (*Item, error)
	ListItems(ctx context.Context) ([]Item, error)
	ListItemsByCategory(ctx context.Context, categoryID string) ([]Item, error)
	UpdateItem(ctx context.Context, i *Item) error
	DeleteItem(ctx context.Context, id string) error

	CreateModifier(ctx context.Context, m *Modifier) error
	GetModifier(ctx context.Context, id string) (*Modifier, error)
	ListModifiers(ctx context.Context) ([]Modifier, error)
	ListModifiersByItem(ctx context.Context, itemID string) ([]Modifier, error)
	UpdateModifier(ctx context.Context, m *Modifier) error
	DeleteModifier(ctx context.Context, id string) error

	CreateOption(ctx context.Context, o *Option) error
	GetOption(ctx context.Context, id string) (*Option, error)
	ListOptions(ctx context.Context) ([]Option, error)
	ListOptionsByModifier(ctx context.Context, modifierID string) ([]Option, error)
	UpdateOption(ctx context.Context, o *Option) error
	DeleteOption(ctx context.Context, id string) error

	CreateDiscount(ctx context.Context, d *Discount) error
	GetDiscount(ctx context.Context, id string) (*Discount, error)
	ListDiscounts(ctx context.Context) ([]Discount, error)
	UpdateDiscount(ctx context.Context, d *Discount) error
	DeleteDiscount(ctx context.Context, id string) error

	CountCategories(ctx context.Context) (int, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a SQLite-backed catalog repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// scanner is satisfied by both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// mapConstraintViolation translates SQLite constraint failures into
// sentinel errors: primary key collisions become ErrIDExists, foreign
// key failures become ErrParentNotFound. Returns nil for anything else.
func mapConstraintViolation(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return ErrIDExists
	}
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return ErrParentNotFound
	}
	return nil
}

// ---- categories ----

const categoryColumns = "category_id, name, sort_order"

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO categories (category_id, name, sort_order) VALUES (?, ?, ?)",
		c.ID, c.Name, c.SortOrder,
	)
	if err != nil {
		if constraintErr := mapConstraintViolation(err); constraintErr != nil {
			return constraintErr
		}
		return fmt.Errorf("creating category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetCategory(ctx context.Context, id string) (*Category, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE category_id = ?", id)
	return scanCategory(row)
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+categoryColumns+" FROM categories ORDER BY sort_order, name")
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return categories, nil
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, c *Category) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE categories SET name = ?, sort_order = ? WHERE category_id = ?",
		c.Name, c.SortOrder, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}
	return rowsAffectedOr(result, ErrCategoryNotFound)
}

// DeleteCategory removes a category; items beneath it cascade.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE category_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	return rowsAffectedOr(result, ErrCategoryNotFound)
}

func (r *SQLiteRepository) CountCategories(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting categories: %w", err)
	}
	return count, nil
}

func scanCategory(s scanner) (*Category, error) {
	var c Category
	if err := s.Scan(&c.ID, &c.Name, &c.SortOrder); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("scanning category: %w", err)
	}
	return &c, nil
}

// ---- items ----

const itemColumns = "item_id, category_id, name, regular_price, event_price, sort_order, available"

func (r *SQLiteRepository) CreateItem(ctx context.Context, i *Item) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO items (item_id, category_id, name, regular_price, event_price, sort_order, available)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		i.ID, i.CategoryID, i.Name, i.RegularPrice, i.EventPrice, i.SortOrder, boolToInt(i.Available),
	)
	if err != nil {
		if constraintErr := mapConstraintViolation(err); constraintErr != nil {
			return constraintErr
		}
		return fmt.Errorf("creating item: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetItem(ctx context.Context, id string) (*Item, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE item_id = ?", id)
	return scanItem(row)
}

func (r *SQLiteRepository) ListItems(ctx context.Context) ([]Item, error) {
	return r.queryItems(ctx,
		"SELECT "+itemColumns+" FROM items ORDER BY sort_order, name")
}

func (r *SQLiteRepository) ListItemsByCategory(ctx context.Context, categoryID string) ([]Item, error) {
	return r.queryItems(ctx,
		"SELECT "+itemColumns+" FROM items WHERE category_id = ? ORDER BY sort_order, name",
		categoryID)
}

func (r *SQLiteRepository) queryItems(ctx context.Context, query string, args ...any) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

func (r *SQLiteRepository) UpdateItem(ctx context.Context, i *Item) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE items SET category_id = ?, name = ?, regular_price = ?, event_price = ?, sort_order = ?, available = ?
		 WHERE item_id = ?`,
		i.CategoryID, i.Name, i.RegularPrice, i.EventPrice, i.SortOrder, boolToInt(i.Available), i.ID,
	)
	if err != nil {
		if constraintErr := mapConstraintViolation(err); constraintErr != nil {
			return constraintErr
		}
		return fmt.Errorf("updating item: %w", err)
	}
	return rowsAffectedOr(result, ErrItemNotFound)
}

// DeleteItem removes an item; modifiers and options beneath it cascade.
func (r *SQLiteRepository) DeleteItem(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM items WHERE item_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return rowsAffectedOr(result, ErrItemNotFound)
}

func scanItem(s scanner) (*Item, error) {
	var i Item
	var available int
	err := s.Scan(&i.ID, &i.CategoryID, &i.Name, &i.RegularPrice, &i.EventPrice, &i.SortOrder, &available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("scanning item: %w", err)
	}
	i.Available = available != 0
	return &i, nil
}

// ---- modifiers ----

const modifierColumns = "modifier_id, item_id, name, single_selection, sort_order"

func (r *SQLiteRepository) CreateModifier(ctx context.Context, m *Modifier) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO modifiers (modifier_id, item_id, name, single_selection, sort_order)
		 VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.ItemID, m.Name, boolToInt(m.SingleSelection), m.SortOrder,
	)
	if err != nil {
		if constraintErr := mapConstraintViolation(err); constraintErr != nil {
			return constraintErr
		}
		return fmt.Errorf("creating modifier: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetModifier(ctx context.Context, id string) (*Modifier, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+modifierColumns+" FROM modifiers WHERE modifier_id = ?", id)
	return scanModifier(row)
}

func (r *SQLiteRepository) ListModifiers(ctx context.Context) ([]Modifier, error) {
	return r.queryModifiers(ctx,
		"SELECT "+modifierColumns+" FROM modifiers ORDER BY sort_order, name")
}

func (r *SQLiteRepository) ListModifiersByItem(ctx context.Context, itemID string) ([]Modifier, error) {
	return r.queryModifiers(ctx,
		"SELECT "+modifierColumns+" FROM modifiers WHERE item_id = ? ORDER BY sort_order, name",
		itemID)
}

func (r *SQLiteRepository) queryModifiers(ctx context.Context, query string, args ...any) ([]Modifier, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing modifiers: %w", err)
	}
	defer rows.Close()

	modifiers := []Modifier{}
	for rows.Next() {
		m, err := scanModifier(rows)
		if err != nil {
			return nil, err
		}
		modifiers = append(modifiers, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating modifiers: %w", err)
	}
	return modifiers, nil
}

func (r *SQLiteRepository) UpdateModifier(ctx context.Context, m *Modifier) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE modifiers SET item_id = ?, name = ?, single_selection = ?, sort_order = ?
		 WHERE modifier_id = ?`,
		m.ItemID, m.Name, boolToInt(m.SingleSelection), m.SortOrder, m.ID,
	)
	if err != nil {
		if constraintErr := mapConstraintViolation(err); constraintErr != nil {
			return constraintErr
		}
		return fmt.Errorf("updating modifier: %w", err)
	}
	return rowsAffectedOr(result, ErrModifierNotFound)
}

// DeleteModifier removes a modifier group; its options cascade.
func (r *SQLiteRepository) DeleteModifier(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM modifiers WHERE modifier_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting modifier: %w", err)
	}
	return rowsAffectedOr(result, ErrModifierNotFound)
}

func scanModifier(s scanner) (*Modifier, error) {
	var m Modifier
	var single int
	err := s.Scan(&m.ID, &m.ItemID, &m.Name, &single, &m.SortOrder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrModifierNotFound
		}
		return nil, fmt.Errorf("scanning modifier: %w", err)
	}
	m.SingleSelection = single != 0
	return &m, nil
}

// ---- options ----

const optionColumns = "option_id, modifier_id, name, price, available, sort_order"

func (r *SQLiteRepository) CreateOption(ctx context.Context, o *Option) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO options (option_id, modifier_id, name, price, available, sort_order)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		o.ID, o.ModifierID, o.Name, o.Price, boolToInt(o.Available), o.SortOrder,
	)
	if err != nil {
		if constraintErr := mapConstraintViolation(err); constraintErr != nil {
			return constraintErr
		}
		return fmt.Errorf("creating option: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetOption(ctx context.Context, id string) (*Option, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+optionColumns+" FROM options WHERE option_id = ?", id)
	return scanOption(row)
}

func (r *SQLiteRepository) ListOptions(ctx context.Context) ([]Option, error) {
	return r.queryOptions(ctx,
		"SELECT "+optionColumns+" FROM options ORDER BY sort_order, name")
}

func (r *SQLiteRepository) ListOptionsByModifier(ctx context.Context, modifierID string) ([]Option, error) {
	return r.queryOptions(ctx,
		"SELECT "+optionColumns+" FROM options WHERE modifier_id = ? ORDER BY sort_order, name",
		modifierID)
}

func (r *SQLiteRepository) queryOptions(ctx context.Context, query string, args ...any) ([]Option, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing options: %w", err)
	}
	defer rows.Close()

	options := []Option{}
	for rows.Next() {
		o, err := scanOption(rows)
		if err != nil {
			return nil, err
		}
		options = append(options, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating options: %w", err)
	}
	return options, nil
}

func (r *SQLiteRepository) UpdateOption(ctx context.Context, o *Option) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE options SET modifier_id = ?, name = ?, price = ?, available = ?, sort_order = ?
		 WHERE option_id = ?`,
		o.ModifierID, o.Name, o.Price, boolToInt(o.Available), o.SortOrder, o.ID,
	)
	if err != nil {
		if constraintErr := mapConstraintViolation(err); constraintErr != nil {
			return constraintErr
		}
		return fmt.Errorf("updating option: %w", err)
	}
	return rowsAffectedOr(result, ErrOptionNotFound)
}

func (r *SQLiteRepository) DeleteOption(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM options WHERE option_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting option: %w", err)
	}
	return rowsAffectedOr(result, ErrOptionNotFound)
}

func scanOption(s scanner) (*Option, error) {
	var o Option
	var available int
	err := s.Scan(&o.ID, &o.ModifierID, &o.Name, &o.Price, &available, &o.SortOrder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOptionNotFound
		}
		return nil, fmt.Errorf("scanning option: %w", err)
	}
	o.Available = available != 0
	return &o, nil
}

// ---- discounts ----

const discountColumns = "discount_id, name, is_percentage, amount, available, sort_order"

func (r *SQLiteRepository) CreateDiscount(ctx context.Context, d *Discount) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO discounts (discount_id, name, is_percentage, amount, available, sort_order)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, boolToInt(d.IsPercentage), d.Amount, boolToInt(d.Available), d.SortOrder,
	)
	if err != nil {
		if constraintErr := mapConstraintViolation(err); constraintErr != nil {
			return constraintErr
		}
		return fmt.Errorf("creating discount: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetDiscount(ctx context.Context, id string) (*Discount, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+discountColumns+" FROM discounts WHERE discount_id = ?", id)
	return scanDiscount(row)
}

func (r *SQLiteRepository) ListDiscounts(ctx context.Context) ([]Discount, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+discountColumns+" FROM discounts ORDER BY sort_order, name")
	if err != nil {
		return nil, fmt.Errorf("listing discounts: %w", err)
	}
	defer rows.Close()

	discounts := []Discount{}
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, err
		}
		discounts = append(discounts, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating discounts: %w", err)
	}
	return discounts, nil
}

func (r *SQLiteRepository) UpdateDiscount(ctx context.Context, d *Discount) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE discounts SET name = ?, is_percentage = ?, amount = ?, available = ?, sort_order = ?
		 WHERE discount_id = ?`,
		d.Name, boolToInt(d.IsPercentage), d.Amount, boolToInt(d.Available), d.SortOrder, d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating discount: %w", err)
	}
	return rowsAffectedOr(result, ErrDiscountNotFound)
}

func (r *SQLiteRepository) DeleteDiscount(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM discounts WHERE discount_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting discount: %w", err)
	}
	return rowsAffectedOr(result, ErrDiscountNotFound)
}

func scanDiscount(s scanner) (*Discount, error) {
	var d Discount
	var isPct, available int
	err := s.Scan(&d.ID, &d.Name, &isPct, &d.Amount, &available, &d.SortOrder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDiscountNotFound
		}
		return nil, fmt.Errorf("scanning discount: %w", err)
	}
	d.IsPercentage = isPct != 0
	d.Available = available != 0
	return &d, nil
}

// rowsAffectedOr returns notFound when the statement touched no rows.
func rowsAffectedOr(result sql.Result, notFound error) error {
	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return notFound
	}
	return nil
}
