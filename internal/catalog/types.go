package catalog

import "errors"

// Sentinel errors returned by the repository.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrModifierNotFound = errors.New("modifier not found")
	ErrOptionNotFound   = errors.New("option not found")
	ErrDiscountNotFound = errors.New("discount not found")

	// ErrIDExists indicates an insert collided with an existing primary
	// key. The identifier allocator treats this as a signal to retry
	// with a fresh identifier.
	ErrIDExists = errors.New("identifier already exists")

	// ErrParentNotFound indicates a child record referenced a parent
	// (category, item or modifier) that does not exist.
	ErrParentNotFound = errors.New("parent record not found")
)

// Category groups items on the register screen.
type Category struct {
	ID        string `json:"category_id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

// Validate checks category fields before persistence.
func (c *Category) Validate() error {
	if c.Name == "" {
		return errors.New("category name is required")
	}
	return nil
}

// Item is a sellable product belonging to a category. RegularPrice is
// charged by default; EventPrice applies when event pricing is active
// on the register.
type Item struct {
	ID           string  `json:"item_id"`
	CategoryID   string  `json:"category_id"`
	Name         string  `json:"name"`
	RegularPrice float64 `json:"regular_price"`
	EventPrice   float64 `json:"event_price"`
	SortOrder    int     `json:"sort_order"`
	Available    bool    `json:"available"`
}

// Validate checks item fields before persistence.
func (i *Item) Validate() error {
	if i.Name == "" {
		return errors.New("item name is required")
	}
	if i.CategoryID == "" {
		return errors.New("item category is required")
	}
	if i.RegularPrice < 0 || i.EventPrice < 0 {
		return errors.New("item prices must not be negative")
	}
	return nil
}

// Modifier is a customisation group attached to an item (e.g. Size).
// SingleSelection restricts the register to one option per group.
type Modifier struct {
	ID              string `json:"modifier_id"`
	ItemID          string `json:"item_id"`
	Name            string `json:"name"`
	SingleSelection bool   `json:"single_selection"`
	SortOrder       int    `json:"sort_order"`
}

// Validate checks modifier fields before persistence.
func (m *Modifier) Validate() error {
	if m.Name == "" {
		return errors.New("modifier name is required")
	}
	if m.ItemID == "" {
		return errors.New("modifier item is required")
	}
	return nil
}

// Option is a selectable choice within a modifier group. Price is the
// surcharge added to the item price when selected.
type Option struct {
	ID         string  `json:"option_id"`
	ModifierID string  `json:"modifier_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Available  bool    `json:"available"`
	SortOrder  int     `json:"sort_order"`
}

// Validate checks option fields before persistence.
func (o *Option) Validate() error {
	if o.Name == "" {
		return errors.New("option name is required")
	}
	if o.ModifierID == "" {
		return errors.New("option modifier is required")
	}
	if o.Price < 0 {
		return errors.New("option price must not be negative")
	}
	return nil
}

// Discount reduces an order total either by a percentage (0..100) or a
// fixed amount, depending on IsPercentage.
type Discount struct {
	ID           string  `json:"discount_id"`
	Name         string  `json:"name"`
	IsPercentage bool    `json:"is_percentage"`
	Amount       float64 `json:"amount"`
	Available    bool    `json:"available"`
	SortOrder    int     `json:"sort_order"`
}

// Validate checks discount fields before persistence.
func (d *Discount) Validate() error {
	if d.Name == "" {
		return errors.New("discount name is required")
	}
	if d.Amount < 0 {
		return errors.New("discount amount must not be negative")
	}
	if d.IsPercentage && d.Amount > 100 {
		return errors.New("percentage discount must not exceed 100")
	}
	return nil
}
