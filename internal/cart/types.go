package cart

import "github.com/shopspring/decimal"

// SizeOption is the shopper's size selection on a line item. Price replaces
// the product's base unit price when present.
type SizeOption struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ExtraOption is one add-on selection priced per unit.
type ExtraOption struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"qty"`
}

// LineItem is one purchasable selection in the cart. Total always equals
// effective unit price times quantity plus the extras sum; the store
// recomputes it on quantity changes and accumulates it on merges.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"qty"`
	Size      *SizeOption     `json:"size,omitempty"`
	Extras    []ExtraOption   `json:"extras,omitempty"`
	Total     decimal.Decimal `json:"total"`
}

// EffectiveUnitPrice returns the size price when a size is selected,
// otherwise the base unit price.
func (li LineItem) EffectiveUnitPrice() decimal.Decimal {
	if li.Size != nil {
		return li.Size.Price
	}
	return li.UnitPrice
}

// ExtrasTotal sums the add-on amounts across all extras.
func (li LineItem) ExtrasTotal() decimal.Decimal {
	total := decimal.Zero
	for _, extra := range li.Extras {
		total = total.Add(extra.Price.Mul(decimal.NewFromInt(int64(extra.Quantity))))
	}
	return total
}

// ComputeTotal returns the invariant line total for the given quantity.
func (li LineItem) ComputeTotal(quantity int) decimal.Decimal {
	return li.EffectiveUnitPrice().
		Mul(decimal.NewFromInt(int64(quantity))).
		Add(li.ExtrasTotal())
}

func (li LineItem) clone() LineItem {
	copied := li
	if li.Size != nil {
		size := *li.Size
		copied.Size = &size
	}
	if li.Extras != nil {
		copied.Extras = make([]ExtraOption, len(li.Extras))
		copy(copied.Extras, li.Extras)
	}
	return copied
}

// Snapshot is the immutable view handed to subscribers and readers.
type Snapshot struct {
	Items      []LineItem
	ProviderID *string
	Total      decimal.Decimal
	Count      int
}
