package catalog

import "github.com/shopspring/decimal"

// Category is one top-level browse section.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Provider is a store/restaurant serving a category.
type Provider struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Logo        string          `json:"logo"`
	Address     string          `json:"address"`
	Rating      float64         `json:"rating"`
	Open        bool            `json:"open"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
}

// Size is a selectable product size with its own price.
type Size struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Extra is a selectable add-on priced per unit.
type Extra struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Product is a purchasable item, optionally with sizes and extras.
type Product struct {
	ID          string          `json:"id"`
	ProviderID  string          `json:"provider_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Sizes       []Size          `json:"sizes,omitempty"`
	Extras      []Extra         `json:"extras,omitempty"`
}

// Banner is a promotional slide on the home page.
type Banner struct {
	ID    string `json:"id"`
	Image string `json:"image"`
	Link  string `json:"link"`
}
