package mockdata

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/mealmart-storefront/internal/addresses"
	"github.com/angelmondragon/mealmart-storefront/internal/auth"
	"github.com/angelmondragon/mealmart-storefront/internal/catalog"
	"github.com/angelmondragon/mealmart-storefront/internal/content"
	"github.com/angelmondragon/mealmart-storefront/internal/orders"
	"github.com/angelmondragon/mealmart-storefront/internal/profile"
	"github.com/angelmondragon/mealmart-storefront/internal/wallet"
)

type product = catalog.Product

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var fixtureProducts = []product{
	{
		ID:          "prod-001",
		ProviderID:  "prov-001",
		Name:        "Margherita Pizza",
		Description: "Tomato, mozzarella, basil",
		Image:       "/assets/products/margherita.jpg",
		Price:       price("7.50"),
		Sizes: []catalog.Size{
			{ID: "size-s", Name: "Small", Price: price("7.50")},
			{ID: "size-m", Name: "Medium", Price: price("9.50")},
			{ID: "size-l", Name: "Large", Price: price("12.00")},
		},
		Extras: []catalog.Extra{
			{ID: "extra-cheese", Name: "Extra cheese", Price: price("1.25")},
			{ID: "extra-olives", Name: "Olives", Price: price("0.75")},
		},
	},
	{
		ID:          "prod-002",
		ProviderID:  "prov-001",
		Name:        "Pepperoni Pizza",
		Description: "Pepperoni, mozzarella",
		Image:       "/assets/products/pepperoni.jpg",
		Price:       price("8.50"),
	},
	{
		ID:          "prod-003",
		ProviderID:  "prov-002",
		Name:        "Chicken Shawarma Wrap",
		Description: "Garlic sauce, pickles, fries",
		Image:       "/assets/products/shawarma.jpg",
		Price:       price("3.75"),
		Extras: []catalog.Extra{
			{ID: "extra-fries", Name: "Side fries", Price: price("1.00")},
		},
	},
	{
		ID:          "prod-004",
		ProviderID:  "prov-002",
		Name:        "Falafel Plate",
		Description: "Falafel, hummus, salad",
		Image:       "/assets/products/falafel.jpg",
		Price:       price("4.25"),
	},
}

func defaultFixtures() map[string]any {
	return map[string]any{
		"getCategories": []catalog.Category{
			{ID: "cat-001", Name: "Pizza", Image: "/assets/categories/pizza.jpg"},
			{ID: "cat-002", Name: "Shawarma", Image: "/assets/categories/shawarma.jpg"},
			{ID: "cat-003", Name: "Desserts", Image: "/assets/categories/desserts.jpg"},
		},
		"getProviders": []catalog.Provider{
			{
				ID:          "prov-001",
				Name:        "Napoli Corner",
				Logo:        "/assets/providers/napoli.jpg",
				Address:     "14 Rainbow St",
				Rating:      4.6,
				Open:        true,
				DeliveryFee: price("1.50"),
			},
			{
				ID:          "prov-002",
				Name:        "Shawarma House",
				Logo:        "/assets/providers/shawarma-house.jpg",
				Address:     "3 Wakalat St",
				Rating:      4.2,
				Open:        true,
				DeliveryFee: price("1.00"),
			},
		},
		"getBanners": []catalog.Banner{
			{ID: "ban-001", Image: "/assets/banners/free-delivery.jpg", Link: "/providers/prov-001"},
			{ID: "ban-002", Image: "/assets/banners/ramadan.jpg", Link: "/categories/cat-002"},
		},
		"placeOrder": orders.Confirmation{
			OrderID: "ord-1001",
			Status:  "pending",
			Total:   price("21.50"),
		},
		"getOrders": []orders.Summary{
			{ID: "ord-1000", ProviderName: "Napoli Corner", Status: "delivered", Total: price("18.25"), CreatedAt: "2026-08-28T19:04:00Z"},
			{ID: "ord-0999", ProviderName: "Shawarma House", Status: "cancelled", Total: price("7.50"), CreatedAt: "2026-08-20T13:30:00Z"},
		},
		"getOrderDetails": orders.Detail{
			Summary: orders.Summary{
				ID:           "ord-1000",
				ProviderName: "Napoli Corner",
				Status:       "delivered",
				Total:        price("18.25"),
				CreatedAt:    "2026-08-28T19:04:00Z",
			},
			AddressID:     "addr-001",
			PaymentMethod: "cash",
			Items: []orders.OrderItem{
				{ProductID: "prod-001", Quantity: 2, SizeID: "size-m", Total: price("19.00")},
			},
		},
		"getWalletBalance": map[string]string{"balance": "42.75"},
		"getWalletTransactions": []wallet.Transaction{
			{ID: "txn-001", Type: "topup", Amount: price("50.00"), Note: "Card top up", CreatedAt: "2026-08-15T10:00:00Z"},
			{ID: "txn-002", Type: "payment", Amount: price("-7.25"), Note: "Order ord-0998", CreatedAt: "2026-08-16T20:12:00Z"},
		},
		"requestTopUp": map[string]string{"payment_url": "https://pay.example.com/session/mock"},
		"getProfile": profile.Profile{
			ID:    "user-001",
			Name:  "Demo Customer",
			Phone: "+962790000001",
			Email: "demo@example.com",
		},
		"updateProfile": profile.Profile{
			ID:    "user-001",
			Name:  "Demo Customer",
			Phone: "+962790000001",
			Email: "demo@example.com",
		},
		"changePassword": map[string]string{},
		"login": auth.Session{
			Token:  mockToken,
			UserID: "user-001",
			Name:   "Demo Customer",
		},
		"register": auth.Session{
			Token:  mockToken,
			UserID: "user-002",
			Name:   "New Customer",
		},
		"verifyOtp": auth.Session{
			Token:  mockToken,
			UserID: "user-001",
			Name:   "Demo Customer",
		},
		"logout": map[string]string{},
		"getAddresses": []addresses.Address{
			{ID: "addr-001", Label: "Home", Details: "Bldg 5, Apt 2, Rainbow St", Latitude: price("31.9515"), Longitude: price("35.9239"), IsDefault: true},
			{ID: "addr-002", Label: "Work", Details: "Office 12, Wakalat St", Latitude: price("31.9565"), Longitude: price("35.8711")},
		},
		"addAddress": addresses.Address{
			ID: "addr-003", Label: "Gym", Details: "24 Sport St", Latitude: price("31.9601"), Longitude: price("35.8900"),
		},
		"deleteAddress":   map[string]string{},
		"geocodeLocation": addresses.Location{Address: "14 Rainbow St", City: "Amman"},
		"getAbout": content.Page{
			Title: "About MealMart",
			Body:  "<p>MealMart connects you with neighborhood restaurants for fast delivery.</p>",
		},
		"getTerms": content.Page{
			Title: "Terms of Service",
			Body:  "<p>Orders are subject to provider availability.</p>",
		},
		"getFaq": []content.FAQEntry{
			{Question: "How do I pay?", Answer: "Cash on delivery, wallet balance, or card."},
			{Question: "Can I cancel an order?", Answer: "Yes, while the order is still pending."},
		},
	}
}

// mockToken is an unsigned demo JWT with a far-future expiry. Mock mode
// never verifies signatures.
const mockToken = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
	"eyJzdWIiOiJ1c2VyLTAwMSIsImV4cCI6NDEwMjQ0NDgwMH0." +
	"c2lnbmF0dXJlLW5vdC12ZXJpZmllZA"

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
