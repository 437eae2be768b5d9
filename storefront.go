// Package storefront is the composition root an embedding front end uses:
// it wires configuration, storage, the session record, the dispatch client,
// the local stores, and the feature services into one value.
package storefront

import (
	"context"
	"errors"

	"github.com/angelmondragon/mealmart-storefront/internal/addresses"
	"github.com/angelmondragon/mealmart-storefront/internal/auth"
	"github.com/angelmondragon/mealmart-storefront/internal/cart"
	"github.com/angelmondragon/mealmart-storefront/internal/catalog"
	"github.com/angelmondragon/mealmart-storefront/internal/content"
	"github.com/angelmondragon/mealmart-storefront/internal/favorites"
	"github.com/angelmondragon/mealmart-storefront/internal/mockdata"
	"github.com/angelmondragon/mealmart-storefront/internal/orders"
	"github.com/angelmondragon/mealmart-storefront/internal/profile"
	"github.com/angelmondragon/mealmart-storefront/internal/wallet"
	"github.com/angelmondragon/mealmart-storefront/pkg/config"
	"github.com/angelmondragon/mealmart-storefront/pkg/dispatch"
	"github.com/angelmondragon/mealmart-storefront/pkg/logger"
	"github.com/angelmondragon/mealmart-storefront/pkg/session"
	"github.com/angelmondragon/mealmart-storefront/pkg/storage"
)

// App aggregates everything a storefront front end needs.
type App struct {
	Client    *dispatch.Client
	Sessions  *session.Store
	Cart      *cart.Store
	Favorites *favorites.Store

	Catalog   catalog.Service
	Orders    orders.Service
	Wallet    wallet.Service
	Profile   profile.Service
	Auth      auth.Service
	Addresses addresses.Service
	Content   content.Service
}

// Option overrides a default collaborator.
type Option func(*builder)

type builder struct {
	logg      *logger.Logger
	kv        storage.KV
	responder dispatch.Responder
}

// WithLogger attaches a logger to the dispatch client.
func WithLogger(logg *logger.Logger) Option {
	return func(b *builder) { b.logg = logg }
}

// WithStorage replaces the config-selected storage backend.
func WithStorage(kv storage.KV) Option {
	return func(b *builder) { b.kv = kv }
}

// WithResponder replaces the default fixture responder used in mock mode.
func WithResponder(r dispatch.Responder) Option {
	return func(b *builder) { b.responder = r }
}

// New builds the app from configuration.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	b := &builder{}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	kv := b.kv
	if kv == nil {
		selected, err := storage.New(ctx, cfg.Storage, cfg.Redis)
		if err != nil {
			return nil, err
		}
		kv = selected
	}

	sessions, err := session.NewStore(ctx, kv)
	if err != nil {
		return nil, err
	}

	responder := b.responder
	if responder == nil {
		responder = mockdata.NewResponder()
	}
	transport, err := dispatch.NewTransport(cfg.API, responder)
	if err != nil {
		return nil, err
	}
	client, err := dispatch.NewClient(transport,
		dispatch.WithSession(sessions),
		dispatch.WithLogger(b.logg),
	)
	if err != nil {
		return nil, err
	}

	cartStore, err := cart.NewStore(ctx, kv)
	if err != nil {
		return nil, err
	}
	favStore, err := favorites.NewStore(ctx, kv)
	if err != nil {
		return nil, err
	}

	app := &App{
		Client:    client,
		Sessions:  sessions,
		Cart:      cartStore,
		Favorites: favStore,
	}
	if app.Catalog, err = catalog.NewService(client); err != nil {
		return nil, err
	}
	if app.Orders, err = orders.NewService(client); err != nil {
		return nil, err
	}
	if app.Wallet, err = wallet.NewService(client); err != nil {
		return nil, err
	}
	if app.Profile, err = profile.NewService(client); err != nil {
		return nil, err
	}
	if app.Auth, err = auth.NewService(client, sessions); err != nil {
		return nil, err
	}
	if app.Addresses, err = addresses.NewService(client); err != nil {
		return nil, err
	}
	if app.Content, err = content.NewService(client); err != nil {
		return nil, err
	}
	return app, nil
}

// CheckoutInput is the part of order placement the cart cannot supply.
type CheckoutInput struct {
	AddressID     string
	PaymentMethod string
	Notes         string
}

// Checkout places the current cart as an order and clears the cart on
// success. The cart is untouched when placement fails.
func (a *App) Checkout(ctx context.Context, input CheckoutInput) (*orders.Confirmation, error) {
	snapshot := a.Cart.Snapshot()

	providerID := ""
	if snapshot.ProviderID != nil {
		providerID = *snapshot.ProviderID
	}
	items := make([]orders.OrderItem, 0, len(snapshot.Items))
	for _, line := range snapshot.Items {
		item := orders.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Total:     line.Total,
		}
		if line.Size != nil {
			item.SizeID = line.Size.ID
		}
		for _, extra := range line.Extras {
			item.ExtraIDs = append(item.ExtraIDs, extra.ID)
		}
		items = append(items, item)
	}

	confirmation, err := a.Orders.Place(ctx, orders.PlaceOrderInput{
		ProviderID:    providerID,
		AddressID:     input.AddressID,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
		Items:         items,
		Total:         snapshot.Total,
	})
	if err != nil {
		return nil, err
	}
	if err := a.Cart.Clear(ctx); err != nil {
		return confirmation, err
	}
	return confirmation, nil
}
