// Package catalog exposes product browsing: categories, providers,
// products, search, and home banners.
package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/angelmondragon/mealmart-storefront/pkg/dispatch"
	pkgerrors "github.com/angelmondragon/mealmart-storefront/pkg/errors"
)

const (
	endpointCategories    = "getCategories"
	endpointProviders     = "getProviders"
	endpointProducts      = "getItems"
	endpointProductDetail = "getItemDetails"
	endpointSearch        = "searchItems"
	endpointBanners       = "getBanners"
)

type caller interface {
	Get(ctx context.Context, endpoint string, params url.Values) *dispatch.Envelope
	Post(ctx context.Context, endpoint string, body any) *dispatch.Envelope
}

// Service exposes the catalog read operations.
type Service interface {
	Categories(ctx context.Context) ([]Category, error)
	Providers(ctx context.Context, categoryID string) ([]Provider, error)
	Products(ctx context.Context, providerID string) ([]Product, error)
	ProductDetail(ctx context.Context, productID string) (*Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
	Banners(ctx context.Context) ([]Banner, error)
}

type service struct {
	api caller
}

// NewService builds the catalog service over the dispatch client.
func NewService(api caller) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("dispatch client required")
	}
	return &service{api: api}, nil
}

func (s *service) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.fetch(ctx, endpointCategories, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *service) Providers(ctx context.Context, categoryID string) ([]Provider, error) {
	params := url.Values{}
	if strings.TrimSpace(categoryID) != "" {
		params.Set("category_id", categoryID)
	}
	var providers []Provider
	if err := s.fetch(ctx, endpointProviders, params, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

func (s *service) Products(ctx context.Context, providerID string) ([]Product, error) {
	if strings.TrimSpace(providerID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "provider id is required")
	}
	params := url.Values{}
	params.Set("provider_id", providerID)
	var products []Product
	if err := s.fetch(ctx, endpointProducts, params, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *service) ProductDetail(ctx context.Context, productID string) (*Product, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	params := url.Values{}
	params.Set("item_id", productID)
	var product Product
	if err := s.fetch(ctx, endpointProductDetail, params, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *service) Search(ctx context.Context, query string) ([]Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}
	params := url.Values{}
	params.Set("q", query)
	var products []Product
	if err := s.fetch(ctx, endpointSearch, params, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *service) Banners(ctx context.Context) ([]Banner, error) {
	var banners []Banner
	if err := s.fetch(ctx, endpointBanners, nil, &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

func (s *service) fetch(ctx context.Context, endpoint string, params url.Values, dest any) error {
	env := s.api.Get(ctx, endpoint, params)
	if err := env.Err(); err != nil {
		return err
	}
	return env.Decode(dest)
}
