// Package addresses manages the customer's saved delivery addresses and
// reverse geocoding of picked map locations.
package addresses

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/mealmart-storefront/pkg/dispatch"
	pkgerrors "github.com/angelmondragon/mealmart-storefront/pkg/errors"
	"github.com/angelmondragon/mealmart-storefront/pkg/validate"
)

const (
	endpointGetAddresses  = "getAddresses"
	endpointAddAddress    = "addAddress"
	endpointDeleteAddress = "deleteAddress"
	endpointGeocode       = "geocodeLocation"
)

// Address is a saved delivery location.
type Address struct {
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	Details   string          `json:"details"`
	Latitude  decimal.Decimal `json:"latitude"`
	Longitude decimal.Decimal `json:"longitude"`
	IsDefault bool            `json:"is_default"`
}

// AddInput is the new-address form.
type AddInput struct {
	Label     string          `json:"label" validate:"required"`
	Details   string          `json:"details" validate:"required"`
	Latitude  decimal.Decimal `json:"latitude"`
	Longitude decimal.Decimal `json:"longitude"`
	IsDefault bool            `json:"is_default"`
}

// Location is a reverse-geocoded point.
type Location struct {
	Address string `json:"address"`
	City    string `json:"city"`
}

type caller interface {
	Get(ctx context.Context, endpoint string, params url.Values) *dispatch.Envelope
	Post(ctx context.Context, endpoint string, body any) *dispatch.Envelope
}

// Service exposes the address book operations.
type Service interface {
	List(ctx context.Context) ([]Address, error)
	Add(ctx context.Context, input AddInput) (*Address, error)
	Delete(ctx context.Context, id string) error
	Geocode(ctx context.Context, lat, lng decimal.Decimal) (*Location, error)
}

type service struct {
	api caller
}

// NewService builds the address service over the dispatch client.
func NewService(api caller) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("dispatch client required")
	}
	return &service{api: api}, nil
}

func (s *service) List(ctx context.Context) ([]Address, error) {
	env := s.api.Get(ctx, endpointGetAddresses, nil)
	if err := env.Err(); err != nil {
		return nil, err
	}
	var addresses []Address
	if err := env.Decode(&addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (s *service) Add(ctx context.Context, input AddInput) (*Address, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	env := s.api.Post(ctx, endpointAddAddress, input)
	if err := env.Err(); err != nil {
		return nil, err
	}
	var address Address
	if err := env.Decode(&address); err != nil {
		return nil, err
	}
	return &address, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address id is required")
	}
	env := s.api.Post(ctx, endpointDeleteAddress, map[string]string{"id": id})
	return env.Err()
}

func (s *service) Geocode(ctx context.Context, lat, lng decimal.Decimal) (*Location, error) {
	params := url.Values{}
	params.Set("lat", lat.String())
	params.Set("lng", lng.String())
	env := s.api.Get(ctx, endpointGeocode, params)
	if err := env.Err(); err != nil {
		return nil, err
	}
	var location Location
	if err := env.Decode(&location); err != nil {
		return nil, err
	}
	return &location, nil
}
