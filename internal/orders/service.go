// Package orders covers checkout and order history.
package orders

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/mealmart-storefront/pkg/dispatch"
	pkgerrors "github.com/angelmondragon/mealmart-storefront/pkg/errors"
	"github.com/angelmondragon/mealmart-storefront/pkg/validate"
)

const (
	endpointPlaceOrder   = "placeOrder"
	endpointOrders       = "getOrders"
	endpointOrderDetails = "getOrderDetails"
)

type caller interface {
	Get(ctx context.Context, endpoint string, params url.Values) *dispatch.Envelope
	Post(ctx context.Context, endpoint string, body any) *dispatch.Envelope
}

// Service exposes checkout and history operations.
type Service interface {
	Place(ctx context.Context, input PlaceOrderInput) (*Confirmation, error)
	List(ctx context.Context) ([]Summary, error)
	Detail(ctx context.Context, orderID string) (*Detail, error)
}

type service struct {
	api caller
}

// NewService builds the orders service over the dispatch client.
func NewService(api caller) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("dispatch client required")
	}
	return &service{api: api}, nil
}

// Place validates the checkout payload and submits it with a fresh
// idempotency key so an accidental resubmit cannot double-charge.
func (s *service) Place(ctx context.Context, input PlaceOrderInput) (*Confirmation, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if input.IdempotencyKey == "" {
		input.IdempotencyKey = uuid.NewString()
	}

	env := s.api.Post(ctx, endpointPlaceOrder, input)
	if err := env.Err(); err != nil {
		return nil, err
	}
	var confirmation Confirmation
	if err := env.Decode(&confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

func (s *service) List(ctx context.Context) ([]Summary, error) {
	env := s.api.Get(ctx, endpointOrders, nil)
	if err := env.Err(); err != nil {
		return nil, err
	}
	var summaries []Summary
	if err := env.Decode(&summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *service) Detail(ctx context.Context, orderID string) (*Detail, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	params := url.Values{}
	params.Set("order_id", orderID)
	env := s.api.Get(ctx, endpointOrderDetails, params)
	if err := env.Err(); err != nil {
		return nil, err
	}
	var detail Detail
	if err := env.Decode(&detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
