// Package wallet reads the shopper's balance and transaction history and
// requests top-ups. All amounts are authoritative on the backend.
package wallet

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/mealmart-storefront/pkg/dispatch"
	pkgerrors "github.com/angelmondragon/mealmart-storefront/pkg/errors"
)

const (
	endpointBalance      = "getWalletBalance"
	endpointTransactions = "getWalletTransactions"
	endpointTopUp        = "requestTopUp"
)

// Transaction is one wallet ledger row.
type Transaction struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
	CreatedAt string          `json:"created_at"`
}

type balanceResult struct {
	Balance decimal.Decimal `json:"balance"`
}

type caller interface {
	Get(ctx context.Context, endpoint string, params url.Values) *dispatch.Envelope
	Post(ctx context.Context, endpoint string, body any) *dispatch.Envelope
}

// Service exposes the wallet operations.
type Service interface {
	Balance(ctx context.Context) (decimal.Decimal, error)
	Transactions(ctx context.Context) ([]Transaction, error)
	RequestTopUp(ctx context.Context, amount decimal.Decimal) error
}

type service struct {
	api caller
}

// NewService builds the wallet service over the dispatch client.
func NewService(api caller) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("dispatch client required")
	}
	return &service{api: api}, nil
}

func (s *service) Balance(ctx context.Context) (decimal.Decimal, error) {
	env := s.api.Get(ctx, endpointBalance, nil)
	if err := env.Err(); err != nil {
		return decimal.Zero, err
	}
	var result balanceResult
	if err := env.Decode(&result); err != nil {
		return decimal.Zero, err
	}
	return result.Balance, nil
}

func (s *service) Transactions(ctx context.Context) ([]Transaction, error) {
	env := s.api.Get(ctx, endpointTransactions, nil)
	if err := env.Err(); err != nil {
		return nil, err
	}
	var transactions []Transaction
	if err := env.Decode(&transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (s *service) RequestTopUp(ctx context.Context, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "top-up amount must be positive")
	}
	env := s.api.Post(ctx, endpointTopUp, map[string]any{"amount": amount})
	return env.Err()
}
