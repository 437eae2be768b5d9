// Package profile covers the account page: profile read/update and
// password changes.
package profile

import (
	"context"
	"fmt"
	"net/url"

	"github.com/angelmondragon/mealmart-storefront/pkg/dispatch"
	pkgerrors "github.com/angelmondragon/mealmart-storefront/pkg/errors"
	"github.com/angelmondragon/mealmart-storefront/pkg/validate"
)

const (
	endpointProfile        = "getProfile"
	endpointUpdateProfile  = "updateProfile"
	endpointChangePassword = "changePassword"
)

// Profile is the account view returned by the backend.
type Profile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// UpdateInput is the editable subset of the profile.
type UpdateInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

type caller interface {
	Get(ctx context.Context, endpoint string, params url.Values) *dispatch.Envelope
	Post(ctx context.Context, endpoint string, body any) *dispatch.Envelope
}

// Service exposes the profile operations.
type Service interface {
	Get(ctx context.Context) (*Profile, error)
	Update(ctx context.Context, input UpdateInput) (*Profile, error)
	ChangePassword(ctx context.Context, current, next string) error
}

type service struct {
	api caller
}

// NewService builds the profile service over the dispatch client.
func NewService(api caller) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("dispatch client required")
	}
	return &service{api: api}, nil
}

func (s *service) Get(ctx context.Context) (*Profile, error) {
	env := s.api.Get(ctx, endpointProfile, nil)
	if err := env.Err(); err != nil {
		return nil, err
	}
	var profile Profile
	if err := env.Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*Profile, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	env := s.api.Post(ctx, endpointUpdateProfile, input)
	if err := env.Err(); err != nil {
		return nil, err
	}
	var profile Profile
	if err := env.Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *service) ChangePassword(ctx context.Context, current, next string) error {
	if current == "" || next == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "current and new passwords are required")
	}
	if len(next) < 6 {
		return pkgerrors.New(pkgerrors.CodeValidation, "new password must be at least 6 characters")
	}
	env := s.api.Post(ctx, endpointChangePassword, map[string]string{
		"current_password": current,
		"new_password":     next,
	})
	return env.Err()
}
