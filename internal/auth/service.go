// Package auth implements the sign-in flows. Successful flows write the
// session record that the dispatch layer injects on later requests.
package auth

import (
	"context"
	"fmt"
	"net/url"

	"github.com/angelmondragon/mealmart-storefront/pkg/dispatch"
	pkgerrors "github.com/angelmondragon/mealmart-storefront/pkg/errors"
	"github.com/angelmondragon/mealmart-storefront/pkg/validate"
)

const (
	endpointLogin     = "login"
	endpointRegister  = "register"
	endpointVerifyOTP = "verifyOtp"
	endpointLogout    = "logout"
)

// LoginInput carries the phone-based credentials.
type LoginInput struct {
	Phone    string `json:"phone" validate:"required,e164"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterInput carries the new-account form.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,e164"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Session is the authenticated payload returned by login and OTP
// verification.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// sessionWriter is the slice of session.Store the auth flows need.
type sessionWriter interface {
	Set(ctx context.Context, token, userID string) error
	Clear(ctx context.Context) error
}

type caller interface {
	Get(ctx context.Context, endpoint string, params url.Values) *dispatch.Envelope
	Post(ctx context.Context, endpoint string, body any) *dispatch.Envelope
}

// Service exposes the authentication operations.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*Session, error)
	Register(ctx context.Context, input RegisterInput) (*Session, error)
	VerifyOTP(ctx context.Context, phone, code string) (*Session, error)
	Logout(ctx context.Context) error
}

type service struct {
	api      caller
	sessions sessionWriter
}

// NewService builds the auth service. The session writer receives the
// token on every successful sign-in.
func NewService(api caller, sessions sessionWriter) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("dispatch client required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	return &service{api: api, sessions: sessions}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	return s.authenticate(ctx, endpointLogin, input)
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	return s.authenticate(ctx, endpointRegister, input)
}

func (s *service) VerifyOTP(ctx context.Context, phone, code string) (*Session, error) {
	if phone == "" || code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone and code are required")
	}
	return s.authenticate(ctx, endpointVerifyOTP, map[string]string{
		"phone": phone,
		"code":  code,
	})
}

// Logout clears the local session first so the visitor is signed out even
// when the backend call fails, then revokes server side.
func (s *service) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return err
	}
	env := s.api.Post(ctx, endpointLogout, nil)
	return env.Err()
}

func (s *service) authenticate(ctx context.Context, endpoint string, body any) (*Session, error) {
	env := s.api.Post(ctx, endpoint, body)
	if err := env.Err(); err != nil {
		return nil, err
	}
	var sess Session
	if err := env.Decode(&sess); err != nil {
		return nil, err
	}
	if sess.Token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeBackend, "authentication response missing token")
	}
	if err := s.sessions.Set(ctx, sess.Token, sess.UserID); err != nil {
		return nil, err
	}
	return &sess, nil
}
