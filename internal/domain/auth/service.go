package auth

import "context"

// AuthService authenticates employees by code and password.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (TokenResponse, error)
}
