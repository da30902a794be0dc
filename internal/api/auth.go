package api

import (
	"context"

	"github.com/unirecords/client-go/internal/models"
	"github.com/unirecords/client-go/internal/transport"
)

// AuthAPI covers the session exchange and identity lookup.
type AuthAPI struct {
	client *transport.Client
}

func NewAuthAPI(client *transport.Client) *AuthAPI {
	return &AuthAPI{client: client}
}

func (a *AuthAPI) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := a.client.Post(ctx, "/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AuthAPI) Register(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := a.client.Post(ctx, "/auth/register", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me resolves the identity behind the held credential.
func (a *AuthAPI) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := a.client.Get(ctx, "/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
