package clients

import (
	"context"
	"net/http"

	"github.com/yashrajoria/storefront-client/models"
	"github.com/yashrajoria/storefront-client/validation"
)

// AuthClient exchanges credentials for an access token. The token itself is
// issued by the server; this client only carries it back.
type AuthClient struct {
	gateway *GatewayClient
}

func NewAuthClient(gateway *GatewayClient) *AuthClient {
	return &AuthClient{gateway: gateway}
}

func (a *AuthClient) Login(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	req := models.LoginRequest{Username: username, Password: password}
	if err := validation.Payload(req); err != nil {
		return nil, err
	}
	var out models.AuthResponse
	if _, err := a.gateway.DoJSON(ctx, http.MethodPost, "/api/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthClient) Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	req := models.RegisterRequest{Username: username, Email: email, Password: password}
	if err := validation.Payload(req); err != nil {
		return nil, err
	}
	var out models.AuthResponse
	if _, err := a.gateway.DoJSON(ctx, http.MethodPost, "/api/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
