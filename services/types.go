package services

import (
	"context"

	"github.com/yashrajoria/storefront-client/models"
)

// LocalCart is the anonymous cart held in client storage
type LocalCart interface {
	Get(ctx context.Context) []models.CartLineItem
	Clear(ctx context.Context) error
	Count(ctx context.Context) int
}

// RemoteCart is the authenticated server-side cart
type RemoteCart interface {
	GetCart(ctx context.Context) (*models.RemoteCart, error)
	AddItem(ctx context.Context, itemID models.ItemID, quantity int) (*models.RemoteCartLine, error)
}

// SessionState is what the services need to know about the session
type SessionState interface {
	IsLoggedIn(ctx context.Context) bool
	Logout(ctx context.Context)
}
