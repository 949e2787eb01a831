package clients

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yashrajoria/storefront-client/models"
)

// CartClient calls the authenticated server-side cart API
type CartClient struct {
	gateway *GatewayClient
}

func NewCartClient(gateway *GatewayClient) *CartClient {
	return &CartClient{gateway: gateway}
}

// GetCart fetches the user's cart
func (c *CartClient) GetCart(ctx context.Context) (*models.RemoteCart, error) {
	var cart models.RemoteCart
	if _, err := c.gateway.DoAuthenticated(ctx, http.MethodGet, "/api/cart", nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem creates a cart line or increments an existing one server-side
func (c *CartClient) AddItem(ctx context.Context, itemID models.ItemID, quantity int) (*models.RemoteCartLine, error) {
	var out models.CartMutationResponse
	req := models.AddToCartRequest{ItemID: itemID, Quantity: quantity}
	if _, err := c.gateway.DoAuthenticated(ctx, http.MethodPost, "/api/cart", nil, req, &out); err != nil {
		return nil, err
	}
	return out.CartItem, nil
}

// UpdateItem sets the quantity of a server cart line. The returned line is
// nil when quantity <= 0 removed it.
func (c *CartClient) UpdateItem(ctx context.Context, cartItemID, quantity int) (*models.RemoteCartLine, error) {
	var out models.CartMutationResponse
	path := fmt.Sprintf("/api/cart/%d", cartItemID)
	if _, err := c.gateway.DoAuthenticated(ctx, http.MethodPut, path, nil, models.UpdateCartRequest{Quantity: quantity}, &out); err != nil {
		return nil, err
	}
	return out.CartItem, nil
}

// RemoveItem deletes a server cart line
func (c *CartClient) RemoveItem(ctx context.Context, cartItemID int) error {
	path := fmt.Sprintf("/api/cart/%d", cartItemID)
	_, err := c.gateway.DoAuthenticated(ctx, http.MethodDelete, path, nil, nil, nil)
	return err
}
