package models

// CartLineItem is one entry of the anonymous cart kept in client storage.
// ID is a local-only identifier and carries no meaning once merged.
type CartLineItem struct {
	ItemID   ItemID `json:"item_id"`
	Quantity int    `json:"quantity"`
	ID       int64  `json:"id"`
}

// AddToCartRequest is the body of POST /api/cart
type AddToCartRequest struct {
	ItemID   ItemID `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// UpdateCartRequest is the body of PUT /api/cart/<id>
type UpdateCartRequest struct {
	Quantity int `json:"quantity"`
}

// RemoteCartLine is a server-side cart line
type RemoteCartLine struct {
	ID       int    `json:"id"`
	ItemID   ItemID `json:"item_id"`
	Quantity int    `json:"quantity"`
	Item     *Item  `json:"item,omitempty"`
}

// RemoteCart is the response of GET /api/cart
type RemoteCart struct {
	Items []RemoteCartLine `json:"items"`
	Total float64          `json:"total"`
	Count int              `json:"count"`
}

// TotalQuantity sums quantities across all lines
func (c *RemoteCart) TotalQuantity() int {
	total := 0
	for _, line := range c.Items {
		total += line.Quantity
	}
	return total
}

// CartMutationResponse is returned by the cart POST/PUT endpoints
type CartMutationResponse struct {
	Message  string          `json:"message"`
	CartItem *RemoteCartLine `json:"cart_item"`
}

// MessageResponse is a bare {"message": ...} body
type MessageResponse struct {
	Message string `json:"message"`
}
