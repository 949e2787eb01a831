package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/yashrajoria/storefront-client/logger"
	"github.com/yashrajoria/storefront-client/ui"
)

// CartCounter keeps the cart-count badge in sync
type CartCounter struct {
	local   LocalCart
	remote  RemoteCart
	session SessionState
	badge   ui.Badge
	log     *zap.Logger
}

func NewCartCounter(local LocalCart, remote RemoteCart, session SessionState, badge ui.Badge, log *zap.Logger) *CartCounter {
	return &CartCounter{
		local:   local,
		remote:  remote,
		session: session,
		badge:   badge,
		log:     logger.OrNop(log),
	}
}

// Refresh shows the local cart total for anonymous visitors and the server
// cart total for logged-in users. A failed fetch leaves the badge as it was.
func (c *CartCounter) Refresh(ctx context.Context) {
	if c.badge == nil {
		return
	}

	if !c.session.IsLoggedIn(ctx) {
		c.badge.SetCount(c.local.Count(ctx))
		return
	}

	cart, err := c.remote.GetCart(ctx)
	if err != nil {
		c.log.Error("Error updating cart count", zap.Error(err))
		return
	}
	c.badge.SetCount(cart.TotalQuantity())
}
