package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/yashrajoria/storefront-client/logger"
	"github.com/yashrajoria/storefront-client/notify"
)

// MergeResult describes one merge run
type MergeResult struct {
	// Attempted is the number of local lines found
	Attempted int
	// Merged counts lines the server accepted before any failure
	Merged int
	// Cleared is true once the local cart was removed after a full merge
	Cleared bool
	Err     error
}

// CartMergeService moves the anonymous cart into the user's server cart after login
type CartMergeService struct {
	local    LocalCart
	remote   RemoteCart
	notifier notify.Notifier
	log      *zap.Logger
}

func NewCartMergeService(local LocalCart, remote RemoteCart, notifier notify.Notifier, log *zap.Logger) *CartMergeService {
	return &CartMergeService{
		local:    local,
		remote:   remote,
		notifier: notifier,
		log:      logger.OrNop(log),
	}
}

// Merge posts every local line to the server one at a time, in stored order.
// The first failure stops the loop: lines already sent stay merged and the
// local cart is kept. The failure is logged, not returned as an error; it is
// reported in MergeResult.Err. The local cart is cleared only after every line
// went through.
func (s *CartMergeService) Merge(ctx context.Context) MergeResult {
	items := s.local.Get(ctx)
	result := MergeResult{Attempted: len(items)}
	if len(items) == 0 {
		return result
	}

	for _, item := range items {
		if _, err := s.remote.AddItem(ctx, item.ItemID, item.Quantity); err != nil {
			s.log.Error("Error merging cart",
				zap.String("request_id", logger.RequestID(ctx)),
				zap.Stringer("item_id", item.ItemID),
				zap.Int("merged", result.Merged),
				zap.Int("total", result.Attempted),
				zap.Error(err),
			)
			result.Err = err
			return result
		}
		result.Merged++
	}

	if err := s.local.Clear(ctx); err != nil {
		s.log.Error("Error clearing merged cart", zap.Error(err))
		result.Err = err
		return result
	}
	result.Cleared = true

	if s.notifier != nil {
		s.notifier.Show("Cart items merged successfully!", notify.Success)
	}
	return result
}
