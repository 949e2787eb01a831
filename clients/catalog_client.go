package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yashrajoria/storefront-client/models"
)

// CatalogClient reads the public item catalog
type CatalogClient struct {
	gateway *GatewayClient
}

func NewCatalogClient(gateway *GatewayClient) *CatalogClient {
	return &CatalogClient{gateway: gateway}
}

func (c *CatalogClient) ListItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.MinPrice != nil {
		query.Set("min_price", strconv.FormatFloat(*filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice != nil {
		query.Set("max_price", strconv.FormatFloat(*filter.MaxPrice, 'f', -1, 64))
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	items := []models.Item{}
	if _, err := c.gateway.DoJSON(ctx, http.MethodGet, "/api/items", query, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *CatalogClient) Categories(ctx context.Context) ([]string, error) {
	categories := []string{}
	if _, err := c.gateway.DoJSON(ctx, http.MethodGet, "/api/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
