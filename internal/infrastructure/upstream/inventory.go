package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ifds/dashboard/internal/core/domain"
	"github.com/ifds/dashboard/internal/core/ports"
)

type itemsEnvelope struct {
	Items []domain.InventoryItem `json:"items"`
}

type itemEnvelope struct {
	Item *domain.InventoryItem `json:"item"`
}

// ListInventory fetches the full item list.
func (c *Client) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	var env itemsEnvelope
	if err := c.getJSON(ctx, "/inventory/", &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// GetInventoryItem fetches one item by ID.
func (c *Client) GetInventoryItem(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	var env itemEnvelope
	if err := c.getJSON(ctx, fmt.Sprintf("/inventory/%d", id), &env); err != nil {
		return nil, err
	}
	return env.Item, nil
}

// AddInventory creates a new item.
func (c *Client) AddInventory(ctx context.Context, input ports.InventoryInput) error {
	return c.send(ctx, http.MethodPost, "/inventory/", input, nil)
}

// UpdateInventory replaces an existing item's fields.
func (c *Client) UpdateInventory(ctx context.Context, id int64, input ports.InventoryInput) error {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/inventory/%d", id), input, nil)
}

// DeleteInventory removes an item.
func (c *Client) DeleteInventory(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/inventory/%d", id), nil, nil)
}

// SearchInventory runs a free-text search over items.
func (c *Client) SearchInventory(ctx context.Context, query string) ([]domain.InventoryItem, error) {
	var env itemsEnvelope
	path := "/inventory/search?q=" + url.QueryEscape(query)
	if err := c.getJSON(ctx, path, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// LowStockInventory fetches items at or below their reorder level.
func (c *Client) LowStockInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	var env itemsEnvelope
	if err := c.getJSON(ctx, "/inventory/low-stock", &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}
