package upstream

import (
	"context"
	"net/http"

	"github.com/ifds/dashboard/internal/core/domain"
	"github.com/ifds/dashboard/internal/core/ports"
)

type transactionsEnvelope struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// ListTransactions fetches the transaction history.
func (c *Client) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var env transactionsEnvelope
	if err := c.getJSON(ctx, "/transactions/", &env); err != nil {
		return nil, err
	}
	return env.Transactions, nil
}

// StockIn records an inbound stock movement.
func (c *Client) StockIn(ctx context.Context, input ports.TransactionInput) error {
	return c.send(ctx, http.MethodPost, "/transactions/stock-in", input, nil)
}

// StockOut records an outbound stock movement.
func (c *Client) StockOut(ctx context.Context, input ports.TransactionInput) error {
	return c.send(ctx, http.MethodPost, "/transactions/stock-out", input, nil)
}

// RecordWaste records spoiled or discarded stock.
func (c *Client) RecordWaste(ctx context.Context, input ports.TransactionInput) error {
	return c.send(ctx, http.MethodPost, "/transactions/waste", input, nil)
}

// TransactionSummary fetches aggregate figures; the shape is owned by the
// API and rendered as-is.
func (c *Client) TransactionSummary(ctx context.Context) (domain.TransactionSummary, error) {
	var summary domain.TransactionSummary
	if err := c.getJSON(ctx, "/transactions/summary", &summary); err != nil {
		return nil, err
	}
	return summary, nil
}
