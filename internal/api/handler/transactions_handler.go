package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ifds/dashboard/internal/core/domain"
	"github.com/ifds/dashboard/internal/core/ports"
)

// TransactionsHandler serves the transaction history and the stock-in /
// stock-out / waste recording form.
type TransactionsHandler struct {
	transactions ports.TransactionAPI
	inventory    ports.InventoryAPI
	sessions     ports.SessionStore
	log          zerolog.Logger
}

func NewTransactionsHandler(transactions ports.TransactionAPI, inventory ports.InventoryAPI, sessions ports.SessionStore, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{transactions: transactions, inventory: inventory, sessions: sessions, log: log}
}

type transactionForm struct {
	Type        string `form:"type" validate:"required,oneof=stock_in stock_out waste"`
	InventoryID string `form:"inventory_id" validate:"required,numeric"`
	Quantity    string `form:"quantity" validate:"required,numeric"`
	Reason      string `form:"reason"`
	ReferenceNo string `form:"reference_no"`
}

type transactionsContent struct {
	Transactions []domain.Transaction
	Summary      domain.TransactionSummary
	Items        []domain.InventoryItem
	Form         transactionForm
}

// List fetches the history, the summary, and the inventory (for the item
// selector) concurrently and joins them before rendering. A failure on any
// of the three surfaces a banner while whatever loaded still renders.
func (h *TransactionsHandler) List(c echo.Context) error {
	return h.renderList(c, http.StatusOK, transactionForm{Type: "stock_in"}, "")
}

func (h *TransactionsHandler) renderList(c echo.Context, code int, form transactionForm, inlineErr string) error {
	content := transactionsContent{Form: form}
	ctx := reqCtx(c)

	var g errgroup.Group
	g.Go(func() error {
		transactions, err := h.transactions.ListTransactions(ctx)
		if err == nil {
			content.Transactions = transactions
		}
		return err
	})
	g.Go(func() error {
		summary, err := h.transactions.TransactionSummary(ctx)
		if err == nil {
			content.Summary = summary
		}
		return err
	})
	g.Go(func() error {
		items, err := h.inventory.ListInventory(ctx)
		if err == nil {
			content.Items = items
		}
		return err
	})
	if err := g.Wait(); err != nil {
		h.log.Error().Err(err).Msg("failed to load transactions")
		if inlineErr == "" {
			inlineErr = upstreamMessage(err, "Failed to load transactions.")
		}
	}

	return renderPage(c, h.sessions, code, "transactions.html", "Transactions", content, inlineErr)
}

// Record dispatches the form to the matching endpoint, then reloads the
// page's data set through a redirect with a success acknowledgment.
func (h *TransactionsHandler) Record(c echo.Context) error {
	var form transactionForm
	if err := c.Bind(&form); err != nil {
		return h.renderList(c, http.StatusBadRequest, form, "invalid form submission")
	}
	if err := c.Validate(form); err != nil {
		return h.renderList(c, http.StatusBadRequest, form, err.Error())
	}

	inventoryID, err := strconv.ParseInt(form.InventoryID, 10, 64)
	if err != nil {
		return h.renderList(c, http.StatusBadRequest, form, "select an item")
	}
	quantity, err := strconv.ParseFloat(form.Quantity, 64)
	if err != nil || quantity <= 0 {
		return h.renderList(c, http.StatusBadRequest, form, "quantity must be greater than zero")
	}

	input := ports.TransactionInput{
		InventoryID: inventoryID,
		Quantity:    quantity,
		Reason:      form.Reason,
		ReferenceNo: form.ReferenceNo,
	}

	switch form.Type {
	case "stock_in":
		err = h.transactions.StockIn(reqCtx(c), input)
	case "stock_out":
		err = h.transactions.StockOut(reqCtx(c), input)
	case "waste":
		err = h.transactions.RecordWaste(reqCtx(c), input)
	}
	if err != nil {
		h.log.Error().Err(err).Str("type", form.Type).Msg("failed to record transaction")
		return h.renderList(c, http.StatusBadGateway, form, upstreamMessage(err, "Failed to record transaction"))
	}

	_ = h.sessions.AddFlash(c.Response(), c.Request(), domain.FlashSuccess, "Transaction recorded successfully!")
	return c.Redirect(http.StatusSeeOther, "/transactions")
}
