package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ifds/dashboard/internal/core/domain"
	"github.com/ifds/dashboard/internal/core/ports"
)

// InventoryHandler serves the inventory list, search, low-stock filter, and
// the add/delete actions.
type InventoryHandler struct {
	inventory ports.InventoryAPI
	sessions  ports.SessionStore
	log       zerolog.Logger
}

func NewInventoryHandler(inventory ports.InventoryAPI, sessions ports.SessionStore, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, sessions: sessions, log: log}
}

// inventoryForm keeps the raw submitted strings so a failed submission
// re-renders exactly what the user typed.
type inventoryForm struct {
	ItemName     string `form:"item_name" validate:"required"`
	Category     string `form:"category" validate:"required"`
	Quantity     string `form:"quantity" validate:"required,numeric"`
	Unit         string `form:"unit" validate:"required"`
	ReorderLevel string `form:"reorder_level" validate:"omitempty,numeric"`
	UnitPrice    string `form:"unit_price" validate:"omitempty,numeric"`
	SupplierName string `form:"supplier_name"`
}

func (f inventoryForm) toInput() (ports.InventoryInput, error) {
	quantity, err := strconv.ParseFloat(f.Quantity, 64)
	if err != nil {
		return ports.InventoryInput{}, err
	}
	input := ports.InventoryInput{
		ItemName:     f.ItemName,
		Category:     f.Category,
		Quantity:     quantity,
		Unit:         f.Unit,
		SupplierName: f.SupplierName,
	}
	if f.ReorderLevel != "" {
		if input.ReorderLevel, err = strconv.ParseFloat(f.ReorderLevel, 64); err != nil {
			return ports.InventoryInput{}, err
		}
	}
	if f.UnitPrice != "" {
		if input.UnitPrice, err = strconv.ParseFloat(f.UnitPrice, 64); err != nil {
			return ports.InventoryInput{}, err
		}
	}
	return input, nil
}

type inventoryContent struct {
	Items   []domain.InventoryItem
	Query   string
	LowOnly bool
	Form    inventoryForm
}

// List renders the inventory page. The q parameter switches to the search
// endpoint and filter=low-stock to the low-stock endpoint; otherwise the
// full list is fetched.
func (h *InventoryHandler) List(c echo.Context) error {
	return h.renderList(c, http.StatusOK, inventoryForm{}, "")
}

func (h *InventoryHandler) renderList(c echo.Context, code int, form inventoryForm, inlineErr string) error {
	content := inventoryContent{
		Query:   c.QueryParam("q"),
		LowOnly: c.QueryParam("filter") == "low-stock",
		Form:    form,
	}

	var (
		items []domain.InventoryItem
		err   error
	)
	switch {
	case content.Query != "":
		items, err = h.inventory.SearchInventory(reqCtx(c), content.Query)
	case content.LowOnly:
		items, err = h.inventory.LowStockInventory(reqCtx(c))
	default:
		items, err = h.inventory.ListInventory(reqCtx(c))
	}
	if err != nil {
		h.log.Error().Err(err).Msg("failed to load inventory")
		if inlineErr == "" {
			inlineErr = upstreamMessage(err, "Failed to load inventory.")
		}
	} else {
		content.Items = items
	}

	return renderPage(c, h.sessions, code, "inventory.html", "Inventory", content, inlineErr)
}

// Add creates an item and reloads the list. Validation and upstream
// failures re-render the page with the form still populated.
func (h *InventoryHandler) Add(c echo.Context) error {
	var form inventoryForm
	if err := c.Bind(&form); err != nil {
		return h.renderList(c, http.StatusBadRequest, form, "invalid form submission")
	}
	if err := c.Validate(form); err != nil {
		return h.renderList(c, http.StatusBadRequest, form, err.Error())
	}

	input, err := form.toInput()
	if err != nil {
		return h.renderList(c, http.StatusBadRequest, form, "quantity, reorder level and unit price must be numbers")
	}

	if err := h.inventory.AddInventory(reqCtx(c), input); err != nil {
		h.log.Error().Err(err).Str("item", form.ItemName).Msg("failed to add inventory item")
		return h.renderList(c, http.StatusBadGateway, form, upstreamMessage(err, "Failed to add item"))
	}

	_ = h.sessions.AddFlash(c.Response(), c.Request(), domain.FlashSuccess, "Item added successfully!")
	return c.Redirect(http.StatusSeeOther, "/inventory")
}

// Delete removes an item and reloads the list.
func (h *InventoryHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	if err := h.inventory.DeleteInventory(reqCtx(c), id); err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("failed to delete inventory item")
		_ = h.sessions.AddFlash(c.Response(), c.Request(), domain.FlashError, upstreamMessage(err, "Failed to delete item"))
		return c.Redirect(http.StatusSeeOther, "/inventory")
	}

	_ = h.sessions.AddFlash(c.Response(), c.Request(), domain.FlashSuccess, "Item deleted successfully!")
	return c.Redirect(http.StatusSeeOther, "/inventory")
}
