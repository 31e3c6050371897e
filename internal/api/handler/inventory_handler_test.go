package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ifds/dashboard/internal/core/domain"
)

func inventoryValues(quantity string) url.Values {
	return url.Values{
		"item_name":     {"Flour"},
		"category":      {"dry goods"},
		"quantity":      {quantity},
		"unit":          {"kg"},
		"reorder_level": {"5"},
		"unit_price":    {"1.25"},
	}
}

func TestInventoryAddSuccess(t *testing.T) {
	e := newTestEcho(t)
	store := &stubSessions{sess: sessionFor(domain.RoleStaff)}
	inv := &stubInventory{}
	h := NewInventoryHandler(inv, store, zerolog.Nop())

	rec, err := perform(e, store, h.Add, formRequest("/inventory/add", inventoryValues("10")), nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	assertRedirect(t, rec, "/inventory")
	assertFlash(t, store, domain.FlashSuccess, "Item added successfully!")
	if inv.lastAdd.ItemName != "Flour" || inv.lastAdd.Quantity != 10 || inv.lastAdd.ReorderLevel != 5 {
		t.Fatalf("add input = %+v", inv.lastAdd)
	}
}

func TestInventoryAddNonNumericQuantityRerendersPopulated(t *testing.T) {
	e := newTestEcho(t)
	store := &stubSessions{sess: sessionFor(domain.RoleStaff)}
	inv := &stubInventory{}
	h := NewInventoryHandler(inv, store, zerolog.Nop())

	rec, err := perform(e, store, h.Add, formRequest("/inventory/add", inventoryValues("lots")), nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `value="Flour"`) {
		t.Fatal("item name not preserved in re-rendered form")
	}
	if inv.addCalls != 0 {
		t.Fatal("invalid quantity must not reach the upstream")
	}
}

func TestInventorySearchUsesQueryParam(t *testing.T) {
	e := newTestEcho(t)
	store := &stubSessions{sess: sessionFor(domain.RoleStaff)}
	inv := &stubInventory{searchItems: []domain.InventoryItem{{ID: 1, ItemName: "Milk", Unit: "l"}}}
	h := NewInventoryHandler(inv, store, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/inventory?q=milk", nil)
	rec, err := perform(e, store, h.List, req, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if inv.lastQuery != "milk" {
		t.Fatalf("search query = %q, want milk", inv.lastQuery)
	}
	if !strings.Contains(rec.Body.String(), "Milk") {
		t.Fatal("search results missing from page")
	}
}

func TestInventoryLowStockFilter(t *testing.T) {
	e := newTestEcho(t)
	store := &stubSessions{sess: sessionFor(domain.RoleStaff)}
	inv := &stubInventory{
		items:    []domain.InventoryItem{{ID: 1, ItemName: "Milk"}, {ID: 2, ItemName: "Flour"}},
		lowItems: []domain.InventoryItem{{ID: 2, ItemName: "Flour", Quantity: 1, ReorderLevel: 5}},
	}
	h := NewInventoryHandler(inv, store, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/inventory?filter=low-stock", nil)
	rec, err := perform(e, store, h.List, req, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Flour") {
		t.Fatal("low-stock item missing")
	}
	if strings.Contains(body, "Milk") {
		t.Fatal("full list rendered despite low-stock filter")
	}
}

func TestInventoryDeleteFlashesAndRedirects(t *testing.T) {
	e := newTestEcho(t)
	store := &stubSessions{sess: sessionFor(domain.RoleStaff)}
	inv := &stubInventory{}
	h := NewInventoryHandler(inv, store, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/inventory/4/delete", nil)
	rec, err := perform(e, store, h.Delete, req, map[string]string{"id": "4"})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}

	assertRedirect(t, rec, "/inventory")
	assertFlash(t, store, domain.FlashSuccess, "Item deleted successfully!")
	if inv.deletedID != 4 {
		t.Fatalf("deleted id = %d, want 4", inv.deletedID)
	}
}
