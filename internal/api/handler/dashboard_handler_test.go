package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ifds/dashboard/internal/core/domain"
)

func TestDashboardRendersSummary(t *testing.T) {
	e := newTestEcho(t)
	store := &stubSessions{sess: sessionFor(domain.RoleManager)}
	summary := &domain.DashboardSummary{GeneratedAt: "2026-08-29T08:00:00Z"}
	summary.Inventory.TotalItems = 42
	summary.FraudAlerts.Pending = 3
	reports := &stubReports{summary: summary}
	h := NewDashboardHandler(reports, store, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec, err := perform(e, store, h.Dashboard, req, nil)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Welcome back, alice!") {
		t.Fatal("greeting missing")
	}
	if !strings.Contains(body, "<h3>42</h3>") {
		t.Fatal("total items missing")
	}
}

func TestDashboardRendersZeroedOnFailure(t *testing.T) {
	e := newTestEcho(t)
	store := &stubSessions{sess: sessionFor(domain.RoleStaff)}
	reports := &stubReports{summaryErr: errors.New("connection refused")}
	h := NewDashboardHandler(reports, store, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec, err := perform(e, store, h.Dashboard, req, nil)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, page renders even when the fetch fails", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Failed to load dashboard data.") {
		t.Fatal("error banner missing")
	}
	if !strings.Contains(body, "<h3>0</h3>") {
		t.Fatal("zeroed figures missing")
	}
}
