package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ifds/dashboard/internal/core/domain"
	"github.com/ifds/dashboard/internal/core/ports"
)

// DashboardHandler renders the landing page from the upstream summary
// aggregate.
type DashboardHandler struct {
	reports  ports.ReportAPI
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewDashboardHandler(reports ports.ReportAPI, sessions ports.SessionStore, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{reports: reports, sessions: sessions, log: log}
}

type dashboardContent struct {
	Summary *domain.DashboardSummary
}

// Dashboard fetches the summary on every visit. A failed fetch renders the
// page anyway with zeroed figures and an error banner; missing sections in a
// successful response default to 0.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	content := dashboardContent{Summary: &domain.DashboardSummary{}}
	loadErr := ""

	summary, err := h.reports.DashboardSummary(reqCtx(c))
	if err != nil {
		h.log.Error().Err(err).Msg("failed to load dashboard summary")
		loadErr = upstreamMessage(err, "Failed to load dashboard data.")
	} else if summary != nil {
		content.Summary = summary
	}

	return renderPage(c, h.sessions, http.StatusOK, "dashboard.html", "Dashboard", content, loadErr)
}
