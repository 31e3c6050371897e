package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ifds/dashboard/internal/api/metrics"
	"github.com/ifds/dashboard/internal/core/domain"
	"github.com/ifds/dashboard/internal/core/ports"
)

// ReportsHandler serves the reports screen and the JSON export. The whole
// route is admin/manager only; the guard enforces that before these run.
type ReportsHandler struct {
	reports  ports.ReportAPI
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewReportsHandler(reports ports.ReportAPI, sessions ports.SessionStore, log zerolog.Logger) *ReportsHandler {
	return &ReportsHandler{reports: reports, sessions: sessions, log: log}
}

// reportChoice is one selectable report on the page.
type reportChoice struct {
	ID   string
	Name string
	Icon string
}

var reportChoices = []reportChoice{
	{ID: "daily", Name: "Daily Inventory Report", Icon: "📦"},
	{ID: "weekly-fraud", Name: "Weekly Fraud Summary", Icon: "🚨"},
	{ID: "monthly", Name: "Monthly Analytics", Icon: "📊"},
	{ID: "waste", Name: "Waste Analysis", Icon: "🗑️"},
	{ID: "low-stock", Name: "Low Stock Alert", Icon: "⚠️"},
	{ID: "user-activity", Name: "User Activity", Icon: "👤"},
}

// fetch maps a report identifier to its endpoint call.
func (h *ReportsHandler) fetch(ctx context.Context, id string) (*domain.Report, bool, error) {
	switch id {
	case "daily":
		r, err := h.reports.DailyInventory(ctx)
		return r, true, err
	case "weekly-fraud":
		r, err := h.reports.WeeklyFraud(ctx)
		return r, true, err
	case "monthly":
		r, err := h.reports.MonthlyAnalytics(ctx)
		return r, true, err
	case "waste":
		r, err := h.reports.WasteAnalysis(ctx)
		return r, true, err
	case "low-stock":
		r, err := h.reports.LowStockAlert(ctx)
		return r, true, err
	case "user-activity":
		r, err := h.reports.UserActivity(ctx)
		return r, true, err
	}
	return nil, false, nil
}

type reportsContent struct {
	Choices  []reportChoice
	Selected string
	Report   *domain.Report
}

// Page renders the chooser, generating the selected report when the report
// query parameter names one.
func (h *ReportsHandler) Page(c echo.Context) error {
	content := reportsContent{Choices: reportChoices}
	loadErr := ""

	if id := c.QueryParam("report"); id != "" {
		report, known, err := h.fetch(reqCtx(c), id)
		switch {
		case !known:
			loadErr = "Unknown report type."
		case err != nil:
			h.log.Error().Err(err).Str("report", id).Msg("failed to generate report")
			loadErr = upstreamMessage(err, "Failed to generate report")
		default:
			content.Selected = id
			content.Report = report
		}
	}

	return renderPage(c, h.sessions, http.StatusOK, "reports.html", "Reports", content, loadErr)
}

// Download streams the report payload as a pretty-printed JSON attachment
// named <report-id>-report-<date>.json. The content is exactly what the
// upstream returned, re-indented only.
func (h *ReportsHandler) Download(c echo.Context) error {
	id := c.Param("id")
	report, known, err := h.fetch(reqCtx(c), id)
	if !known {
		return echo.NewHTTPError(http.StatusNotFound, "unknown report type")
	}
	if err != nil {
		h.log.Error().Err(err).Str("report", id).Msg("failed to fetch report for download")
		_ = h.sessions.AddFlash(c.Response(), c.Request(), domain.FlashError, upstreamMessage(err, "Failed to generate report"))
		return c.Redirect(http.StatusSeeOther, "/reports")
	}

	body, err := exportJSON(report.Raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "report payload unreadable")
	}

	metrics.ReportDownloadsTotal.WithLabelValues(id).Inc()
	filename := exportFilename(id, time.Now())
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
}

// exportJSON re-indents the raw payload without reordering or rewriting any
// value, so the exported bytes match the received ones modulo whitespace.
func exportJSON(raw json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportFilename(id string, now time.Time) string {
	return fmt.Sprintf("%s-report-%s.json", id, now.Format("2006-01-02"))
}
