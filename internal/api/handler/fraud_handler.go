package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ifds/dashboard/internal/api/middleware"
	"github.com/ifds/dashboard/internal/core/domain"
	"github.com/ifds/dashboard/internal/core/policy"
	"github.com/ifds/dashboard/internal/core/ports"
)

// Messages for the locally-rejected review paths. The role re-check and the
// notes check both fire before any upstream call is made.
const (
	reviewNotesRequired = "Please provide notes for this review."
	reviewDenied        = "You do not have permission to review fraud alerts."
)

// FraudHandler serves the alerts list, the alert detail page, and the
// review action.
type FraudHandler struct {
	fraud    ports.FraudAPI
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewFraudHandler(fraud ports.FraudAPI, sessions ports.SessionStore, log zerolog.Logger) *FraudHandler {
	return &FraudHandler{fraud: fraud, sessions: sessions, log: log}
}

type fraudContent struct {
	Alerts     []domain.FraudAlert
	Statistics *domain.FraudStatistics
	CanReview  bool
}

// List fetches alerts and statistics concurrently and joins them before
// rendering. Review affordances render only for roles the policy allows.
func (h *FraudHandler) List(c echo.Context) error {
	content := fraudContent{CanReview: policy.CanReviewAlerts(middleware.CurrentSession(c))}
	ctx := reqCtx(c)
	loadErr := ""

	var g errgroup.Group
	g.Go(func() error {
		alerts, err := h.fraud.ListAlerts(ctx)
		if err == nil {
			content.Alerts = alerts
		}
		return err
	})
	g.Go(func() error {
		stats, err := h.fraud.FraudStatistics(ctx)
		if err == nil {
			content.Statistics = stats
		}
		return err
	})
	if err := g.Wait(); err != nil {
		h.log.Error().Err(err).Msg("failed to load fraud alerts")
		loadErr = upstreamMessage(err, "Failed to load fraud alerts.")
	}

	return renderPage(c, h.sessions, http.StatusOK, "fraud_alerts.html", "Fraud Alerts", content, loadErr)
}

type fraudDetailContent struct {
	Alert     *domain.FraudAlert
	CanReview bool
	Notes     string
}

// Detail renders a single alert with its review form.
func (h *FraudHandler) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid alert id")
	}

	alert, err := h.fraud.GetAlert(reqCtx(c), id)
	if err != nil || alert == nil {
		h.log.Error().Err(err).Int64("id", id).Msg("failed to load fraud alert")
		_ = h.sessions.AddFlash(c.Response(), c.Request(), domain.FlashError, upstreamMessage(err, "Failed to load alert"))
		return c.Redirect(http.StatusSeeOther, "/fraud-alerts")
	}

	content := fraudDetailContent{
		Alert:     alert,
		CanReview: policy.CanReviewAlerts(middleware.CurrentSession(c)),
	}
	return renderPage(c, h.sessions, http.StatusOK, "fraud_alert_detail.html", "Fraud Alert", content, "")
}

type reviewForm struct {
	Status string `form:"status" validate:"required,oneof=resolved dismissed"`
	Notes  string `form:"notes"`
}

// Review submits a review decision. The role is re-checked client-side and
// the notes must be non-empty before any call goes out; an upstream 403 is
// still surfaced as a distinct access-denied message, because hiding the
// button is not the same as the action being forbidden.
func (h *FraudHandler) Review(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid alert id")
	}

	if !policy.CanReviewAlerts(middleware.CurrentSession(c)) {
		_ = h.sessions.AddFlash(c.Response(), c.Request(), domain.FlashError, reviewDenied)
		return c.Redirect(http.StatusSeeOther, "/fraud-alerts")
	}

	var form reviewForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(form); err != nil {
		_ = h.sessions.AddFlash(c.Response(), c.Request(), domain.FlashError, err.Error())
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/fraud-alerts/%d", id))
	}
	if strings.TrimSpace(form.Notes) == "" {
		_ = h.sessions.AddFlash(c.Response(), c.Request(), domain.FlashError, reviewNotesRequired)
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/fraud-alerts/%d", id))
	}

	input := ports.ReviewInput{Status: form.Status, Notes: form.Notes}
	if err := h.fraud.ReviewAlert(reqCtx(c), id, input); err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("failed to review fraud alert")
		msg := upstreamMessage(err, "Failed to review alert")
		if errors.Is(err, domain.ErrForbidden) {
			msg = reviewDenied
		}
		_ = h.sessions.AddFlash(c.Response(), c.Request(), domain.FlashError, msg)
		return c.Redirect(http.StatusSeeOther, "/fraud-alerts")
	}

	_ = h.sessions.AddFlash(c.Response(), c.Request(), domain.FlashSuccess, fmt.Sprintf("Alert marked as %s!", form.Status))
	return c.Redirect(http.StatusSeeOther, "/fraud-alerts")
}
