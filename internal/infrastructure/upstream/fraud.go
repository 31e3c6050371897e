package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ifds/dashboard/internal/core/domain"
	"github.com/ifds/dashboard/internal/core/ports"
)

type alertsEnvelope struct {
	Alerts []domain.FraudAlert `json:"alerts"`
}

type alertEnvelope struct {
	Alert *domain.FraudAlert `json:"alert"`
}

type statisticsEnvelope struct {
	Statistics *domain.FraudStatistics `json:"statistics"`
}

type pendingCountEnvelope struct {
	PendingCount int `json:"pending_count"`
}

// ListAlerts fetches all fraud alerts.
func (c *Client) ListAlerts(ctx context.Context) ([]domain.FraudAlert, error) {
	var env alertsEnvelope
	if err := c.getJSON(ctx, "/fraud/", &env); err != nil {
		return nil, err
	}
	return env.Alerts, nil
}

// GetAlert fetches one alert by ID.
func (c *Client) GetAlert(ctx context.Context, id int64) (*domain.FraudAlert, error) {
	var env alertEnvelope
	if err := c.getJSON(ctx, fmt.Sprintf("/fraud/%d", id), &env); err != nil {
		return nil, err
	}
	return env.Alert, nil
}

// ReviewAlert submits a review decision. A 403 from the upstream satisfies
// errors.Is(err, domain.ErrForbidden) so the caller can surface a distinct
// access-denied message.
func (c *Client) ReviewAlert(ctx context.Context, id int64, input ports.ReviewInput) error {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/fraud/%d/review", id), input, nil)
}

// FraudStatistics fetches alert aggregates.
func (c *Client) FraudStatistics(ctx context.Context) (*domain.FraudStatistics, error) {
	var env statisticsEnvelope
	if err := c.getJSON(ctx, "/fraud/statistics", &env); err != nil {
		return nil, err
	}
	return env.Statistics, nil
}

// PendingCount fetches the number of alerts awaiting review.
func (c *Client) PendingCount(ctx context.Context) (int, error) {
	var env pendingCountEnvelope
	if err := c.getJSON(ctx, "/fraud/pending-count", &env); err != nil {
		return 0, err
	}
	return env.PendingCount, nil
}
