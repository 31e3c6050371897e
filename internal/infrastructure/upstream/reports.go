package upstream

import (
	"context"
	"encoding/json"

	"github.com/ifds/dashboard/internal/core/domain"
)

// report fetches a report endpoint and keeps the payload verbatim so a later
// export reproduces exactly what was received.
func (c *Client) report(ctx context.Context, path string) (*domain.Report, error) {
	data, err := c.do(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}
	var meta struct {
		ReportType string `json:"report_type"`
	}
	_ = json.Unmarshal(data, &meta)
	return &domain.Report{ReportType: meta.ReportType, Raw: json.RawMessage(data)}, nil
}

func (c *Client) DailyInventory(ctx context.Context) (*domain.Report, error) {
	return c.report(ctx, "/reports/daily-inventory")
}

func (c *Client) WeeklyFraud(ctx context.Context) (*domain.Report, error) {
	return c.report(ctx, "/reports/weekly-fraud")
}

func (c *Client) MonthlyAnalytics(ctx context.Context) (*domain.Report, error) {
	return c.report(ctx, "/reports/monthly-analytics")
}

func (c *Client) UserActivity(ctx context.Context) (*domain.Report, error) {
	return c.report(ctx, "/reports/user-activity")
}

func (c *Client) LowStockAlert(ctx context.Context) (*domain.Report, error) {
	return c.report(ctx, "/reports/low-stock-alert")
}

func (c *Client) WasteAnalysis(ctx context.Context) (*domain.Report, error) {
	return c.report(ctx, "/reports/waste-analysis")
}

// DashboardSummary fetches the landing-page aggregate. Missing sections
// decode to zero values and render as 0.
func (c *Client) DashboardSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	var summary domain.DashboardSummary
	if err := c.getJSON(ctx, "/reports/dashboard-summary", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
