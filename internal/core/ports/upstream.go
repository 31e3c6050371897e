package ports

import (
	"context"

	"github.com/ifds/dashboard/internal/core/domain"
)

// The upstream gateway is the sole component issuing HTTP calls to the
// backend API. The session's bearer token travels in the request context so
// the client can attach it centrally; requests without a token proceed
// unauthenticated and are rejected (or not) upstream.

type tokenKey struct{}

// WithToken returns a context carrying the session's bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext extracts the bearer token, if any.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// RegisterInput carries a new account request. The role is chosen by the
// registrant; the upstream API owns any restriction on it.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AuthAPI covers the /auth endpoints.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Register(ctx context.Context, input RegisterInput) error
	Profile(ctx context.Context) (*domain.User, error)
}

// InventoryInput mirrors the add/update form fields.
type InventoryInput struct {
	ItemName     string  `json:"item_name"`
	Category     string  `json:"category"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	ReorderLevel float64 `json:"reorder_level"`
	UnitPrice    float64 `json:"unit_price"`
	SupplierName string  `json:"supplier_name,omitempty"`
}

// InventoryAPI covers the /inventory endpoints.
type InventoryAPI interface {
	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)
	GetInventoryItem(ctx context.Context, id int64) (*domain.InventoryItem, error)
	AddInventory(ctx context.Context, input InventoryInput) error
	UpdateInventory(ctx context.Context, id int64, input InventoryInput) error
	DeleteInventory(ctx context.Context, id int64) error
	SearchInventory(ctx context.Context, query string) ([]domain.InventoryItem, error)
	LowStockInventory(ctx context.Context) ([]domain.InventoryItem, error)
}

// TransactionInput mirrors the record-transaction form fields.
type TransactionInput struct {
	InventoryID int64   `json:"inventory_id"`
	Quantity    float64 `json:"quantity"`
	Reason      string  `json:"reason,omitempty"`
	ReferenceNo string  `json:"reference_no,omitempty"`
}

// TransactionAPI covers the /transactions endpoints.
type TransactionAPI interface {
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	StockIn(ctx context.Context, input TransactionInput) error
	StockOut(ctx context.Context, input TransactionInput) error
	RecordWaste(ctx context.Context, input TransactionInput) error
	TransactionSummary(ctx context.Context) (domain.TransactionSummary, error)
}

// ReviewInput carries a fraud-alert review decision.
type ReviewInput struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// FraudAPI covers the /fraud endpoints.
type FraudAPI interface {
	ListAlerts(ctx context.Context) ([]domain.FraudAlert, error)
	GetAlert(ctx context.Context, id int64) (*domain.FraudAlert, error)
	ReviewAlert(ctx context.Context, id int64, input ReviewInput) error
	FraudStatistics(ctx context.Context) (*domain.FraudStatistics, error)
	PendingCount(ctx context.Context) (int, error)
}

// ReportAPI covers the /reports endpoints, one method per report.
type ReportAPI interface {
	DailyInventory(ctx context.Context) (*domain.Report, error)
	WeeklyFraud(ctx context.Context) (*domain.Report, error)
	MonthlyAnalytics(ctx context.Context) (*domain.Report, error)
	UserActivity(ctx context.Context) (*domain.Report, error)
	LowStockAlert(ctx context.Context) (*domain.Report, error)
	WasteAnalysis(ctx context.Context) (*domain.Report, error)
	DashboardSummary(ctx context.Context) (*domain.DashboardSummary, error)
}
