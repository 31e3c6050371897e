package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ifds/dashboard/internal/api/middleware"
	"github.com/ifds/dashboard/internal/api/view"
	"github.com/ifds/dashboard/internal/core/domain"
	"github.com/ifds/dashboard/internal/core/ports"
)

// newTestEcho builds an echo instance with the real renderer and validator,
// so tests exercise the same templates and validation rules production does.
func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	r, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("build renderer: %v", err)
	}
	e.Renderer = r
	e.Validator = NewValidator()
	return e
}

// stubSessions is an in-memory SessionStore recording what handlers did.
type stubSessions struct {
	sess     domain.Session
	flashes  []domain.Flash
	setToken string
	cleared  bool
}

func (s *stubSessions) Get(*http.Request) domain.Session { return s.sess }

func (s *stubSessions) Set(_ http.ResponseWriter, _ *http.Request, token string, user domain.User) error {
	s.setToken = token
	s.sess = domain.Session{Token: token, User: &user}
	return nil
}

func (s *stubSessions) Clear(http.ResponseWriter, *http.Request) error {
	s.cleared = true
	s.sess = domain.Session{}
	return nil
}

func (s *stubSessions) AddFlash(_ http.ResponseWriter, _ *http.Request, kind, message string) error {
	s.flashes = append(s.flashes, domain.Flash{Kind: kind, Message: message})
	return nil
}

func (s *stubSessions) Flashes(http.ResponseWriter, *http.Request) []domain.Flash {
	out := s.flashes
	s.flashes = nil
	return out
}

func sessionFor(role string) domain.Session {
	return domain.Session{
		Token: "T1",
		User:  &domain.User{ID: 1, Username: "alice", Email: "alice@example.com", Role: role},
	}
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// perform runs a handler behind the session-loading middleware, the way the
// router wires it, and returns the recorder plus any unhandled error.
func perform(e *echo.Echo, store ports.SessionStore, h echo.HandlerFunc, req *http.Request, params map[string]string) (*httptest.ResponseRecorder, error) {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for name, value := range params {
		c.SetParamNames(name)
		c.SetParamValues(value)
	}
	err := middleware.LoadSession(store)(h)(c)
	return rec, err
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

func assertFlash(t *testing.T, store *stubSessions, kind, message string) {
	t.Helper()
	for _, f := range store.flashes {
		if f.Kind == kind && f.Message == message {
			return
		}
	}
	t.Fatalf("flash %q/%q not queued; got %v", kind, message, store.flashes)
}

// stubAuth implements ports.AuthAPI with canned responses.
type stubAuth struct {
	loginToken    string
	loginUser     *domain.User
	loginErr      error
	loginCalls    int
	registerErr   error
	registerCalls int
	lastRegister  ports.RegisterInput
}

func (a *stubAuth) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	a.loginCalls++
	return a.loginToken, a.loginUser, a.loginErr
}

func (a *stubAuth) Register(_ context.Context, input ports.RegisterInput) error {
	a.registerCalls++
	a.lastRegister = input
	return a.registerErr
}

func (a *stubAuth) Profile(context.Context) (*domain.User, error) { return a.loginUser, nil }

// stubFraud implements ports.FraudAPI.
type stubFraud struct {
	alerts      []domain.FraudAlert
	alert       *domain.FraudAlert
	stats       *domain.FraudStatistics
	reviewErr   error
	reviewCalls int
	lastReview  ports.ReviewInput
}

func (f *stubFraud) ListAlerts(context.Context) ([]domain.FraudAlert, error) {
	return f.alerts, nil
}

func (f *stubFraud) GetAlert(context.Context, int64) (*domain.FraudAlert, error) {
	return f.alert, nil
}

func (f *stubFraud) ReviewAlert(_ context.Context, _ int64, input ports.ReviewInput) error {
	f.reviewCalls++
	f.lastReview = input
	return f.reviewErr
}

func (f *stubFraud) FraudStatistics(context.Context) (*domain.FraudStatistics, error) {
	if f.stats != nil {
		return f.stats, nil
	}
	return &domain.FraudStatistics{}, nil
}

func (f *stubFraud) PendingCount(context.Context) (int, error) { return len(f.alerts), nil }

// stubInventory implements ports.InventoryAPI, recording writes and serving
// a fixed item set, with searchItems/lowItems for the filtered endpoints.
type stubInventory struct {
	items       []domain.InventoryItem
	searchItems []domain.InventoryItem
	lowItems    []domain.InventoryItem
	lastQuery   string
	addErr      error
	addCalls    int
	lastAdd     ports.InventoryInput
	deleteErr   error
	deletedID   int64
}

func (i *stubInventory) ListInventory(context.Context) ([]domain.InventoryItem, error) {
	return i.items, nil
}

func (i *stubInventory) GetInventoryItem(_ context.Context, id int64) (*domain.InventoryItem, error) {
	for _, item := range i.items {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, nil
}

func (i *stubInventory) AddInventory(_ context.Context, input ports.InventoryInput) error {
	i.addCalls++
	i.lastAdd = input
	return i.addErr
}

func (i *stubInventory) UpdateInventory(_ context.Context, _ int64, input ports.InventoryInput) error {
	return nil
}

func (i *stubInventory) DeleteInventory(_ context.Context, id int64) error {
	if i.deleteErr != nil {
		return i.deleteErr
	}
	i.deletedID = id
	return nil
}

func (i *stubInventory) SearchInventory(_ context.Context, query string) ([]domain.InventoryItem, error) {
	i.lastQuery = query
	return i.searchItems, nil
}

func (i *stubInventory) LowStockInventory(context.Context) ([]domain.InventoryItem, error) {
	return i.lowItems, nil
}

// stubTransactions implements ports.TransactionAPI, recording which endpoint
// the handler dispatched to.
type stubTransactions struct {
	transactions []domain.Transaction
	recordErr    error
	recorded     string
	lastInput    ports.TransactionInput
}

func (s *stubTransactions) ListTransactions(context.Context) ([]domain.Transaction, error) {
	return s.transactions, nil
}

func (s *stubTransactions) record(kind string, input ports.TransactionInput) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.recorded = kind
	s.lastInput = input
	return nil
}

func (s *stubTransactions) StockIn(_ context.Context, input ports.TransactionInput) error {
	return s.record("stock_in", input)
}

func (s *stubTransactions) StockOut(_ context.Context, input ports.TransactionInput) error {
	return s.record("stock_out", input)
}

func (s *stubTransactions) RecordWaste(_ context.Context, input ports.TransactionInput) error {
	return s.record("waste", input)
}

func (s *stubTransactions) TransactionSummary(context.Context) (domain.TransactionSummary, error) {
	return domain.TransactionSummary{"total_transactions": 1}, nil
}

// stubReports implements ports.ReportAPI, serving the same report for every
// type. calls counts fetches across all report endpoints.
type stubReports struct {
	report     *domain.Report
	err        error
	calls      int
	summary    *domain.DashboardSummary
	summaryErr error
}

func (r *stubReports) fetch() (*domain.Report, error) {
	r.calls++
	return r.report, r.err
}

func (r *stubReports) DailyInventory(context.Context) (*domain.Report, error)   { return r.fetch() }
func (r *stubReports) WeeklyFraud(context.Context) (*domain.Report, error)      { return r.fetch() }
func (r *stubReports) MonthlyAnalytics(context.Context) (*domain.Report, error) { return r.fetch() }
func (r *stubReports) UserActivity(context.Context) (*domain.Report, error)     { return r.fetch() }
func (r *stubReports) LowStockAlert(context.Context) (*domain.Report, error)    { return r.fetch() }
func (r *stubReports) WasteAnalysis(context.Context) (*domain.Report, error)    { return r.fetch() }

func (r *stubReports) DashboardSummary(context.Context) (*domain.DashboardSummary, error) {
	if r.summaryErr != nil {
		return nil, r.summaryErr
	}
	if r.summary != nil {
		return r.summary, nil
	}
	return &domain.DashboardSummary{}, nil
}
