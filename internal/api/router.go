package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ifds/dashboard/internal/api/handler"
	"github.com/ifds/dashboard/internal/api/middleware"
	"github.com/ifds/dashboard/internal/api/view"
	"github.com/ifds/dashboard/internal/core/ports"
)

// Dependencies carries everything the router wires into handlers. The five
// API interfaces are usually one upstream client; tests substitute stubs
// per area.
type Dependencies struct {
	Sessions     ports.SessionStore
	Auth         ports.AuthAPI
	Inventory    ports.InventoryAPI
	Transactions ports.TransactionAPI
	Fraud        ports.FraudAPI
	Reports      ports.ReportAPI
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("ifds_dashboard"))
	e.Use(middleware.LoadSession(deps.Sessions))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Sessions, deps.Log)
	dashboardHandler := handler.NewDashboardHandler(deps.Reports, deps.Sessions, deps.Log)
	inventoryHandler := handler.NewInventoryHandler(deps.Inventory, deps.Sessions, deps.Log)
	transactionsHandler := handler.NewTransactionsHandler(deps.Transactions, deps.Inventory, deps.Sessions, deps.Log)
	fraudHandler := handler.NewFraudHandler(deps.Fraud, deps.Sessions, deps.Log)
	reportsHandler := handler.NewReportsHandler(deps.Reports, deps.Sessions, deps.Log)
	healthHandler := handler.NewHealthHandler()

	// --- Public routes ---
	e.GET("/healthz", healthHandler.Liveness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)
	e.POST("/logout", authHandler.Logout)

	// --- Protected routes ---
	// Each subtree is wrapped with the guard for its policy-table entry, so
	// the route list cannot carry role literals of its own.
	guard := func(path string) echo.MiddlewareFunc {
		return middleware.GuardRoute(deps.Sessions, path)
	}

	e.GET("/", redirectToDashboard, guard("/"))
	e.GET("/dashboard", dashboardHandler.Dashboard, guard("/dashboard"))

	e.GET("/inventory", inventoryHandler.List, guard("/inventory"))
	e.POST("/inventory/add", inventoryHandler.Add, guard("/inventory"))
	e.POST("/inventory/:id/delete", inventoryHandler.Delete, guard("/inventory"))

	e.GET("/transactions", transactionsHandler.List, guard("/transactions"))
	e.POST("/transactions/record", transactionsHandler.Record, guard("/transactions"))

	e.GET("/fraud-alerts", fraudHandler.List, guard("/fraud-alerts"))
	e.GET("/fraud-alerts/:id", fraudHandler.Detail, guard("/fraud-alerts"))
	e.POST("/fraud-alerts/:id/review", fraudHandler.Review, guard("/fraud-alerts"))

	e.GET("/reports", reportsHandler.Page, guard("/reports"))
	e.GET("/reports/:id/download", reportsHandler.Download, guard("/reports"))

	return e, nil
}

func redirectToDashboard(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/dashboard")
}
