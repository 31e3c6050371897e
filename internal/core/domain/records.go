package domain

import "encoding/json"

// Display records fetched from the upstream API. Schemas are owned by the
// API; this layer only guards optional fields for display and never enforces
// invariants locally.

type InventoryItem struct {
	ID           int64   `json:"id"`
	ItemName     string  `json:"item_name"`
	Category     string  `json:"category"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	ReorderLevel float64 `json:"reorder_level"`
	UnitPrice    float64 `json:"unit_price"`
	SupplierName string  `json:"supplier_name,omitempty"`
}

// LowStock reports whether the item sits at or below its reorder level.
func (i InventoryItem) LowStock() bool {
	return i.Quantity <= i.ReorderLevel
}

type Transaction struct {
	ID               int64   `json:"id"`
	InventoryID      int64   `json:"inventory_id"`
	ItemName         string  `json:"item_name"`
	TransactionType  string  `json:"transaction_type"`
	Quantity         float64 `json:"quantity"`
	PreviousQuantity float64 `json:"previous_quantity"`
	NewQuantity      float64 `json:"new_quantity"`
	Reason           string  `json:"reason,omitempty"`
	ReferenceNo      string  `json:"reference_no,omitempty"`
	Timestamp        string  `json:"timestamp"`
	IsFlagged        bool    `json:"is_flagged"`
}

// TransactionSummary is rendered as-is; its shape belongs to the API.
type TransactionSummary map[string]any

type FraudAlert struct {
	ID          int64  `json:"id"`
	AlertType   string `json:"alert_type"`
	Severity    string `json:"severity"`
	Status      string `json:"status"`
	Description string `json:"description"`
	DetectedAt  string `json:"detected_at"`
	ReviewedBy  string `json:"reviewed_by,omitempty"`
	ReviewedAt  string `json:"reviewed_at,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// Pending reports whether the alert still awaits review.
func (a FraudAlert) Pending() bool {
	return a.Status == "pending"
}

type FraudStatistics struct {
	TotalAlerts int            `json:"total_alerts"`
	ByStatus    map[string]int `json:"by_status"`
	BySeverity  map[string]int `json:"by_severity"`
}

// DashboardSummary tolerates missing sections: zero values render as 0.
type DashboardSummary struct {
	Inventory struct {
		TotalItems    int `json:"total_items"`
		LowStockItems int `json:"low_stock_items"`
	} `json:"inventory"`
	Transactions struct {
		Today     int `json:"today"`
		Last7Days int `json:"last_7_days"`
	} `json:"transactions"`
	FraudAlerts struct {
		Pending             int `json:"pending"`
		HighSeverityPending int `json:"high_severity_pending"`
	} `json:"fraud_alerts"`
	GeneratedAt string `json:"generated_at"`
}

// Report carries an upstream report payload verbatim so that a later export
// reproduces exactly what was received, re-indented only.
type Report struct {
	ReportType string
	Raw        json.RawMessage
}
