package dto

import "time"

// Sort options for transaction listings.
const (
	SortDateNewest    = "dateNewest"
	SortDateOldest    = "dateOldest"
	SortAmountHighest = "amountHighest"
	SortAmountLowest  = "amountLowest"
)

// Date range presets for transaction listings.
const (
	DateRangeAll       = "all"
	DateRangeToday     = "today"
	DateRangeThisWeek  = "thisWeek"
	DateRangeThisMonth = "thisMonth"
	DateRangeLastMonth = "lastMonth"
	DateRangeThisYear  = "thisYear"
	DateRangeCustom    = "custom"
)

type CreateTransactionRequest struct {
	Title    string    `json:"title"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
	Type     string    `json:"type"`
	Notes    string    `json:"notes"`
}

type UpdateTransactionRequest struct {
	Title    *string    `json:"title,omitempty"`
	Amount   *float64   `json:"amount,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	Category *string    `json:"category,omitempty"`
	Type     *string    `json:"type,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
}

type AddAttachmentRequest struct {
	FileName     string `json:"fileName"`
	RelativePath string `json:"relativePath"`
}

// TransactionFilters narrows and orders a transaction listing. Zero values
// mean "no constraint"; Sort defaults to newest first.
type TransactionFilters struct {
	Search      string     `json:"search"`
	Type        string     `json:"type"` // "", "income", "expense"
	Categories  []string   `json:"categories"`
	DateRange   string     `json:"dateRange"`
	CustomStart *time.Time `json:"customStart,omitempty"`
	CustomEnd   *time.Time `json:"customEnd,omitempty"`
	MinAmount   *float64   `json:"minAmount,omitempty"`
	MaxAmount   *float64   `json:"maxAmount,omitempty"`
	Sort        string     `json:"sort"`
}
