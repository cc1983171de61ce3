package dto

import "time"

type CreateRecurringRequest struct {
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Type      string    `json:"type"`
	Frequency string    `json:"frequency"`
	StartDate time.Time `json:"startDate"`
	Notes     string    `json:"notes"`
}

type UpdateRecurringRequest struct {
	Title     *string  `json:"title,omitempty"`
	Amount    *float64 `json:"amount,omitempty"`
	Frequency *string  `json:"frequency,omitempty"`
	IsActive  *bool    `json:"isActive,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
}

// UpcomingOccurrence previews the next materialization of a recurring
// definition without writing anything.
type UpcomingOccurrence struct {
	RecurringID string    `json:"recurringId"`
	Title       string    `json:"title"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	DueDate     time.Time `json:"dueDate"`
	Overdue     bool      `json:"overdue"`
}

type ProcessRecurringResult struct {
	GeneratedCount int `json:"generatedCount"`
}
