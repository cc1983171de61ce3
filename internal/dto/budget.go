package dto

import "time"

type CreateBudgetRequest struct {
	Category     string    `json:"category"`
	MonthlyLimit float64   `json:"monthlyLimit"`
	StartDate    time.Time `json:"startDate"`
}

type UpdateBudgetRequest struct {
	MonthlyLimit *float64 `json:"monthlyLimit,omitempty"`
	IsActive     *bool    `json:"isActive,omitempty"`
}
