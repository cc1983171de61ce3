package models

import "time"

// WarningLevel is the four-tier budget status driven by spend-to-limit ratio.
type WarningLevel string

const (
	WarningSafe     WarningLevel = "safe"
	WarningWarning  WarningLevel = "warning"
	WarningCritical WarningLevel = "critical"
	WarningExceeded WarningLevel = "exceeded"
)

// Ratio thresholds between the warning tiers.
const (
	WarningThreshold  = 0.75
	CriticalThreshold = 0.90
	ExceededThreshold = 1.0
)

// WarningLevelFor maps a spend-to-limit ratio onto a warning tier.
func WarningLevelFor(ratio float64) WarningLevel {
	switch {
	case ratio >= ExceededThreshold:
		return WarningExceeded
	case ratio >= CriticalThreshold:
		return WarningCritical
	case ratio >= WarningThreshold:
		return WarningWarning
	default:
		return WarningSafe
	}
}

var warningIcons = map[WarningLevel]string{
	WarningSafe:     "checkmark.circle.fill",
	WarningWarning:  "exclamationmark.triangle.fill",
	WarningCritical: "exclamationmark.triangle.fill",
	WarningExceeded: "xmark.circle.fill",
}

var warningMessages = map[WarningLevel]string{
	WarningSafe:     "On track",
	WarningWarning:  "75% used",
	WarningCritical: "90% used!",
	WarningExceeded: "Budget exceeded!",
}

func (l WarningLevel) Icon() string    { return warningIcons[l] }
func (l WarningLevel) Message() string { return warningMessages[l] }

// BudgetGoal is a monthly spending limit for one category. Multiple active
// goals per category are permitted by the data model; the UI may restrict
// this on its side.
type BudgetGoal struct {
	BudgetID     string    `firestore:"budgetId" json:"budgetId"`
	Category     Category  `firestore:"category" json:"category"`
	MonthlyLimit float64   `firestore:"monthlyLimit" json:"monthlyLimit"`
	StartDate    time.Time `firestore:"startDate" json:"startDate"`
	IsActive     bool      `firestore:"isActive" json:"isActive"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt" json:"updatedAt"`
}
