package models

import "time"

// RecurringFrequency is the closed set of repeat intervals for recurring
// transactions.
type RecurringFrequency string

const (
	FrequencyDaily    RecurringFrequency = "daily"
	FrequencyWeekly   RecurringFrequency = "weekly"
	FrequencyBiweekly RecurringFrequency = "biweekly"
	FrequencyMonthly  RecurringFrequency = "monthly"
	FrequencyYearly   RecurringFrequency = "yearly"
)

var frequencyIcons = map[RecurringFrequency]string{
	FrequencyDaily:    "calendar.day.timeline.left",
	FrequencyWeekly:   "calendar",
	FrequencyBiweekly: "calendar.badge.clock",
	FrequencyMonthly:  "calendar.circle",
	FrequencyYearly:   "calendar.badge.exclamationmark",
}

func (f RecurringFrequency) Icon() string { return frequencyIcons[f] }

// Valid reports whether f is one of the known frequencies.
func (f RecurringFrequency) Valid() bool {
	_, ok := frequencyIcons[f]
	return ok
}

// NextDate returns the occurrence that follows date for this frequency.
// Unknown frequencies return date unchanged so a malformed record never
// becomes due in a loop.
func (f RecurringFrequency) NextDate(date time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return date.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return date.AddDate(0, 0, 7)
	case FrequencyBiweekly:
		return date.AddDate(0, 0, 14)
	case FrequencyMonthly:
		return date.AddDate(0, 1, 0)
	case FrequencyYearly:
		return date.AddDate(1, 0, 0)
	default:
		return date
	}
}

// RecurringTransaction is a user-defined template the scheduler materializes
// transactions from. LastGenerated is the only field the engine itself
// mutates.
type RecurringTransaction struct {
	RecurringID   string             `firestore:"recurringId" json:"recurringId"`
	Title         string             `firestore:"title" json:"title"`
	Amount        float64            `firestore:"amount" json:"amount"`
	Category      Category           `firestore:"category" json:"category"`
	Type          TransactionType    `firestore:"type" json:"type"`
	Frequency     RecurringFrequency `firestore:"frequency" json:"frequency"`
	StartDate     time.Time          `firestore:"startDate" json:"startDate"`
	LastGenerated *time.Time         `firestore:"lastGenerated" json:"lastGenerated,omitempty"`
	Notes         string             `firestore:"notes" json:"notes,omitempty"`
	IsActive      bool               `firestore:"isActive" json:"isActive"`
	CreatedAt     time.Time          `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `firestore:"updatedAt" json:"updatedAt"`
}

// NextDueDate computes the next occurrence by advancing one period from the
// last generated date, or from the start date when nothing has been
// generated yet.
func (r RecurringTransaction) NextDueDate() time.Time {
	from := r.StartDate
	if r.LastGenerated != nil {
		from = *r.LastGenerated
	}
	return r.Frequency.NextDate(from)
}

// IsDue reports whether the next occurrence is at or before now.
func (r RecurringTransaction) IsDue(now time.Time) bool {
	return !r.NextDueDate().After(now)
}
