package models

import (
	"regexp"
	"strings"
	"time"
)

// TransactionType carries the direction of a transaction. Amounts are always
// non-negative; income vs expense is decided here, never by a negative amount.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// ParseTransactionType resolves a raw type string, defaulting to expense.
func ParseTransactionType(raw string) TransactionType {
	if TransactionType(raw) == TypeIncome {
		return TypeIncome
	}
	return TypeExpense
}

type Transaction struct {
	TransactionID string          `firestore:"transactionId" json:"transactionId"`
	Title         string          `firestore:"title" json:"title"`
	Amount        float64         `firestore:"amount" json:"amount"`
	Date          time.Time       `firestore:"date" json:"date"`
	Category      Category        `firestore:"category" json:"category"`
	Type          TransactionType `firestore:"type" json:"type"`
	Notes         string          `firestore:"notes" json:"notes,omitempty"`
	IsRecurring   bool            `firestore:"isRecurring" json:"isRecurring"`
	Attachments   []Attachment    `firestore:"attachments" json:"attachments,omitempty"`
	CreatedAt     time.Time       `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time       `firestore:"updatedAt" json:"updatedAt"`
}

var tagPattern = regexp.MustCompile(`#[a-zA-Z0-9_]+`)

// Tags extracts lowercase hashtag tokens from the notes field, in order of
// first appearance. Duplicates are kept as they appear. Notes without
// hashtags yield nil.
func (t Transaction) Tags() []string {
	matches := tagPattern.FindAllString(t.Notes, -1)
	if len(matches) == 0 {
		return nil
	}
	tags := make([]string, len(matches))
	for i, m := range matches {
		tags[i] = strings.ToLower(strings.TrimPrefix(m, "#"))
	}
	return tags
}
