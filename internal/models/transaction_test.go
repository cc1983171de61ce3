package models

import (
	"reflect"
	"testing"
)

func TestTagsExtraction(t *testing.T) {
	cases := []struct {
		name  string
		notes string
		want  []string
	}{
		{"no notes", "", nil},
		{"no hashtags", "paid in cash", nil},
		{"single tag", "dinner #Food", []string{"food"}},
		{"multiple tags keep order", "#trip #food and #Trip_2026 again", []string{"trip", "food", "trip_2026"}},
		{"duplicates kept", "#food #food", []string{"food", "food"}},
		{"punctuation terminates", "#food, #bar!", []string{"food", "bar"}},
		{"bare hash ignored", "# not a tag", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := Transaction{Notes: tc.notes}
			if got := tx.Tags(); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Tags(%q) = %v, want %v", tc.notes, got, tc.want)
			}
		})
	}
}

func TestParseCategoryFallsBackToOther(t *testing.T) {
	if got := ParseCategory("transport"); got != CategoryTransport {
		t.Errorf("known category: got %v", got)
	}
	if got := ParseCategory("cryptocurrency"); got != CategoryOther {
		t.Errorf("unknown category: got %v, want other", got)
	}
	if got := ParseCategory(""); got != CategoryOther {
		t.Errorf("empty category: got %v, want other", got)
	}
}

func TestParseTransactionTypeDefaultsToExpense(t *testing.T) {
	if got := ParseTransactionType("income"); got != TypeIncome {
		t.Errorf("income: got %v", got)
	}
	if got := ParseTransactionType("debit"); got != TypeExpense {
		t.Errorf("unknown type: got %v, want expense", got)
	}
}
