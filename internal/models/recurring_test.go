package models

import (
	"testing"
	"time"
)

func TestFrequencyNextDate(t *testing.T) {
	from := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		frequency RecurringFrequency
		want      time.Time
	}{
		{FrequencyDaily, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{FrequencyWeekly, time.Date(2026, time.February, 7, 0, 0, 0, 0, time.UTC)},
		{FrequencyBiweekly, time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC)},
		{FrequencyYearly, time.Date(2027, time.January, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		if got := tc.frequency.NextDate(from); !got.Equal(tc.want) {
			t.Errorf("%s.NextDate: got %v, want %v", tc.frequency, got, tc.want)
		}
	}
}

func TestNextDueDateAdvancesFromLastGenerated(t *testing.T) {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	def := RecurringTransaction{Frequency: FrequencyMonthly, StartDate: start}

	// Never generated: one period after the start date.
	if got := def.NextDueDate(); !got.Equal(start.AddDate(0, 1, 0)) {
		t.Errorf("next due from start: got %v", got)
	}

	last := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	def.LastGenerated = &last
	if got := def.NextDueDate(); !got.Equal(last.AddDate(0, 1, 0)) {
		t.Errorf("next due from lastGenerated: got %v", got)
	}
}

func TestIsDue(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	def := RecurringTransaction{
		Frequency: FrequencyMonthly,
		StartDate: now.AddDate(0, -2, 0),
	}
	if !def.IsDue(now) {
		t.Error("definition one period behind should be due")
	}

	def.LastGenerated = &now
	if def.IsDue(now) {
		t.Error("definition generated now should not be due")
	}

	// Due exactly at the boundary.
	boundary := now.AddDate(0, -1, 0)
	def.LastGenerated = &boundary
	if !def.IsDue(now) {
		t.Error("definition due exactly now should be due")
	}
}
