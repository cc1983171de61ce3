package engine

import (
	"time"

	"github.com/pennyflow/pennyflow-backend/internal/models"
)

// CatchUpPolicy decides how the scheduler treats definitions that fell more
// than one period behind (e.g. the app was unused for months).
type CatchUpPolicy string

const (
	// CatchUpSingle materializes at most one transaction per definition per
	// invocation; repeated invocations catch up one period at a time.
	CatchUpSingle CatchUpPolicy = "single"
	// CatchUpBackfill materializes one transaction per elapsed period until
	// the definition is no longer due.
	CatchUpBackfill CatchUpPolicy = "backfill"
)

// SchedulerResult carries the scheduler's explicit side effects back to the
// caller: new transactions to insert and the definitions whose lastGenerated
// advanced.
type SchedulerResult struct {
	Generated []models.Transaction
	Updated   []models.RecurringTransaction
}

// ProcessRecurring materializes transactions for every active, due
// definition. The input slice is not mutated; updated copies are returned.
// newID supplies transaction ids so the function stays deterministic under
// test. The caller must hold single-writer access to the transaction store;
// the function itself takes no locks.
//
// Once lastGenerated advances to the due date the definition stops being due
// for that period, so an immediate second invocation generates nothing.
func ProcessRecurring(defs []models.RecurringTransaction, now time.Time, policy CatchUpPolicy, newID func() string) SchedulerResult {
	var result SchedulerResult
	for _, def := range defs {
		if !def.IsActive || !def.Frequency.Valid() || !def.IsDue(now) {
			continue
		}

		generated := materialize(&def, now, policy, newID)
		result.Generated = append(result.Generated, generated...)
		result.Updated = append(result.Updated, def)
	}
	return result
}

func materialize(def *models.RecurringTransaction, now time.Time, policy CatchUpPolicy, newID func() string) []models.Transaction {
	var out []models.Transaction
	for def.IsDue(now) {
		due := def.NextDueDate()
		out = append(out, models.Transaction{
			TransactionID: newID(),
			Title:         def.Title,
			Amount:        def.Amount,
			Date:          due,
			Category:      def.Category,
			Type:          def.Type,
			Notes:         def.Notes,
			IsRecurring:   true,
		})
		def.LastGenerated = &due
		if policy != CatchUpBackfill {
			break
		}
	}
	return out
}
