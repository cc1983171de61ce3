package models

// InsightKind classifies an insight for rendering.
type InsightKind string

const (
	InsightPositive InsightKind = "positive"
	InsightNeutral  InsightKind = "neutral"
	InsightWarning  InsightKind = "warning"
)

// Insight is a ranked, human-readable observation derived from transaction
// and budget data. Insights are ephemeral: recomputed on demand, never
// persisted.
type Insight struct {
	InsightID string      `json:"insightId"`
	Kind      InsightKind `json:"kind"`
	Title     string      `json:"title"`
	Message   string      `json:"message"`
	Icon      string      `json:"icon"`
	Priority  int         `json:"priority"`
}
