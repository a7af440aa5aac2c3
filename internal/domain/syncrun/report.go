package syncrun

import (
	"time"

	"github.com/google/uuid"
)

// MaxRetainedErrors bounds how many error messages a category keeps.
// Counts stay exact even when messages are dropped.
const MaxRetainedErrors = 10

// CategoryResult aggregates the per-item outcomes for one category.
type CategoryResult struct {
	Total   int      `json:"total"`
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
	// TotalErrors is the exact failure-message count, including messages
	// dropped once MaxRetainedErrors was reached.
	TotalErrors int `json:"total_errors,omitempty"`
}

// NewCategoryResult returns an empty result with a non-nil error list.
func NewCategoryResult() *CategoryResult {
	return &CategoryResult{Errors: make([]string, 0)}
}

// RecordSuccess counts one successfully synced item.
func (r *CategoryResult) RecordSuccess() {
	r.Success++
}

// RecordFailure counts one failed item and retains its message up to the cap.
func (r *CategoryResult) RecordFailure(message string) {
	r.Failed++
	r.appendError(message)
}

// AppendError retains a category-level message, such as a listing failure,
// without counting an item. Failed never exceeds Total because of it.
func (r *CategoryResult) AppendError(message string) {
	r.appendError(message)
}

func (r *CategoryResult) appendError(message string) {
	r.TotalErrors++
	if len(r.Errors) < MaxRetainedErrors {
		r.Errors = append(r.Errors, message)
	}
}

// Totals aggregates counts across all categories of a run.
type Totals struct {
	Products int `json:"products"`
	Success  int `json:"success"`
	Failed   int `json:"failed"`
}

// Report is the outcome of one bulk sync run. A run always completes and
// produces a report; individual item failures never abort it.
type Report struct {
	ID         uuid.UUID                  `json:"id"`
	Timestamp  time.Time                  `json:"timestamp"`
	Categories map[string]*CategoryResult `json:"categories"`
	Totals     Totals                     `json:"totals"`
}

// NewReport creates an empty report stamped with the current time.
func NewReport(now time.Time) *Report {
	return &Report{
		ID:         uuid.New(),
		Timestamp:  now,
		Categories: make(map[string]*CategoryResult),
	}
}

// AddCategory folds a category result into the report totals.
func (r *Report) AddCategory(category string, result *CategoryResult) {
	r.Categories[category] = result
	r.Totals.Products += result.Total
	r.Totals.Success += result.Success
	r.Totals.Failed += result.Failed
}
