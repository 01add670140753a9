package grid

import (
	"time"

	"github.com/NSC-Rick/stjregistry/pkg/types"
)

// CheckInSummary counts rows due for a check-in, for the dashboard
// widgets. A row is overdue when its date column is before today, and
// due soon when it falls within the next window days (today included).
// Rows with a null or non-date value in the column are not counted.
type CheckInSummary struct {
	Overdue int
	DueSoon int
}

// SummarizeCheckIns derives the summary from a loaded table. today is
// truncated to the calendar date.
func SummarizeCheckIns(t *types.Table, column string, today time.Time, window int) CheckInSummary {
	day := today.Truncate(24 * time.Hour)
	cutoff := day.AddDate(0, 0, window)

	var s CheckInSummary
	for _, r := range t.Rows {
		d, ok := r.Cells[column].(time.Time)
		if !ok || d.IsZero() {
			continue
		}
		switch {
		case d.Before(day):
			s.Overdue++
		case d.Before(cutoff) || d.Equal(cutoff):
			s.DueSoon++
		}
	}
	return s
}
