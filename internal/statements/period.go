// Package statements derives Balance Sheet, Income Statement, Cost-of-Sales,
// and Cash-Flow presentations from trial-balance data. Everything here is a
// pure computation over immutable inputs; collaborator fetches are the only
// suspension points.
package statements

import "time"

// SystemStartDate is the ledger's opening-balance cutover. Activity before
// this date is excluded from period statements, but cumulative balance-sheet
// and cash snapshots still look back to inception.
var SystemStartDate = time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)

// inceptionDate is the lower bound for cumulative snapshots that are not
// clipped to the cutover.
var inceptionDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// PeriodRange is an inclusive date range with From <= To.
type PeriodRange struct {
	From time.Time `json:"fromDate"`
	To   time.Time `json:"toDate"`
}

// PeriodSelection is the caller's raw period choice before clipping. A zero
// To defaults to From.
type PeriodSelection struct {
	From time.Time
	To   time.Time
}

// MonthSelection builds a selection covering a whole calendar month.
func MonthSelection(year int, month time.Month) PeriodSelection {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return PeriodSelection{From: from, To: from.AddDate(0, 1, -1)}
}

// ResolvePeriod clips a selection to the effective activity range. The
// second return is false when the requested range ends before the cutover:
// the trial balance is empty by definition and no fetch is needed.
func ResolvePeriod(sel PeriodSelection) (PeriodRange, bool) {
	from := truncateDate(sel.From)
	to := truncateDate(sel.To)
	if to.IsZero() || to.Before(from) {
		to = from
	}
	if to.Before(SystemStartDate) {
		return PeriodRange{From: from, To: to}, false
	}
	if from.Before(SystemStartDate) {
		from = SystemStartDate
	}
	return PeriodRange{From: from, To: to}, true
}

// InventoryRange is the cumulative range used for inventory position
// snapshots: cutover through the cutoff date. The second return is false
// when the cutoff precedes the cutover, meaning the position is zero.
func InventoryRange(through time.Time) (PeriodRange, bool) {
	through = truncateDate(through)
	if through.Before(SystemStartDate) {
		return PeriodRange{}, false
	}
	return PeriodRange{From: SystemStartDate, To: through}, true
}

// InceptionRange is the cumulative range used for cash position snapshots,
// which look back to inception rather than the cutover.
func InceptionRange(through time.Time) PeriodRange {
	return PeriodRange{From: inceptionDate, To: truncateDate(through)}
}

// DayBefore returns the prior calendar day, used for opening positions.
func DayBefore(t time.Time) time.Time {
	return truncateDate(t).AddDate(0, 0, -1)
}

func truncateDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
