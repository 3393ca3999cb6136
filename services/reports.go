package services

import (
	"time"

	"github.com/expensehub/backend/store"
)

// Report granularities.
const (
	GroupDay   = "day"
	GroupMonth = "month"
)

// ReportService computes aggregate spending reports. Reports cover all
// users' expenses (global statistics); they sit behind authentication
// but carry no owner scope.
type ReportService struct {
	expenses *store.ExpenseStore
}

func NewReportService(expenses *store.ExpenseStore) *ReportService {
	return &ReportService{expenses: expenses}
}

// ByCategory totals expenses per category for dates in [from, to),
// ordered by descending total. Category optionally narrows the report
// to a single group.
func (s *ReportService) ByCategory(from, to, category string) ([]store.CategoryTotal, error) {
	rng, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	rng.Category = category
	return s.expenses.SumByCategory(rng)
}

// ByPeriod buckets expenses by calendar day or month (UTC) for dates
// in [from, to), chronologically. Group defaults to month.
func (s *ReportService) ByPeriod(from, to, group, category string) ([]store.PeriodTotal, error) {
	switch group {
	case "":
		group = GroupMonth
	case GroupDay, GroupMonth:
	default:
		return nil, invalid("group", "must be day or month")
	}

	rng, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	rng.Category = category
	return s.expenses.SumByPeriod(rng, group)
}

func parseRange(from, to string) (store.ExpenseQuery, error) {
	fromTime, err := parseDate("from", from)
	if err != nil {
		return store.ExpenseQuery{}, err
	}
	toTime, err := parseDate("to", to)
	if err != nil {
		return store.ExpenseQuery{}, err
	}
	if !toTime.After(fromTime) {
		return store.ExpenseQuery{}, invalid("to", "must be after from")
	}
	return store.ExpenseQuery{From: &fromTime, To: &toTime}, nil
}

// parseDate accepts an ISO-8601 date or timestamp, interpreting bare
// dates as UTC midnight.
func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, invalid(field, "is required")
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, invalid(field, "must be an ISO-8601 date")
}
