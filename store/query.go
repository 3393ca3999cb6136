package store

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// ExpenseQuery is the filter/sort/pagination specification applied to
// expense reads and aggregates. A nil UserID means no owner filter
// (admin scope); From/To describe a half-open [From, To) range.
type ExpenseQuery struct {
	UserID   *uint
	Category string
	Search   string
	From     *time.Time
	To       *time.Time
	Offset   int
	Limit    int
}

func (q ExpenseQuery) apply(db *gorm.DB) *gorm.DB {
	if q.UserID != nil {
		db = db.Where("user_id = ?", *q.UserID)
	}
	if q.Category != "" {
		db = db.Where("category = ?", q.Category)
	}
	if q.Search != "" {
		db = db.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(q.Search)+"%")
	}
	if q.From != nil {
		db = db.Where("date >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("date < ?", *q.To)
	}
	return db
}

func (q ExpenseQuery) applyPage(db *gorm.DB) *gorm.DB {
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	return db
}
