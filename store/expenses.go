package store

import (
	"errors"
	"fmt"

	"github.com/expensehub/backend/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a record with the requested id does not exist.
var ErrNotFound = errors.New("record not found")

// ExpenseStore persists expenses. All reads go through an ExpenseQuery
// so filtering, scoping and pagination stay in one place.
type ExpenseStore struct {
	db *gorm.DB
}

func NewExpenseStore(db *gorm.DB) *ExpenseStore {
	return &ExpenseStore{db: db}
}

// CategoryTotal is one row of a by-category aggregate.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// PeriodTotal is one row of a by-period aggregate. Period is a UTC
// calendar label: "2006-01-02" for day buckets, "2006-01" for month.
type PeriodTotal struct {
	Period string  `json:"period"`
	Total  float64 `json:"total"`
}

// Find returns expenses matching the query, most recent first. Ties on
// date break by id descending so pagination stays reproducible.
func (s *ExpenseStore) Find(q ExpenseQuery) ([]models.Expense, error) {
	var expenses []models.Expense
	db := q.apply(s.db.Model(&models.Expense{})).Order("date DESC, id DESC")
	if err := q.applyPage(db).Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// Count returns how many expenses match the query, ignoring pagination.
func (s *ExpenseStore) Count(q ExpenseQuery) (int64, error) {
	var total int64
	if err := q.apply(s.db.Model(&models.Expense{})).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// FindOneWithOwner fetches a single expense with its owner relation
// loaded, for ownership checks.
func (s *ExpenseStore) FindOneWithOwner(id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Preload("User").First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

func (s *ExpenseStore) Create(expense *models.Expense) error {
	return s.db.Create(expense).Error
}

func (s *ExpenseStore) Save(expense *models.Expense) error {
	return s.db.Save(expense).Error
}

func (s *ExpenseStore) Delete(expense *models.Expense) error {
	return s.db.Delete(expense).Error
}

// Transaction runs fn against a store bound to a single transaction.
// Used by update/remove so the ownership check and the mutation cannot
// interleave with a concurrent delete.
func (s *ExpenseStore) Transaction(fn func(tx *ExpenseStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ExpenseStore{db: tx})
	})
}

// SumByCategory aggregates total amount per category over the query
// range, largest total first.
func (s *ExpenseStore) SumByCategory(q ExpenseQuery) ([]CategoryTotal, error) {
	// Scan leaves the slice nil when nothing matches; callers serialize
	// the result, so an empty range must still yield [].
	rows := make([]CategoryTotal, 0)
	err := q.apply(s.db.Model(&models.Expense{})).
		Select("category, SUM(amount) as total").
		Group("category").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SumByPeriod buckets total amount by calendar day or month in UTC,
// chronologically. Granularity must be "day" or "month".
func (s *ExpenseStore) SumByPeriod(q ExpenseQuery, granularity string) ([]PeriodTotal, error) {
	expr := s.periodExpr(granularity)
	rows := make([]PeriodTotal, 0)
	err := q.apply(s.db.Model(&models.Expense{})).
		Select(expr + " as period, SUM(amount) as total").
		Group(expr).
		Order(expr + " ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *ExpenseStore) periodExpr(granularity string) string {
	// The sqlite branch exists for the test driver; Postgres is the
	// production dialect.
	if s.db.Dialector.Name() == "sqlite" {
		format := "%Y-%m"
		if granularity == "day" {
			format = "%Y-%m-%d"
		}
		return fmt.Sprintf("strftime('%s', date)", format)
	}
	format := "YYYY-MM"
	if granularity == "day" {
		format = "YYYY-MM-DD"
	}
	return fmt.Sprintf("TO_CHAR(date AT TIME ZONE 'UTC', '%s')", format)
}
