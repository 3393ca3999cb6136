package services

import (
	"errors"
	"strings"
	"time"

	"github.com/expensehub/backend/models"
	"github.com/expensehub/backend/store"
)

// Pagination bounds. Out-of-range inputs are clamped, not rejected.
const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// ExpenseService is the single choke point for expense reads and
// writes. It enforces ownership and role checks and owns the
// filter/search/pagination semantics; handlers never touch the store
// directly.
type ExpenseService struct {
	expenses *store.ExpenseStore
}

func NewExpenseService(expenses *store.ExpenseStore) *ExpenseService {
	return &ExpenseService{expenses: expenses}
}

// CreateExpenseInput carries the caller-supplied fields of a new
// expense. There is deliberately no owner field: the owner is always
// the authenticated caller.
type CreateExpenseInput struct {
	Description string     `json:"description"`
	Amount      *float64   `json:"amount"`
	Category    string     `json:"category"`
	Date        *time.Time `json:"date"`
}

// UpdateExpenseInput is a partial update; only non-nil fields are
// applied. Id and owner are immutable.
type UpdateExpenseInput struct {
	Description *string    `json:"description"`
	Amount      *float64   `json:"amount"`
	Category    *string    `json:"category"`
	Date        *time.Time `json:"date"`
}

// PagedExpenses is the envelope for paginated listings.
type PagedExpenses struct {
	Data       []models.Expense `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

// Create persists a new expense owned by the caller. Date defaults to
// the current time when absent.
func (s *ExpenseService) Create(caller Caller, input CreateExpenseInput) (*models.Expense, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, invalid("description", "is required")
	}
	if input.Amount == nil {
		return nil, invalid("amount", "is required")
	}
	if strings.TrimSpace(input.Category) == "" {
		return nil, invalid("category", "is required")
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	expense := models.Expense{
		Description: input.Description,
		Amount:      *input.Amount,
		Category:    input.Category,
		Date:        date,
		UserID:      caller.ID,
	}
	if err := s.expenses.Create(&expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// ListPaged returns a page of expenses ordered by date descending.
// Admin callers see every user's records; everyone else is scoped to
// their own, and no input parameter can widen that.
func (s *ExpenseService) ListPaged(caller Caller, page, limit int, category, search string) (*PagedExpenses, error) {
	page, limit = clampPage(page), clampLimit(limit)

	q := store.ExpenseQuery{
		Category: category,
		Search:   search,
		Offset:   (page - 1) * limit,
		Limit:    limit,
	}
	if !caller.IsAdmin() {
		q.UserID = &caller.ID
	}
	return s.findPaged(q, page, limit)
}

// FilterByCategory lists the caller's own expenses in one category,
// paginated. Unlike ListPaged there is no admin bypass on this path.
func (s *ExpenseService) FilterByCategory(caller Caller, category string, page, limit int) (*PagedExpenses, error) {
	if category == "" {
		return nil, invalid("category", "is required")
	}
	page, limit = clampPage(page), clampLimit(limit)

	q := store.ExpenseQuery{
		UserID:   &caller.ID,
		Category: category,
		Offset:   (page - 1) * limit,
		Limit:    limit,
	}
	return s.findPaged(q, page, limit)
}

// Search returns every expense of the caller whose description
// contains the query, case-insensitively, most recent first. An empty
// query matches nothing rather than everything.
func (s *ExpenseService) Search(caller Caller, query string) ([]models.Expense, error) {
	if strings.TrimSpace(query) == "" {
		return []models.Expense{}, nil
	}
	return s.expenses.Find(store.ExpenseQuery{
		UserID: &caller.ID,
		Search: query,
	})
}

// ListForExport returns the caller's expenses for export, unpaginated.
// A search query wins over a category filter; with neither, everything
// the caller owns is returned.
func (s *ExpenseService) ListForExport(caller Caller, query, category string) ([]models.Expense, error) {
	if strings.TrimSpace(query) != "" {
		return s.Search(caller, query)
	}
	q := store.ExpenseQuery{UserID: &caller.ID}
	if category != "" {
		q.Category = category
	}
	return s.expenses.Find(q)
}

// GetOne fetches an expense by id. Missing records yield ErrNotFound;
// existing records the caller neither owns nor may administer yield
// ErrForbidden. The owner relation is stripped before returning.
func (s *ExpenseService) GetOne(caller Caller, id uint) (*models.Expense, error) {
	expense, err := s.fetchOwned(s.expenses, caller, id)
	if err != nil {
		return nil, err
	}
	expense.User = nil
	return expense, nil
}

// Update applies the non-nil fields of input to the expense. The fetch,
// ownership check and write share one transaction so a concurrent
// delete cannot resurrect the record.
func (s *ExpenseService) Update(caller Caller, id uint, input UpdateExpenseInput) (*models.Expense, error) {
	var updated *models.Expense
	err := s.expenses.Transaction(func(tx *store.ExpenseStore) error {
		expense, err := s.fetchOwned(tx, caller, id)
		if err != nil {
			return err
		}
		if input.Description != nil {
			expense.Description = *input.Description
		}
		if input.Amount != nil {
			expense.Amount = *input.Amount
		}
		if input.Category != nil {
			expense.Category = *input.Category
		}
		if input.Date != nil {
			expense.Date = *input.Date
		}
		if err := tx.Save(expense); err != nil {
			return err
		}
		updated = expense
		return nil
	})
	if err != nil {
		return nil, err
	}
	updated.User = nil
	return updated, nil
}

// Remove deletes the expense after the same ownership check as GetOne.
func (s *ExpenseService) Remove(caller Caller, id uint) error {
	return s.expenses.Transaction(func(tx *store.ExpenseStore) error {
		expense, err := s.fetchOwned(tx, caller, id)
		if err != nil {
			return err
		}
		return tx.Delete(expense)
	})
}

func (s *ExpenseService) fetchOwned(tx *store.ExpenseStore, caller Caller, id uint) (*models.Expense, error) {
	expense, err := tx.FindOneWithOwner(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !caller.IsAdmin() && expense.UserID != caller.ID {
		return nil, ErrForbidden
	}
	return expense, nil
}

func (s *ExpenseService) findPaged(q store.ExpenseQuery, page, limit int) (*PagedExpenses, error) {
	total, err := s.expenses.Count(q)
	if err != nil {
		return nil, err
	}
	data, err := s.expenses.Find(q)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	return &PagedExpenses{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func clampLimit(limit int) int {
	// Zero means absent and falls back to the default; an explicit
	// negative value clamps to the floor.
	if limit == 0 {
		return DefaultLimit
	}
	if limit < 1 {
		return 1
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
