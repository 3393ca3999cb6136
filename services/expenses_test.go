package services

import (
	"testing"
	"time"

	"github.com/expensehub/backend/database"
	"github.com/expensehub/backend/models"
	"github.com/expensehub/backend/store"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func amount(v float64) *float64 { return &v }

type ExpenseServiceSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ExpenseService

	user  Caller
	other Caller
	admin Caller
}

func (s *ExpenseServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewExpenseService(store.NewExpenseStore(s.db))

	users := []models.User{
		{Email: "user@example.com", PasswordHash: "x", Role: models.RoleUser},
		{Email: "other@example.com", PasswordHash: "x", Role: models.RoleUser},
		{Email: "admin@example.com", PasswordHash: "x", Role: models.RoleAdmin},
	}
	for i := range users {
		require.NoError(s.T(), s.db.Create(&users[i]).Error)
	}
	s.user = Caller{ID: users[0].ID, Role: users[0].Role}
	s.other = Caller{ID: users[1].ID, Role: users[1].Role}
	s.admin = Caller{ID: users[2].ID, Role: users[2].Role}
}

func (s *ExpenseServiceSuite) mustCreate(caller Caller, description, category string, amt float64, date time.Time) *models.Expense {
	e, err := s.service.Create(caller, CreateExpenseInput{
		Description: description,
		Amount:      amount(amt),
		Category:    category,
		Date:        &date,
	})
	require.NoError(s.T(), err)
	return e
}

func (s *ExpenseServiceSuite) TestCreateForcesOwnerAndDefaultsDate() {
	before := time.Now()
	created, err := s.service.Create(s.user, CreateExpenseInput{
		Description: "Coffee",
		Amount:      amount(5),
		Category:    "Food",
	})
	require.NoError(s.T(), err)

	assert.NotZero(s.T(), created.ID)
	assert.Equal(s.T(), s.user.ID, created.UserID)
	assert.False(s.T(), created.Date.Before(before), "date defaults to creation time")
	assert.False(s.T(), created.Date.After(time.Now()))
}

func (s *ExpenseServiceSuite) TestCreateValidatesRequiredFields() {
	_, err := s.service.Create(s.user, CreateExpenseInput{Amount: amount(5), Category: "Food"})
	var verr *ValidationError
	require.ErrorAs(s.T(), err, &verr)
	assert.Equal(s.T(), "description", verr.Field)

	_, err = s.service.Create(s.user, CreateExpenseInput{Description: "Coffee", Category: "Food"})
	require.ErrorAs(s.T(), err, &verr)
	assert.Equal(s.T(), "amount", verr.Field)

	_, err = s.service.Create(s.user, CreateExpenseInput{Description: "Coffee", Amount: amount(5)})
	require.ErrorAs(s.T(), err, &verr)
	assert.Equal(s.T(), "category", verr.Field)
}

func (s *ExpenseServiceSuite) TestListPagedScopesNonAdminToOwner() {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s.mustCreate(s.user, "Mine", "Food", 5, day)
	s.mustCreate(s.other, "Theirs", "Food", 7, day)

	result, err := s.service.ListPaged(s.user, 1, 10, "", "")
	require.NoError(s.T(), err)
	require.Len(s.T(), result.Data, 1)
	assert.Equal(s.T(), "Mine", result.Data[0].Description)
	assert.EqualValues(s.T(), 1, result.Total)
}

func (s *ExpenseServiceSuite) TestListPagedAdminSeesAllOwners() {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s.mustCreate(s.user, "Mine", "Food", 5, day)
	s.mustCreate(s.other, "Theirs", "Food", 7, day)

	result, err := s.service.ListPaged(s.admin, 1, 10, "", "")
	require.NoError(s.T(), err)
	assert.Len(s.T(), result.Data, 2)
}

func (s *ExpenseServiceSuite) TestListPagedClampsPageAndLimit() {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s.mustCreate(s.user, "Coffee", "Food", 5, day)

	result, err := s.service.ListPaged(s.user, 0, 0, "", "")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, result.Page)
	assert.Equal(s.T(), DefaultLimit, result.Limit)

	result, err = s.service.ListPaged(s.user, -3, 999, "", "")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, result.Page)
	assert.Equal(s.T(), MaxLimit, result.Limit)

	result, err = s.service.ListPaged(s.user, 1, -5, "", "")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, result.Limit, "explicit negative limit clamps to the floor, not the default")
}

func (s *ExpenseServiceSuite) TestListPagedTotalPages() {
	result, err := s.service.ListPaged(s.user, 1, 10, "", "")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, result.TotalPages, "totalPages is at least 1 even when empty")
	assert.EqualValues(s.T(), 0, result.Total)

	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 11; i++ {
		s.mustCreate(s.user, "Item", "Food", 1, day.Add(time.Duration(i)*time.Minute))
	}

	result, err = s.service.ListPaged(s.user, 1, 10, "", "")
	require.NoError(s.T(), err)
	assert.EqualValues(s.T(), 11, result.Total)
	assert.Equal(s.T(), 2, result.TotalPages)
	assert.Len(s.T(), result.Data, 10)

	result, err = s.service.ListPaged(s.user, 2, 10, "", "")
	require.NoError(s.T(), err)
	assert.Len(s.T(), result.Data, 1)
}

func (s *ExpenseServiceSuite) TestListPagedCombinesFilters() {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s.mustCreate(s.user, "Morning coffee", "Food", 5, day)
	s.mustCreate(s.user, "Coffee table", "Household", 90, day)
	s.mustCreate(s.user, "Lunch", "Food", 12, day)

	result, err := s.service.ListPaged(s.user, 1, 10, "Food", "COFFEE")
	require.NoError(s.T(), err)
	require.Len(s.T(), result.Data, 1)
	assert.Equal(s.T(), "Morning coffee", result.Data[0].Description)
}

func (s *ExpenseServiceSuite) TestFilterByCategoryRequiresCategory() {
	_, err := s.service.FilterByCategory(s.user, "", 1, 10)
	var verr *ValidationError
	assert.ErrorAs(s.T(), err, &verr)
}

func (s *ExpenseServiceSuite) TestFilterByCategoryHasNoAdminBypass() {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s.mustCreate(s.user, "User food", "Food", 5, day)
	s.mustCreate(s.admin, "Admin food", "Food", 9, day)

	result, err := s.service.FilterByCategory(s.admin, "Food", 1, 10)
	require.NoError(s.T(), err)
	require.Len(s.T(), result.Data, 1)
	assert.Equal(s.T(), "Admin food", result.Data[0].Description, "this path is always owner-scoped")
}

func (s *ExpenseServiceSuite) TestSearchEmptyQueryReturnsEmpty() {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s.mustCreate(s.user, "Coffee", "Food", 5, day)

	got, err := s.service.Search(s.user, "")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), got)

	got, err = s.service.Search(s.user, "   ")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), got)
}

func (s *ExpenseServiceSuite) TestSearchIsOwnerScoped() {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s.mustCreate(s.user, "Coffee beans", "Food", 5, day)
	s.mustCreate(s.other, "Coffee mug", "Household", 8, day)

	got, err := s.service.Search(s.user, "coffee")
	require.NoError(s.T(), err)
	require.Len(s.T(), got, 1)
	assert.Equal(s.T(), "Coffee beans", got[0].Description)
}

func (s *ExpenseServiceSuite) TestGetOneOwnershipSemantics() {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	created := s.mustCreate(s.user, "Coffee", "Food", 5, day)

	got, err := s.service.GetOne(s.user, created.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), created.ID, got.ID)
	assert.Nil(s.T(), got.User, "owner relation is stripped")

	_, err = s.service.GetOne(s.other, created.ID)
	assert.ErrorIs(s.T(), err, ErrForbidden)

	_, err = s.service.GetOne(s.admin, created.ID)
	assert.NoError(s.T(), err)

	_, err = s.service.GetOne(s.user, created.ID+1000)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *ExpenseServiceSuite) TestUpdateAppliesOnlyPresentFields() {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	created := s.mustCreate(s.user, "Coffee", "Food", 5, day)

	newDescription := "Espresso"
	updated, err := s.service.Update(s.user, created.ID, UpdateExpenseInput{
		Description: &newDescription,
	})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), "Espresso", updated.Description)
	assert.Equal(s.T(), 5.0, updated.Amount, "omitted fields keep prior values")
	assert.Equal(s.T(), "Food", updated.Category)
	assert.Equal(s.T(), created.ID, updated.ID)
	assert.Equal(s.T(), s.user.ID, updated.UserID, "owner is immutable under update")
}

func (s *ExpenseServiceSuite) TestUpdateOwnershipSemantics() {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	created := s.mustCreate(s.user, "Coffee", "Food", 5, day)

	newAmount := 9.5
	_, err := s.service.Update(s.other, created.ID, UpdateExpenseInput{Amount: &newAmount})
	assert.ErrorIs(s.T(), err, ErrForbidden)

	updated, err := s.service.Update(s.admin, created.ID, UpdateExpenseInput{Amount: &newAmount})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 9.5, updated.Amount)

	_, err = s.service.Update(s.user, created.ID+1000, UpdateExpenseInput{Amount: &newAmount})
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *ExpenseServiceSuite) TestRemoveThenGetOneIsNotFound() {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	created := s.mustCreate(s.user, "Coffee", "Food", 5, day)

	require.NoError(s.T(), s.service.Remove(s.user, created.ID))

	_, err := s.service.GetOne(s.user, created.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *ExpenseServiceSuite) TestRemoveOwnershipSemantics() {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	created := s.mustCreate(s.user, "Coffee", "Food", 5, day)

	assert.ErrorIs(s.T(), s.service.Remove(s.other, created.ID), ErrForbidden)
	assert.NoError(s.T(), s.service.Remove(s.admin, created.ID))
	assert.ErrorIs(s.T(), s.service.Remove(s.user, created.ID), ErrNotFound)
}

func (s *ExpenseServiceSuite) TestListForExportFilterPrecedence() {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s.mustCreate(s.user, "Coffee beans", "Food", 5, day)
	s.mustCreate(s.user, "Taxi", "Transport", 20, day)

	// Search query wins over category.
	got, err := s.service.ListForExport(s.user, "taxi", "Food")
	require.NoError(s.T(), err)
	require.Len(s.T(), got, 1)
	assert.Equal(s.T(), "Taxi", got[0].Description)

	got, err = s.service.ListForExport(s.user, "", "Food")
	require.NoError(s.T(), err)
	require.Len(s.T(), got, 1)
	assert.Equal(s.T(), "Coffee beans", got[0].Description)

	got, err = s.service.ListForExport(s.user, "", "")
	require.NoError(s.T(), err)
	assert.Len(s.T(), got, 2)
}

func TestExpenseServiceSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceSuite))
}
