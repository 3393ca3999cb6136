package models

import (
	"time"
)

// Expense is a financial record owned by exactly one user. The owner
// linkage is server-side metadata and never serialized to clients.
type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Amount      float64   `gorm:"type:numeric(10,2)" json:"amount"`
	Category    string    `gorm:"size:50" json:"category"`
	Date        time.Time `gorm:"index" json:"date"`

	UserID uint  `gorm:"index;not null" json:"-"`
	User   *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Expense) TableName() string {
	return "expenses"
}
