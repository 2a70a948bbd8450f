package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          string          `gorm:"primaryKey;size:40" json:"id"`
	GroupID     string          `gorm:"size:40;not null;index" json:"group_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Category    string          `gorm:"size:50" json:"category"`
	ExpenseDate time.Time       `gorm:"type:date" json:"expense_date"`
	Description string          `gorm:"size:255" json:"description"`
	CreatedBy   string          `gorm:"size:40" json:"created_by"`
	ModifiedBy  string          `gorm:"size:40" json:"modified_by"`
	CreatedOn   time.Time       `json:"created_on"`
	ModifiedOn  time.Time       `json:"modified_on"`
	TenantID    string          `gorm:"column:tenant_id;size:100" json:"tenant_id"`
}

func (Expense) TableName() string {
	return "expenses"
}
