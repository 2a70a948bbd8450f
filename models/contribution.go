package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types recorded against a group.
const (
	TransactionTypeContribution = "Contribution"
	TransactionTypeRepayment    = "Repayment"
	TransactionTypeFine         = "Fine"
)

// Transaction statuses. Gateway-initiated contributions start Pending and are
// flipped by the payment status callback.
const (
	TransactionStatusPending   = "Pending"
	TransactionStatusCompleted = "Completed"
	TransactionStatusFailed    = "Failed"
	TransactionStatusCancelled = "Cancelled"
)

type Contribution struct {
	ID                string          `gorm:"primaryKey;size:40" json:"id"`
	MemberID          string          `gorm:"size:40;not null;index" json:"member_id"`
	GroupID           string          `gorm:"size:40;not null;index" json:"group_id"`
	TransactionType   string          `gorm:"size:30" json:"transaction_type"`
	Amount            decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	TransactionDate   time.Time       `gorm:"type:date" json:"transaction_date"`
	PaymentMethod     string          `gorm:"size:50" json:"payment_method"`
	Status            string          `gorm:"size:20" json:"status"`
	Description       string          `gorm:"size:255" json:"description"`
	PesapalTrackingID string          `gorm:"column:pesapal_tracking_id;size:100;index" json:"pesapal_tracking_id,omitempty"`
	CreatedBy         string          `gorm:"size:40" json:"created_by"`
	ModifiedBy        string          `gorm:"size:40" json:"modified_by"`
	CreatedOn         time.Time       `json:"created_on"`
	ModifiedOn        time.Time       `json:"modified_on"`
	TenantID          string          `gorm:"column:tenant_id;size:100" json:"tenant_id"`
}

func (Contribution) TableName() string {
	return "contributions"
}
