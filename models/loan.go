package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan statuses. PENDING is the only state with outgoing transitions:
// approve/reject move it to APPROVED/REJECTED, and full repayment moves a
// loan to PAID. There is no PARTIALLY_PAID state; an overpaid loan stays PAID.
const (
	LoanStatusPending  = "PENDING"
	LoanStatusApproved = "APPROVED"
	LoanStatusRejected = "REJECTED"
	LoanStatusPaid     = "PAID"
)

type Loan struct {
	ID                 string          `gorm:"primaryKey;size:40" json:"id"`
	MemberID           string          `gorm:"size:40;not null;index" json:"member_id"`
	GroupID            string          `gorm:"size:40;not null;index" json:"group_id"`
	Amount             decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	InterestRate       decimal.Decimal `gorm:"type:decimal(7,4)" json:"interest_rate"` // annual percentage, 12 = 12%/yr
	CalculatedInterest decimal.Decimal `gorm:"type:decimal(14,2)" json:"calculated_interest"`
	StartDate          time.Time       `gorm:"type:date" json:"start_date"`
	DueDate            time.Time       `gorm:"type:date" json:"due_date"`
	Status             string          `gorm:"size:50" json:"status"`
	OutstandingBalance decimal.Decimal `gorm:"type:decimal(14,2)" json:"outstanding_balance"`
	TotalPaid          decimal.Decimal `gorm:"column:total_paid;type:decimal(14,2)" json:"total_paid"`
	ApprovedByID       string          `gorm:"column:approved_by_member_id;size:40" json:"approved_by_id"`
	Reason             string          `gorm:"size:255" json:"reason"`
	CreatedBy          string          `gorm:"size:40" json:"created_by"`
	ModifiedBy         string          `gorm:"size:40" json:"modified_by"`
	CreatedOn          time.Time       `json:"created_on"`
	ModifiedOn         time.Time       `json:"modified_on"`
	TenantID           string          `gorm:"column:tenant_id;size:100" json:"tenant_id"`
}

func (Loan) TableName() string {
	return "loans"
}
