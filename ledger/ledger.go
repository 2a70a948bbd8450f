// Package ledger implements the loan lifecycle: interest calculation at
// creation, payment application against the outstanding balance, and the
// approval workflow restricted to the loan's assigned group administrator.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fdesdsf/MANPOWER/models"
)

var (
	oneHundred = decimal.NewFromInt(100)
	twelve     = decimal.NewFromInt(12)
)

// MemberDirectory resolves members by id. Implementations return an error
// wrapping ErrNotFound when the id does not resolve.
type MemberDirectory interface {
	FindByID(id string) (*models.Member, error)
}

// GroupDirectory resolves groups by id with their member set populated.
type GroupDirectory interface {
	FindByID(id string) (*models.Group, error)
}

// LoanStore persists loans. Transact runs fn against a store whose reads are
// serialized per loan row, so a read-modify-write of the balance fields
// cannot lose an update under concurrent payments.
type LoanStore interface {
	FindByID(id string) (*models.Loan, error)
	FindAll() ([]models.Loan, error)
	Save(loan *models.Loan) error
	DeleteByID(id string) error
	Transact(fn func(tx LoanStore) error) error
}

// Ledger owns all loan business rules. It is stateless; the store is the
// only shared resource.
type Ledger struct {
	members MemberDirectory
	groups  GroupDirectory
	loans   LoanStore
}

func New(members MemberDirectory, groups GroupDirectory, loans LoanStore) *Ledger {
	return &Ledger{members: members, groups: groups, loans: loans}
}

// GetLoan retrieves a loan by its id.
func (l *Ledger) GetLoan(id string) (*models.Loan, error) {
	return l.loans.FindByID(id)
}

// GetAllLoans retrieves every loan.
func (l *Ledger) GetAllLoans() ([]models.Loan, error) {
	return l.loans.FindAll()
}

// DeleteLoan removes a loan by id. Hard delete, matching the store contract.
func (l *Ledger) DeleteLoan(id string) error {
	return l.loans.DeleteByID(id)
}

// SaveLoan validates and persists a loan, computing the derived interest and
// balance fields. It serves both creation (empty id) and update.
//
// For a new PENDING loan the approver is resolved from the group: exactly the
// member holding the GroupAdmin role becomes ApprovedByID. Any other save
// requires an explicit, resolvable approver id.
func (l *Ledger) SaveLoan(loan *models.Loan) (*models.Loan, error) {
	if strings.TrimSpace(loan.MemberID) == "" {
		return nil, fmt.Errorf("%w: loan applicant member id is required", ErrInvalidArgument)
	}
	member, err := l.members.FindByID(loan.MemberID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(loan.GroupID) == "" {
		return nil, fmt.Errorf("%w: loan group id is required", ErrInvalidArgument)
	}
	group, err := l.groups.FindByID(loan.GroupID)
	if err != nil {
		return nil, err
	}
	loan.MemberID = member.ID
	loan.GroupID = group.ID

	isNew := strings.TrimSpace(loan.ID) == ""
	loan.Status = strings.ToUpper(strings.TrimSpace(loan.Status))
	if isNew && loan.Status == "" {
		loan.Status = models.LoanStatusPending
	}

	if err := l.resolveApprover(loan, group, isNew); err != nil {
		return nil, err
	}

	if !loan.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: loan amount must be a positive value", ErrInvalidArgument)
	}

	months := wholeMonthsBetween(loan.StartDate, loan.DueDate)
	if months <= 0 {
		return nil, fmt.Errorf("%w: due date must be at least 1 month after start date", ErrInvalidArgument)
	}

	// Derived fields are recomputed only while no payments exist. Once
	// TotalPaid is non-zero a recompute would desynchronize it from the
	// balance, so edits keep the existing figures.
	if loan.TotalPaid.IsZero() {
		monthlyRate := loan.InterestRate.DivRound(oneHundred, 6).DivRound(twelve, 6)
		interest := loan.Amount.Mul(monthlyRate).Mul(decimal.NewFromInt(int64(months))).Round(2)
		loan.CalculatedInterest = interest
		loan.OutstandingBalance = loan.Amount.Add(interest)
	}

	now := time.Now()
	if isNew {
		loan.ID = uuid.NewString()
		loan.TotalPaid = decimal.Zero
	}
	if loan.CreatedOn.IsZero() {
		loan.CreatedOn = now
	}
	loan.ModifiedOn = now

	if err := l.loans.Save(loan); err != nil {
		return nil, fmt.Errorf("failed to store loan: %w", err)
	}
	return loan, nil
}

func (l *Ledger) resolveApprover(loan *models.Loan, group *models.Group, isNew bool) error {
	if isNew && loan.Status == models.LoanStatusPending {
		if len(group.Members) == 0 {
			return fmt.Errorf("%w: no members in group %s, cannot assign an admin for pending loan", ErrNotFound, group.ID)
		}
		var admin *models.Member
		for i := range group.Members {
			if group.Members[i].Role == models.RoleGroupAdmin {
				admin = &group.Members[i]
				break
			}
		}
		if admin == nil {
			return fmt.Errorf("%w: no %s member in group %s, cannot assign an admin for pending loan", ErrNotFound, models.RoleGroupAdmin, group.ID)
		}
		// Confirm the admin still resolves in the directory.
		resolved, err := l.members.FindByID(admin.ID)
		if err != nil {
			return err
		}
		loan.ApprovedByID = resolved.ID
		return nil
	}

	if strings.TrimSpace(loan.ApprovedByID) == "" {
		return fmt.Errorf("%w: approver member id is required for loan status %s or for existing loans", ErrInvalidArgument, loan.Status)
	}
	approver, err := l.members.FindByID(loan.ApprovedByID)
	if err != nil {
		return err
	}
	loan.ApprovedByID = approver.ID
	return nil
}

// ProcessPayment applies a payment to a loan. TotalPaid grows by the amount,
// OutstandingBalance shrinks clamped at zero, and a zero balance marks the
// loan PAID. An already-PAID loan absorbs further payments and stays PAID.
func (l *Ledger) ProcessPayment(loanID string, amount decimal.Decimal) (*models.Loan, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be a positive value", ErrInvalidArgument)
	}

	var updated *models.Loan
	err := l.loans.Transact(func(tx LoanStore) error {
		loan, err := tx.FindByID(loanID)
		if err != nil {
			return err
		}

		loan.TotalPaid = loan.TotalPaid.Add(amount)
		balance := loan.OutstandingBalance.Sub(amount)
		if balance.IsNegative() {
			balance = decimal.Zero
		}
		loan.OutstandingBalance = balance

		if balance.IsZero() {
			loan.Status = models.LoanStatusPaid
		}

		loan.ModifiedOn = time.Now()
		if err := tx.Save(loan); err != nil {
			return fmt.Errorf("failed to update loan balance: %w", err)
		}
		updated = loan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ApproveLoan transitions a PENDING loan to APPROVED. Only the loan's
// assigned approver, still holding the GroupAdmin role, may do so.
func (l *Ledger) ApproveLoan(loanID, approverID string) (*models.Loan, error) {
	return l.decide(loanID, approverID, models.LoanStatusApproved)
}

// RejectLoan transitions a PENDING loan to REJECTED under the same
// authorization rule as ApproveLoan.
func (l *Ledger) RejectLoan(loanID, approverID string) (*models.Loan, error) {
	return l.decide(loanID, approverID, models.LoanStatusRejected)
}

func (l *Ledger) decide(loanID, approverID, status string) (*models.Loan, error) {
	var updated *models.Loan
	err := l.loans.Transact(func(tx LoanStore) error {
		loan, err := tx.FindByID(loanID)
		if err != nil {
			return err
		}

		if !strings.EqualFold(loan.Status, models.LoanStatusPending) {
			verb := "approved"
			if status == models.LoanStatusRejected {
				verb = "rejected"
			}
			return fmt.Errorf("%w: only PENDING loans can be %s, current status: %s", ErrInvalidArgument, verb, loan.Status)
		}

		approver, err := l.members.FindByID(approverID)
		if err != nil {
			return err
		}

		// Authorization is against the approver of record assigned at
		// creation, not any admin of the group.
		if loan.ApprovedByID == "" || loan.ApprovedByID != approverID || approver.Role != models.RoleGroupAdmin {
			return fmt.Errorf("%w: only the assigned %s may decide this loan", ErrUnauthorized, models.RoleGroupAdmin)
		}

		loan.Status = status
		loan.ModifiedBy = approver.ID
		loan.ModifiedOn = time.Now()
		if err := tx.Save(loan); err != nil {
			return fmt.Errorf("failed to update loan status: %w", err)
		}
		updated = loan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// wholeMonthsBetween counts whole calendar months from start to end,
// truncating any partial month. Each date packs to months*32+day, so the
// month only counts once the day-of-month is reached: Jan 31 to Feb 28 is
// zero whole months, Jan 31 to Mar 31 is two.
func wholeMonthsBetween(start, end time.Time) int {
	packedStart := (start.Year()*12+int(start.Month()))*32 + start.Day()
	packedEnd := (end.Year()*12+int(end.Month()))*32 + end.Day()
	return (packedEnd - packedStart) / 32
}
