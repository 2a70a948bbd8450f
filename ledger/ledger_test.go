package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fdesdsf/MANPOWER/models"
)

// fakeDirectory is an in-memory member/group directory for tests.
type fakeDirectory struct {
	members map[string]*models.Member
	groups  map[string]*models.Group
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		members: make(map[string]*models.Member),
		groups:  make(map[string]*models.Group),
	}
}

func (d *fakeDirectory) FindByID(id string) (*models.Member, error) {
	m, ok := d.members[id]
	if !ok {
		return nil, fmt.Errorf("%w: member %s", ErrNotFound, id)
	}
	return m, nil
}

type fakeGroupDirectory struct{ d *fakeDirectory }

func (g *fakeGroupDirectory) FindByID(id string) (*models.Group, error) {
	grp, ok := g.d.groups[id]
	if !ok {
		return nil, fmt.Errorf("%w: group %s", ErrNotFound, id)
	}
	return grp, nil
}

// fakeLoanStore is an in-memory LoanStore. Transact simply runs fn against
// the same store; serialization is the real store's concern.
type fakeLoanStore struct {
	loans map[string]models.Loan
}

func newFakeLoanStore() *fakeLoanStore {
	return &fakeLoanStore{loans: make(map[string]models.Loan)}
}

func (s *fakeLoanStore) FindByID(id string) (*models.Loan, error) {
	loan, ok := s.loans[id]
	if !ok {
		return nil, fmt.Errorf("%w: loan %s", ErrNotFound, id)
	}
	copied := loan
	return &copied, nil
}

func (s *fakeLoanStore) FindAll() ([]models.Loan, error) {
	out := make([]models.Loan, 0, len(s.loans))
	for _, l := range s.loans {
		out = append(out, l)
	}
	return out, nil
}

func (s *fakeLoanStore) Save(loan *models.Loan) error {
	s.loans[loan.ID] = *loan
	return nil
}

func (s *fakeLoanStore) DeleteByID(id string) error {
	delete(s.loans, id)
	return nil
}

func (s *fakeLoanStore) Transact(fn func(tx LoanStore) error) error {
	return fn(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// newTestLedger seeds a group with one admin and one regular member.
func newTestLedger(t *testing.T) (*Ledger, *fakeDirectory, *fakeLoanStore) {
	t.Helper()
	dir := newFakeDirectory()
	admin := &models.Member{ID: "admin-1", GroupID: "group-1", Role: models.RoleGroupAdmin}
	borrower := &models.Member{ID: "member-1", GroupID: "group-1", Role: models.RoleMember}
	dir.members[admin.ID] = admin
	dir.members[borrower.ID] = borrower
	dir.groups["group-1"] = &models.Group{
		ID:      "group-1",
		Members: []models.Member{*borrower, *admin},
	}
	store := newFakeLoanStore()
	return New(dir, &fakeGroupDirectory{d: dir}, store), dir, store
}

func pendingLoan(amount float64, rate float64, start, due time.Time) *models.Loan {
	return &models.Loan{
		MemberID:     "member-1",
		GroupID:      "group-1",
		Amount:       decimal.NewFromFloat(amount),
		InterestRate: decimal.NewFromFloat(rate),
		StartDate:    start,
		DueDate:      due,
		Status:       models.LoanStatusPending,
	}
}

func TestSaveLoanComputesInterest(t *testing.T) {
	l, _, _ := newTestLedger(t)

	// 12000 at 12%/yr over 6 whole months: monthlyRate 0.01, interest 720.00.
	loan, err := l.SaveLoan(pendingLoan(12000, 12, date(2024, time.January, 1), date(2024, time.July, 1)))
	require.NoError(t, err)

	assert.True(t, loan.CalculatedInterest.Equal(decimal.NewFromFloat(720)), "interest %s", loan.CalculatedInterest)
	assert.True(t, loan.OutstandingBalance.Equal(decimal.NewFromFloat(12720)), "balance %s", loan.OutstandingBalance)
	assert.True(t, loan.TotalPaid.IsZero())
	assert.NotEmpty(t, loan.ID)
	assert.Equal(t, "admin-1", loan.ApprovedByID)
	assert.False(t, loan.CreatedOn.IsZero())
}

func TestSaveLoanInterestTable(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		rate     float64
		start    time.Time
		due      time.Time
		interest string
	}{
		{"one month", 1000, 12, date(2024, time.March, 1), date(2024, time.April, 1), "10"},
		{"truncates partial month", 1000, 12, date(2024, time.March, 1), date(2024, time.April, 20), "10"},
		{"year at 10 percent", 50000, 10, date(2024, time.January, 15), date(2025, time.January, 15), "4999.80"},
		{"month end to month end", 1000, 12, date(2023, time.January, 31), date(2023, time.March, 31), "20"},
		{"zero rate", 5000, 0, date(2024, time.January, 1), date(2024, time.June, 1), "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, _, _ := newTestLedger(t)
			loan, err := l.SaveLoan(pendingLoan(tc.amount, tc.rate, tc.start, tc.due))
			require.NoError(t, err)

			want := decimal.RequireFromString(tc.interest)
			assert.True(t, loan.CalculatedInterest.Equal(want),
				"interest: want %s got %s", want, loan.CalculatedInterest)
			assert.True(t, loan.OutstandingBalance.Equal(decimal.NewFromFloat(tc.amount).Add(want)))
		})
	}
}

func TestSaveLoanValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Loan)
		wantErr error
	}{
		{"missing member id", func(l *models.Loan) { l.MemberID = "" }, ErrInvalidArgument},
		{"unknown member", func(l *models.Loan) { l.MemberID = "ghost" }, ErrNotFound},
		{"missing group id", func(l *models.Loan) { l.GroupID = "" }, ErrInvalidArgument},
		{"unknown group", func(l *models.Loan) { l.GroupID = "ghost" }, ErrNotFound},
		{"zero amount", func(l *models.Loan) { l.Amount = decimal.Zero }, ErrInvalidArgument},
		{"negative amount", func(l *models.Loan) { l.Amount = decimal.NewFromInt(-5) }, ErrInvalidArgument},
		{"due before one month", func(l *models.Loan) { l.DueDate = l.StartDate.AddDate(0, 0, 20) }, ErrInvalidArgument},
		{"due at end of shorter month", func(l *models.Loan) {
			l.StartDate = date(2023, time.January, 31)
			l.DueDate = date(2023, time.February, 28)
		}, ErrInvalidArgument},
		{"due equals start", func(l *models.Loan) { l.DueDate = l.StartDate }, ErrInvalidArgument},
		{"due before start", func(l *models.Loan) { l.DueDate = l.StartDate.AddDate(0, -2, 0) }, ErrInvalidArgument},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, _, _ := newTestLedger(t)
			loan := pendingLoan(1000, 12, date(2024, time.January, 1), date(2024, time.July, 1))
			tc.mutate(loan)
			_, err := l.SaveLoan(loan)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestSaveLoanApproverResolution(t *testing.T) {
	t.Run("group without members", func(t *testing.T) {
		l, dir, _ := newTestLedger(t)
		dir.groups["group-1"].Members = nil
		_, err := l.SaveLoan(pendingLoan(1000, 12, date(2024, time.January, 1), date(2024, time.March, 1)))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("group without an admin", func(t *testing.T) {
		l, dir, _ := newTestLedger(t)
		dir.groups["group-1"].Members = []models.Member{{ID: "member-1", Role: models.RoleMember}}
		_, err := l.SaveLoan(pendingLoan(1000, 12, date(2024, time.January, 1), date(2024, time.March, 1)))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("non-pending creation requires explicit approver", func(t *testing.T) {
		l, _, _ := newTestLedger(t)
		loan := pendingLoan(1000, 12, date(2024, time.January, 1), date(2024, time.March, 1))
		loan.Status = models.LoanStatusApproved
		_, err := l.SaveLoan(loan)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		loan.ApprovedByID = "admin-1"
		saved, err := l.SaveLoan(loan)
		require.NoError(t, err)
		assert.Equal(t, "admin-1", saved.ApprovedByID)
	})

	t.Run("explicit approver must resolve", func(t *testing.T) {
		l, _, _ := newTestLedger(t)
		loan := pendingLoan(1000, 12, date(2024, time.January, 1), date(2024, time.March, 1))
		loan.Status = models.LoanStatusApproved
		loan.ApprovedByID = "ghost"
		_, err := l.SaveLoan(loan)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("blank status on new loan defaults to pending", func(t *testing.T) {
		l, _, _ := newTestLedger(t)
		loan := pendingLoan(1000, 12, date(2024, time.January, 1), date(2024, time.March, 1))
		loan.Status = ""
		saved, err := l.SaveLoan(loan)
		require.NoError(t, err)
		assert.Equal(t, models.LoanStatusPending, saved.Status)
		assert.Equal(t, "admin-1", saved.ApprovedByID)
	})
}

func TestSaveLoanUpdatePreservesCreatedOn(t *testing.T) {
	l, _, _ := newTestLedger(t)
	loan, err := l.SaveLoan(pendingLoan(1000, 12, date(2024, time.January, 1), date(2024, time.July, 1)))
	require.NoError(t, err)

	created := loan.CreatedOn
	loan.Reason = "school fees"
	updated, err := l.SaveLoan(loan)
	require.NoError(t, err)

	assert.Equal(t, created, updated.CreatedOn)
	assert.False(t, updated.ModifiedOn.Before(created))
}

func TestSaveLoanKeepsDerivedFieldsAfterPayments(t *testing.T) {
	l, _, _ := newTestLedger(t)
	loan, err := l.SaveLoan(pendingLoan(12000, 12, date(2024, time.January, 1), date(2024, time.July, 1)))
	require.NoError(t, err)

	_, err = l.ProcessPayment(loan.ID, decimal.NewFromInt(6000))
	require.NoError(t, err)

	// Edit the rate after a payment exists: derived fields must not be
	// recomputed from scratch, or TotalPaid would desynchronize.
	edited, err := l.GetLoan(loan.ID)
	require.NoError(t, err)
	edited.InterestRate = decimal.NewFromInt(24)
	saved, err := l.SaveLoan(edited)
	require.NoError(t, err)

	assert.True(t, saved.CalculatedInterest.Equal(decimal.NewFromFloat(720)))
	assert.True(t, saved.OutstandingBalance.Equal(decimal.NewFromFloat(6720)))
	assert.True(t, saved.TotalPaid.Equal(decimal.NewFromInt(6000)))
}

func TestProcessPayment(t *testing.T) {
	l, _, _ := newTestLedger(t)
	loan, err := l.SaveLoan(pendingLoan(12000, 12, date(2024, time.January, 1), date(2024, time.July, 1)))
	require.NoError(t, err)

	// Partial payment leaves the status untouched.
	paid, err := l.ProcessPayment(loan.ID, decimal.NewFromInt(6000))
	require.NoError(t, err)
	assert.True(t, paid.TotalPaid.Equal(decimal.NewFromInt(6000)))
	assert.True(t, paid.OutstandingBalance.Equal(decimal.NewFromFloat(6720)))
	assert.Equal(t, models.LoanStatusPending, paid.Status)

	// Exact payoff flips to PAID.
	paid, err = l.ProcessPayment(loan.ID, decimal.NewFromInt(6720))
	require.NoError(t, err)
	assert.True(t, paid.OutstandingBalance.IsZero())
	assert.True(t, paid.TotalPaid.Equal(decimal.NewFromInt(12720)))
	assert.Equal(t, models.LoanStatusPaid, paid.Status)
}

func TestProcessPaymentClampsOverpayment(t *testing.T) {
	l, _, _ := newTestLedger(t)
	loan, err := l.SaveLoan(pendingLoan(1000, 12, date(2024, time.January, 1), date(2024, time.February, 1)))
	require.NoError(t, err)

	paid, err := l.ProcessPayment(loan.ID, decimal.NewFromInt(5000))
	require.NoError(t, err)
	assert.True(t, paid.OutstandingBalance.IsZero(), "balance clamps to zero, got %s", paid.OutstandingBalance)
	assert.True(t, paid.TotalPaid.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, models.LoanStatusPaid, paid.Status)

	// A further payment on a PAID loan is absorbed; status stays PAID.
	paid, err = l.ProcessPayment(loan.ID, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusPaid, paid.Status)
	assert.True(t, paid.OutstandingBalance.IsZero())
	assert.True(t, paid.TotalPaid.Equal(decimal.NewFromInt(5100)))
}

func TestProcessPaymentSequenceInvariant(t *testing.T) {
	l, _, _ := newTestLedger(t)
	loan, err := l.SaveLoan(pendingLoan(12000, 12, date(2024, time.January, 1), date(2024, time.July, 1)))
	require.NoError(t, err)

	total := loan.Amount.Add(loan.CalculatedInterest)
	prevPaid := decimal.Zero
	for _, amount := range []int64{3000, 4500, 2000, 1500, 3000} {
		paid, err := l.ProcessPayment(loan.ID, decimal.NewFromInt(amount))
		require.NoError(t, err)
		assert.False(t, paid.OutstandingBalance.IsNegative())
		assert.True(t, paid.TotalPaid.GreaterThanOrEqual(prevPaid), "total paid is monotonic")
		prevPaid = paid.TotalPaid
		// Until the clamp engages, the books must balance.
		if paid.TotalPaid.LessThanOrEqual(total) {
			assert.True(t, paid.TotalPaid.Add(paid.OutstandingBalance).Equal(total))
		}
	}
}

func TestProcessPaymentValidation(t *testing.T) {
	l, _, _ := newTestLedger(t)

	_, err := l.ProcessPayment("missing", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrNotFound)

	loan, err := l.SaveLoan(pendingLoan(1000, 12, date(2024, time.January, 1), date(2024, time.March, 1)))
	require.NoError(t, err)

	_, err = l.ProcessPayment(loan.ID, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = l.ProcessPayment(loan.ID, decimal.NewFromInt(-10))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestApproveLoan(t *testing.T) {
	l, _, _ := newTestLedger(t)
	loan, err := l.SaveLoan(pendingLoan(1000, 12, date(2024, time.January, 1), date(2024, time.March, 1)))
	require.NoError(t, err)

	approved, err := l.ApproveLoan(loan.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusApproved, approved.Status)
	assert.Equal(t, "admin-1", approved.ModifiedBy)
}

func TestRejectLoan(t *testing.T) {
	l, _, _ := newTestLedger(t)
	loan, err := l.SaveLoan(pendingLoan(1000, 12, date(2024, time.January, 1), date(2024, time.March, 1)))
	require.NoError(t, err)

	rejected, err := l.RejectLoan(loan.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusRejected, rejected.Status)
}

func TestDecideLoanAuthorization(t *testing.T) {
	t.Run("not the assigned approver", func(t *testing.T) {
		l, dir, _ := newTestLedger(t)
		// A second admin of the same group is still unauthorized: the check
		// is against the approver of record, not the role alone.
		other := &models.Member{ID: "admin-2", GroupID: "group-1", Role: models.RoleGroupAdmin}
		dir.members[other.ID] = other

		loan, err := l.SaveLoan(pendingLoan(1000, 12, date(2024, time.January, 1), date(2024, time.March, 1)))
		require.NoError(t, err)

		_, err = l.ApproveLoan(loan.ID, "admin-2")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("assigned approver demoted", func(t *testing.T) {
		l, dir, _ := newTestLedger(t)
		loan, err := l.SaveLoan(pendingLoan(1000, 12, date(2024, time.January, 1), date(2024, time.March, 1)))
		require.NoError(t, err)

		dir.members["admin-1"].Role = models.RoleMember
		_, err = l.ApproveLoan(loan.ID, "admin-1")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unknown approver", func(t *testing.T) {
		l, _, _ := newTestLedger(t)
		loan, err := l.SaveLoan(pendingLoan(1000, 12, date(2024, time.January, 1), date(2024, time.March, 1)))
		require.NoError(t, err)

		_, err = l.ApproveLoan(loan.ID, "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown loan", func(t *testing.T) {
		l, _, _ := newTestLedger(t)
		_, err := l.ApproveLoan("missing", "admin-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDecideLoanRequiresPendingStatus(t *testing.T) {
	for _, status := range []string{models.LoanStatusApproved, models.LoanStatusRejected, models.LoanStatusPaid} {
		t.Run(status, func(t *testing.T) {
			l, _, store := newTestLedger(t)
			loan, err := l.SaveLoan(pendingLoan(1000, 12, date(2024, time.January, 1), date(2024, time.March, 1)))
			require.NoError(t, err)

			stored := store.loans[loan.ID]
			stored.Status = status
			store.loans[loan.ID] = stored

			_, err = l.ApproveLoan(loan.ID, "admin-1")
			assert.ErrorIs(t, err, ErrInvalidArgument)

			_, err = l.RejectLoan(loan.ID, "admin-1")
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestDeleteLoan(t *testing.T) {
	l, _, store := newTestLedger(t)
	loan, err := l.SaveLoan(pendingLoan(1000, 12, date(2024, time.January, 1), date(2024, time.March, 1)))
	require.NoError(t, err)

	require.NoError(t, l.DeleteLoan(loan.ID))
	_, ok := store.loans[loan.ID]
	assert.False(t, ok)

	_, err = l.GetLoan(loan.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWholeMonthsBetween(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"exact six months", date(2024, time.January, 1), date(2024, time.July, 1), 6},
		{"partial truncates", date(2024, time.January, 15), date(2024, time.March, 10), 1},
		{"under a month", date(2024, time.January, 1), date(2024, time.January, 25), 0},
		{"end of shorter month falls short", date(2023, time.January, 31), date(2023, time.February, 28), 0},
		{"shorter month ends skipped", date(2023, time.January, 31), date(2023, time.April, 30), 2},
		{"month end to month end", date(2023, time.January, 31), date(2023, time.March, 31), 2},
		{"one day short in leap february", date(2024, time.January, 30), date(2024, time.February, 29), 0},
		{"leap day reached", date(2024, time.January, 29), date(2024, time.February, 29), 1},
		{"negative range", date(2024, time.March, 1), date(2024, time.January, 1), -2},
		{"negative partial truncates toward zero", date(2024, time.March, 15), date(2024, time.January, 1), -2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, wholeMonthsBetween(tc.start, tc.end))
		})
	}
}
