// Package store provides the GORM-backed implementations of the ledger's
// collaborator interfaces.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fdesdsf/MANPOWER/ledger"
	"github.com/fdesdsf/MANPOWER/models"
)

type MemberDirectory struct {
	db *gorm.DB
}

func NewMemberDirectory(db *gorm.DB) *MemberDirectory {
	return &MemberDirectory{db: db}
}

func (d *MemberDirectory) FindByID(id string) (*models.Member, error) {
	var member models.Member
	if err := d.db.First(&member, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: member %s", ledger.ErrNotFound, id)
		}
		return nil, err
	}
	return &member, nil
}

type GroupDirectory struct {
	db *gorm.DB
}

func NewGroupDirectory(db *gorm.DB) *GroupDirectory {
	return &GroupDirectory{db: db}
}

func (d *GroupDirectory) FindByID(id string) (*models.Group, error) {
	var group models.Group
	if err := d.db.Preload("Members").First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: group %s", ledger.ErrNotFound, id)
		}
		return nil, err
	}
	return &group, nil
}

// LoanStore persists loans. Inside Transact, reads take a row lock
// (SELECT ... FOR UPDATE) so concurrent payments against the same loan
// serialize at the database.
type LoanStore struct {
	db        *gorm.DB
	forUpdate bool
}

func NewLoanStore(db *gorm.DB) *LoanStore {
	return &LoanStore{db: db}
}

func (s *LoanStore) FindByID(id string) (*models.Loan, error) {
	q := s.db
	if s.forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var loan models.Loan
	if err := q.First(&loan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: loan %s", ledger.ErrNotFound, id)
		}
		return nil, err
	}
	return &loan, nil
}

func (s *LoanStore) FindAll() ([]models.Loan, error) {
	var loans []models.Loan
	if err := s.db.Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}

func (s *LoanStore) Save(loan *models.Loan) error {
	return s.db.Save(loan).Error
}

func (s *LoanStore) DeleteByID(id string) error {
	return s.db.Delete(&models.Loan{}, "id = ?", id).Error
}

func (s *LoanStore) Transact(fn func(tx ledger.LoanStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&LoanStore{db: tx, forUpdate: true})
	})
}

// ContributionStore persists gateway-initiated contributions keyed by the
// PesaPal tracking id.
type ContributionStore struct {
	db *gorm.DB
}

func NewContributionStore(db *gorm.DB) *ContributionStore {
	return &ContributionStore{db: db}
}

func (s *ContributionStore) Create(contribution *models.Contribution) error {
	return s.db.Create(contribution).Error
}

func (s *ContributionStore) FindByTrackingID(trackingID string) (*models.Contribution, error) {
	var contribution models.Contribution
	if err := s.db.First(&contribution, "pesapal_tracking_id = ?", trackingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: contribution for tracking id %s", ledger.ErrNotFound, trackingID)
		}
		return nil, err
	}
	return &contribution, nil
}

func (s *ContributionStore) Save(contribution *models.Contribution) error {
	return s.db.Save(contribution).Error
}
