package models

import "time"

// Member roles. GroupAdmin members approve or reject loans for their group.
const (
	RoleMember     = "Member"
	RoleGroupAdmin = "GroupAdmin"
	RoleSuperAdmin = "SuperAdmin"
)

// Member statuses.
const (
	MemberStatusActive   = "Active"
	MemberStatusInactive = "Inactive"
)

type Member struct {
	ID          string    `gorm:"primaryKey;size:40" json:"id"`
	GroupID     string    `gorm:"size:40;index" json:"group_id"`
	FirstName   string    `gorm:"size:100;not null" json:"first_name" binding:"required,max=100"`
	LastName    string    `gorm:"size:100;not null" json:"last_name" binding:"required,max=100"`
	Email       string    `gorm:"size:150;unique;not null" json:"email" binding:"required,email,max=150"`
	PhoneNumber string    `gorm:"size:20" json:"phone_number" binding:"required,kenyanphone"`
	Password    string    `gorm:"size:255" json:"password,omitempty" binding:"required,min=8,max=255"`
	JoinDate    time.Time `gorm:"type:date" json:"join_date"`
	Status      string    `gorm:"size:20" json:"status"`
	Role        string    `gorm:"size:20;not null" json:"role" binding:"required,oneof=Member GroupAdmin SuperAdmin"`
	CreatedBy   string    `gorm:"size:40" json:"created_by"`
	ModifiedBy  string    `gorm:"size:40" json:"modified_by"`
	CreatedOn   time.Time `json:"created_on"`
	ModifiedOn  time.Time `json:"modified_on"`
	TenantID    string    `gorm:"column:tenant_id;size:100" json:"tenant_id"`
}

func (Member) TableName() string {
	return "members"
}
