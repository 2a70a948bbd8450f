package models

import "time"

// PasswordReset records a temporary credential issued through the
// forgot-password flow. The temporary password itself is only ever emailed;
// the row tracks issuance for auditing.
type PasswordReset struct {
	ID        string    `gorm:"primaryKey;size:40" json:"id"`
	MemberID  string    `gorm:"size:40;not null;index" json:"member_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	TenantID  string    `gorm:"column:tenant_id;size:100" json:"tenant_id"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}
