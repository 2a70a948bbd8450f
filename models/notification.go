package models

import "time"

type Notification struct {
	ID             string    `gorm:"primaryKey;size:40" json:"id"`
	MemberID       string    `gorm:"size:40;index" json:"member_id"`
	Type           string    `gorm:"size:50" json:"type"`
	MessageContent string    `gorm:"size:500" json:"message_content"`
	SendDate       time.Time `json:"send_date"`
	Channel        string    `gorm:"size:30" json:"channel"`
	Read           bool      `gorm:"column:is_read;default:false" json:"read"`
	CreatedBy      string    `gorm:"size:40" json:"created_by"`
	ModifiedBy     string    `gorm:"size:40" json:"modified_by"`
	CreatedOn      time.Time `json:"created_on"`
	ModifiedOn     time.Time `json:"modified_on"`
	TenantID       string    `gorm:"column:tenant_id;size:100" json:"tenant_id"`
}

func (Notification) TableName() string {
	return "notifications"
}
