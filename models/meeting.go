package models

import "time"

type Meeting struct {
	ID             string    `gorm:"primaryKey;size:40" json:"id"`
	GroupID        string    `gorm:"size:40;not null;index" json:"group_id"`
	MeetingDate    time.Time `gorm:"type:date" json:"meeting_date"`
	MeetingTime    string    `gorm:"size:20" json:"meeting_time"`
	MeetingLink    string    `gorm:"size:255" json:"meeting_link"`
	Title          string    `gorm:"size:150" json:"title" binding:"required,max=150"`
	Agenda         string    `gorm:"size:500" json:"agenda"`
	CalledByRole   string    `gorm:"size:20" json:"called_by_role"`
	TargetAudience string    `gorm:"size:50" json:"target_audience"`
	CreatedBy      string    `gorm:"size:40" json:"created_by"`
	ModifiedBy     string    `gorm:"size:40" json:"modified_by"`
	CreatedOn      time.Time `json:"created_on"`
	ModifiedOn     time.Time `json:"modified_on"`
	TenantID       string    `gorm:"column:tenant_id;size:100" json:"tenant_id"`
}

func (Meeting) TableName() string {
	return "meetings"
}
