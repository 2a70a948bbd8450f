package models

import "time"

// Group statuses.
const (
	GroupStatusActive     = "Active"
	GroupStatusTerminated = "Terminated"
)

type Group struct {
	ID           string    `gorm:"primaryKey;size:40" json:"id"`
	GroupName    string    `gorm:"size:150;not null" json:"group_name" binding:"required,max=150"`
	Description  string    `gorm:"size:255" json:"description"`
	CreationDate time.Time `gorm:"type:date" json:"creation_date"`
	Status       string    `gorm:"size:20" json:"status"`
	Members      []Member  `gorm:"foreignKey:GroupID" json:"members,omitempty"`
	CreatedBy    string    `gorm:"size:40" json:"created_by"`
	ModifiedBy   string    `gorm:"size:40" json:"modified_by"`
	CreatedOn    time.Time `json:"created_on"`
	ModifiedOn   time.Time `json:"modified_on"`
	TenantID     string    `gorm:"column:tenant_id;size:100" json:"tenant_id"`
}

func (Group) TableName() string {
	return "savings_groups"
}
