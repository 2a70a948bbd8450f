package models

import "time"

type Document struct {
	ID           string    `gorm:"primaryKey;size:40" json:"id"`
	GroupID      string    `gorm:"size:40;not null;index" json:"group_id"`
	DocumentType string    `gorm:"size:50" json:"document_type"`
	FileName     string    `gorm:"size:255" json:"file_name" binding:"required,max=255"`
	FilePathURL  string    `gorm:"size:500" json:"file_path_url"`
	UploadDate   time.Time `gorm:"type:date" json:"upload_date"`
	UploadedByID string    `gorm:"column:uploaded_by_member_id;size:40" json:"uploaded_by_id"`
	CreatedBy    string    `gorm:"size:40" json:"created_by"`
	ModifiedBy   string    `gorm:"size:40" json:"modified_by"`
	CreatedOn    time.Time `json:"created_on"`
	ModifiedOn   time.Time `json:"modified_on"`
	TenantID     string    `gorm:"column:tenant_id;size:100" json:"tenant_id"`
}

func (Document) TableName() string {
	return "documents"
}
