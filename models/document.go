package models

import (
	"time"
)

// DocumentCategory is shared reference data describing a slot documents can
// be uploaded into. Categories flagged is_required gate portfolio submission.
type DocumentCategory struct {
	CategoryID   int        `gorm:"primaryKey;column:category_id" json:"category_id"`
	CategoryName string     `gorm:"column:category_name" json:"category_name"`
	Code         string     `gorm:"column:code" json:"code"`
	IsRequired   bool       `gorm:"column:is_required" json:"is_required"`
	DisplayOrder int        `gorm:"column:display_order" json:"display_order"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

type PortfolioDocument struct {
	DocumentID       int        `gorm:"primaryKey;column:document_id" json:"document_id"`
	PortfolioID      int        `gorm:"column:portfolio_id" json:"portfolio_id"`
	CategoryID       int        `gorm:"column:category_id" json:"category_id"`
	UploadedBy       int        `gorm:"column:uploaded_by" json:"uploaded_by"`
	OriginalFilename string     `gorm:"column:original_filename" json:"original_filename"`
	StoredFilename   string     `gorm:"column:stored_filename" json:"stored_filename"`
	MimeType         string     `gorm:"column:mime_type" json:"mime_type"`
	FileSize         int64      `gorm:"column:file_size" json:"file_size"`
	Notes            string     `gorm:"column:notes" json:"notes"`
	UploadedAt       *time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Portfolio Portfolio        `gorm:"foreignKey:PortfolioID" json:"portfolio,omitempty"`
	Category  DocumentCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName overrides
func (DocumentCategory) TableName() string {
	return "document_categories"
}

func (PortfolioDocument) TableName() string {
	return "portfolio_documents"
}
