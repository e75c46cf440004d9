package services

import (
	"testing"
	"time"

	"portfolio-review-api/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
// MaxOpenConns(1) keeps every query on the single connection that owns the
// in-memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.User{},
		&models.Portfolio{},
		&models.DocumentCategory{},
		&models.PortfolioDocument{},
		&models.EvaluationAssignment{},
		&models.Evaluation{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role, email string) models.User {
	t.Helper()
	now := time.Now()
	user := models.User{
		FirstName: "Test",
		LastName:  string(role),
		Email:     email,
		Password:  "not-a-real-hash",
		Role:      role,
		CreateAt:  &now,
		UpdateAt:  &now,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedPortfolio(t *testing.T, db *gorm.DB, ownerID int, status models.PortfolioStatus) models.Portfolio {
	t.Helper()
	now := time.Now()
	portfolio := models.Portfolio{
		UserID:   ownerID,
		Title:    "Test Portfolio",
		Status:   status,
		CreateAt: &now,
		UpdateAt: &now,
	}
	if err := db.Create(&portfolio).Error; err != nil {
		t.Fatalf("failed to seed portfolio: %v", err)
	}
	return portfolio
}

func seedCategory(t *testing.T, db *gorm.DB, name string, required bool) models.DocumentCategory {
	t.Helper()
	now := time.Now()
	category := models.DocumentCategory{
		CategoryName: name,
		Code:         name,
		IsRequired:   required,
		CreateAt:     &now,
		UpdateAt:     &now,
	}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return category
}

func seedDocument(t *testing.T, db *gorm.DB, portfolioID, categoryID, uploadedBy int) models.PortfolioDocument {
	t.Helper()
	now := time.Now()
	document := models.PortfolioDocument{
		PortfolioID:      portfolioID,
		CategoryID:       categoryID,
		UploadedBy:       uploadedBy,
		OriginalFilename: "statement.pdf",
		StoredFilename:   "abc123.pdf",
		MimeType:         "application/pdf",
		FileSize:         1024,
		UploadedAt:       &now,
		CreateAt:         &now,
		UpdateAt:         &now,
	}
	if err := db.Create(&document).Error; err != nil {
		t.Fatalf("failed to seed document: %v", err)
	}
	return document
}

func seedAssignment(t *testing.T, db *gorm.DB, portfolioID, evaluatorID int, status models.AssignmentStatus) models.EvaluationAssignment {
	t.Helper()
	now := time.Now()
	assignment := models.EvaluationAssignment{
		PortfolioID: portfolioID,
		EvaluatorID: evaluatorID,
		AssignedBy:  1,
		Status:      status,
		CreateAt:    &now,
		UpdateAt:    &now,
	}
	if err := db.Create(&assignment).Error; err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}
	return assignment
}
