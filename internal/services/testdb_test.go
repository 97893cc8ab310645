package services

import (
	"errors"
	"testing"

	"github.com/gigflow/backend/internal/models"
	"github.com/gigflow/backend/pkg/response"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory sqlite database with the schema applied.
// The pool is pinned to one connection: that keeps the in-memory database
// alive and serializes transactions, so sqlite never returns busy errors
// under the concurrent tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Gig{}, &models.Bid{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := models.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed-password",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return &user
}

func createTestGig(t *testing.T, db *gorm.DB, ownerID uint, title string) *models.Gig {
	t.Helper()

	gig := models.Gig{
		Title:       title,
		Description: "description for " + title,
		Budget:      500,
		OwnerID:     ownerID,
		Status:      models.GigOpen,
	}
	if err := db.Create(&gig).Error; err != nil {
		t.Fatalf("failed to create gig %s: %v", title, err)
	}
	return &gig
}

func createTestBid(t *testing.T, db *gorm.DB, gigID, freelancerID uint) *models.Bid {
	t.Helper()

	bid := models.Bid{
		GigID:         gigID,
		FreelancerID:  freelancerID,
		Message:       "I can do it",
		ProposedPrice: 450,
		Status:        models.BidPending,
	}
	if err := db.Create(&bid).Error; err != nil {
		t.Fatalf("failed to create bid: %v", err)
	}
	return &bid
}

// assertAppError fails the test unless err is an *AppError with the given
// HTTP status.
func assertAppError(t *testing.T, err error, wantStatus int) *response.AppError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with status %d, got nil", wantStatus)
	}
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *response.AppError, got %T: %v", err, err)
	}
	if appErr.HTTPStatus != wantStatus {
		t.Fatalf("expected HTTP status %d, got %d (%s)", wantStatus, appErr.HTTPStatus, appErr.Message)
	}
	return appErr
}

func floatPtr(v float64) *float64 { return &v }

func strPtr(s string) *string { return &s }
