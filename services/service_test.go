package services

import (
	"ClinicFlow/cache"
	"ClinicFlow/database"
	"ClinicFlow/models"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema applied.
// The pool is capped at one connection so every query sees the same memory
// database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// noCache returns a cache that is always empty, so repositories hit the
// database directly.
func noCache() *cache.Cache {
	return cache.New(nil)
}

// testDeps bundles what a service test needs besides the service itself.
type testDeps struct {
	db *gorm.DB
}

func createTestDoctor(t *testing.T, db *gorm.DB, name, specialization string) *models.Doctor {
	t.Helper()
	doctor := &models.Doctor{Name: name, Specialization: specialization}
	if err := db.Create(doctor).Error; err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	return doctor
}

func createTestSchedule(t *testing.T, db *gorm.DB, doctorID uint, start time.Time, available bool) *models.Schedule {
	t.Helper()
	schedule := &models.Schedule{
		DoctorID:    doctorID,
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		IsAvailable: available,
	}
	if err := db.Create(schedule).Error; err != nil {
		t.Fatalf("create schedule: %v", err)
	}
	return schedule
}

func createTestMedication(t *testing.T, db *gorm.DB, name string, quantity, minStock int) *models.Medication {
	t.Helper()
	medication := &models.Medication{
		Name:          name,
		Quantity:      quantity,
		MinStockLevel: minStock,
		Price:         9.99,
	}
	if err := db.Create(medication).Error; err != nil {
		t.Fatalf("create medication: %v", err)
	}
	return medication
}
