package services

import (
	"ClinicFlow/errs"
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"context"
	"testing"
	"time"
)

func newDoctorService(t *testing.T) (*DoctorService, *testDeps) {
	t.Helper()
	db := newTestDB(t)
	service := NewDoctorService(
		repositories.NewDoctorRepository(db, noCache()),
		repositories.NewScheduleRepository(db, noCache()))
	return service, &testDeps{db: db}
}

func TestDoctorService_CreateValidates(t *testing.T) {
	service, _ := newDoctorService(t)

	err := service.Create(context.Background(), &models.Doctor{Name: "", Specialization: "Cardiology"})
	if !errs.IsValidation(err) {
		t.Fatalf("create error = %v, want validation", err)
	}

	if err := service.Create(context.Background(), &models.Doctor{Name: "Dr. Adams", Specialization: "Cardiology"}); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestDoctorService_DeleteBlockedBySchedules(t *testing.T) {
	service, deps := newDoctorService(t)

	doctor := createTestDoctor(t, deps.db, "Dr. Adams", "Cardiology")
	schedule := createTestSchedule(t, deps.db, doctor.ID, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), true)

	err := service.Delete(context.Background(), doctor.ID)
	if !errs.IsConflict(err) {
		t.Fatalf("delete with schedules error = %v, want conflict", err)
	}

	if err := deps.db.Delete(&models.Schedule{}, schedule.ID).Error; err != nil {
		t.Fatalf("remove schedule: %v", err)
	}

	if err := service.Delete(context.Background(), doctor.ID); err != nil {
		t.Fatalf("delete after removing schedules: %v", err)
	}

	var count int64
	if err := deps.db.Model(&models.Doctor{}).Count(&count).Error; err != nil {
		t.Fatalf("count doctors: %v", err)
	}
	if count != 0 {
		t.Errorf("doctor count = %d, want 0", count)
	}
}

func TestDoctorService_DeleteUnknown(t *testing.T) {
	service, _ := newDoctorService(t)

	err := service.Delete(context.Background(), 9999)
	if !errs.IsNotFound(err) {
		t.Fatalf("delete unknown doctor error = %v, want not found", err)
	}
}
