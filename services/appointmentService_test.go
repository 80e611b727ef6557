package services

import (
	"ClinicFlow/errs"
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"context"
	"testing"
	"time"
)

func TestAppointmentService_BookClaimsSlot(t *testing.T) {
	db := newTestDB(t)
	service := NewAppointmentService(db,
		repositories.NewAppointmentRepository(db, noCache()),
		repositories.NewScheduleRepository(db, noCache()))

	doctor := createTestDoctor(t, db, "Dr. Adams", "Cardiology")
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	schedule := createTestSchedule(t, db, doctor.ID, start, true)

	appointment, err := service.Book(context.Background(), "reception-1", schedule.ID, "checkup")
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	if appointment.Status != models.AppointmentStatusBooked {
		t.Errorf("status = %q, want %q", appointment.Status, models.AppointmentStatusBooked)
	}
	if appointment.CreatedBy != "reception-1" {
		t.Errorf("created by = %q, want reception-1", appointment.CreatedBy)
	}
	if !appointment.AppointmentTime.Equal(start) {
		t.Errorf("appointment time = %v, want %v", appointment.AppointmentTime, start)
	}

	var reloaded models.Schedule
	if err := db.First(&reloaded, schedule.ID).Error; err != nil {
		t.Fatalf("reload schedule: %v", err)
	}
	if reloaded.IsAvailable {
		t.Error("schedule should be unavailable after booking")
	}
}

func TestAppointmentService_BookTakenSlotFails(t *testing.T) {
	db := newTestDB(t)
	service := NewAppointmentService(db,
		repositories.NewAppointmentRepository(db, noCache()),
		repositories.NewScheduleRepository(db, noCache()))

	doctor := createTestDoctor(t, db, "Dr. Adams", "Cardiology")
	schedule := createTestSchedule(t, db, doctor.ID, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), true)

	if _, err := service.Book(context.Background(), "reception-1", schedule.ID, "checkup"); err != nil {
		t.Fatalf("first book: %v", err)
	}

	_, err := service.Book(context.Background(), "reception-2", schedule.ID, "checkup")
	if !errs.IsConflict(err) {
		t.Fatalf("second book error = %v, want conflict", err)
	}

	var count int64
	if err := db.Model(&models.Appointment{}).Count(&count).Error; err != nil {
		t.Fatalf("count appointments: %v", err)
	}
	if count != 1 {
		t.Errorf("appointment count = %d, want 1", count)
	}
}

func TestAppointmentService_BookUnknownScheduleFails(t *testing.T) {
	db := newTestDB(t)
	service := NewAppointmentService(db,
		repositories.NewAppointmentRepository(db, noCache()),
		repositories.NewScheduleRepository(db, noCache()))

	_, err := service.Book(context.Background(), "reception-1", 9999, "checkup")
	if !errs.IsNotFound(err) {
		t.Fatalf("book error = %v, want not found", err)
	}
}

func TestAppointmentService_CancelReopensSlot(t *testing.T) {
	db := newTestDB(t)
	service := NewAppointmentService(db,
		repositories.NewAppointmentRepository(db, noCache()),
		repositories.NewScheduleRepository(db, noCache()))

	doctor := createTestDoctor(t, db, "Dr. Adams", "Cardiology")
	schedule := createTestSchedule(t, db, doctor.ID, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), true)

	appointment, err := service.Book(context.Background(), "reception-1", schedule.ID, "checkup")
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	if err := service.Cancel(context.Background(), "reception-1", appointment.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	var reloadedAppointment models.Appointment
	if err := db.First(&reloadedAppointment, appointment.ID).Error; err != nil {
		t.Fatalf("reload appointment: %v", err)
	}
	if reloadedAppointment.Status != models.AppointmentStatusCancelled {
		t.Errorf("status = %q, want %q", reloadedAppointment.Status, models.AppointmentStatusCancelled)
	}

	var reloadedSchedule models.Schedule
	if err := db.First(&reloadedSchedule, schedule.ID).Error; err != nil {
		t.Fatalf("reload schedule: %v", err)
	}
	if !reloadedSchedule.IsAvailable {
		t.Error("schedule should be available again after cancellation")
	}
}

func TestAppointmentService_CancelTwiceFails(t *testing.T) {
	db := newTestDB(t)
	service := NewAppointmentService(db,
		repositories.NewAppointmentRepository(db, noCache()),
		repositories.NewScheduleRepository(db, noCache()))

	doctor := createTestDoctor(t, db, "Dr. Adams", "Cardiology")
	schedule := createTestSchedule(t, db, doctor.ID, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), true)

	appointment, err := service.Book(context.Background(), "reception-1", schedule.ID, "checkup")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if err := service.Cancel(context.Background(), "reception-1", appointment.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	err = service.Cancel(context.Background(), "reception-1", appointment.ID)
	if !errs.IsConflict(err) {
		t.Fatalf("second cancel error = %v, want conflict", err)
	}
}

func TestAppointmentService_BookScheduleWithoutDoctorFails(t *testing.T) {
	db := newTestDB(t)
	service := NewAppointmentService(db,
		repositories.NewAppointmentRepository(db, noCache()),
		repositories.NewScheduleRepository(db, noCache()))

	// Slot whose doctor row is gone.
	orphan := createTestSchedule(t, db, 9999, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), true)

	_, err := service.Book(context.Background(), "reception-1", orphan.ID, "checkup")
	if !errs.IsInvalidState(err) {
		t.Fatalf("book error = %v, want invalid state", err)
	}

	var reloaded models.Schedule
	if err := db.First(&reloaded, orphan.ID).Error; err != nil {
		t.Fatalf("reload schedule: %v", err)
	}
	if !reloaded.IsAvailable {
		t.Error("rejected booking must not claim the slot")
	}
}

func TestAppointmentService_CancelToleratesMissingSchedule(t *testing.T) {
	db := newTestDB(t)
	service := NewAppointmentService(db,
		repositories.NewAppointmentRepository(db, noCache()),
		repositories.NewScheduleRepository(db, noCache()))

	doctor := createTestDoctor(t, db, "Dr. Adams", "Cardiology")
	schedule := createTestSchedule(t, db, doctor.ID, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), true)

	appointment, err := service.Book(context.Background(), "reception-1", schedule.ID, "checkup")
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	if err := db.Delete(&models.Schedule{}, schedule.ID).Error; err != nil {
		t.Fatalf("remove schedule: %v", err)
	}

	// The dangling slot reference is logged, not fatal.
	if err := service.Cancel(context.Background(), "reception-1", appointment.ID); err != nil {
		t.Fatalf("cancel with missing schedule: %v", err)
	}

	var reloaded models.Appointment
	if err := db.First(&reloaded, appointment.ID).Error; err != nil {
		t.Fatalf("reload appointment: %v", err)
	}
	if reloaded.Status != models.AppointmentStatusCancelled {
		t.Errorf("status = %q, want %q", reloaded.Status, models.AppointmentStatusCancelled)
	}
}

func TestAppointmentService_RebookAfterCancel(t *testing.T) {
	db := newTestDB(t)
	service := NewAppointmentService(db,
		repositories.NewAppointmentRepository(db, noCache()),
		repositories.NewScheduleRepository(db, noCache()))

	doctor := createTestDoctor(t, db, "Dr. Adams", "Cardiology")
	schedule := createTestSchedule(t, db, doctor.ID, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), true)

	first, err := service.Book(context.Background(), "reception-1", schedule.ID, "checkup")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if err := service.Cancel(context.Background(), "reception-1", first.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	second, err := service.Book(context.Background(), "reception-2", schedule.ID, "follow-up")
	if err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
	if second.ID == first.ID {
		t.Error("rebooking should create a new appointment")
	}
}
