package handlers

import (
	"ClinicFlow/cache"
	"ClinicFlow/database"
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"ClinicFlow/services"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newHandlerTestDB(t *testing.T) *gorm.DB {
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

// The list-for-doctor routes carry the doctor id in the :id param; the
// handlers must read that param, not an unregistered one.
func TestScheduleHandler_GetDoctorScheduleUsesRouteParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newHandlerTestDB(t)

	doctor := &models.Doctor{Name: "Dr. Adams", Specialization: "Cardiology"}
	if err := db.Create(doctor).Error; err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	schedule := &models.Schedule{
		DoctorID:    doctor.ID,
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		IsAvailable: true,
	}
	if err := db.Create(schedule).Error; err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	service := services.NewScheduleService(
		repositories.NewScheduleRepository(db, cache.New(nil)),
		repositories.NewDoctorRepository(db, cache.New(nil)),
		repositories.NewAppointmentRepository(db, cache.New(nil)))
	handler := NewScheduleHandler(service)

	router := gin.New()
	router.GET("/doctors/:id/schedules", handler.GetDoctorSchedule)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/doctors/%d/schedules", doctor.ID), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var got []models.Schedule
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got) != 1 || got[0].ID != schedule.ID {
		t.Fatalf("got %d schedules, want the doctor's one slot", len(got))
	}
}

func TestAppointmentHandler_GetDoctorAppointmentsUsesRouteParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newHandlerTestDB(t)

	doctor := &models.Doctor{Name: "Dr. Adams", Specialization: "Cardiology"}
	if err := db.Create(doctor).Error; err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	schedule := &models.Schedule{
		DoctorID:  doctor.ID,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
	}
	if err := db.Create(schedule).Error; err != nil {
		t.Fatalf("create schedule: %v", err)
	}
	appointment := &models.Appointment{
		ScheduleID:      schedule.ID,
		DoctorID:        doctor.ID,
		AppointmentTime: start,
		Status:          models.AppointmentStatusBooked,
		CreatedBy:       "reception-1",
	}
	if err := db.Create(appointment).Error; err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	service := services.NewAppointmentService(db,
		repositories.NewAppointmentRepository(db, cache.New(nil)),
		repositories.NewScheduleRepository(db, cache.New(nil)))
	handler := NewAppointmentHandler(service)

	router := gin.New()
	router.GET("/doctors/:id/appointments", handler.GetDoctorAppointments)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/doctors/%d/appointments", doctor.ID), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var got []models.Appointment
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got) != 1 || got[0].ID != appointment.ID {
		t.Fatalf("got %d appointments, want the doctor's one appointment", len(got))
	}
}
