package repositories

import (
	"ClinicFlow/cache"
	"ClinicFlow/errs"
	"ClinicFlow/models"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	AppointmentCacheExpiry = 24 * time.Hour

	appointmentsListCacheKey = "appointments_cache"
)

type AppointmentRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewAppointmentRepository(db *gorm.DB, cache *cache.Cache) *AppointmentRepository {
	return &AppointmentRepository{db: db, cache: cache}
}

// Create persists a new appointment. Pass the transaction handle when the
// insert must commit atomically with other writes.
func (r *AppointmentRepository) Create(ctx context.Context, tx *gorm.DB, appointment *models.Appointment) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.WithContext(ctx).Create(appointment).Error; err != nil {
		return errors.Wrap(err, "failed to create appointment")
	}
	r.invalidate(ctx, appointment.ID)
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.appointmentCacheKey(id)
	var cached models.Appointment
	if r.cache.GetJSON(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Schedule").
		Preload("Doctor").
		First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("appointment not found with id %d", id)
		}
		return nil, errors.Wrap(err, "failed to get appointment")
	}

	if err := r.cache.SetJSON(ctx, cacheKey, appointment, AppointmentCacheExpiry); err != nil {
		log.Printf("Failed to set appointment in cache: %v", err)
	}
	return &appointment, nil
}

func (r *AppointmentRepository) GetAll(ctx context.Context) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cached []models.Appointment
	if r.cache.GetJSON(ctx, appointmentsListCacheKey, &cached) {
		return cached, nil
	}

	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get all appointments")
	}

	if err := r.cache.SetJSON(ctx, appointmentsListCacheKey, appointments, AppointmentCacheExpiry); err != nil {
		log.Printf("Failed to set appointments in cache: %v", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) GetByDoctorID(ctx context.Context, doctorID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("appointment_time").
		Find(&appointments).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get appointments for doctor")
	}
	return appointments, nil
}

func (r *AppointmentRepository) ExistsByScheduleID(ctx context.Context, scheduleID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("schedule_id = ? AND status = ?", scheduleID, models.AppointmentStatusBooked).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check appointment existence for schedule")
	}
	return count > 0, nil
}

func (r *AppointmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count appointments")
	}
	return count, nil
}

// UpdateStatus sets the appointment status inside the given transaction.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status string) error {
	if tx == nil {
		tx = r.db
	}
	err := tx.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return errors.Wrap(err, "failed to update appointment status")
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *AppointmentRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cache.Delete(ctx, r.appointmentCacheKey(id)); err != nil {
		log.Printf("Failed to delete appointment cache: %v", err)
	}
	if err := r.cache.DeleteAll(ctx, appointmentsListCacheKey); err != nil {
		log.Printf("Failed to delete appointments list cache: %v", err)
	}
}

func (r *AppointmentRepository) appointmentCacheKey(id uint) string {
	return fmt.Sprintf("appointment_cache:%d", id)
}
