package repositories

import (
	"ClinicFlow/cache"
	"ClinicFlow/errs"
	"ClinicFlow/models"
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const schedulesListCacheKey = "schedules_cache"

type ScheduleRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewScheduleRepository(db *gorm.DB, cache *cache.Cache) *ScheduleRepository {
	return &ScheduleRepository{db: db, cache: cache}
}

func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	if err := r.db.WithContext(ctx).Create(schedule).Error; err != nil {
		return errors.Wrap(err, "failed to create schedule")
	}
	r.invalidate(ctx)
	return nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id uint) (*models.Schedule, error) {
	var schedule models.Schedule
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		First(&schedule, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("schedule slot not found with id %d", id)
		}
		return nil, errors.Wrap(err, "failed to get schedule")
	}
	return &schedule, nil
}

func (r *ScheduleRepository) GetAll(ctx context.Context) ([]models.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cached []models.Schedule
	if r.cache.GetJSON(ctx, schedulesListCacheKey, &cached) {
		return cached, nil
	}

	var schedules []models.Schedule
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Order("start_time").
		Find(&schedules).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get all schedules")
	}

	// Short expiry: availability flips on every booking.
	if err := r.cache.SetJSON(ctx, schedulesListCacheKey, schedules, time.Minute); err != nil {
		log.Printf("Failed to set schedules in cache: %v", err)
	}
	return schedules, nil
}

func (r *ScheduleRepository) GetByDoctorID(ctx context.Context, doctorID uint) ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("start_time").
		Find(&schedules).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get doctor schedules")
	}
	return schedules, nil
}

// ExistsByID reports whether the slot exists, on tx when given so callers
// inside a transaction never borrow a second connection.
func (r *ScheduleRepository) ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	var count int64
	err := tx.WithContext(ctx).Model(&models.Schedule{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check schedule existence")
	}
	return count > 0, nil
}

func (r *ScheduleRepository) ExistsByDoctorID(ctx context.Context, doctorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Schedule{}).Where("doctor_id = ?", doctorID).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check schedule existence for doctor")
	}
	return count > 0, nil
}

// FindAvailable returns available slots whose start time falls on the given
// date, optionally narrowed by doctor and/or specialization. The date match
// uses a half-open range so it works identically on Postgres and SQLite.
func (r *ScheduleRepository) FindAvailable(ctx context.Context, date time.Time, doctorID uint, specialization string) ([]models.Schedule, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := r.db.WithContext(ctx).Model(&models.Schedule{}).
		Preload("Doctor").
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Where("is_available = ?", true)
	if doctorID != 0 {
		query = query.Where("doctor_id = ?", doctorID)
	}
	if specialization != "" {
		query = query.Joins("JOIN doctor ON doctor.id = schedule.doctor_id").
			Where("doctor.specialization = ?", specialization)
	}

	var schedules []models.Schedule
	if err := query.Order("start_time").Find(&schedules).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find available schedules")
	}
	return schedules, nil
}

// MarkUnavailable flips the availability flag to false with a conditional
// update, so two concurrent bookings of the same slot cannot both succeed.
// Returns Conflict when the slot was already taken and NotFound when the id
// does not exist.
func (r *ScheduleRepository) MarkUnavailable(ctx context.Context, tx *gorm.DB, id uint) error {
	if tx == nil {
		tx = r.db
	}
	res := tx.WithContext(ctx).Model(&models.Schedule{}).
		Where("id = ? AND is_available = ?", id, true).
		Update("is_available", false)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to mark schedule unavailable")
	}
	if res.RowsAffected == 0 {
		exists, err := r.ExistsByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NotFound("schedule slot not found with id %d", id)
		}
		return errs.Conflict("selected time slot is no longer available")
	}
	r.invalidate(ctx)
	return nil
}

// MarkAvailable re-opens a slot. Idempotent: re-opening an already available
// slot is not an error.
func (r *ScheduleRepository) MarkAvailable(ctx context.Context, tx *gorm.DB, id uint) error {
	if tx == nil {
		tx = r.db
	}
	err := tx.WithContext(ctx).Model(&models.Schedule{}).
		Where("id = ?", id).
		Update("is_available", true).Error
	if err != nil {
		return errors.Wrap(err, "failed to mark schedule available")
	}
	r.invalidate(ctx)
	return nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Schedule{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete schedule")
	}
	r.invalidate(ctx)
	return nil
}

func (r *ScheduleRepository) invalidate(ctx context.Context) {
	if err := r.cache.DeleteAll(ctx, schedulesListCacheKey); err != nil {
		log.Printf("Failed to delete schedules cache: %v", err)
	}
}
