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
	DoctorCacheExpiry = 24 * time.Hour

	doctorsListCacheKey = "doctors_cache"
)

type DoctorRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDoctorRepository(db *gorm.DB, cache *cache.Cache) *DoctorRepository {
	return &DoctorRepository{db: db, cache: cache}
}

func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	if err := r.db.WithContext(ctx).Create(doctor).Error; err != nil {
		return errors.Wrap(err, "failed to create doctor")
	}
	r.invalidate(ctx, doctor.ID)
	return nil
}

func (r *DoctorRepository) GetByID(ctx context.Context, id uint) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.doctorCacheKey(id)
	var cached models.Doctor
	if r.cache.GetJSON(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	var doctor models.Doctor
	err := r.db.WithContext(ctx).First(&doctor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("doctor not found with id %d", id)
		}
		return nil, errors.Wrap(err, "failed to get doctor")
	}

	if err := r.cache.SetJSON(ctx, cacheKey, doctor, DoctorCacheExpiry); err != nil {
		log.Printf("Failed to set doctor in cache: %v", err)
	}
	return &doctor, nil
}

func (r *DoctorRepository) GetAll(ctx context.Context) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cached []models.Doctor
	if r.cache.GetJSON(ctx, doctorsListCacheKey, &cached) {
		return cached, nil
	}

	var doctors []models.Doctor
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&doctors).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get all doctors")
	}

	if err := r.cache.SetJSON(ctx, doctorsListCacheKey, doctors, DoctorCacheExpiry); err != nil {
		log.Printf("Failed to set doctors in cache: %v", err)
	}
	return doctors, nil
}

func (r *DoctorRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Doctor{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check doctor existence")
	}
	return count > 0, nil
}

func (r *DoctorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Doctor{}).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count doctors")
	}
	return count, nil
}

func (r *DoctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	if err := r.db.WithContext(ctx).Save(doctor).Error; err != nil {
		return errors.Wrap(err, "failed to update doctor")
	}
	r.invalidate(ctx, doctor.ID)
	return nil
}

func (r *DoctorRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Doctor{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete doctor")
	}
	r.invalidate(ctx, id)
	return nil
}

// invalidate drops the per-doctor and list cache entries. Invalidation is
// best-effort: a stale entry expires on its own, so failures only get logged.
func (r *DoctorRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cache.Delete(ctx, r.doctorCacheKey(id)); err != nil {
		log.Printf("Failed to delete doctor cache: %v", err)
	}
	if err := r.cache.DeleteAll(ctx, doctorsListCacheKey); err != nil {
		log.Printf("Failed to delete doctors list cache: %v", err)
	}
}

func (r *DoctorRepository) doctorCacheKey(id uint) string {
	return fmt.Sprintf("doctor_cache:%d", id)
}
