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
	MedicationCacheExpiry = 1 * time.Hour

	medicationsListCacheKey = "medications_cache"
)

type MedicationRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewMedicationRepository(db *gorm.DB, cache *cache.Cache) *MedicationRepository {
	return &MedicationRepository{db: db, cache: cache}
}

func (r *MedicationRepository) Save(ctx context.Context, medication *models.Medication) error {
	if err := r.db.WithContext(ctx).Save(medication).Error; err != nil {
		return errors.Wrap(err, "failed to save medication")
	}
	r.invalidate(ctx, medication.ID)
	return nil
}

func (r *MedicationRepository) GetByID(ctx context.Context, id uint) (*models.Medication, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.medicationCacheKey(id)
	var cached models.Medication
	if r.cache.GetJSON(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	var medication models.Medication
	err := r.db.WithContext(ctx).First(&medication, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("medication not found with id %d", id)
		}
		return nil, errors.Wrap(err, "failed to get medication")
	}

	if err := r.cache.SetJSON(ctx, cacheKey, medication, MedicationCacheExpiry); err != nil {
		log.Printf("Failed to set medication in cache: %v", err)
	}
	return &medication, nil
}

func (r *MedicationRepository) GetAll(ctx context.Context) ([]models.Medication, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cached []models.Medication
	if r.cache.GetJSON(ctx, medicationsListCacheKey, &cached) {
		return cached, nil
	}

	var medications []models.Medication
	err := r.db.WithContext(ctx).Order("name").Find(&medications).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get all medications")
	}

	if err := r.cache.SetJSON(ctx, medicationsListCacheKey, medications, MedicationCacheExpiry); err != nil {
		log.Printf("Failed to set medications in cache: %v", err)
	}
	return medications, nil
}

// FindBelowMinStock returns medications whose quantity has dropped under
// their own minimum stock level. Never served from cache: the sweep must see
// current quantities.
func (r *MedicationRepository) FindBelowMinStock(ctx context.Context) ([]models.Medication, error) {
	var medications []models.Medication
	err := r.db.WithContext(ctx).
		Where("quantity < min_stock_level").
		Find(&medications).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find low stock medications")
	}
	return medications, nil
}

func (r *MedicationRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Medication{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check medication existence")
	}
	return count > 0, nil
}

func (r *MedicationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Medication{}).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count medications")
	}
	return count, nil
}

// UpdateQuantity sets the stock count inside the given transaction.
func (r *MedicationRepository) UpdateQuantity(ctx context.Context, tx *gorm.DB, id uint, quantity int) error {
	if tx == nil {
		tx = r.db
	}
	err := tx.WithContext(ctx).Model(&models.Medication{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
	if err != nil {
		return errors.Wrap(err, "failed to update medication quantity")
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *MedicationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Medication{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete medication")
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *MedicationRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cache.Delete(ctx, r.medicationCacheKey(id)); err != nil {
		log.Printf("Failed to delete medication cache: %v", err)
	}
	if err := r.cache.DeleteAll(ctx, medicationsListCacheKey); err != nil {
		log.Printf("Failed to delete medications list cache: %v", err)
	}
}

func (r *MedicationRepository) medicationCacheKey(id uint) string {
	return fmt.Sprintf("medication_cache:%d", id)
}
