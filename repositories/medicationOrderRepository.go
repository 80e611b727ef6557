package repositories

import (
	"ClinicFlow/models"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type MedicationOrderRepository struct {
	db *gorm.DB
}

func NewMedicationOrderRepository(db *gorm.DB) *MedicationOrderRepository {
	return &MedicationOrderRepository{db: db}
}

// Create persists a replenishment order, inside tx when given.
func (r *MedicationOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.MedicationOrder) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.WithContext(ctx).Create(order).Error; err != nil {
		return errors.Wrap(err, "failed to create medication order")
	}
	return nil
}

func (r *MedicationOrderRepository) GetAll(ctx context.Context) ([]models.MedicationOrder, error) {
	var orders []models.MedicationOrder
	err := r.db.WithContext(ctx).
		Preload("Medication").
		Order("order_date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get medication orders")
	}
	return orders, nil
}

func (r *MedicationOrderRepository) GetByMedicationID(ctx context.Context, medicationID uint) ([]models.MedicationOrder, error) {
	var orders []models.MedicationOrder
	err := r.db.WithContext(ctx).
		Where("medication_id = ?", medicationID).
		Order("order_date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get orders for medication")
	}
	return orders, nil
}

func (r *MedicationOrderRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MedicationOrder{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count medication orders")
	}
	return count, nil
}
