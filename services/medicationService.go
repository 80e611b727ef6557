package services

import (
	"ClinicFlow/errs"
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"ClinicFlow/utils"
	"context"
	"log"
)

type MedicationService struct {
	repository *repositories.MedicationRepository
	orderRepo  *repositories.MedicationOrderRepository
}

func NewMedicationService(repository *repositories.MedicationRepository, orderRepo *repositories.MedicationOrderRepository) *MedicationService {
	return &MedicationService{repository: repository, orderRepo: orderRepo}
}

// Save creates or updates a medication. A zero minimum stock level falls back
// to the default.
func (s *MedicationService) Save(ctx context.Context, medication *models.Medication) error {
	if medication.MinStockLevel == 0 {
		medication.MinStockLevel = models.DefaultMinStockLevel
	}
	if err := utils.ValidateMedication(medication); err != nil {
		return errs.Validation("invalid medication data: %v", err)
	}
	return s.repository.Save(ctx, medication)
}

func (s *MedicationService) GetByID(ctx context.Context, id uint) (*models.Medication, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *MedicationService) GetAll(ctx context.Context) ([]models.Medication, error) {
	return s.repository.GetAll(ctx)
}

// GetLowStock returns medications whose quantity is below their minimum.
func (s *MedicationService) GetLowStock(ctx context.Context) ([]models.Medication, error) {
	return s.repository.FindBelowMinStock(ctx)
}

// AdjustStock applies a signed delta to a medication's quantity. A resulting
// negative stock clamps to zero rather than failing.
func (s *MedicationService) AdjustStock(ctx context.Context, id uint, delta int) (*models.Medication, error) {
	medication, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newQuantity := medication.Quantity + delta
	if newQuantity < 0 {
		log.Printf("Stock adjustment for medication %d would go negative; clamping to 0", id)
		newQuantity = 0
	}
	if err := s.repository.UpdateQuantity(ctx, nil, id, newQuantity); err != nil {
		return nil, err
	}

	medication.Quantity = newQuantity
	log.Printf("Updated stock for medication %d to %d", id, newQuantity)
	return medication, nil
}

func (s *MedicationService) Delete(ctx context.Context, id uint) error {
	exists, err := s.repository.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return errs.NotFound("medication not found with id %d", id)
	}
	return s.repository.Delete(ctx, id)
}

func (s *MedicationService) Count(ctx context.Context) (int64, error) {
	return s.repository.Count(ctx)
}

func (s *MedicationService) GetOrders(ctx context.Context) ([]models.MedicationOrder, error) {
	return s.orderRepo.GetAll(ctx)
}

func (s *MedicationService) GetOrdersForMedication(ctx context.Context, medicationID uint) ([]models.MedicationOrder, error) {
	return s.orderRepo.GetByMedicationID(ctx, medicationID)
}

func (s *MedicationService) CountPendingOrders(ctx context.Context) (int64, error) {
	return s.orderRepo.CountByStatus(ctx, models.OrderStatusPending)
}
