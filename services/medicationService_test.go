package services

import (
	"ClinicFlow/errs"
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"context"
	"testing"
)

func newMedicationService(t *testing.T) (*MedicationService, *testDeps) {
	t.Helper()
	db := newTestDB(t)
	service := NewMedicationService(
		repositories.NewMedicationRepository(db, noCache()),
		repositories.NewMedicationOrderRepository(db))
	return service, &testDeps{db: db}
}

func TestMedicationService_SaveAppliesDefaultMinStock(t *testing.T) {
	service, _ := newMedicationService(t)

	medication := &models.Medication{Name: "Amoxicillin", Quantity: 20, Price: 4.50}
	if err := service.Save(context.Background(), medication); err != nil {
		t.Fatalf("save: %v", err)
	}
	if medication.MinStockLevel != models.DefaultMinStockLevel {
		t.Errorf("min stock level = %d, want %d", medication.MinStockLevel, models.DefaultMinStockLevel)
	}
}

func TestMedicationService_SaveValidates(t *testing.T) {
	service, _ := newMedicationService(t)

	err := service.Save(context.Background(), &models.Medication{Name: "", Quantity: 5})
	if !errs.IsValidation(err) {
		t.Fatalf("save error = %v, want validation", err)
	}
}

func TestMedicationService_AdjustStock(t *testing.T) {
	service, deps := newMedicationService(t)
	medication := createTestMedication(t, deps.db, "Ibuprofen", 5, 10)

	updated, err := service.AdjustStock(context.Background(), medication.ID, 7)
	if err != nil {
		t.Fatalf("adjust stock: %v", err)
	}
	if updated.Quantity != 12 {
		t.Errorf("quantity = %d, want 12", updated.Quantity)
	}

	// A delta below zero stock clamps instead of failing.
	updated, err = service.AdjustStock(context.Background(), medication.ID, -50)
	if err != nil {
		t.Fatalf("adjust stock negative: %v", err)
	}
	if updated.Quantity != 0 {
		t.Errorf("quantity = %d, want 0", updated.Quantity)
	}

	var reloaded models.Medication
	if err := deps.db.First(&reloaded, medication.ID).Error; err != nil {
		t.Fatalf("reload medication: %v", err)
	}
	if reloaded.Quantity != 0 {
		t.Errorf("persisted quantity = %d, want 0", reloaded.Quantity)
	}
}

func TestMedicationService_AdjustStockUnknown(t *testing.T) {
	service, _ := newMedicationService(t)

	_, err := service.AdjustStock(context.Background(), 9999, 5)
	if !errs.IsNotFound(err) {
		t.Fatalf("adjust unknown medication error = %v, want not found", err)
	}
}

func TestMedicationService_DeleteUnknown(t *testing.T) {
	service, _ := newMedicationService(t)

	err := service.Delete(context.Background(), 9999)
	if !errs.IsNotFound(err) {
		t.Fatalf("delete unknown medication error = %v, want not found", err)
	}
}
