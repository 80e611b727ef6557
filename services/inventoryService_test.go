package services

import (
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"context"
	"testing"
)

func TestInventoryMonitor_SweepReplenishesLowStock(t *testing.T) {
	db := newTestDB(t)
	monitor := NewInventoryMonitor(db,
		repositories.NewMedicationRepository(db, noCache()),
		repositories.NewMedicationOrderRepository(db), nil, 0)

	medication := createTestMedication(t, db, "Amoxicillin", 5, 10)

	monitor.Sweep(context.Background())

	var reloaded models.Medication
	if err := db.First(&reloaded, medication.ID).Error; err != nil {
		t.Fatalf("reload medication: %v", err)
	}
	// Order quantity is 2*minStock - quantity, bringing stock to double the minimum.
	if reloaded.Quantity != 20 {
		t.Errorf("quantity after sweep = %d, want 20", reloaded.Quantity)
	}

	var orders []models.MedicationOrder
	if err := db.Find(&orders).Error; err != nil {
		t.Fatalf("load orders: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("order count = %d, want 1", len(orders))
	}
	if orders[0].QuantityOrdered != 15 {
		t.Errorf("ordered quantity = %d, want 15", orders[0].QuantityOrdered)
	}
	if orders[0].Status != models.OrderStatusPending {
		t.Errorf("order status = %q, want %q", orders[0].Status, models.OrderStatusPending)
	}
	if orders[0].MedicationID != medication.ID {
		t.Errorf("order medication = %d, want %d", orders[0].MedicationID, medication.ID)
	}
}

func TestInventoryMonitor_SweepIgnoresHealthyStock(t *testing.T) {
	db := newTestDB(t)
	monitor := NewInventoryMonitor(db,
		repositories.NewMedicationRepository(db, noCache()),
		repositories.NewMedicationOrderRepository(db), nil, 0)

	// Quantity equal to the minimum is not low stock.
	atMinimum := createTestMedication(t, db, "Ibuprofen", 10, 10)
	aboveMinimum := createTestMedication(t, db, "Paracetamol", 30, 10)

	monitor.Sweep(context.Background())

	var orderCount int64
	if err := db.Model(&models.MedicationOrder{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if orderCount != 0 {
		t.Errorf("order count = %d, want 0", orderCount)
	}

	for _, medication := range []*models.Medication{atMinimum, aboveMinimum} {
		var reloaded models.Medication
		if err := db.First(&reloaded, medication.ID).Error; err != nil {
			t.Fatalf("reload medication: %v", err)
		}
		if reloaded.Quantity != medication.Quantity {
			t.Errorf("%s quantity changed from %d to %d", medication.Name, medication.Quantity, reloaded.Quantity)
		}
	}
}

func TestInventoryMonitor_SweepHandlesMultipleMedications(t *testing.T) {
	db := newTestDB(t)
	monitor := NewInventoryMonitor(db,
		repositories.NewMedicationRepository(db, noCache()),
		repositories.NewMedicationOrderRepository(db), nil, 0)

	createTestMedication(t, db, "Amoxicillin", 2, 10)
	createTestMedication(t, db, "Insulin", 0, 5)
	createTestMedication(t, db, "Paracetamol", 50, 10)

	monitor.Sweep(context.Background())

	var orders []models.MedicationOrder
	if err := db.Find(&orders).Error; err != nil {
		t.Fatalf("load orders: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("order count = %d, want 2", len(orders))
	}

	var lowStock []models.Medication
	if err := db.Where("quantity < min_stock_level").Find(&lowStock).Error; err != nil {
		t.Fatalf("query low stock: %v", err)
	}
	if len(lowStock) != 0 {
		t.Errorf("low stock medications after sweep = %d, want 0", len(lowStock))
	}
}
