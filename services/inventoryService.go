package services

import (
	"ClinicFlow/database"
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"ClinicFlow/utils"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const sweepLockKey = "inventory_sweep_lock"

// InventoryMonitor periodically scans medication stock and places automatic
// replenishment orders for anything under its minimum level.
type InventoryMonitor struct {
	db             *gorm.DB
	medicationRepo *repositories.MedicationRepository
	orderRepo      *repositories.MedicationOrderRepository
	mailer         *utils.Mailer
	interval       time.Duration
}

func NewInventoryMonitor(db *gorm.DB, medicationRepo *repositories.MedicationRepository, orderRepo *repositories.MedicationOrderRepository, mailer *utils.Mailer, interval time.Duration) *InventoryMonitor {
	if interval <= 0 {
		interval = time.Hour
	}
	return &InventoryMonitor{
		db:             db,
		medicationRepo: medicationRepo,
		orderRepo:      orderRepo,
		mailer:         mailer,
		interval:       interval,
	}
}

// Start launches the periodic sweep in a background goroutine. The goroutine
// exits when ctx is cancelled.
func (m *InventoryMonitor) Start(ctx context.Context) {
	go func() {
		log.Printf("Inventory monitor started (interval %s)", m.interval)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("Inventory monitor stopped")
				return
			case <-ticker.C:
				m.Sweep(ctx)
			}
		}
	}()
}

// Sweep runs one stock check and auto-order pass. A failure on one medication
// is logged and never blocks the rest; each medication commits in its own
// transaction.
func (m *InventoryMonitor) Sweep(ctx context.Context) {
	// When Redis is available, only one instance runs the sweep per tick.
	if database.RedisClient != nil {
		lockValue := uuid.New().String()
		locked, err := database.NewLock(ctx, sweepLockKey, lockValue, m.interval/2)
		if err != nil {
			log.Printf("Sweep lock error: %v", err)
			return
		}
		if !locked {
			log.Println("Sweep skipped: another instance holds the lock")
			return
		}
		defer func() {
			if err := database.ReleaseLock(ctx, sweepLockKey, lockValue); err != nil {
				log.Printf("Failed to release sweep lock: %v", err)
			}
		}()
	}

	log.Println("Running scheduled stock check and auto-order...")
	lowStock, err := m.medicationRepo.FindBelowMinStock(ctx)
	if err != nil {
		log.Printf("Stock check failed: %v", err)
		return
	}
	if len(lowStock) == 0 {
		log.Println("Stock check: no low stock medications found")
		return
	}

	log.Printf("Stock check found %d low stock medication(s), creating automatic orders", len(lowStock))

	var placed []string
	for _, medication := range lowStock {
		order, err := m.replenish(ctx, medication)
		if err != nil {
			log.Printf("AUTO-ORDER: failed for medication %d (%s): %v", medication.ID, medication.Name, err)
			continue
		}
		if order != nil {
			placed = append(placed, fmt.Sprintf("%s: ordered %d units", medication.Name, order.QuantityOrdered))
		}
	}

	if m.mailer != nil && len(placed) > 0 {
		subject := fmt.Sprintf("Inventory auto-order: %d medication(s) replenished", len(placed))
		if err := m.mailer.Send(subject, strings.Join(placed, "\n")); err != nil {
			log.Printf("Failed to send inventory alert mail: %v", err)
		}
	}
	log.Println("Scheduled stock check and auto-order finished")
}

// replenish orders enough of one medication to reach double its minimum
// stock level, then bumps the quantity immediately. The instant bump models
// instantaneous fulfillment; real delivery tracking would move it to a
// FULFILLED transition instead.
func (m *InventoryMonitor) replenish(ctx context.Context, medication models.Medication) (*models.MedicationOrder, error) {
	orderQty := 2*medication.MinStockLevel - medication.Quantity
	if orderQty <= 0 {
		// The low-stock filter should make this impossible; guard anyway.
		log.Printf("AUTO-ORDER: skipping %s (id %d): calculated order quantity %d is not positive",
			medication.Name, medication.ID, orderQty)
		return nil, nil
	}

	order := &models.MedicationOrder{
		MedicationID:    medication.ID,
		QuantityOrdered: orderQty,
		OrderDate:       time.Now(),
		Status:          models.OrderStatusPending,
	}

	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := m.orderRepo.Create(ctx, tx, order); err != nil {
			return err
		}
		return m.medicationRepo.UpdateQuantity(ctx, tx, medication.ID, medication.Quantity+orderQty)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("AUTO-ORDER: placed order %d for medication %d (%s), quantity %d, stock now %d",
		order.ID, medication.ID, medication.Name, orderQty, medication.Quantity+orderQty)
	return order, nil
}
