package models

import (
	"time"
)

// Appointment statuses. COMPLETED exists in the schema but no workflow
// currently produces it.
const (
	AppointmentStatusBooked    = "BOOKED"
	AppointmentStatusCancelled = "CANCELLED"
	AppointmentStatusCompleted = "COMPLETED"
)

// Medication order statuses. The auto-order sweep only ever creates PENDING
// orders; nothing transitions them afterwards.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusFulfilled = "FULFILLED"
	OrderStatusCancelled = "CANCELLED"
)

// DefaultMinStockLevel is applied when a medication is created without an
// explicit minimum.
const DefaultMinStockLevel = 10

// Doctor model
type Doctor struct {
	ID             uint       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name           string     `gorm:"column:name;not null;index" json:"name"`
	Specialization string     `gorm:"column:specialization;not null;index" json:"specialization"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Schedules      []Schedule `gorm:"foreignKey:DoctorID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// Schedule model. A slot is available iff no booked appointment references it.
type Schedule struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DoctorID    uint      `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	StartTime   time.Time `gorm:"column:start_time;not null;index" json:"start_time"`
	EndTime     time.Time `gorm:"column:end_time;not null" json:"end_time"`
	IsAvailable bool      `gorm:"column:is_available;not null" json:"is_available"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Doctor      *Doctor   `gorm:"foreignKey:DoctorID;references:ID" json:"doctor,omitempty"`
}

func (Schedule) TableName() string {
	return "schedule"
}

// Appointment model. ScheduleID is indexed but deliberately not unique: a
// cancelled appointment keeps its slot reference, and the slot may later back
// a new booked appointment. "At most one at a time" is enforced through the
// schedule availability flag.
type Appointment struct {
	ID              uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ScheduleID      uint      `gorm:"column:schedule_id;not null;index" json:"schedule_id"`
	DoctorID        uint      `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	AppointmentTime time.Time `gorm:"column:appointment_time;not null;index" json:"appointment_time"`
	ReasonForVisit  string    `gorm:"column:reason_for_visit;size:500" json:"reason_for_visit"`
	Status          string    `gorm:"column:status;check:status IN ('BOOKED', 'CANCELLED', 'COMPLETED');not null" json:"status"`
	CreatedBy       string    `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Schedule        *Schedule `gorm:"foreignKey:ScheduleID;references:ID" json:"schedule,omitempty"`
	Doctor          *Doctor   `gorm:"foreignKey:DoctorID;references:ID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// Medication model
type Medication struct {
	ID            uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name          string    `gorm:"column:name;not null;index" json:"name"`
	Description   string    `gorm:"column:description" json:"description"`
	Quantity      int       `gorm:"column:quantity;not null" json:"quantity"`
	MinStockLevel int       `gorm:"column:min_stock_level;not null;default:10" json:"min_stock_level"`
	Price         float64   `gorm:"column:price;not null" json:"price"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Medication) TableName() string {
	return "medication"
}

// MedicationOrder model. Created only by the inventory sweep.
type MedicationOrder struct {
	ID              uint        `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	MedicationID    uint        `gorm:"column:medication_id;not null;index" json:"medication_id"`
	QuantityOrdered int         `gorm:"column:quantity_ordered;not null" json:"quantity_ordered"`
	OrderDate       time.Time   `gorm:"column:order_date;not null" json:"order_date"`
	Status          string      `gorm:"column:status;check:status IN ('PENDING', 'FULFILLED', 'CANCELLED');not null" json:"status"`
	Medication      *Medication `gorm:"foreignKey:MedicationID;references:ID" json:"medication,omitempty"`
}

func (MedicationOrder) TableName() string {
	return "medication_order"
}
