package services

import (
	"ClinicFlow/errs"
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"context"
	"log"
	"time"

	"gorm.io/gorm"
)

// AppointmentService orchestrates booking and cancellation. Both paths run
// their schedule flip and appointment write inside one transaction, so either
// every write commits or none does.
type AppointmentService struct {
	db           *gorm.DB
	repository   *repositories.AppointmentRepository
	scheduleRepo *repositories.ScheduleRepository
}

func NewAppointmentService(db *gorm.DB, repository *repositories.AppointmentRepository, scheduleRepo *repositories.ScheduleRepository) *AppointmentService {
	return &AppointmentService{db: db, repository: repository, scheduleRepo: scheduleRepo}
}

// Book reserves the given slot for the authenticated principal. The slot is
// claimed with a conditional update inside the transaction, so two callers
// racing for the same slot cannot both succeed.
func (s *AppointmentService) Book(ctx context.Context, principal string, scheduleID uint, reasonForVisit string) (*models.Appointment, error) {
	log.Printf("Booking attempt by %s for schedule slot %d", principal, scheduleID)

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if !schedule.IsAvailable {
		log.Printf("Rejected booking for already unavailable slot %d", scheduleID)
		return nil, errs.Conflict("selected time slot is no longer available")
	}
	if schedule.Doctor == nil {
		log.Printf("Schedule slot %d has no doctor attached", scheduleID)
		return nil, errs.InvalidState("doctor information is missing for the selected schedule")
	}

	appointment := &models.Appointment{
		ScheduleID:      schedule.ID,
		DoctorID:        schedule.DoctorID,
		AppointmentTime: schedule.StartTime,
		ReasonForVisit:  reasonForVisit,
		Status:          models.AppointmentStatusBooked,
		CreatedBy:       principal,
		CreatedAt:       time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.scheduleRepo.MarkUnavailable(ctx, tx, scheduleID); err != nil {
			return err
		}
		return s.repository.Create(ctx, tx, appointment)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Booked appointment %d at schedule slot %d", appointment.ID, scheduleID)
	return appointment, nil
}

// Cancel moves a BOOKED appointment to CANCELLED and re-opens its slot. A
// missing schedule link is logged and tolerated; cancellation still proceeds.
func (s *AppointmentService) Cancel(ctx context.Context, principal string, appointmentID uint) error {
	log.Printf("Cancellation attempt by %s for appointment %d", principal, appointmentID)

	appointment, err := s.repository.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment.Status != models.AppointmentStatusBooked {
		log.Printf("Rejected cancellation of appointment %d in status %s", appointmentID, appointment.Status)
		return errs.Conflict("appointment cannot be cancelled as it's not in BOOKED state")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// The lookup must run on tx: the transaction holds the connection.
		exists, err := s.scheduleRepo.ExistsByID(ctx, tx, appointment.ScheduleID)
		if err != nil {
			return err
		}
		if !exists {
			log.Printf("Cannot re-open slot for cancelled appointment %d: schedule link is missing", appointmentID)
		} else {
			if err := s.scheduleRepo.MarkAvailable(ctx, tx, appointment.ScheduleID); err != nil {
				return err
			}
			log.Printf("Made schedule slot %d available again", appointment.ScheduleID)
		}

		if err := s.repository.UpdateStatus(ctx, tx, appointmentID, models.AppointmentStatusCancelled); err != nil {
			return err
		}
		log.Printf("Cancelled appointment %d", appointmentID)
		return nil
	})
}

func (s *AppointmentService) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *AppointmentService) GetAll(ctx context.Context) ([]models.Appointment, error) {
	return s.repository.GetAll(ctx)
}

func (s *AppointmentService) GetForDoctor(ctx context.Context, doctorID uint) ([]models.Appointment, error) {
	return s.repository.GetByDoctorID(ctx, doctorID)
}

func (s *AppointmentService) Count(ctx context.Context) (int64, error) {
	return s.repository.Count(ctx)
}
