package services

import (
	"ClinicFlow/errs"
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"ClinicFlow/utils"
	"context"
	"time"
)

// ScheduleService manages schedule slots and gatekeeps their availability.
type ScheduleService struct {
	repository      *repositories.ScheduleRepository
	doctorRepo      *repositories.DoctorRepository
	appointmentRepo *repositories.AppointmentRepository
}

func NewScheduleService(repository *repositories.ScheduleRepository, doctorRepo *repositories.DoctorRepository, appointmentRepo *repositories.AppointmentRepository) *ScheduleService {
	return &ScheduleService{repository: repository, doctorRepo: doctorRepo, appointmentRepo: appointmentRepo}
}

// Add creates a new slot, validating the payload and the owning doctor. New
// slots start out available.
func (s *ScheduleService) Add(ctx context.Context, schedule *models.Schedule) error {
	if err := utils.ValidateSchedule(schedule); err != nil {
		return errs.Validation("invalid schedule data: %v", err)
	}
	exists, err := s.doctorRepo.ExistsByID(ctx, schedule.DoctorID)
	if err != nil {
		return err
	}
	if !exists {
		return errs.NotFound("doctor not found with id %d", schedule.DoctorID)
	}
	schedule.IsAvailable = true
	return s.repository.Create(ctx, schedule)
}

func (s *ScheduleService) GetByID(ctx context.Context, id uint) (*models.Schedule, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *ScheduleService) GetAll(ctx context.Context) ([]models.Schedule, error) {
	return s.repository.GetAll(ctx)
}

func (s *ScheduleService) GetDoctorSchedule(ctx context.Context, doctorID uint) ([]models.Schedule, error) {
	return s.repository.GetByDoctorID(ctx, doctorID)
}

// Delete removes a slot unless a booked appointment still references it.
func (s *ScheduleService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repository.GetByID(ctx, id); err != nil {
		return err
	}
	booked, err := s.appointmentRepo.ExistsByScheduleID(ctx, id)
	if err != nil {
		return err
	}
	if booked {
		return errs.Conflict("schedule slot %d backs a booked appointment; cancel it first", id)
	}
	return s.repository.Delete(ctx, id)
}

// FindAvailable returns open slots on the given date, optionally narrowed by
// doctor and specialization.
func (s *ScheduleService) FindAvailable(ctx context.Context, date time.Time, doctorID uint, specialization string) ([]models.Schedule, error) {
	if doctorID != 0 {
		exists, err := s.doctorRepo.ExistsByID(ctx, doctorID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errs.NotFound("doctor not found with id %d", doctorID)
		}
	}
	return s.repository.FindAvailable(ctx, date, doctorID, specialization)
}

// MarkUnavailable claims a slot. Conflict when already taken, NotFound when
// the slot does not exist.
func (s *ScheduleService) MarkUnavailable(ctx context.Context, id uint) error {
	return s.repository.MarkUnavailable(ctx, nil, id)
}

// MarkAvailable re-opens a slot; safe to call on an already open slot.
func (s *ScheduleService) MarkAvailable(ctx context.Context, id uint) error {
	return s.repository.MarkAvailable(ctx, nil, id)
}
