package services

import (
	"ClinicFlow/errs"
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"ClinicFlow/utils"
	"context"
	"log"
)

type DoctorService struct {
	repository   *repositories.DoctorRepository
	scheduleRepo *repositories.ScheduleRepository
}

func NewDoctorService(repository *repositories.DoctorRepository, scheduleRepo *repositories.ScheduleRepository) *DoctorService {
	return &DoctorService{repository: repository, scheduleRepo: scheduleRepo}
}

func (s *DoctorService) Create(ctx context.Context, doctor *models.Doctor) error {
	if err := utils.ValidateDoctor(doctor); err != nil {
		return errs.Validation("invalid doctor data: %v", err)
	}
	return s.repository.Create(ctx, doctor)
}

func (s *DoctorService) GetByID(ctx context.Context, id uint) (*models.Doctor, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *DoctorService) GetAll(ctx context.Context) ([]models.Doctor, error) {
	return s.repository.GetAll(ctx)
}

func (s *DoctorService) Update(ctx context.Context, doctor *models.Doctor) error {
	if err := utils.ValidateDoctor(doctor); err != nil {
		return errs.Validation("invalid doctor data: %v", err)
	}
	return s.repository.Update(ctx, doctor)
}

// Delete removes a doctor after the single pre-delete validation: a doctor
// with schedule slots on file cannot be removed until those slots are gone.
func (s *DoctorService) Delete(ctx context.Context, id uint) error {
	exists, err := s.repository.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return errs.NotFound("doctor not found with id %d", id)
	}

	hasSchedules, err := s.scheduleRepo.ExistsByDoctorID(ctx, id)
	if err != nil {
		return err
	}
	if hasSchedules {
		return errs.Conflict("doctor %d still has schedule slots; remove them first", id)
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("Deleted doctor %d", id)
	return nil
}

func (s *DoctorService) Count(ctx context.Context) (int64, error) {
	return s.repository.Count(ctx)
}
