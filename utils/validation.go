package utils

import (
	"ClinicFlow/models"
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors
var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNotComplex = errors.New("password must include at least one uppercase letter, one lowercase letter, one digit, and one special character")
	ErrEndBeforeStart     = errors.New("end time must be after start time")
)

// ValidateUserData validates user data using ozzo-validation.
func ValidateUserData(user models.User) error {
	return validation.ValidateStruct(&user,
		validation.Field(&user.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&user.Email, validation.Required, is.Email),
		validation.Field(&user.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
	)
}

// ValidateDoctor validates a doctor payload.
func ValidateDoctor(doctor *models.Doctor) error {
	return validation.ValidateStruct(doctor,
		validation.Field(&doctor.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&doctor.Specialization, validation.Required, validation.Length(1, 255)),
	)
}

// ValidateSchedule validates a schedule slot payload.
func ValidateSchedule(schedule *models.Schedule) error {
	if err := validation.ValidateStruct(schedule,
		validation.Field(&schedule.DoctorID, validation.Required),
		validation.Field(&schedule.StartTime, validation.Required),
		validation.Field(&schedule.EndTime, validation.Required),
	); err != nil {
		return err
	}
	if !schedule.EndTime.After(schedule.StartTime) {
		return ErrEndBeforeStart
	}
	return nil
}

// ValidateMedication validates a medication payload.
func ValidateMedication(medication *models.Medication) error {
	return validation.ValidateStruct(medication,
		validation.Field(&medication.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&medication.Quantity, validation.Min(0)),
		validation.Field(&medication.MinStockLevel, validation.Min(1)),
		validation.Field(&medication.Price, validation.Min(0.0)),
	)
}

// validatePassword checks the password for length and complexity.
func validatePassword(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	var (
		lowercaseRegex = regexp.MustCompile(`[a-z]`)
		uppercaseRegex = regexp.MustCompile(`[A-Z]`)
		digitRegex     = regexp.MustCompile(`\d`)
		specialRegex   = regexp.MustCompile(`[@$!%*?&]`)
	)

	if !lowercaseRegex.MatchString(password) ||
		!uppercaseRegex.MatchString(password) ||
		!digitRegex.MatchString(password) ||
		!specialRegex.MatchString(password) {
		return ErrPasswordNotComplex
	}

	return nil
}
