package services

import (
	"errors"
	"fmt"

	"github.com/vivek-java-dev/Calorie-Tracker/config"
	"github.com/vivek-java-dev/Calorie-Tracker/models"

	"gorm.io/gorm"
)

var (
	// ErrValidation marks an entry that violates the kind-conditional
	// field rules; always detected before any store write.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a delete target that does not exist for the
	// requesting owner. Cross-owner ids report the same error.
	ErrNotFound = errors.New("entry not found")
)

type EntryService struct{}

func NewEntryService() *EntryService {
	return &EntryService{}
}

// validateEntry enforces the kind-conditional shape: meals carry macro
// totals and never a duration, exercises carry a duration and never
// macros or items.
func validateEntry(e *models.Entry) error {
	if e.UserID == 0 {
		return fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if e.UserText == "" {
		return fmt.Errorf("%w: userText is required", ErrValidation)
	}
	if e.HealthAnalysis == "" {
		return fmt.Errorf("%w: healthAnalysis is required", ErrValidation)
	}
	if e.Date == "" {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}

	switch e.Type {
	case models.EntryTypeMeal:
		if e.Proteins == nil || e.Carbs == nil || e.Fats == nil {
			return fmt.Errorf("%w: proteins, carbs and fats are required for meal entries", ErrValidation)
		}
		if *e.Proteins < 0 || *e.Carbs < 0 || *e.Fats < 0 {
			return fmt.Errorf("%w: macro totals must be non-negative", ErrValidation)
		}
		if e.Duration != nil {
			return fmt.Errorf("%w: duration is not allowed on meal entries", ErrValidation)
		}
	case models.EntryTypeExercise:
		if e.Duration == nil || *e.Duration <= 0 {
			return fmt.Errorf("%w: duration is required for exercise entries", ErrValidation)
		}
		if e.Proteins != nil || e.Carbs != nil || e.Fats != nil {
			return fmt.Errorf("%w: macros are not allowed on exercise entries", ErrValidation)
		}
		if e.Items != nil {
			return fmt.Errorf("%w: items are not allowed on exercise entries", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: type must be meal or exercise", ErrValidation)
	}

	return nil
}

func (s *EntryService) Create(e *models.Entry) (*models.Entry, error) {
	if err := validateEntry(e); err != nil {
		return nil, err
	}
	if err := config.DB.Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EntryService) ListByDate(userID uint, date string) ([]models.Entry, error) {
	entries := make([]models.Entry, 0)
	err := config.DB.
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (s *EntryService) DeleteByID(userID, id uint) (*models.Entry, error) {
	var entry models.Entry
	err := config.DB.
		Where("id = ? AND user_id = ?", id, userID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := config.DB.Delete(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *EntryService) DeleteByDate(userID uint, date string) (int64, error) {
	res := config.DB.
		Where("user_id = ? AND date = ?", userID, date).
		Delete(&models.Entry{})
	return res.RowsAffected, res.Error
}
