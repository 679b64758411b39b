package services

import (
	"errors"
	"testing"

	"github.com/vivek-java-dev/Calorie-Tracker/models"

	"github.com/stretchr/testify/require"
)

func validMealEntry() *models.Entry {
	return &models.Entry{
		UserID:         1,
		UserText:       "i ate two chicken burgers",
		Name:           "Lunch - chicken burgers",
		Type:           models.EntryTypeMeal,
		Calories:       900,
		Proteins:       fptr(50),
		Carbs:          fptr(80),
		Fats:           fptr(40),
		HealthAnalysis: "High in protein but also saturated fat.",
		Date:           "2026-01-24",
	}
}

func validExerciseEntry() *models.Entry {
	return &models.Entry{
		UserID:         1,
		UserText:       "a run for 30 minutes",
		Name:           "Morning Run",
		Type:           models.EntryTypeExercise,
		Calories:       -250,
		Duration:       iptr(30),
		HealthAnalysis: "Improves cardiovascular fitness.",
		Date:           "2026-01-24",
	}
}

func TestValidateEntryAcceptsWellFormedEntries(t *testing.T) {
	t.Parallel()

	require.NoError(t, validateEntry(validMealEntry()))
	require.NoError(t, validateEntry(validExerciseEntry()))
}

func TestValidateEntryMealMissingMacros(t *testing.T) {
	t.Parallel()

	e := validMealEntry()
	e.Proteins = nil
	err := validateEntry(e)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrValidation))

	e = validMealEntry()
	e.Fats = nil
	require.True(t, errors.Is(validateEntry(e), ErrValidation))
}

func TestValidateEntryExerciseMissingDuration(t *testing.T) {
	t.Parallel()

	e := validExerciseEntry()
	e.Duration = nil
	err := validateEntry(e)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrValidation))
}

func TestValidateEntryRejectsCrossKindFields(t *testing.T) {
	t.Parallel()

	meal := validMealEntry()
	meal.Duration = iptr(30)
	require.True(t, errors.Is(validateEntry(meal), ErrValidation))

	exercise := validExerciseEntry()
	exercise.Proteins = fptr(10)
	require.True(t, errors.Is(validateEntry(exercise), ErrValidation))

	exercise = validExerciseEntry()
	exercise.Items = []models.EntryItem{{Name: "?"}}
	require.True(t, errors.Is(validateEntry(exercise), ErrValidation))
}

func TestValidateEntryRejectsNegativeMacros(t *testing.T) {
	t.Parallel()

	e := validMealEntry()
	e.Carbs = fptr(-1)
	require.True(t, errors.Is(validateEntry(e), ErrValidation))
}

func TestValidateEntryRequiredFields(t *testing.T) {
	t.Parallel()

	e := validMealEntry()
	e.UserText = ""
	require.True(t, errors.Is(validateEntry(e), ErrValidation))

	e = validMealEntry()
	e.HealthAnalysis = ""
	require.True(t, errors.Is(validateEntry(e), ErrValidation))

	e = validMealEntry()
	e.Date = ""
	require.True(t, errors.Is(validateEntry(e), ErrValidation))

	e = validMealEntry()
	e.Type = "snack"
	require.True(t, errors.Is(validateEntry(e), ErrValidation))
}

func TestValidateEntryAllowsMealWithoutItems(t *testing.T) {
	t.Parallel()

	// a meal with top-level macros and no item breakdown is valid
	e := validMealEntry()
	e.Items = nil
	require.NoError(t, validateEntry(e))

	e.Items = []models.EntryItem{}
	require.NoError(t, validateEntry(e))
}
