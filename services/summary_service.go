package services

import (
	"math"

	"github.com/vivek-java-dev/Calorie-Tracker/models"
)

type CalorieSummary struct {
	Intake      int `json:"intake"`
	Burned      int `json:"burned"`
	NetCalories int `json:"netCalories"`
}

type MacroSummary struct {
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// DaySummary is derived from one day's entries on every read; it is
// never stored.
type DaySummary struct {
	Calories CalorieSummary `json:"calories"`
	Macros   MacroSummary   `json:"macros"`
}

// Summarize folds one day's entries into calorie and macro totals.
// Exercise calories count toward the burned total by absolute value,
// whatever sign the stored record carries.
func Summarize(entries []models.Entry) DaySummary {
	var intake, burned int
	var proteins, carbs, fats float64

	for _, e := range entries {
		switch e.Type {
		case models.EntryTypeMeal:
			intake += e.Calories
			if e.Proteins != nil {
				proteins += *e.Proteins
			}
			if e.Carbs != nil {
				carbs += *e.Carbs
			}
			if e.Fats != nil {
				fats += *e.Fats
			}
		case models.EntryTypeExercise:
			if e.Calories < 0 {
				burned += -e.Calories
			} else {
				burned += e.Calories
			}
		}
	}

	return DaySummary{
		Calories: CalorieSummary{
			Intake:      intake,
			Burned:      burned,
			NetCalories: intake - burned,
		},
		Macros: MacroSummary{
			Proteins: round1(proteins),
			Carbs:    round1(carbs),
			Fats:     round1(fats),
		},
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
