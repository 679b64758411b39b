package models

import (
	"encoding/json"
	"time"
)

// One food item inside a meal entry, as resolved by the analysis model.
type EntryItem struct {
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// Entry is one logged meal or exercise event. Calories carry sign:
// positive for meals, negative for exercise (burn).
//
// Macro fields are pointers so a meal entry with zero grams is still
// distinguishable from an exercise entry that has no macros at all;
// same for Duration in the other direction. A nil Items slice means
// the model returned no per-item breakdown, which is not the same as
// an empty one.
type Entry struct {
	ID             uint        `gorm:"primarykey" json:"id"`
	UserID         uint        `gorm:"index;not null" json:"userId"`
	UserText       string      `gorm:"not null" json:"userText"`
	Name           string      `gorm:"not null" json:"name"`
	Type           string      `gorm:"type:varchar(16);not null" json:"type"`
	Items          []EntryItem `gorm:"serializer:json" json:"items"`
	Calories       int         `gorm:"not null" json:"calories"`
	Proteins       *float64    `json:"proteins,omitempty"`
	Carbs          *float64    `json:"carbs,omitempty"`
	Fats           *float64    `json:"fats,omitempty"`
	Duration       *int        `json:"duration,omitempty"`
	HealthAnalysis string      `gorm:"not null" json:"healthAnalysis"`
	Date           string      `gorm:"type:varchar(10);index;not null" json:"date"`
	ImageURL       string      `json:"imageUrl,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

const (
	EntryTypeMeal     = "meal"
	EntryTypeExercise = "exercise"
)

// MarshalJSON omits the items key entirely when no breakdown was
// resolved, while an empty resolved breakdown still emits "items":[].
// A plain omitempty tag cannot tell the two apart.
func (e Entry) MarshalJSON() ([]byte, error) {
	type alias Entry
	out := struct {
		alias
		Items *[]EntryItem `json:"items,omitempty"`
	}{alias: alias(e)}
	if e.Items != nil {
		out.Items = &e.Items
	}
	return json.Marshal(out)
}
