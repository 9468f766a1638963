package models

import "time"

// SettingKeyMessMenu is the settings document key holding the mess menu.
const SettingKeyMessMenu = "messMenu"

// DayMenu holds the meals served on a single day.
type DayMenu struct {
	Breakfast string `bson:"breakfast" json:"breakfast"`
	Lunch     string `bson:"lunch" json:"lunch"`
	Snacks    string `bson:"snacks" json:"snacks"`
	Dinner    string `bson:"dinner" json:"dinner"`
}

// MessMenu is the weekly mess menu keyed by lowercase weekday name.
type MessMenu struct {
	Week map[string]DayMenu `bson:"week" json:"week"`
}

// Setting is a keyed configuration document.
type Setting struct {
	ID        string      `bson:"_id" json:"id"`
	Key       string      `bson:"key" json:"key"`
	Value     interface{} `bson:"value" json:"value"`
	UpdatedAt time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// Weekdays is the canonical day ordering used for menu responses.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// DefaultMessMenu returns an empty menu covering every weekday.
func DefaultMessMenu() MessMenu {
	week := make(map[string]DayMenu, len(Weekdays))
	for _, day := range Weekdays {
		week[day] = DayMenu{}
	}
	return MessMenu{Week: week}
}

// UpdateMessMenuRequest replaces one day's meals.
type UpdateMessMenuRequest struct {
	Day  string  `json:"day" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Menu DayMenu `json:"menu" validate:"required"`
}
