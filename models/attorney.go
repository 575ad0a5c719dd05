package models

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type Attorney struct {
	AttorneyID                uint   `gorm:"primaryKey"`
	Name                      string `json:"name" gorm:"not null" validate:"required"`
	Firm                      string `json:"firm"`
	Email                     string `json:"email" gorm:"unique" validate:"required,email"`
	Password                  string `json:"password" gorm:"not null" validate:"required"`
	Phone                     string `json:"phone" gorm:"not null" validate:"required"`
	BarNumber                 string `json:"bar_number" gorm:"not null" validate:"required"`
	Specialties               string `json:"specialties"` // comma separated, e.g. "court-martial,security-clearance"
	Location                  string `json:"location"`
	Verified                  string `json:"verified"`
	IsActive                  bool   `json:"is_active"`
	AvailableForEmergency     bool   `json:"available_for_emergency"`
	ResponseTimeMinutes       int    `json:"response_time_minutes"`
	CurrentEmergencyBookings  int    `json:"current_emergency_bookings"`
	MaxDailyEmergencyBookings int    `json:"max_daily_emergency_bookings"`
	Availabilities            []AttorneyAvailability
}

// HasSpecialty reports whether the attorney lists the given issue category.
func (a *Attorney) HasSpecialty(issueType string) bool {
	for _, s := range strings.Split(a.Specialties, ",") {
		if strings.EqualFold(strings.TrimSpace(s), issueType) {
			return true
		}
	}
	return false
}

type AttorneyAvailability struct {
	ID         uint   `gorm:"primaryKey"`
	AttorneyID uint   `json:"attorney_id"`
	DayOfWeek  int    `json:"day_of_week"` // 0 = Sunday, matches time.Weekday
	StartTime  string `json:"start_time"`  // "09:00"
	EndTime    string `json:"end_time"`    // "17:00"
}

type AttorneyClaims struct {
	Id            uint   `json:"id"`
	AttorneyEmail string `json:"email"`
	jwt.RegisteredClaims
}
