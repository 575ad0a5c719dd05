package models

import "time"

// Booking lifecycle. Confirmed bookings move to in-progress when the attorney
// connects and to completed afterwards; completed and cancelled are terminal.
const (
	BookingConfirmed  = "confirmed"
	BookingInProgress = "in-progress"
	BookingCompleted  = "completed"
	BookingCancelled  = "cancelled"
)

var bookingTransitions = map[string][]string{
	BookingConfirmed:  {BookingInProgress, BookingCancelled},
	BookingInProgress: {BookingCompleted},
	BookingCompleted:  {},
	BookingCancelled:  {},
}

// CanTransition checks if a booking status change is allowed.
func CanTransition(from, to string) bool {
	allowed, ok := bookingTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

type EmergencyBooking struct {
	BookingID       int       `gorm:"primaryKey"`
	Reference       string    `json:"reference" gorm:"uniqueIndex"`
	UserID          int       `json:"user_id"`
	AttorneyID      uint      `json:"attorney_id"`
	UrgencyLevel    string    `json:"urgency_level"`
	IssueType       string    `json:"issue_type"`
	Description     string    `json:"description"`
	ContactMethod   string    `json:"contact_method"` // phone, video or in-person
	PhoneNumber     string    `json:"phone_number"`
	Email           string    `json:"email"`
	ScheduledTime   time.Time `json:"scheduled_time"`
	MeetingLink     string    `json:"meeting_link,omitempty"`
	MeetingPassword string    `json:"meeting_password,omitempty"`
	Status          string    `json:"status"`
	ConnectedAt     *time.Time `json:"connected_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`
}

// NotificationOutbox keeps SMS sends that failed so they can be retried later.
// Booking success never depends on a row landing here.
type NotificationOutbox struct {
	ID               uint   `gorm:"primaryKey"`
	BookingReference string `json:"booking_reference"`
	ToNumber         string `json:"to_number"`
	Body             string `json:"body"`
	LastError        string `json:"last_error"`
	Attempts         int    `json:"attempts"`
	Status           string `json:"status"` // pending or sent
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}
