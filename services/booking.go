package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"legal-shield/configuration"
	"legal-shield/models"

	"gorm.io/gorm"
)

// InterfaceEmergencyService defines the emergency matching and booking service.
type InterfaceEmergencyService interface {
	MatchAttorneys(req *EmergencyRequest) ([]ScoredAttorney, error)
	ConfirmBooking(req *ConfirmBookingRequest) (*BookingResult, error)
	GetBooking(reference string) (*models.EmergencyBooking, *models.Attorney, error)
	UpdateBookingStatus(reference, status string) (*models.EmergencyBooking, error)
}

// EmergencyService matches emergency requests to attorneys and schedules
// callback bookings.
type EmergencyService struct {
	DB  *gorm.DB
	SMS SMSSender
	// Now is the clock used for scheduling; injectable for tests.
	Now func() time.Time
	// UseAvailabilityWindows gates filtering on the day-of-week availability
	// table. Off by default so a directory without windows still matches.
	UseAvailabilityWindows bool
	MeetingBaseURL         string
}

// NewEmergencyService creates a new emergency service.
func NewEmergencyService(db *gorm.DB, sms SMSSender) *EmergencyService {
	base := os.Getenv("MEETING_BASE_URL")
	if base == "" {
		base = "https://meet.legalshield.example.com/room"
	}
	return &EmergencyService{
		DB:                     db,
		SMS:                    sms,
		Now:                    time.Now,
		UseAvailabilityWindows: os.Getenv("EMERGENCY_AVAILABILITY_WINDOWS") == "true",
		MeetingBaseURL:         strings.TrimRight(base, "/"),
	}
}

// ConfirmBookingRequest holds a validated booking confirmation.
type ConfirmBookingRequest struct {
	AttorneyID    uint   `json:"attorney" validate:"required"`
	UserID        int    `json:"userId"`
	UrgencyLevel  string `json:"urgencyLevel" validate:"required"`
	IssueType     string `json:"legalIssue" validate:"required"`
	Description   string `json:"description"`
	ContactMethod string `json:"contactMethod" validate:"required,oneof=phone video in-person"`
	PhoneNumber   string `json:"phoneNumber" validate:"required"`
	Email         string `json:"email"`
}

// BookingResult is the outcome of a confirmed booking.
type BookingResult struct {
	Booking               *models.EmergencyBooking `json:"booking"`
	Attorney              *models.Attorney         `json:"attorney"`
	NotificationDelivered bool                     `json:"notificationDelivered"`
}

const referenceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randomAlnumUpper(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = referenceAlphabet[rand.Intn(len(referenceAlphabet))]
	}
	return string(b)
}

// GenerateReference builds a booking reference of the form
// EMG-<millis base36>-<random 6>, uppercased. Not cryptographically unique;
// callers must check the persisted set and retry on collision.
func GenerateReference(now time.Time) string {
	stamp := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return fmt.Sprintf("EMG-%s-%s", stamp, randomAlnumUpper(6))
}

// MeetingRoomID derives a deterministic room id from a booking reference:
// non-alphanumerics stripped, truncated to 12 characters.
func MeetingRoomID(reference string) string {
	var b strings.Builder
	for _, r := range reference {
		if (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			b.WriteRune(r)
		}
	}
	id := b.String()
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}

// ScheduledTime computes the callback time for an urgency level. Critical and
// urgent levels use the fixed offsets table; routine and unknown levels use
// the attorney's configured response time when it is longer than the offset.
func ScheduledTime(now time.Time, urgencyLevel string, attorney *models.Attorney) time.Time {
	level := strings.ToLower(strings.TrimSpace(urgencyLevel))
	minutes, ok := configuration.ScheduleOffsetMinutes[level]
	if !ok {
		minutes = configuration.DefaultScheduleOffsetMinutes
	}
	if level != "critical" && level != "urgent" && level != "high" {
		if attorney != nil && attorney.ResponseTimeMinutes > minutes {
			minutes = attorney.ResponseTimeMinutes
		}
	}
	return now.Add(time.Duration(minutes) * time.Minute)
}

// ConfirmBooking persists an emergency booking against an attorney. The daily
// booking counter is incremented with a conditional atomic update inside the
// booking transaction; zero rows affected means the attorney filled up since
// matching and the caller should offer the next candidate.
func (s *EmergencyService) ConfirmBooking(req *ConfirmBookingRequest) (*BookingResult, error) {
	var attorney models.Attorney
	if err := s.DB.First(&attorney, req.AttorneyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttorneyUnavailable
		}
		return nil, err
	}

	now := s.Now()
	reference, err := s.uniqueReference(now)
	if err != nil {
		return nil, err
	}

	booking := &models.EmergencyBooking{
		Reference:     reference,
		UserID:        req.UserID,
		AttorneyID:    attorney.AttorneyID,
		UrgencyLevel:  strings.ToLower(req.UrgencyLevel),
		IssueType:     req.IssueType,
		Description:   req.Description,
		ContactMethod: req.ContactMethod,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		ScheduledTime: ScheduledTime(now, req.UrgencyLevel, &attorney),
		Status:        models.BookingConfirmed,
	}
	if strings.EqualFold(req.ContactMethod, "video") {
		booking.MeetingLink = s.MeetingBaseURL + "/" + MeetingRoomID(reference)
		booking.MeetingPassword = randomAlnumUpper(6)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Attorney{}).
			Where("attorney_id = ? AND current_emergency_bookings < max_daily_emergency_bookings", attorney.AttorneyID).
			UpdateColumn("current_emergency_bookings", gorm.Expr("current_emergency_bookings + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAttorneyUnavailable
		}
		return tx.Create(booking).Error
	})
	if err != nil {
		return nil, err
	}
	attorney.CurrentEmergencyBookings++

	// Booking is durable at this point; notification is best effort.
	delivered := s.notifyParties(booking, &attorney)

	return &BookingResult{
		Booking:               booking,
		Attorney:              &attorney,
		NotificationDelivered: delivered,
	}, nil
}

// uniqueReference generates a reference and retries on collision against the
// persisted set, up to three attempts.
func (s *EmergencyService) uniqueReference(now time.Time) (string, error) {
	for attempt := 0; attempt < 3; attempt++ {
		ref := GenerateReference(now)
		var count int64
		if err := s.DB.Model(&models.EmergencyBooking{}).
			Where("reference = ?", ref).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return ref, nil
		}
	}
	return "", ErrReferenceCollision
}

// notifyParties sends the confirmation SMS to requester and attorney. Failed
// sends are logged and parked in the notification outbox for retry.
func (s *EmergencyService) notifyParties(b *models.EmergencyBooking, a *models.Attorney) bool {
	if s.SMS == nil {
		return false
	}

	when := b.ScheduledTime.Format("Jan 2 15:04 MST")
	userMsg := fmt.Sprintf("Your emergency legal consultation %s is confirmed. %s will contact you at %s.",
		b.Reference, a.Name, when)
	if b.MeetingLink != "" {
		userMsg += fmt.Sprintf(" Meeting: %s (password %s)", b.MeetingLink, b.MeetingPassword)
	}
	attorneyMsg := fmt.Sprintf("New emergency consultation %s (%s/%s). Contact the client via %s at %s.",
		b.Reference, b.UrgencyLevel, b.IssueType, b.ContactMethod, when)

	delivered := true
	if err := s.SMS.SendSMS(b.PhoneNumber, userMsg); err != nil {
		delivered = false
		s.queueRetry(b.Reference, b.PhoneNumber, userMsg, err)
	}
	if err := s.SMS.SendSMS(a.Phone, attorneyMsg); err != nil {
		delivered = false
		s.queueRetry(b.Reference, a.Phone, attorneyMsg, err)
	}
	return delivered
}

func (s *EmergencyService) queueRetry(reference, to, body string, sendErr error) {
	outbox := models.NotificationOutbox{
		BookingReference: reference,
		ToNumber:         to,
		Body:             body,
		LastError:        sendErr.Error(),
		Attempts:         1,
		Status:           "pending",
	}
	if err := s.DB.Create(&outbox).Error; err != nil {
		log.Println("Failed to queue SMS retry:", err)
	}
}

// GetBooking fetches a booking with its attorney snapshot by reference.
func (s *EmergencyService) GetBooking(reference string) (*models.EmergencyBooking, *models.Attorney, error) {
	var booking models.EmergencyBooking
	if err := s.DB.Where("reference = ?", reference).First(&booking).Error; err != nil {
		return nil, nil, err
	}
	var attorney models.Attorney
	if err := s.DB.First(&attorney, booking.AttorneyID).Error; err != nil {
		return nil, nil, err
	}
	return &booking, &attorney, nil
}

// UpdateBookingStatus applies a guarded state transition and stamps the
// connection or completion time.
func (s *EmergencyService) UpdateBookingStatus(reference, status string) (*models.EmergencyBooking, error) {
	var booking models.EmergencyBooking
	if err := s.DB.Where("reference = ?", reference).First(&booking).Error; err != nil {
		return nil, err
	}

	if !models.CanTransition(booking.Status, status) {
		return nil, ErrInvalidTransition
	}

	now := s.Now()
	booking.Status = status
	switch status {
	case models.BookingInProgress:
		booking.ConnectedAt = &now
	case models.BookingCompleted:
		booking.CompletedAt = &now
	}

	if err := s.DB.Save(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}
