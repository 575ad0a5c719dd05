package services

import (
	"errors"
	"sort"
	"strings"

	"legal-shield/configuration"
	"legal-shield/models"
)

// Errors surfaced by the emergency matching and booking flow.
var (
	ErrNoAvailableAttorneys = errors.New("no attorneys available for emergency consultation")
	ErrAttorneyUnavailable  = errors.New("attorney is no longer available")
	ErrReferenceCollision   = errors.New("could not generate a unique booking reference")
	ErrInvalidTransition    = errors.New("booking status transition not allowed")
)

// EmergencyRequest holds a validated emergency consultation request.
type EmergencyRequest struct {
	IssueType      string `json:"issueType" validate:"required"`
	UrgencyLevel   string `json:"urgencyLevel" validate:"required,oneof=critical urgent high routine"`
	MilitaryBranch string `json:"militaryBranch"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	ContactMethod  string `json:"contactMethod" validate:"required,oneof=phone video in-person"`
	PhoneNumber    string `json:"phoneNumber" validate:"required"`
	Email          string `json:"email"`
}

// ScoredAttorney pairs a candidate with its match score.
type ScoredAttorney struct {
	Attorney models.Attorney `json:"attorney"`
	Score    int             `json:"score"`
}

// UrgencyWeight looks up the weight for an urgency level, falling back to the
// default for unrecognized levels.
func UrgencyWeight(level string) int {
	if w, ok := configuration.UrgencyWeights[strings.ToLower(strings.TrimSpace(level))]; ok {
		return w
	}
	return configuration.DefaultUrgencyWeight
}

// IssueWeight looks up the weight for an issue category. Free text is
// accepted; unknown categories degrade to the default weight.
func IssueWeight(issueType string) int {
	if w, ok := configuration.IssueWeights[strings.ToLower(strings.TrimSpace(issueType))]; ok {
		return w
	}
	return configuration.DefaultIssueWeight
}

// ScoreAttorney computes the match score for one attorney:
//
//	urgencyWeight + issueWeight
//	+ 20 when the attorney lists the issue as a specialty
//	+ 15 when the requester location is a substring of the attorney location
//	+ 10 when the attorney can serve the preferred contact method
//	+ capacity bonus (100 - currentBookings*10, floored at 0)
//
// Pure function; never mutates the attorney.
func ScoreAttorney(a *models.Attorney, req *EmergencyRequest) int {
	score := UrgencyWeight(req.UrgencyLevel) + IssueWeight(req.IssueType)

	if a.HasSpecialty(req.IssueType) {
		score += configuration.SpecialtyBonus
	}
	if req.Location != "" && strings.Contains(strings.ToLower(a.Location), strings.ToLower(req.Location)) {
		score += configuration.LocationBonus
	}
	if req.ContactMethod != "" && req.ContactMethod != "in-person" {
		// Phone and video can always be served remotely.
		score += configuration.ContactMethodBonus
	} else if req.ContactMethod == "in-person" && req.Location != "" &&
		strings.Contains(strings.ToLower(a.Location), strings.ToLower(req.Location)) {
		score += configuration.ContactMethodBonus
	}

	capacity := configuration.CapacityBonusBase - a.CurrentEmergencyBookings*configuration.CapacityBonusStep
	if capacity > 0 {
		score += capacity
	}
	return score
}

// MatchAttorneys returns up to MaxMatchResults eligible attorneys ranked by
// descending score, then ascending response time. It never mutates state.
func (s *EmergencyService) MatchAttorneys(req *EmergencyRequest) ([]ScoredAttorney, error) {
	var attorneys []models.Attorney
	q := s.DB.
		Where("available_for_emergency = ? AND is_active = ?", true, true).
		Where("current_emergency_bookings < max_daily_emergency_bookings")

	if s.UseAvailabilityWindows {
		now := s.Now()
		clock := now.Format("15:04")
		q = q.Where(
			"attorney_id IN (SELECT attorney_id FROM attorney_availabilities WHERE day_of_week = ? AND start_time <= ? AND end_time >= ?)",
			int(now.Weekday()), clock, clock,
		)
	}

	if err := q.Find(&attorneys).Error; err != nil {
		return nil, err
	}
	if len(attorneys) == 0 {
		return nil, ErrNoAvailableAttorneys
	}

	scored := make([]ScoredAttorney, 0, len(attorneys))
	for i := range attorneys {
		scored = append(scored, ScoredAttorney{
			Attorney: attorneys[i],
			Score:    ScoreAttorney(&attorneys[i], req),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Attorney.ResponseTimeMinutes < scored[j].Attorney.ResponseTimeMinutes
	})

	if len(scored) > configuration.MaxMatchResults {
		scored = scored[:configuration.MaxMatchResults]
	}
	return scored, nil
}
