package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"confirmed to in-progress", BookingConfirmed, BookingInProgress, true},
		{"confirmed to cancelled", BookingConfirmed, BookingCancelled, true},
		{"in-progress to completed", BookingInProgress, BookingCompleted, true},
		{"confirmed to completed skips connect", BookingConfirmed, BookingCompleted, false},
		{"completed is terminal", BookingCompleted, BookingInProgress, false},
		{"cancelled is terminal", BookingCancelled, BookingConfirmed, false},
		{"in-progress cannot cancel", BookingInProgress, BookingCancelled, false},
		{"unknown from state", "pending", BookingConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestHasSpecialty(t *testing.T) {
	attorney := Attorney{Specialties: "court-martial, security-clearance,family-law"}

	assert.True(t, attorney.HasSpecialty("court-martial"))
	assert.True(t, attorney.HasSpecialty("security-clearance"))
	assert.True(t, attorney.HasSpecialty("Family-Law"))
	assert.False(t, attorney.HasSpecialty("finance"))
	assert.False(t, attorney.HasSpecialty(""))
}
