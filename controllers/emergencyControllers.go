package controllers

import (
	"errors"
	"net/http"
	"os"

	"legal-shield/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validate = validator.New()

// EmergencyController handles emergency consultation matching and booking.
type EmergencyController struct {
	Service services.InterfaceEmergencyService
}

// NewEmergencyController creates a new emergency controller.
func NewEmergencyController(service services.InterfaceEmergencyService) *EmergencyController {
	return &EmergencyController{Service: service}
}

func fallbackHotline() string {
	if h := os.Getenv("EMERGENCY_HOTLINE"); h != "" {
		return h
	}
	return "+1-800-555-0199"
}

// RequestEmergencyConsultation matches an incoming emergency request to a
// ranked list of available attorneys.
func (ec *EmergencyController) RequestEmergencyConsultation(c *gin.Context) {
	var req services.EmergencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request format",
			"data":    err.Error(),
		})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Please fill all the mandatory fields",
			"data":    err.Error(),
		})
		return
	}

	matches, err := ec.Service.MatchAttorneys(&req)
	if err != nil {
		if errors.Is(err, services.ErrNoAvailableAttorneys) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"message": "No attorneys are available right now. Please call the emergency hotline.",
				"hotline": fallbackHotline(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to match attorneys",
		})
		return
	}

	IncrMetric("consultations_requested")
	c.JSON(http.StatusOK, gin.H{
		"success":               true,
		"requestId":             uuid.New().String(),
		"matchedAttorneys":      matches,
		"estimatedResponseTime": matches[0].Attorney.ResponseTimeMinutes,
	})
}

// ConfirmEmergencyBooking creates the booking against the selected attorney.
func (ec *EmergencyController) ConfirmEmergencyBooking(c *gin.Context) {
	var req services.ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request format",
			"data":    err.Error(),
		})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Please fill all the mandatory fields",
			"data":    err.Error(),
		})
		return
	}
	if userID, ok := c.Get("userID"); ok {
		req.UserID = userID.(int)
	}

	result, err := ec.Service.ConfirmBooking(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAttorneyUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"message": "Attorney is no longer available, please select another candidate",
			})
		case errors.Is(err, services.ErrReferenceCollision):
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Could not allocate a booking reference, please retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to create booking",
			})
		}
		return
	}

	IncrMetric("bookings_confirmed")
	resp := gin.H{
		"success":               true,
		"booking":               result.Booking,
		"attorney":              result.Attorney,
		"reference":             result.Booking.Reference,
		"scheduledDateTime":     result.Booking.ScheduledTime,
		"notificationDelivered": result.NotificationDelivered,
	}
	if result.Booking.MeetingLink != "" {
		resp["meetingLink"] = result.Booking.MeetingLink
		resp["meetingPassword"] = result.Booking.MeetingPassword
	}
	c.JSON(http.StatusCreated, resp)
}

// GetEmergencyBooking returns a booking and attorney snapshot by reference.
func (ec *EmergencyController) GetEmergencyBooking(c *gin.Context) {
	booking, attorney, err := ec.Service.GetBooking(c.Param("reference"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Booking not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch booking",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"booking":  booking,
		"attorney": attorney,
	})
}

// UpdateEmergencyBookingStatus applies an attorney-side status transition.
func (ec *EmergencyController) UpdateEmergencyBookingStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request format",
			"data":    err.Error(),
		})
		return
	}

	booking, err := ec.Service.UpdateBookingStatus(c.Param("reference"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Booking not found",
			})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Status transition not allowed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to update booking status",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": booking,
	})
}
