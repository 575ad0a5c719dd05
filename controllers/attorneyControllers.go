package controllers

import (
	"errors"
	"net/http"
	"strings"

	"legal-shield/authentication"
	"legal-shield/configuration"
	"legal-shield/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AttorneySignup handles the registration of a new attorney.
func AttorneySignup(c *gin.Context) {
	var attorney models.Attorney

	if err := c.ShouldBindJSON(&attorney); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"Status":  "Failed",
			"message": "Binding error",
			"data":    err.Error(),
		})
		return
	}

	// Validate attorney struct fields
	if err := validate.Struct(attorney); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"Status":  "Failed",
			"message": "Please fill all the mandatory fields",
			"data":    err.Error(),
		})
		return
	}

	// Check if email is already in use
	var existingAttorney models.Attorney
	if err := configuration.DB.Where("email = ?", attorney.Email).First(&existingAttorney).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "Failed",
			"message": "Email already in use",
			"data":    "Choose another email",
		})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{
			"Status":  "Failed",
			"message": "Database error",
			"data":    err.Error(),
		})
		return
	}

	// Check if bar number is already in use
	if err := configuration.DB.Where("bar_number = ?", attorney.BarNumber).First(&existingAttorney).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "Failed",
			"message": "Bar number already in use",
			"data":    "Choose another bar number",
		})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{
			"Status":  "Failed",
			"message": "Database error",
			"data":    err.Error(),
		})
		return
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(attorney.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "Failed",
			"message": "Failed to hash password",
			"data":    err.Error(),
		})
		return
	}
	attorney.Password = string(hashedPassword)

	// New attorneys start unverified and with a conservative daily cap
	attorney.Verified = "false"
	attorney.IsActive = false
	if attorney.MaxDailyEmergencyBookings == 0 {
		attorney.MaxDailyEmergencyBookings = 5
	}

	if err := configuration.DB.Create(&attorney).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"Status":  "Failed",
			"message": "Failed to create attorney",
			"data":    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"message": "Signup successful. Profile pending verification.",
	})
}

// AttorneyLogin authenticates an attorney and issues a token.
func AttorneyLogin(c *gin.Context) {
	var loginReq struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attorney, err := authentication.GetAttorneyByEmail(loginReq.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(attorney.Password), []byte(loginReq.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := authentication.GenerateAttorneyToken(attorney.Email, attorney.AttorneyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"message": "Login successful",
		"token":   token,
	})
}

// AttorneyLogout
func AttorneyLogout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "You are successfully logged out"})
}

// AttorneyInfo holds the directory view of an attorney profile.
type AttorneyInfo struct {
	AttorneyID          uint   `json:"attorney_id"`
	Name                string `json:"name"`
	Firm                string `json:"firm"`
	Specialties         string `json:"specialties"`
	Location            string `json:"location"`
	ResponseTimeMinutes int    `json:"response_time_minutes"`
	EmergencyAvailable  bool   `json:"emergency_available"`
}

// SearchAttorneys lists verified active attorneys filtered by specialty and
// location substring.
func SearchAttorneys(c *gin.Context) {
	specialty := strings.TrimSpace(c.Query("specialty"))
	location := strings.TrimSpace(c.Query("location"))

	query := configuration.DB.Where("is_active = ? AND verified = ?", true, "true")
	if specialty != "" {
		query = query.Where("specialties LIKE ?", "%"+specialty+"%")
	}
	if location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}

	var attorneys []models.Attorney
	if err := query.Find(&attorneys).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"Error":   "Couldn't get attorney details",
			"details": err.Error(),
		})
		return
	}

	if len(attorneys) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No attorneys found for the given filters"})
		return
	}

	attorneyInfoList := make([]AttorneyInfo, 0, len(attorneys))
	for _, attorney := range attorneys {
		attorneyInfoList = append(attorneyInfoList, AttorneyInfo{
			AttorneyID:          attorney.AttorneyID,
			Name:                attorney.Name,
			Firm:                attorney.Firm,
			Specialties:         attorney.Specialties,
			Location:            attorney.Location,
			ResponseTimeMinutes: attorney.ResponseTimeMinutes,
			EmergencyAvailable:  attorney.AvailableForEmergency,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Attorney list fetched successfully",
		"data":    attorneyInfoList,
	})
}

// GetAttorneyByID fetches one attorney profile.
func GetAttorneyByID(c *gin.Context) {
	var attorney models.Attorney
	if err := configuration.DB.First(&attorney, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Attorney not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attorney"})
		return
	}
	attorney.Password = ""

	c.JSON(http.StatusOK, gin.H{
		"Status": "Success",
		"data":   attorney,
	})
}

// SaveAvailability saves a weekly availability window for an attorney.
func SaveAvailability(c *gin.Context) {
	var availability models.AttorneyAvailability

	if err := c.BindJSON(&availability); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attorneyID, ok := c.Get("attorney_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Attorney not authenticated"})
		return
	}
	availability.AttorneyID = attorneyID.(uint)

	if availability.DayOfWeek < 0 || availability.DayOfWeek > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day_of_week must be between 0 and 6"})
		return
	}

	// Check if attorney exists and is verified
	var attorney models.Attorney
	if err := configuration.DB.Where("attorney_id = ?", availability.AttorneyID).First(&attorney).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attorney id not found"})
		return
	}
	if attorney.Verified != "true" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Attorney not verified yet"})
		return
	}

	// Replace an existing window for the same day
	var existing models.AttorneyAvailability
	err := configuration.DB.Where("attorney_id = ? AND day_of_week = ?", availability.AttorneyID, availability.DayOfWeek).First(&existing).Error
	if err == nil {
		existing.StartTime = availability.StartTime
		existing.EndTime = availability.EndTime
		if err := configuration.DB.Save(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update availability"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"Status": "Success", "data": existing})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check availability"})
		return
	}

	if err := configuration.DB.Create(&availability).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"Status": "Success", "data": availability})
}

// SetEmergencyAvailability toggles the attorney's emergency flag and daily cap.
func SetEmergencyAvailability(c *gin.Context) {
	var req struct {
		Available bool `json:"available"`
		MaxDaily  int  `json:"max_daily"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attorneyID, ok := c.Get("attorney_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Attorney not authenticated"})
		return
	}

	updates := map[string]interface{}{"available_for_emergency": req.Available}
	if req.MaxDaily > 0 {
		updates["max_daily_emergency_bookings"] = req.MaxDaily
	}

	if err := configuration.DB.Model(&models.Attorney{}).
		Where("attorney_id = ?", attorneyID.(uint)).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update emergency availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"Status": "Success"})
}
