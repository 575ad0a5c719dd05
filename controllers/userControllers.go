package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"legal-shield/authentication"
	"legal-shield/configuration"
	"legal-shield/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserLogin handles the user login process
func UserLogin(c *gin.Context) {
	var loginReq struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Check if the provided phone number exists in the database
	var existingUser models.User
	if err := configuration.DB.Where("phone = ?", loginReq.Phone).First(&existingUser).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone number or phone number is not present"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(loginReq.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone number or password"})
		return
	}

	token, err := authentication.GenerateUserToken(existingUser.UserID, loginReq.Phone)
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

// UserSignup validates the signup payload, sends an OTP and parks the pending
// user in Redis until the OTP is verified.
func UserSignup(c *gin.Context) {
	var user models.User
	if err := c.BindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validate.Struct(user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"Status":  "Failed",
			"message": "Please fill all the mandatory fields",
			"data":    err.Error(),
		})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	user.Password = string(hashedPassword)

	var existingUser models.User
	if err := configuration.DB.Where("phone = ?", user.Phone).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "User already exists"})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
		return
	}

	// Send OTP to the user's phone number
	if err := authentication.SendOTP(user.Phone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send OTP", "data": err.Error()})
		return
	}

	userData, err := json.Marshal(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to marshal user", "data": err.Error()})
		return
	}
	// Park the pending user in Redis until OTP verification
	key := fmt.Sprintf("user:%s", user.Phone)
	if err := configuration.SetRedis(key, userData, time.Minute*5); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"Status": false, "Data": nil, "Message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"Message": "Otp generated successfully. Proceed to verification page>>>"})
}

// UserOtpVerify checks the OTP and creates the user record.
func UserOtpVerify(c *gin.Context) {
	var OTPverify models.VerifyOTP
	if err := c.BindJSON(&OTPverify); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"Status": false, "Data": nil, "Message": "Failed to parse JSON data"})
		return
	}

	if err := authentication.CheckOTP(OTPverify.Phone, OTPverify.Otp); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"Status": false, "Data": nil, "Message": "Wrong OTP provided"})
		return
	}

	// Retrieve the pending user from Redis
	key := fmt.Sprintf("user:%s", OTPverify.Phone)
	value, err := configuration.GetRedis(key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  false,
			"Data":    nil,
			"Message": "Signup expired, please register again",
		})
		return
	}

	var userData models.User
	if err := json.Unmarshal([]byte(value), &userData); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unmarshal user", "data": err.Error()})
		return
	}

	if err := configuration.DB.Create(&userData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"Status": false, "Data": nil, "Message": "Failed to create user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  true,
		"Message": "OTP verified successfully and user has been created. Login to continue...",
	})
}

// User logout
func UserLogout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "You are successfully logged out"})
}
