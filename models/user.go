package models

import "github.com/golang-jwt/jwt/v5"

type User struct {
	UserID         int    `gorm:"primaryKey"`
	Name           string `json:"name" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
	Email          string `json:"email"`
	MilitaryBranch string `json:"military_branch"`
	Rank           string `json:"rank"`
	Password       string `json:"password" validate:"required"`
}

type VerifyOTP struct {
	Phone string `json:"phone"`
	Otp   string `json:"otp"`
}

type UserClaims struct {
	jwt.RegisteredClaims
	UserID int    `json:"userID"`
	Phone  string `json:"phone"`
}
