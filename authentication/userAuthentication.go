package authentication

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"legal-shield/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func userJWTKey() []byte {
	key := os.Getenv("JWT_USER_SECRET")
	if key == "" {
		key = "secretKey"
	}
	return []byte(key)
}

// Generating jwt token for user
func GenerateUserToken(userID int, phone string) (string, error) {
	claims := &models.UserClaims{
		UserID: userID,
		Phone:  phone,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(userJWTKey())
}

// AuthenticateUser verifies a user token and returns the phone and user id.
func AuthenticateUser(signedStringToken string) (string, int, error) {
	token, err := jwt.ParseWithClaims(signedStringToken, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return userJWTKey(), nil
	})
	if err != nil {
		return "", 0, err
	}

	if claims, ok := token.Claims.(*models.UserClaims); ok && token.Valid {
		return claims.Phone, claims.UserID, nil
	}
	return "", 0, errors.New("invalid token")
}

// User auth middleware
func UserAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User Authorization is missing"})
			return
		}

		authHeader := strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer"))
		phone, userID, err := AuthenticateUser(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set("userID", userID)
		c.Set("phone", phone)
		c.Next()
	}
}
