package authentication

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"legal-shield/configuration"
	"legal-shield/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func attorneyJWTKey() []byte {
	key := os.Getenv("JWT_ATTORNEY_SECRET")
	if key == "" {
		key = "attorneykey"
	}
	return []byte(key)
}

// Generating token
func GenerateAttorneyToken(attorneyEmail string, attorneyID uint) (string, error) {
	claims := &models.AttorneyClaims{
		Id:            attorneyID,
		AttorneyEmail: attorneyEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(attorneyJWTKey())
}

// verify attorney token
func AttorneyAuthentication(tokenString string) (string, uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.AttorneyClaims{}, func(token *jwt.Token) (interface{}, error) {
		return attorneyJWTKey(), nil
	})
	if err != nil {
		return "", 0, err
	}

	if claims, ok := token.Claims.(*models.AttorneyClaims); ok && token.Valid {
		return claims.AttorneyEmail, claims.Id, nil
	}
	return "", 0, errors.New("invalid token")
}

// Attorney auth middleware
func AttorneyAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing the authorization header"})
			return
		}

		authHeader := strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer"))

		email, id, err := AttorneyAuthentication(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("email", email)
		c.Set("attorney_id", id)
		c.Next()
	}
}

// retrieves attorney information from the database
func GetAttorneyByEmail(email string) (*models.Attorney, error) {
	var attorney models.Attorney
	if err := configuration.DB.Where("email = ?", email).First(&attorney).Error; err != nil {
		return nil, err
	}
	return &attorney, nil
}
