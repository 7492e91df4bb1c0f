package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	StaffID  string `json:"staff_id"`
	VendorID string `json:"vendor_id"`
	jwt.RegisteredClaims
}

// GenerateStaffToken creates a signed JWT for a staff session. Tokens are
// normally issued by the backoffice during device provisioning; this helper
// exists for provisioning tools and tests.
func GenerateStaffToken(secret []byte, staffID, vendorID string) (string, error) {
	claims := Claims{
		StaffID:  staffID,
		VendorID: vendorID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// AuthRequired validates the JWT and injects staff claims into context
func AuthRequired(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		c.Set("staffID", claims.StaffID)
		c.Set("vendorID", claims.VendorID)
		c.Next()
	}
}

// GetStaffID extracts the caller's staff ID from context
func GetStaffID(c *gin.Context) string {
	val, _ := c.Get("staffID")
	s, _ := val.(string)
	return s
}

// GetVendorID extracts the caller's vendor ID from context
func GetVendorID(c *gin.Context) string {
	val, _ := c.Get("vendorID")
	s, _ := val.(string)
	return s
}
