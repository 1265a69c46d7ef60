package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"go-orgkit/internal/shared/response"
	"go-orgkit/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware memverifikasi JWT dan menaruh identitas principal
// (user_id, ceo_id, role) di gin context untuk layer berikutnya.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			code := "INVALID_TOKEN"
			msg := "Invalid token"
			if err != nil && strings.Contains(err.Error(), "expired") {
				code = "TOKEN_EXPIRED"
				msg = "Token has expired"
			}
			response.Error(c, http.StatusUnauthorized, code, msg, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token", nil)
			c.Abort()
			return
		}

		ceoID, ok := claims["ceo_id"].(string)
		if !ok || ceoID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Organization scope not found in token", nil)
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)

		c.Set("user_id", userID)
		c.Set("ceo_id", ceoID)
		c.Set("role", role)

		c.Next()
	}
}

// PrincipalFromContext merakit principal eksplisit dari gin context.
// Dipakai handler sebelum memanggil service layer.
func PrincipalFromContext(c *gin.Context) tenant.Principal {
	return tenant.Principal{
		ID:    c.GetString("user_id"),
		Role:  c.GetString("role"),
		CEOID: c.GetString("ceo_id"),
	}
}
