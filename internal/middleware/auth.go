package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ujjwal0011/job-portal/internal/models"
)

// ContextUserKey is where Authenticate stores the resolved principal.
const ContextUserKey = "currentUser"

// TokenCookieName is the HTTP-only cookie carrying the session JWT.
const TokenCookieName = "token"

var errNoToken = errors.New("no session token")

// Authenticate resolves the requesting principal from the session cookie
// (or a bearer header for non-browser clients), loads the account row and
// attaches it to the request context. Missing, malformed or expired tokens
// all end the request with 401; role checks are left to RequireRoles.
func Authenticate(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty for Authenticate middleware")
	}

	return func(c *gin.Context) {
		tokenStr, err := extractToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Please log in to access this resource."})
			c.Abort()
			return
		}

		claims, err := parseToken(tokenStr, jwtSecret)
		if err != nil {
			logrus.WithError(err).Warn("Auth middleware: invalid token")
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired session. Please log in again."})
			c.Abort()
			return
		}

		// JWT numbers decode as float64.
		idClaim, ok := claims["user_id"].(float64)
		if !ok || idClaim <= 0 {
			logrus.Errorf("Auth middleware: bad user_id claim: %v", claims["user_id"])
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid session token."})
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, uint(idClaim)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Account no longer exists."})
			} else {
				logrus.WithError(err).Error("Auth middleware: failed to load user")
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to resolve session."})
			}
			c.Abort()
			return
		}

		c.Set(ContextUserKey, &user)
		c.Next()
	}
}

// RequireRoles rejects authenticated callers whose role is outside the
// allowed set. Must run after Authenticate.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Please log in to access this resource."})
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": fmt.Sprintf("%s is not allowed to access this resource.", user.Role),
		})
		c.Abort()
	}
}

// CurrentUser returns the principal set by Authenticate, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func extractToken(c *gin.Context) (string, error) {
	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie != "" {
		return cookie, nil
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errNoToken
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errNoToken
	}
	return parts[1], nil
}

func parseToken(tokenStr, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
