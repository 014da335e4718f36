package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"allball/practice-server/internal/entitlement"
	"allball/practice-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Constants for context keys
const (
	ContextUserIDKey = "userID"
	ContextPlanKey   = "plan"
)

// jwtClaims is the payload we expect in tokens from the auth provider. The
// subject claim is the user id; everything else is ignored.
type jwtClaims struct {
	jwt.RegisteredClaims
}

// AuthMiddleware resolves the requesting coach and their plan. With no
// configured secret the server runs in single-coach local mode: every
// request is anonymous and resolves to the default plan. With a secret, a
// valid bearer token is required and the plan is looked up per user.
func AuthMiddleware(jwtSecret string, entitlements entitlement.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSecret == "" {
			c.Set(ContextUserIDKey, "")
			c.Set(ContextPlanKey, entitlements.PlanFor(c.Request.Context(), ""))
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}
		if !token.Valid || claims.Subject == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing subject claim")
			return
		}

		c.Set(ContextUserIDKey, claims.Subject)
		c.Set(ContextPlanKey, entitlements.PlanFor(c.Request.Context(), claims.Subject))
		c.Next()
	}
}

// RequireCapability gates a route on the resolved plan. Denials carry an
// upgrade flag so the client can route to the paywall instead of showing a
// plain error. Must run after AuthMiddleware.
func RequireCapability(capability entitlement.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		plan := planFromContext(c)
		if !entitlement.Allows(plan, capability) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error":   fmt.Sprintf("Your %s plan does not include %s. Upgrade to unlock it.", plan, capability),
				"upgrade": true,
			})
			return
		}
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

func planFromContext(c *gin.Context) entitlement.Plan {
	raw, exists := c.Get(ContextPlanKey)
	if !exists {
		return entitlement.PlanFree
	}
	plan, ok := raw.(entitlement.Plan)
	if !ok {
		return entitlement.PlanFree
	}
	return plan
}

func userIDFromContext(c *gin.Context) string {
	raw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return ""
	}
	id, _ := raw.(string)
	return id
}

// confirmDestructive enforces the blocking-confirmation contract for
// destructive operations: without confirm=true the request is rejected with
// the prompt the client should show.
func confirmDestructive(c *gin.Context, prompt string) bool {
	if c.Query("confirm") == "true" {
		return true
	}
	c.AbortWithStatusJSON(http.StatusConflict, gin.H{
		"error":                prompt,
		"confirmationRequired": true,
	})
	return false
}

// respondServiceError maps container errors to HTTP statuses: validation
// failures are transient toasts (400), unknown ids are 404.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, err.Error())
	}
}
