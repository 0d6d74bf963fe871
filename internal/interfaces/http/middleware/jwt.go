package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/indolink/backend/internal/domain/identity"
	"github.com/indolink/backend/internal/infrastructure/auth"
	"github.com/indolink/backend/internal/interfaces/http/dto"
)

// Context keys set by the authentication middleware
const (
	ClaimsKey     = "jwt_claims"
	ActorKey      = "actor"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTAuth requires a valid bearer token and stores the resolved actor in
// the request context. Requests without a token are rejected.
func JWTAuth(jwtService *auth.JWTService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := validateRequest(c, jwtService)
		if err != nil {
			abortUnauthorized(c, logger, err)
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth resolves the actor when a bearer token is present but
// lets anonymous requests through. Handlers that need an authenticated
// actor check for one themselves; public catalog reads do not.
func OptionalJWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(AuthHeaderKey) == "" {
			c.Next()
			return
		}
		claims, err := validateRequest(c, jwtService)
		if err != nil {
			// A presented token must be valid even on public routes
			abortUnauthorized(c, nil, err)
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

func validateRequest(c *gin.Context, jwtService *auth.JWTService) (*auth.Claims, error) {
	header := c.GetHeader(AuthHeaderKey)
	if header == "" || !strings.HasPrefix(header, BearerPrefix) {
		return nil, auth.ErrInvalidToken
	}
	tokenString := strings.TrimPrefix(header, BearerPrefix)
	if tokenString == "" {
		return nil, auth.ErrInvalidToken
	}
	return jwtService.Validate(tokenString)
}

func setIdentity(c *gin.Context, claims *auth.Claims) {
	c.Set(ClaimsKey, claims)
	c.Set(ActorKey, claims.Actor())
}

func abortUnauthorized(c *gin.Context, logger *zap.Logger, err error) {
	if logger != nil {
		logger.Warn("authentication failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code := dto.ErrCodeUnauthorized
	message := "Authentication required"
	switch err {
	case auth.ErrExpiredToken:
		code = "TOKEN_EXPIRED"
		message = "Token has expired"
	case auth.ErrInvalidToken, auth.ErrInvalidClaims:
		code = "INVALID_TOKEN"
		message = "Invalid token"
	case auth.ErrTokenNotYetValid:
		code = "TOKEN_NOT_VALID"
		message = "Token is not yet valid"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}

// GetActor retrieves the authenticated actor from the context. The second
// return is false for anonymous requests.
func GetActor(c *gin.Context) (identity.Actor, bool) {
	v, exists := c.Get(ActorKey)
	if !exists {
		return identity.Actor{}, false
	}
	actor, ok := v.(identity.Actor)
	if !ok || actor.ID == uuid.Nil {
		return identity.Actor{}, false
	}
	return actor, true
}

// GetClaims retrieves the raw JWT claims from the context
func GetClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(ClaimsKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
