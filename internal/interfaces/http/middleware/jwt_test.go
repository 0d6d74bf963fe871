package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indolink/backend/internal/domain/identity"
	"github.com/indolink/backend/internal/infrastructure/auth"
	"github.com/indolink/backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-test-secret-test-secret!",
		Expiration: time.Hour,
		Issuer:     "indolink-test",
	})
}

func issueToken(t *testing.T, svc *auth.JWTService, role identity.Role) string {
	t.Helper()
	user, err := identity.NewUser("tester", "tester@example.com", "hash", role)
	require.NoError(t, err)
	token, _, err := svc.Generate(user)
	require.NoError(t, err)
	return token
}

func actorEcho() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": actor.Role.String()})
	}
}

func TestJWTAuth(t *testing.T) {
	svc := testJWTService()

	engine := gin.New()
	engine.GET("/private", JWTAuth(svc, nil), actorEcho())

	t.Run("valid token resolves the actor", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, svc, identity.RoleSeller))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "SELLER")
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"not-a-token")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalJWTAuth(t *testing.T) {
	svc := testJWTService()

	engine := gin.New()
	engine.GET("/public", OptionalJWTAuth(svc), actorEcho())

	t.Run("anonymous request passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "anonymous")
	})

	t.Run("presented token must still be valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"junk")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token resolves the actor", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+issueToken(t, svc, identity.RoleBuyer))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "BUYER")
	})
}
