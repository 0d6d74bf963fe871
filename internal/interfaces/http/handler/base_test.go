package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/indolink/backend/internal/domain/shared"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serveWithError(err error) *httptest.ResponseRecorder {
	engine := gin.New()
	h := &BaseHandler{}
	engine.GET("/boom", func(c *gin.Context) {
		h.HandleError(c, err)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	return w
}

func TestHandleError(t *testing.T) {
	t.Run("domain errors map to their status codes", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			want int
		}{
			{"not found", shared.ErrNotFound, http.StatusNotFound},
			{"forbidden", shared.ErrForbidden, http.StatusForbidden},
			{"unauthorized", shared.ErrUnauthorized, http.StatusUnauthorized},
			{"already exists", shared.ErrAlreadyExists, http.StatusConflict},
			{"invalid state", shared.ErrInvalidState, http.StatusUnprocessableEntity},
			{"validation failure", shared.NewDomainError("INVALID_RELIST_PRICE", "Relist price must be positive"), http.StatusBadRequest},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := serveWithError(tt.err)
				assert.Equal(t, tt.want, w.Code)
				assert.Contains(t, w.Body.String(), `"success":false`)
			})
		}
	})

	t.Run("unknown errors become opaque 500s", func(t *testing.T) {
		w := serveWithError(errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}
