package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"FORBIDDEN", http.StatusForbidden},
		{"UNAUTHORIZED", http.StatusUnauthorized},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"INVALID_STATE", http.StatusUnprocessableEntity},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"INVALID_ROLE", http.StatusBadRequest},
		{"INVALID_RELIST_PRICE", http.StatusBadRequest},
		{"INVALID_IMAGE", http.StatusBadRequest},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}
