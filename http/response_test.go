package http_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/filegate"
	filegatehttp "github.com/sagarc03/filegate/http"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	filegatehttp.WriteError(rec, http.StatusTeapot, "teapot", "short and stout")

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body filegatehttp.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "teapot", body.Error)
	assert.Equal(t, "short and stout", body.Message)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "unauthorized",
			err:         fmt.Errorf("signature mismatch: %w", filegate.ErrUnauthorized),
			wantStatus:  http.StatusUnauthorized,
			wantCode:    "unauthorized",
			wantMessage: "Invalid or expired signature",
		},
		{
			name:        "internal",
			err:         fmt.Errorf("open /srv/www/a.txt: %w", filegate.ErrInternal),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "internal_error",
			wantMessage: "Internal server error",
		},
		{
			name:        "unknown",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "internal_error",
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			filegatehttp.HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body filegatehttp.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Error)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestRejectionStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("decode path: %w", filegate.ErrMalformedPath), http.StatusBadRequest},
		{fmt.Errorf("extension: %w", filegate.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("method: %w", filegate.ErrMethodNotAllowed), http.StatusMethodNotAllowed},
		{fmt.Errorf("stat: %w", filegate.ErrNotFound), http.StatusNotFound},
		{filegate.ErrNotMounted, http.StatusNotFound},
		{nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, filegatehttp.RejectionStatus(tt.err), "%v", tt.err)
	}
}

func TestNotFoundHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	req = req.WithContext(filegate.WithRejection(req.Context(), filegate.ErrForbidden))

	filegatehttp.NotFoundHandler(false).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	filegatehttp.NotFoundHandler(true).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "403 Forbidden")
}
