package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	err := WriteJSON(rec, http.StatusOK, map[string]string{"hello": "мир"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "мир", body["hello"])
}

func TestWriteJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()

	require.NoError(t, WriteJSON(rec, http.StatusAccepted, nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestWriteErrorResponders(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w http.ResponseWriter) error
		wantStatus int
		wantError  string
	}{
		{
			name:       "bad request",
			write:      func(w http.ResponseWriter) error { return WriteBadRequest(w, "bad input", nil) },
			wantStatus: http.StatusBadRequest,
			wantError:  "bad_request",
		},
		{
			name:       "not found",
			write:      func(w http.ResponseWriter) error { return WriteNotFound(w, "") },
			wantStatus: http.StatusNotFound,
			wantError:  "not_found",
		},
		{
			name:       "conflict",
			write:      func(w http.ResponseWriter) error { return WriteConflict(w, "duplicate", nil) },
			wantStatus: http.StatusConflict,
			wantError:  "conflict",
		},
		{
			name:       "bad gateway",
			write:      func(w http.ResponseWriter) error { return WriteBadGateway(w, "provider down", nil) },
			wantStatus: http.StatusBadGateway,
			wantError:  "bad_gateway",
		},
		{
			name:       "internal",
			write:      func(w http.ResponseWriter) error { return WriteInternalServerError(w, "") },
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.NoError(t, tt.write(rec))

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}
