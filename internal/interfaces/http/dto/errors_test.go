package dto

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeSyncInProgress, http.StatusConflict},
		{ErrCodeFetchFailed, http.StatusBadGateway},
		{ErrCodeEmptyCatalog, http.StatusBadGateway},
		{ErrCodeSinkWrite, http.StatusInternalServerError},
		{ErrCodeNotConfigured, http.StatusServiceUnavailable},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestSyncResponse_JSONShape(t *testing.T) {
	t.Run("success omits error", func(t *testing.T) {
		resp := SyncResponse{
			Success: true,
			Count:   12,
			Files:   []string{"catalog.csv", "whatsapp_catalog.json", "products_detail.json"},
		}

		data, err := json.Marshal(resp)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, true, decoded["success"])
		assert.Equal(t, float64(12), decoded["count"])
		assert.NotContains(t, decoded, "error")
	})

	t.Run("failure omits count and files", func(t *testing.T) {
		resp := SyncResponse{
			Success: false,
			Error:   NewErrorInfo(ErrCodeFetchFailed, "catalog fetch failed"),
		}

		data, err := json.Marshal(resp)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, false, decoded["success"])
		assert.NotContains(t, decoded, "count")
		assert.NotContains(t, decoded, "files")

		errObj, ok := decoded["error"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, ErrCodeFetchFailed, errObj["code"])
	})
}

func TestStatusResponse_LastSyncNullable(t *testing.T) {
	t.Run("null before first sync", func(t *testing.T) {
		data, err := json.Marshal(StatusResponse{ProductsCount: 0})
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Contains(t, decoded, "last_sync")
		assert.Nil(t, decoded["last_sync"])
		assert.Equal(t, false, decoded["shopify_connected"])
	})

	t.Run("ISO timestamp after sync", func(t *testing.T) {
		ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		data, err := json.Marshal(StatusResponse{ProductsCount: 3, LastSync: &ts, ShopifyConnected: true})
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "2024-06-01T12:00:00Z", decoded["last_sync"])
	})
}
