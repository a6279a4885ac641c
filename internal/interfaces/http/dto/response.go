package dto

import (
	"time"

	"github.com/storelink/backend/internal/domain/catalog"
)

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SyncResponse is the wire form of a sync run outcome
type SyncResponse struct {
	Success bool       `json:"success"`
	Count   int        `json:"count,omitempty"`
	Files   []string   `json:"files,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// StatusResponse reports the coordinator state without blocking on a
// running sync
type StatusResponse struct {
	ProductsCount    int        `json:"products_count"`
	LastSync         *time.Time `json:"last_sync"`
	ShopifyConnected bool       `json:"shopify_connected"`
	SyncInProgress   bool       `json:"sync_in_progress"`
	LastError        string     `json:"last_error,omitempty"`
}

// ProductsResponse returns a page of the current snapshot
type ProductsResponse struct {
	Products []catalog.Product `json:"products"`
	Total    int               `json:"total"`
	LastSync *time.Time        `json:"last_sync"`
}

// WebhookAck acknowledges a webhook delivery
type WebhookAck struct {
	Received bool `json:"received"`
}

// HealthResponse is the liveness probe body
type HealthResponse struct {
	Status string `json:"status"`
}

// NewErrorInfo creates error details for a response
func NewErrorInfo(code, message string) *ErrorInfo {
	return &ErrorInfo{
		Code:    code,
		Message: message,
	}
}
