package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Config holds configuration for the Shopify Admin API integration
type Config struct {
	// ShopDomain is the myshopify subdomain, e.g. "my-store" or
	// "my-store.myshopify.com"
	ShopDomain string
	// AccessToken is the Admin API access token
	AccessToken string
	// APIVersion is the Admin API version, e.g. "2024-07"
	APIVersion string
	// WebhookSecret signs incoming webhooks; optional
	WebhookSecret string
	// PageSize is the products page size per request (max 250)
	PageSize int
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// DefaultAPIVersion is used when no API version is configured
const DefaultAPIVersion = "2024-07"

// MaxPageSize is the Admin API page size cap for the products endpoint
const MaxPageSize = 250

// Errors for Shopify configuration
var (
	ErrConfigMissingShopDomain  = errors.New("shopify: shop domain is required")
	ErrConfigMissingAccessToken = errors.New("shopify: access token is required")
)

// NewConfig creates a Shopify configuration with defaults applied
func NewConfig(shopDomain, accessToken, apiVersion string) *Config {
	cfg := &Config{
		ShopDomain:     shopDomain,
		AccessToken:    accessToken,
		APIVersion:     apiVersion,
		PageSize:       MaxPageSize,
		TimeoutSeconds: 30,
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.PageSize <= 0 || c.PageSize > MaxPageSize {
		c.PageSize = MaxPageSize
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
}

// Validate validates the Shopify configuration
func (c *Config) Validate() error {
	if c.ShopDomain == "" {
		return ErrConfigMissingShopDomain
	}
	if c.AccessToken == "" {
		return ErrConfigMissingAccessToken
	}
	c.applyDefaults()
	return nil
}

// IsConfigured reports whether credentials are present without mutating state
func (c *Config) IsConfigured() bool {
	return c != nil && c.ShopDomain != "" && c.AccessToken != ""
}

// BaseURL returns the Admin API root for this shop and version
func (c *Config) BaseURL() string {
	domain := c.ShopDomain
	if !strings.Contains(domain, ".") {
		domain += ".myshopify.com"
	}
	return fmt.Sprintf("https://%s/admin/api/%s", domain, c.APIVersion)
}

// VerifyWebhook checks the X-Shopify-Hmac-Sha256 signature of a webhook body.
// Returns true when no webhook secret is configured (verification disabled).
func (c *Config) VerifyWebhook(body []byte, signature string) bool {
	if c.WebhookSecret == "" {
		return true
	}
	mac := hmac.New(sha256.New, []byte(c.WebhookSecret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
