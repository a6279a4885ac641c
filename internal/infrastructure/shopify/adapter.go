package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/storelink/backend/internal/domain/catalog"
)

// maxResponseSize is the maximum allowed response size from the Admin API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// maxPages bounds pagination so a misbehaving Link header cannot loop forever
const maxPages = 40

// nextLinkPattern extracts the rel="next" URL from a Link response header
var nextLinkPattern = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// Adapter implements the catalog fetcher against the Shopify Admin REST API.
// An Adapter built from an unconfigured Config is still usable: Configured
// reports false and FetchProducts fails with ErrPlatformNotConfigured so the
// rest of the service keeps serving status and the current snapshot.
type Adapter struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger

	// baseURLOverride replaces the Admin API root in tests
	baseURLOverride string
}

// NewAdapter creates a Shopify adapter with the given configuration
func NewAdapter(config *Config, logger *zap.Logger) *Adapter {
	config.applyDefaults()
	return &Adapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}
}

// Configured reports whether the Admin API credential is present
func (a *Adapter) Configured() bool {
	return a.config.IsConfigured()
}

// VerifyWebhook checks a webhook body signature against the configured secret
func (a *Adapter) VerifyWebhook(body []byte, signature string) bool {
	return a.config.VerifyWebhook(body, signature)
}

// FetchProducts retrieves the full raw product collection, following
// Link rel="next" pagination with the configured page size.
func (a *Adapter) FetchProducts(ctx context.Context) ([]catalog.RemoteProduct, error) {
	if !a.Configured() {
		return nil, catalog.ErrPlatformNotConfigured
	}

	base := a.config.BaseURL()
	if a.baseURLOverride != "" {
		base = a.baseURLOverride
	}
	url := fmt.Sprintf("%s/products.json?limit=%d", base, a.config.PageSize)
	var remotes []catalog.RemoteProduct

	for page := 0; url != "" && page < maxPages; page++ {
		body, next, err := a.fetchPage(ctx, url)
		if err != nil {
			return nil, err
		}

		var resp ProductsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("%w: %v", catalog.ErrPlatformInvalidResponse, err)
		}

		for i := range resp.Products {
			remotes = append(remotes, resp.Products[i].toRemote())
		}

		// A short page means we have the full catalog
		if len(resp.Products) < a.config.PageSize {
			break
		}
		url = next
	}

	a.logger.Debug("Fetched remote catalog",
		zap.Int("products", len(remotes)),
	)

	return remotes, nil
}

// fetchPage performs one products request and returns the body plus the
// rel="next" URL from the Link header, if any.
func (a *Adapter) fetchPage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", a.config.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", catalog.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, "", fmt.Errorf("shopify: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Errors != nil {
			return nil, "", fmt.Errorf("%w: HTTP %d: %v", catalog.ErrFetchFailed, resp.StatusCode, apiErr.Errors)
		}
		return nil, "", fmt.Errorf("%w: HTTP %d", catalog.ErrFetchFailed, resp.StatusCode)
	}

	return body, parseNextLink(resp.Header.Get("Link")), nil
}

// parseNextLink extracts the rel="next" URL from a Link header value
func parseNextLink(header string) string {
	if header == "" {
		return ""
	}
	if m := nextLinkPattern.FindStringSubmatch(header); m != nil {
		return m[1]
	}
	return ""
}
