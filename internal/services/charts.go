package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"chartctl/internal/models"
	"chartctl/internal/shared"
)

// ChartService talks to the chart server API. All requests carry the raw
// session token in the Authorization header (the server expects no scheme
// prefix).
type ChartService struct {
	baseURL    string
	assetBase  string
	tokens     TokenSource
	httpClient *http.Client
}

// NewChartService creates a chart API client.
//
// assetBase is the fallback prefix for derived asset URLs when the list
// envelope omits asset_base_url; it defaults to baseURL.
func NewChartService(baseURL, assetBase string, tokens TokenSource, client *http.Client) *ChartService {
	if assetBase == "" {
		assetBase = baseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &ChartService{
		baseURL:    baseURL,
		assetBase:  assetBase,
		tokens:     tokens,
		httpClient: client,
	}
}

// doRequest performs an authenticated request and decodes a JSON response.
//
// Non-2xx statuses classify into two errors: 401/403 wrap
// [shared.ErrSessionExpired]; everything else becomes an [*APIError]
// carrying status and body text. Session-expiry classification always wins.
func (s *ChartService) doRequest(ctx context.Context, method, path, contentType string, body []byte, result any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", s.tokens.Token())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return fmt.Errorf("%w: status %d", shared.ErrSessionExpired, resp.StatusCode)
		}
		text, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Body: string(text)}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// FetchPage retrieves one page of the user's charts with the fixed advanced
// detail level and ALL-statuses filter, normalized into a [models.ChartPage].
func (s *ChartService) FetchPage(ctx context.Context, page int) (*models.ChartPage, error) {
	endpoint := fmt.Sprintf("/api/charts?page=%d&type=advanced&status=ALL", page)

	var env chartListEnvelope
	if err := s.doRequest(ctx, http.MethodGet, endpoint, "", nil, &env); err != nil {
		return nil, err
	}

	base := env.AssetBaseURL
	if base == "" {
		base = s.assetBase
	}

	return normalizePage(env, base, page), nil
}

// Upload submits a new chart as a multi-part body built by the payload
// builder.
func (s *ChartService) Upload(ctx context.Context, contentType string, body []byte) error {
	return s.doRequest(ctx, http.MethodPost, "/api/charts/upload/", contentType, body, nil)
}

// Edit submits changed fields and freshly attached files for an existing
// chart.
func (s *ChartService) Edit(ctx context.Context, chartID, contentType string, body []byte) error {
	endpoint := fmt.Sprintf("/api/charts/%s/edit/", chartID)
	return s.doRequest(ctx, http.MethodPatch, endpoint, contentType, body, nil)
}

// Delete removes a chart.
func (s *ChartService) Delete(ctx context.Context, chartID string) error {
	endpoint := fmt.Sprintf("/api/charts/%s/delete/", chartID)
	return s.doRequest(ctx, http.MethodDelete, endpoint, "", nil, nil)
}

// SetVisibility moves a chart to the given visibility state.
func (s *ChartService) SetVisibility(ctx context.Context, chartID string, status models.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", shared.ErrInvalidArgument, status)
	}

	body, err := json.Marshal(map[string]string{"status": string(status)})
	if err != nil {
		return fmt.Errorf("failed to marshal status body: %w", err)
	}

	endpoint := fmt.Sprintf("/api/charts/%s/visibility/", chartID)
	return s.doRequest(ctx, http.MethodPatch, endpoint, "application/json", body, nil)
}
