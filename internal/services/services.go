package services

import (
	"fmt"

	"chartctl/internal/shared"
)

// TokenSource supplies the opaque session token attached to every request.
// Implemented by [session.Store]; the service never inspects validity, that
// is the caller's job.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-value [TokenSource], mainly for tests and one-shot
// CLI invocations.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// APIError is a non-2xx response outside the session-expiry class. The body
// text is carried verbatim for display.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chart API error: status %d - %s", e.Status, e.Body)
}

func (e *APIError) Unwrap() error { return shared.ErrAPIRequest }

// RawChart mirrors the API's chart record field names, pre-normalization.
//
// author holds the author's id; author_full the formatted display name;
// chart_design the plain handle used when re-submitting edits.
type RawChart struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	Artists              string   `json:"artists"`
	AuthorFull           string   `json:"author_full"`
	Author               string   `json:"author"`
	ChartDesign          string   `json:"chart_design"`
	Rating               int      `json:"rating"`
	Description          string   `json:"description"`
	Tags                 []string `json:"tags"`
	JacketFileHash       string   `json:"jacket_file_hash"`
	MusicFileHash        string   `json:"music_file_hash"`
	BackgroundFileHash   string   `json:"background_file_hash"`
	BackgroundV3FileHash string   `json:"background_v3_file_hash"`
	ChartFileHash        string   `json:"chart_file_hash"`
	PreviewFileHash      string   `json:"preview_file_hash"`
	LikeCount            int      `json:"like_count"`
	CreatedAt            int64    `json:"created_at"`
	UpdatedAt            int64    `json:"updated_at"`
	Status               string   `json:"status"`
	TotalCount           int      `json:"total_count"`
}

// chartListEnvelope is the response shape of GET /api/charts.
// There is no dedicated total-count field; it rides on each item.
type chartListEnvelope struct {
	Data         []RawChart `json:"data"`
	PageCount    int        `json:"pageCount"`
	AssetBaseURL string     `json:"asset_base_url"`
}
