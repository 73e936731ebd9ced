package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"chartctl/internal/models"
)

// ChartCacheRepository stores the last successful fetch of each catalog page
// as normalized JSON, so `charts list --cached` can render offline.
type ChartCacheRepository struct {
	db *sql.DB
}

// NewChartCacheRepository creates a cache repository with the given database connection.
func NewChartCacheRepository(db *sql.DB) *ChartCacheRepository {
	return &ChartCacheRepository{db: db}
}

// SavePage replaces the cached copy of the page.
func (r *ChartCacheRepository) SavePage(page *models.ChartPage) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO chart_cache (page, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(page) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`, page.Page, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to cache page %d: %w", page.Page, err)
	}

	return nil
}

// GetPage retrieves a cached page and when it was fetched.
func (r *ChartCacheRepository) GetPage(page int) (*models.ChartPage, time.Time, error) {
	var payload string
	var fetchedAt time.Time

	err := r.db.QueryRow(
		"SELECT payload, fetched_at FROM chart_cache WHERE page = ?", page,
	).Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, fmt.Errorf("no cached copy of page %d", page)
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to query chart cache: %w", err)
	}

	var cached models.ChartPage
	if err := json.Unmarshal([]byte(payload), &cached); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to unmarshal cached page: %w", err)
	}

	return &cached, fetchedAt, nil
}

// Clear drops all cached pages. Called after mutations that may shift items
// between pages.
func (r *ChartCacheRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM chart_cache"); err != nil {
		return fmt.Errorf("failed to clear chart cache: %w", err)
	}
	return nil
}
