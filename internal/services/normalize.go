package services

import (
	"fmt"

	"chartctl/internal/models"
)

// assetURL derives a downloadable URL for a content hash, or "" when the
// hash is absent.
func assetURL(base, authorID, chartID, hash string) string {
	if hash == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s/%s", base, authorID, chartID, hash)
}

// NormalizeChart converts one raw API record into the canonical [models.Chart].
//
// Pure: only ever runs on raw records and has no side effects. The background
// URL falls back to the versioned v3 hash when the primary hash is absent;
// HasBackground reflects the primary hash only.
func NormalizeChart(raw RawChart, base string) models.Chart {
	background := assetURL(base, raw.Author, raw.ID, raw.BackgroundFileHash)
	if background == "" {
		background = assetURL(base, raw.Author, raw.ID, raw.BackgroundV3FileHash)
	}

	return models.Chart{
		ID:          raw.ID,
		Title:       raw.Title,
		Artists:     raw.Artists,
		Author:      raw.AuthorFull,
		AuthorField: raw.ChartDesign,
		AuthorID:    raw.Author,
		Rating:      raw.Rating,
		Description: raw.Description,
		Tags:        raw.Tags,

		CoverURL:      assetURL(base, raw.Author, raw.ID, raw.JacketFileHash),
		BGMURL:        assetURL(base, raw.Author, raw.ID, raw.MusicFileHash),
		ChartURL:      assetURL(base, raw.Author, raw.ID, raw.ChartFileHash),
		PreviewURL:    assetURL(base, raw.Author, raw.ID, raw.PreviewFileHash),
		BackgroundURL: background,
		HasBackground: raw.BackgroundFileHash != "",

		LikeCount: raw.LikeCount,
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
		Status:    models.Status(raw.Status),
	}
}

// NormalizePage converts a list envelope into a canonical [models.ChartPage].
//
// The total count is read from the first item's embedded total_count; an
// empty page therefore reports 0.
func normalizePage(env chartListEnvelope, base string, page int) *models.ChartPage {
	charts := make([]models.Chart, len(env.Data))
	for i, raw := range env.Data {
		charts[i] = NormalizeChart(raw, base)
	}

	total := 0
	if len(env.Data) > 0 {
		total = env.Data[0].TotalCount
	}

	return &models.ChartPage{
		Charts:     charts,
		PageCount:  env.PageCount,
		TotalCount: total,
		Page:       page,
	}
}
