package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"chartctl/internal/formatter"
	"chartctl/internal/models"
	"chartctl/internal/shared"
)

// DumpOpts contains configuration for full-catalog dumps.
type DumpOpts struct {
	Format    string  // Export format: json, csv, markdown, txt
	OutputDir string  // Base output directory (default: chart_dump_{epoch})
	RateLimit float64 // Page requests per second (default: 5)
}

// PageFetchError records a page that could not be fetched during a dump.
type PageFetchError struct {
	Page  int    `json:"page"`
	Error string `json:"error"`
}

// DumpResult summarizes a full-catalog dump.
type DumpResult struct {
	TotalPages      int              `json:"total_pages"`
	TotalCharts     int              `json:"total_charts"`
	OutputDirectory string           `json:"output_directory"`
	CatalogFile     string           `json:"catalog_file"`
	ManifestFile    string           `json:"manifest_file,omitempty"`
	DumpedAt        time.Time        `json:"dumped_at"`
	Errors          []PageFetchError `json:"errors,omitempty"`
}

// Dump walks every catalog page in order, rate limited, and writes the
// combined chart list plus a manifest to the output directory.
//
// Individual page failures are recorded and skipped; an expired session
// aborts the walk since every remaining request would fail the same way.
func (c *Controller) Dump(ctx context.Context, progress chan<- ProgressUpdate, opts DumpOpts) (*DumpResult, error) {
	ok, err := c.guard()
	if !ok {
		if err == nil {
			err = fmt.Errorf("%w: sign in before dumping", shared.ErrNotReady)
		}
		return nil, err
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("chart_dump_%d", time.Now().Unix())
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	if opts.Format == "" {
		opts.Format = "json"
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	first, err := c.api.FetchPage(ctx, 0)
	if err != nil {
		if errors.Is(err, shared.ErrSessionExpired) {
			c.gate.Invalidate()
		}
		return nil, fmt.Errorf("failed to fetch first page: %w", err)
	}

	result := &DumpResult{
		TotalPages:      first.PageCount,
		OutputDirectory: opts.OutputDir,
		DumpedAt:        time.Now().UTC(),
	}

	charts := make([]models.Chart, 0, len(first.Charts)*first.PageCount)
	charts = append(charts, first.Charts...)
	sendProgress(progress, fetchPageUpdate(1, first.PageCount, len(first.Charts)))

	for page := 1; page < first.PageCount; page++ {
		if err := limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("dump canceled: %w", err)
		}

		fetched, err := c.api.FetchPage(ctx, page)
		if err != nil {
			if errors.Is(err, shared.ErrSessionExpired) {
				c.gate.Invalidate()
				return result, fmt.Errorf("dump aborted: %w", err)
			}
			result.Errors = append(result.Errors, PageFetchError{Page: page, Error: err.Error()})
			sendProgress(progress, fetchPageFailedUpdate(page+1, first.PageCount, err))
			continue
		}

		charts = append(charts, fetched.Charts...)
		sendProgress(progress, fetchPageUpdate(page+1, first.PageCount, len(fetched.Charts)))
	}

	result.TotalCharts = len(charts)

	catalogPath := filepath.Join(opts.OutputDir, "charts"+formatter.CatalogExt(opts.Format))
	sendProgress(progress, writeExportUpdate(catalogPath))
	if err := formatter.WriteCatalog(charts, opts.Format, catalogPath); err != nil {
		return result, fmt.Errorf("failed to write catalog: %w", err)
	}
	result.CatalogFile = catalogPath

	manifestPath := filepath.Join(opts.OutputDir, "dump_manifest.json")
	if err := formatter.WriteJSON(result, manifestPath); err != nil {
		return result, fmt.Errorf("dump completed but failed to write manifest: %w", err)
	}
	result.ManifestFile = manifestPath
	return result, nil
}
