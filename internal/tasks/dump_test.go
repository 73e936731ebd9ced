package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"chartctl/internal/models"
	"chartctl/internal/shared"
	tu "chartctl/internal/testing"
)

// pagedAPI serves pages and can fail specific ones.
type pagedAPI struct {
	fakeAPI
	failPage    int
	failErr     error
	failEnabled bool
}

func (p *pagedAPI) FetchPage(ctx context.Context, page int) (*models.ChartPage, error) {
	if p.failEnabled && page == p.failPage {
		p.fetches = append(p.fetches, page)
		return nil, p.failErr
	}
	return p.fakeAPI.FetchPage(ctx, page)
}

func threePages() map[int]*models.ChartPage {
	return map[int]*models.ChartPage{
		0: pageOf(0, 3, "a1", "a2"),
		1: pageOf(1, 3, "b1"),
		2: pageOf(2, 3, "c1", "c2", "c3"),
	}
}

func TestDump(t *testing.T) {
	t.Run("Walks All Pages", func(t *testing.T) {
		api := &fakeAPI{pages: threePages()}
		c := NewController(openGate(), api, nil)
		dir := t.TempDir()

		result, err := c.Dump(context.Background(), nil, DumpOpts{
			Format:    "json",
			OutputDir: dir,
			RateLimit: 1000,
		})
		if err != nil {
			t.Fatalf("dump failed: %v", err)
		}

		if result.TotalPages != 3 || result.TotalCharts != 6 {
			t.Errorf("unexpected totals: %+v", result)
		}
		if len(api.fetches) != 3 {
			t.Errorf("expected 3 page fetches, got %v", api.fetches)
		}

		tu.AssertDirExists(t, result.OutputDirectory)
		tu.AssertFileExists(t, result.CatalogFile)
		tu.AssertFileExists(t, result.ManifestFile)

		var charts []models.Chart
		if err := json.Unmarshal([]byte(tu.MustReadFile(t, result.CatalogFile)), &charts); err != nil {
			t.Fatalf("catalog is not valid JSON: %v", err)
		}
		if len(charts) != 6 {
			t.Errorf("expected 6 charts in catalog, got %d", len(charts))
		}
	})

	t.Run("CSV Catalog", func(t *testing.T) {
		api := &fakeAPI{pages: threePages()}
		c := NewController(openGate(), api, nil)
		dir := t.TempDir()

		result, err := c.Dump(context.Background(), nil, DumpOpts{
			Format:    "csv",
			OutputDir: dir,
			RateLimit: 1000,
		})
		if err != nil {
			t.Fatalf("dump failed: %v", err)
		}
		if result.CatalogFile != filepath.Join(dir, "charts.csv") {
			t.Errorf("unexpected catalog path: %s", result.CatalogFile)
		}
		tu.AssertFileExists(t, result.CatalogFile)
	})

	t.Run("Records Page Failures And Continues", func(t *testing.T) {
		api := &pagedAPI{
			fakeAPI:     fakeAPI{pages: threePages()},
			failPage:    1,
			failErr:     errors.New("flaky"),
			failEnabled: true,
		}
		c := NewController(openGate(), api, nil)

		result, err := c.Dump(context.Background(), nil, DumpOpts{
			OutputDir: t.TempDir(),
			RateLimit: 1000,
		})
		if err != nil {
			t.Fatalf("dump should survive a single page failure: %v", err)
		}
		if len(result.Errors) != 1 || result.Errors[0].Page != 1 {
			t.Errorf("unexpected recorded errors: %+v", result.Errors)
		}
		if result.TotalCharts != 5 {
			t.Errorf("expected 5 charts without page 1, got %d", result.TotalCharts)
		}
	})

	t.Run("Expired Session Aborts", func(t *testing.T) {
		gate := openGate()
		api := &pagedAPI{
			fakeAPI:     fakeAPI{pages: threePages()},
			failPage:    1,
			failErr:     fmt.Errorf("%w: status 401", shared.ErrSessionExpired),
			failEnabled: true,
		}
		c := NewController(gate, api, nil)

		_, err := c.Dump(context.Background(), nil, DumpOpts{
			OutputDir: t.TempDir(),
			RateLimit: 1000,
		})
		if !errors.Is(err, shared.ErrSessionExpired) {
			t.Errorf("expected ErrSessionExpired, got %v", err)
		}
		if !gate.Invalidated {
			t.Error("expected gate invalidation on expiry")
		}
		if len(api.fetches) != 2 {
			t.Errorf("expected walk to stop at page 1, got %v", api.fetches)
		}
	})

	t.Run("Requires Session", func(t *testing.T) {
		c := NewController(&tu.StubGate{ReadyVal: true, ValidVal: true}, &fakeAPI{}, nil)
		if _, err := c.Dump(context.Background(), nil, DumpOpts{OutputDir: t.TempDir()}); !errors.Is(err, shared.ErrNoToken) {
			t.Errorf("expected ErrNoToken, got %v", err)
		}
	})

	t.Run("Not Ready Errors Instead Of Skipping", func(t *testing.T) {
		api := &fakeAPI{}
		c := NewController(&tu.StubGate{}, api, nil)

		if _, err := c.Dump(context.Background(), nil, DumpOpts{OutputDir: t.TempDir()}); !errors.Is(err, shared.ErrNotReady) {
			t.Errorf("expected ErrNotReady, got %v", err)
		}
		if len(api.fetches) != 0 {
			t.Error("a refused dump must not fetch any pages")
		}
	})
}
