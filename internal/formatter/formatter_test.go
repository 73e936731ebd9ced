package formatter

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"chartctl/internal/models"
	th "chartctl/internal/testing"
)

func sampleCharts() []models.Chart {
	return []models.Chart{
		{
			ID:        "chart1",
			Title:     "Song One",
			Artists:   "Artist One",
			Author:    "Charter#1234",
			Rating:    27,
			Tags:      []string{"boss", "fun"},
			LikeCount: 3,
			UpdatedAt: 1700000000,
			Status:    models.StatusPublic,
		},
		{
			ID:          "chart2",
			Title:       "Song Two",
			Artists:     "Artist Two",
			Author:      "Other#9",
			Rating:      12,
			Description: "a short note",
			Status:      models.StatusPrivate,
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleCharts())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Title,Artists,Charter,Rating,Status,Tags,Likes") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "chart1") {
			t.Errorf("CSV missing chart1 ID")
		}
		if !strings.Contains(output, "Song One") {
			t.Errorf("CSV missing chart1 title")
		}
		if !strings.Contains(output, "boss;fun") {
			t.Errorf("CSV missing joined tags")
		}
		if !strings.Contains(output, "PUBLIC") {
			t.Errorf("CSV missing status")
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleCharts())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# Chart Catalog") {
			t.Errorf("Markdown missing title")
		}
		if !strings.Contains(output, "**Charts**: 2") {
			t.Errorf("Markdown missing chart count")
		}
		if !strings.Contains(output, "1. **Song One** - Artist One [27] (PUBLIC)") {
			t.Errorf("Markdown missing first entry, got: %s", output)
		}
		if !strings.Contains(output, "Tags: boss, fun") {
			t.Errorf("Markdown missing tags line")
		}
		if !strings.Contains(output, "a short note") {
			t.Errorf("Markdown missing description")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleCharts())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Charts: 2") {
			t.Errorf("text missing chart count")
		}
		if !strings.Contains(output, "1. Song One - Artist One [27] PUBLIC") {
			t.Errorf("text missing first entry, got: %s", output)
		}
	})
}

func TestFormatPageTable(t *testing.T) {
	page := &models.ChartPage{
		Charts:     sampleCharts(),
		Page:       1,
		PageCount:  4,
		TotalCount: 37,
	}

	output := FormatPageTable(page)

	if !strings.Contains(output, "TITLE") || !strings.Contains(output, "STATUS") {
		t.Errorf("table missing header, got: %s", output)
	}
	if !strings.Contains(output, "Song One") || !strings.Contains(output, "Song Two") {
		t.Errorf("table missing rows, got: %s", output)
	}
	if !strings.Contains(output, "Page 2 of 4 (37 charts total)") {
		t.Errorf("table missing footer, got: %s", output)
	}
	if !strings.Contains(output, "2023-11-14") {
		t.Errorf("table missing formatted timestamp, got: %s", output)
	}
}

func TestWriteCatalog(t *testing.T) {
	t.Run("JSON Round Trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "charts.json")
		if err := WriteCatalog(sampleCharts(), "json", path); err != nil {
			t.Fatalf("WriteCatalog failed: %v", err)
		}
		th.AssertFileExists(t, path)

		var charts []models.Chart
		if err := json.Unmarshal([]byte(th.MustReadFile(t, path)), &charts); err != nil {
			t.Fatalf("catalog is not valid JSON: %v", err)
		}
		if len(charts) != 2 || charts[0].Title != "Song One" {
			t.Errorf("unexpected round trip: %+v", charts)
		}
	})

	t.Run("Unknown Format Falls Back To JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "charts.out")
		if err := WriteCatalog(sampleCharts(), "xml", path); err != nil {
			t.Fatalf("WriteCatalog failed: %v", err)
		}
		if !strings.HasPrefix(strings.TrimSpace(th.MustReadFile(t, path)), "[") {
			t.Error("fallback output should be a JSON array")
		}
	})
}

func TestCatalogExt(t *testing.T) {
	cases := map[string]string{
		"csv":      ".csv",
		"markdown": ".md",
		"txt":      ".txt",
		"json":     ".json",
		"":         ".json",
	}
	for format, want := range cases {
		if got := CatalogExt(format); got != want {
			t.Errorf("CatalogExt(%q) = %q, want %q", format, got, want)
		}
	}
}
