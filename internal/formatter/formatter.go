// package formatter provides functions to render chart catalog data to
// various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"chartctl/internal/models"
	"chartctl/internal/shared"
)

// ExportToCSV converts charts to CSV format with columns: ID, Title, Artists, Charter, Rating, Status, Tags, Likes
func ExportToCSV(charts []models.Chart) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artists", "Charter", "Rating", "Status", "Tags", "Likes"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, chart := range charts {
		record := []string{
			chart.ID,
			chart.Title,
			chart.Artists,
			chart.Author,
			strconv.Itoa(chart.Rating),
			string(chart.Status),
			strings.Join(chart.Tags, ";"),
			strconv.Itoa(chart.LikeCount),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts charts to a Markdown listing
func ExportToMarkdown(charts []models.Chart) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Chart Catalog\n\n")
	buf.WriteString(fmt.Sprintf("**Charts**: %d\n\n", len(charts)))

	for i, chart := range charts {
		buf.WriteString(fmt.Sprintf("%d. **%s** - %s [%d] (%s)\n", i+1, chart.Title, chart.Artists, chart.Rating, chart.Status))
		if chart.Description != "" {
			buf.WriteString(fmt.Sprintf("   %s\n", chart.Description))
		}
		if len(chart.Tags) > 0 {
			buf.WriteString(fmt.Sprintf("   Tags: %s\n", strings.Join(chart.Tags, ", ")))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts charts to plain text format
func ExportToText(charts []models.Chart) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Charts: %d\n\n", len(charts)))
	for i, chart := range charts {
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%d] %s\n", i+1, chart.Title, chart.Artists, chart.Rating, chart.Status))
	}

	return buf.Bytes(), nil
}

// FormatPageTable renders one catalog page as an aligned table with a footer
// carrying the page position and total count.
func FormatPageTable(page *models.ChartPage) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "TITLE\tARTISTS\tRATING\tSTATUS\tLIKES\tUPDATED")
	for _, chart := range page.Charts {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%s\n",
			chart.Title,
			chart.Artists,
			chart.Rating,
			chart.Status,
			chart.LikeCount,
			formatTimestamp(chart.UpdatedAt),
		)
	}
	w.Flush()

	fmt.Fprintf(&buf, "\nPage %d of %d (%d charts total)\n", page.Page+1, page.PageCount, page.TotalCount)
	return buf.String()
}

func formatTimestamp(unix int64) string {
	if unix == 0 {
		return "-"
	}
	return time.Unix(unix, 0).UTC().Format("2006-01-02")
}

// CatalogExt maps an export format to its file extension, defaulting to JSON.
func CatalogExt(format string) string {
	switch format {
	case "csv":
		return ".csv"
	case "markdown":
		return ".md"
	case "txt":
		return ".txt"
	default:
		return ".json"
	}
}

// WriteCatalog writes charts to path in the given format. Unknown formats
// fall back to pretty-printed JSON.
func WriteCatalog(charts []models.Chart, format, path string) error {
	var data []byte
	var err error

	switch format {
	case "csv":
		data, err = ExportToCSV(charts)
	case "markdown":
		data, err = ExportToMarkdown(charts)
	case "txt":
		data, err = ExportToText(charts)
	case "json":
		fallthrough
	default:
		data, err = shared.MarshalJSON(charts, true)
	}
	if err != nil {
		return fmt.Errorf("failed to generate %s export: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// WriteJSON writes v to path as pretty-printed JSON.
func WriteJSON(v any, path string) error {
	data, err := shared.MarshalJSON(v, true)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return nil
}
