package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"chartctl/internal/formatter"
	"chartctl/internal/models"
	"chartctl/internal/shared"
	"chartctl/internal/tasks"
)

// requireSession gives the user an actionable error before a command that
// needs a live session. The controller's gate remains the backstop.
func (r *Runner) requireSession() error {
	if r.store.Token() == "" {
		return fmt.Errorf("%w: run 'chartctl auth login <token>'", shared.ErrNoToken)
	}
	if !r.store.Valid() {
		return fmt.Errorf("%w: run 'chartctl auth login <token>' again", shared.ErrSessionExpired)
	}
	return nil
}

// ChartsList prints one page of the catalog.
func (r *Runner) ChartsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	pageNum := int(cmd.Int("page"))

	var page *models.ChartPage
	if cmd.Bool("cached") {
		if r.cache == nil {
			return fmt.Errorf("%w: page cache is disabled", shared.ErrInvalidFlag)
		}
		cached, fetchedAt, err := r.cache.GetPage(pageNum)
		if err != nil {
			return fmt.Errorf("no cached copy; drop --cached to fetch: %w", err)
		}
		r.logger.Info("serving cached page", "fetched_at", fetchedAt)
		page = cached
	} else {
		if err := r.requireSession(); err != nil {
			return err
		}
		if err := r.controller.SetPage(ctx, pageNum); err != nil {
			return err
		}
		page = r.controller.Page()
		if page == nil {
			return fmt.Errorf("%w: session was rejected by the server", shared.ErrSessionExpired)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}
	return r.renderPage(page, cmd.String("format"))
}

// renderPage writes one catalog page in the requested format.
func (r *Runner) renderPage(page *models.ChartPage, format string) error {
	switch strings.ToLower(format) {
	case "", "table":
		return r.writePlain("%s", formatter.FormatPageTable(page))
	case "json":
		return r.writeJSON(page, true)
	case "csv":
		out, err := formatter.ExportToCSV(page.Charts)
		if err != nil {
			return err
		}
		return r.writePlain("%s", out)
	case "markdown", "md":
		out, err := formatter.ExportToMarkdown(page.Charts)
		if err != nil {
			return err
		}
		return r.writePlain("%s", out)
	case "txt", "text":
		out, err := formatter.ExportToText(page.Charts)
		if err != nil {
			return err
		}
		return r.writePlain("%s", out)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// ChartsUpload submits a new chart built from flags.
func (r *Runner) ChartsUpload(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}
	if err := r.requireSession(); err != nil {
		return err
	}

	r.controller.StartCreate()
	if err := r.fillSubmission(cmd); err != nil {
		return err
	}

	if err := r.controller.Submit(ctx); err != nil {
		return err
	}

	r.logger.Info("chart uploaded", "title", cmd.String("title"))
	return r.writePlain("✓ Chart uploaded\n")
}

// ChartsEdit updates an existing chart. Only fields and files passed as
// flags change; everything else keeps its server-side value.
func (r *Runner) ChartsEdit(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}
	if err := r.requireSession(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: chart id", shared.ErrMissingArgument)
	}

	chart, err := r.findChart(ctx, id)
	if err != nil {
		return err
	}

	r.controller.StartEdit(chart)
	if err := r.fillSubmission(cmd); err != nil {
		return err
	}

	if err := r.controller.Submit(ctx); err != nil {
		return err
	}

	r.logger.Info("chart updated", "id", id)
	return r.writePlain("✓ Chart '%s' updated\n", chart.Title)
}

// ChartsDelete removes a chart. Requires --yes as the confirmation step.
func (r *Runner) ChartsDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}
	if err := r.requireSession(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: chart id", shared.ErrMissingArgument)
	}

	chart, err := r.findChart(ctx, id)
	if err != nil {
		return err
	}

	r.controller.RequestDelete(chart)
	if !cmd.Bool("yes") {
		r.controller.CancelDelete()
		return r.writePlain("Delete '%s'? Re-run with --yes to confirm. Nothing was deleted.\n", chart.Title)
	}

	if err := r.controller.ConfirmDelete(ctx); err != nil {
		return err
	}

	r.logger.Info("chart deleted", "id", id)
	return r.writePlain("✓ Chart '%s' deleted\n", chart.Title)
}

// ChartsVisibility sets a chart's visibility state.
func (r *Runner) ChartsVisibility(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}
	if err := r.requireSession(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	rawStatus := cmd.StringArg("status")
	if id == "" || rawStatus == "" {
		return fmt.Errorf("%w: chart id and status", shared.ErrMissingArgument)
	}

	status := models.Status(strings.ToUpper(rawStatus))
	if err := r.controller.ChangeVisibility(ctx, id, status); err != nil {
		return err
	}

	r.logger.Info("visibility changed", "id", id, "status", status)
	return r.writePlain("✓ Chart is now %s\n", status)
}

// ChartsDump exports the full catalog to disk.
func (r *Runner) ChartsDump(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}
	if err := r.requireSession(); err != nil {
		return err
	}

	opts := tasks.DumpOpts{
		Format:    cmd.String("format"),
		OutputDir: cmd.String("output"),
		RateLimit: cmd.Float("rate"),
	}
	if opts.OutputDir == "" {
		opts.OutputDir = r.config.Dump.OutputDir
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = r.config.Dump.RateLimit
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
	}()

	result, err := r.controller.Dump(ctx, progress, opts)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	r.writePlain("✓ Dumped %d charts across %d pages\n", result.TotalCharts, result.TotalPages)
	r.writePlain("Catalog: %s\n", result.CatalogFile)
	r.writePlain("Manifest: %s\n", result.ManifestFile)
	if len(result.Errors) > 0 {
		r.writePlain("⚠ %d pages failed; see the manifest for details\n", len(result.Errors))
	}
	return nil
}

// findChart walks the catalog pages until it finds the chart with the given
// ID.
func (r *Runner) findChart(ctx context.Context, id string) (models.Chart, error) {
	for page := 0; ; page++ {
		if err := r.controller.SetPage(ctx, page); err != nil {
			return models.Chart{}, err
		}

		current := r.controller.Page()
		if current == nil {
			return models.Chart{}, fmt.Errorf("%w: session was rejected by the server", shared.ErrSessionExpired)
		}

		for _, chart := range current.Charts {
			if chart.ID == id {
				return chart, nil
			}
		}

		if page+1 >= current.PageCount {
			return models.Chart{}, fmt.Errorf("%w: %s", shared.ErrChartNotFound, id)
		}
	}
}

// fillSubmission applies flag values onto the pending submission. Empty flags
// leave the prefilled values alone.
func (r *Runner) fillSubmission(cmd *cli.Command) error {
	pending := r.controller.Pending()

	if v := cmd.String("title"); v != "" {
		pending.Title = v
	}
	if v := cmd.String("artists"); v != "" {
		pending.Artists = v
	}
	if v := cmd.String("author"); v != "" {
		pending.Author = v
	}
	if v := cmd.String("rating"); v != "" {
		pending.Rating = v
	}
	if v := cmd.String("description"); v != "" {
		pending.Description = v
	}
	if v := cmd.String("tags"); v != "" {
		pending.Tags = v
	}

	files := []struct {
		flag   string
		target **models.FileAttachment
	}{
		{"jacket", &pending.Jacket},
		{"bgm", &pending.BGM},
		{"chart", &pending.Chart},
		{"preview", &pending.Preview},
		{"background", &pending.Background},
	}
	for _, f := range files {
		path := cmd.String(f.flag)
		if path == "" {
			continue
		}
		attachment, err := loadAttachment(path)
		if err != nil {
			return fmt.Errorf("failed to read --%s: %w", f.flag, err)
		}
		*f.target = attachment
	}

	return nil
}

func loadAttachment(path string) (*models.FileAttachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &models.FileAttachment{Name: filepath.Base(path), Data: data}, nil
}
