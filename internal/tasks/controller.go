package tasks

import (
	"context"
	"fmt"
	"strings"

	"chartctl/internal/models"
	"chartctl/internal/shared"
	"chartctl/internal/submit"
)

// Refresh fetches the controller's current page and replaces the held page
// wholesale. The previous page stays visible if the fetch fails.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.fetch(ctx, c.currentPage)
}

// SetPage moves to the given 0-based page and fetches it. Out-of-range pages
// are rejected before any network call when a page count is known.
func (c *Controller) SetPage(ctx context.Context, page int) error {
	if page < 0 {
		return fmt.Errorf("%w: page %d", shared.ErrInvalidArgument, page)
	}
	if c.page != nil && c.page.PageCount > 0 && page >= c.page.PageCount {
		return fmt.Errorf("%w: page %d of %d", shared.ErrInvalidArgument, page, c.page.PageCount)
	}
	return c.fetch(ctx, page)
}

// NextPage advances one page when one exists.
func (c *Controller) NextPage(ctx context.Context) error {
	if c.page == nil || c.currentPage+1 >= c.page.PageCount {
		return nil
	}
	return c.fetch(ctx, c.currentPage+1)
}

// PrevPage steps back one page when possible.
func (c *Controller) PrevPage(ctx context.Context) error {
	if c.currentPage == 0 {
		return nil
	}
	return c.fetch(ctx, c.currentPage-1)
}

func (c *Controller) fetch(ctx context.Context, page int) error {
	c.loading = true
	defer func() { c.loading = false }()

	ok, err := c.guard()
	if !ok {
		return err
	}

	fetched, err := c.api.FetchPage(ctx, page)
	if err != nil {
		return c.classify(err)
	}

	c.page = fetched
	c.currentPage = page

	if c.cache != nil {
		c.cache.SavePage(fetched)
	}
	return nil
}

// StartCreate resets the pending submission into create mode.
func (c *Controller) StartCreate() {
	c.pending.Reset()
	c.pending.Mode = models.ModeCreate
}

// StartEdit seeds the pending submission from an existing chart. Text fields
// prefill from the chart's current values; files start empty so unchanged
// assets are never resubmitted.
func (c *Controller) StartEdit(chart models.Chart) {
	c.pending.Reset()
	c.pending.Mode = models.ModeUpdate
	c.pending.Title = chart.Title
	c.pending.Artists = chart.Artists
	c.pending.Author = chart.AuthorField
	c.pending.Rating = fmt.Sprintf("%d", chart.Rating)
	c.pending.Description = chart.Description
	c.pending.Tags = strings.Join(chart.Tags, ", ")
	c.pending.Target = &models.EditTarget{
		ID:            chart.ID,
		Title:         chart.Title,
		JacketURL:     chart.CoverURL,
		BGMURL:        chart.BGMURL,
		ChartURL:      chart.ChartURL,
		PreviewURL:    chart.PreviewURL,
		BackgroundURL: chart.BackgroundURL,
	}
}

// CancelSubmission discards the pending submission without sending anything.
func (c *Controller) CancelSubmission() {
	c.pending.Reset()
}

// Submit validates the pending submission, builds its multi-part payload and
// sends it as a create or update. On success the pending state resets and the
// page the user was on when the mutation started is refetched; on any failure
// the entered state is preserved for correction.
func (c *Controller) Submit(ctx context.Context) error {
	c.loading = true
	defer func() { c.loading = false }()

	ok, err := c.guard()
	if !ok {
		return err
	}

	tags, err := submit.Validate(c.pending)
	if err != nil {
		return err
	}

	payload, err := submit.Build(c.pending, tags)
	if err != nil {
		return err
	}

	pageAtStart := c.currentPage

	switch c.pending.Mode {
	case models.ModeCreate:
		err = c.api.Upload(ctx, payload.ContentType, payload.Body)
	case models.ModeUpdate:
		if c.pending.Target == nil {
			return fmt.Errorf("%w: no edit target", shared.ErrInvalidArgument)
		}
		err = c.api.Edit(ctx, c.pending.Target.ID, payload.ContentType, payload.Body)
	default:
		return fmt.Errorf("%w: submission has no mode", shared.ErrInvalidArgument)
	}
	if err != nil {
		return c.classify(err)
	}

	c.pending.Reset()
	return c.refetchAfterMutation(ctx, pageAtStart)
}

// RequestDelete stages a chart for deletion. Nothing is sent until
// ConfirmDelete.
func (c *Controller) RequestDelete(chart models.Chart) {
	staged := chart
	c.deleteStage = &staged
}

// CancelDelete clears the staged delete without any network call.
func (c *Controller) CancelDelete() {
	c.deleteStage = nil
}

// ConfirmDelete sends the staged deletion and refetches the current page on
// success. The stage clears whether or not the call succeeds; a failed delete
// must be re-requested deliberately.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	if c.deleteStage == nil {
		return fmt.Errorf("%w: no delete staged", shared.ErrInvalidArgument)
	}

	c.loading = true
	defer func() { c.loading = false }()

	ok, err := c.guard()
	if !ok {
		c.deleteStage = nil
		return err
	}

	target := c.deleteStage.ID
	c.deleteStage = nil
	pageAtStart := c.currentPage

	if err := c.api.Delete(ctx, target); err != nil {
		return c.classify(err)
	}
	return c.refetchAfterMutation(ctx, pageAtStart)
}

// ChangeVisibility moves a chart to the given state and refetches the current
// page so the listing reflects the server's view.
func (c *Controller) ChangeVisibility(ctx context.Context, chartID string, status models.Status) error {
	c.loading = true
	defer func() { c.loading = false }()

	ok, err := c.guard()
	if !ok {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", shared.ErrInvalidArgument, status)
	}

	pageAtStart := c.currentPage

	if err := c.api.SetVisibility(ctx, chartID, status); err != nil {
		return c.classify(err)
	}
	return c.refetchAfterMutation(ctx, pageAtStart)
}

// CycleVisibility advances a chart along the PRIVATE → PUBLIC → UNLISTED
// cycle.
func (c *Controller) CycleVisibility(ctx context.Context, chart models.Chart) error {
	return c.ChangeVisibility(ctx, chart.ID, chart.Status.Next())
}

// refetchAfterMutation reloads the page that was current when the mutation
// began. Cached pages are dropped first since a mutation may shift items
// between pages.
func (c *Controller) refetchAfterMutation(ctx context.Context, page int) error {
	if c.cache != nil {
		c.cache.Clear()
	}

	fetched, err := c.api.FetchPage(ctx, page)
	if err != nil {
		return c.classify(err)
	}

	c.page = fetched
	c.currentPage = page
	if c.cache != nil {
		c.cache.SavePage(fetched)
	}
	return nil
}
