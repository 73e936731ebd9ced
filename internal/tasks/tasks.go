// package tasks implements the controller that mediates every catalog
// operation between the UI/CLI layers and the chart server.
//
// The core abstraction is Controller, which owns the synchronized page state
// and the pending submission, and funnels all mutations through the session
// gate and the validation/payload pipeline. Long-running operations emit
// progress updates via channels for non-blocking status reporting.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chartctl/internal/models"
	"chartctl/internal/session"
	"chartctl/internal/shared"
)

// ChartAPI defines the remote calls the controller depends on. This
// abstraction allows for easier testing and decoupling from the concrete
// service implementation.
type ChartAPI interface {
	FetchPage(ctx context.Context, page int) (*models.ChartPage, error)
	Upload(ctx context.Context, contentType string, body []byte) error
	Edit(ctx context.Context, chartID, contentType string, body []byte) error
	Delete(ctx context.Context, chartID string) error
	SetVisibility(ctx context.Context, chartID string, status models.Status) error
}

// PageCache persists fetched pages locally. Writes are best-effort: a cache
// failure never fails the operation that triggered it.
type PageCache interface {
	SavePage(page *models.ChartPage) error
	GetPage(page int) (*models.ChartPage, time.Time, error)
	Clear() error
}

// Controller owns the client-side view of the user's catalog: the current
// page, the pending submission, and the staged delete target.
//
// A Controller is single-owner state. All methods must be called from one
// goroutine (the UI event loop or a CLI action); it performs no internal
// locking. Loading is advisory display state, not a mutex.
type Controller struct {
	gate  session.Gate
	api   ChartAPI
	cache PageCache

	page        *models.ChartPage
	currentPage int
	pending     *models.Submission
	deleteStage *models.Chart
	loading     bool
}

// NewController creates a controller. cache may be nil to disable local page
// caching.
func NewController(gate session.Gate, api ChartAPI, cache PageCache) *Controller {
	return &Controller{
		gate:    gate,
		api:     api,
		cache:   cache,
		pending: &models.Submission{},
	}
}

// Page returns the last successfully fetched page, or nil before the first
// fetch.
func (c *Controller) Page() *models.ChartPage { return c.page }

// CurrentPage returns the 0-based page index operations act on.
func (c *Controller) CurrentPage() int { return c.currentPage }

// Loading reports whether a network operation is in flight.
func (c *Controller) Loading() bool { return c.loading }

// Pending returns the in-progress submission for field entry and file
// staging.
func (c *Controller) Pending() *models.Submission { return c.pending }

// DeleteTarget returns the chart staged for deletion, or nil when no delete
// confirmation is outstanding.
func (c *Controller) DeleteTarget() *models.Chart { return c.deleteStage }

// guard applies the session gate that fronts every network operation.
//
// Not ready: skip silently. Ready but invalid: invalidate and skip silently,
// since an expired session is an expected state, not a failure. Ready and
// valid with no token: a real inconsistency the user must see.
func (c *Controller) guard() (bool, error) {
	if !c.gate.Ready() {
		return false, nil
	}
	if !c.gate.Valid() {
		c.gate.Invalidate()
		return false, nil
	}
	if c.gate.Token() == "" {
		return false, fmt.Errorf("%w: please sign in again", shared.ErrNoToken)
	}
	return true, nil
}

// classify folds a remote error into the controller's surface: an expired
// session invalidates the gate and reports nothing, everything else
// propagates.
func (c *Controller) classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, shared.ErrSessionExpired) {
		c.gate.Invalidate()
		return nil
	}
	return err
}
