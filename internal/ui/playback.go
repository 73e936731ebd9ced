package ui

import (
	"fmt"

	"chartctl/internal/shared"
)

// Playback tracks which chart's audio is currently playing. At most one
// handle is active at a time: starting a new one releases the previous, and
// starting the active one again stops it.
type Playback struct {
	active string
	open   func(url string) error
}

// NewPlayback creates a playback registry that opens audio URLs in the
// system browser.
func NewPlayback() *Playback {
	return &Playback{open: shared.OpenBrowser}
}

// Active returns the chart ID currently playing, or "" when idle.
func (p *Playback) Active() string { return p.active }

// Toggle starts playback for the chart, replacing any active handle. Toggling
// the chart that is already active stops it instead.
func (p *Playback) Toggle(chartID, url string) error {
	if chartID == p.active {
		p.Stop()
		return nil
	}
	if url == "" {
		return fmt.Errorf("chart has no audio to play")
	}

	p.Stop()
	if err := p.open(url); err != nil {
		return fmt.Errorf("failed to open audio: %w", err)
	}
	p.active = chartID
	return nil
}

// Stop releases the active handle.
func (p *Playback) Stop() {
	p.active = ""
}
