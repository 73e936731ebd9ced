// Package ui implements the interactive catalog browser using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow over the user's chart catalog:
//  1. [ChartListView] : Browse pages, cycle visibility, preview audio
//  2. [ConfirmDeleteView] : Confirm a staged deletion
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern
// and wraps a [tasks.Controller]. Every controller call happens inside
// Update, keeping the controller on a single goroutine.
//
// Keyboard navigation uses vim-style bindings (h/l, r, v, p, d, y/n, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
