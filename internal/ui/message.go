package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

var (
	_ tea.Msg = refreshMsg{}
	_ tea.Msg = statusMsg{}
)

// refreshMsg asks the update loop to refetch the current page. Controller
// calls happen exclusively inside Update so its single-owner contract holds.
type refreshMsg struct{}

// statusMsg carries a transient status line shown under the list.
type statusMsg struct {
	text  string
	isErr bool
}
