package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"chartctl/internal/models"
)

var _ list.Item = chartItem{}

// chartItem wraps [models.Chart] to implement [list.Item].
type chartItem struct {
	chart models.Chart
}

func (i chartItem) FilterValue() string { return i.chart.Title }
func (i chartItem) Title() string       { return i.chart.Title }
func (i chartItem) Description() string {
	desc := fmt.Sprintf("%s • Lv.%d • %s", i.chart.Artists, i.chart.Rating, i.chart.Status)
	if len(i.chart.Tags) > 0 {
		desc = fmt.Sprintf("%s • %s", desc, strings.Join(i.chart.Tags, ", "))
	}
	return desc
}
