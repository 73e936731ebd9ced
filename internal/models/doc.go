// Package models defines the canonical data model for the chart catalog:
// normalized charts, catalog pages, and pending submissions.
package models
