// Package services implements the HTTP client for the chart server API:
// paginated catalog retrieval, multi-part create/update submissions, delete
// and visibility mutations, and normalization of raw records into the
// canonical model.
package services
