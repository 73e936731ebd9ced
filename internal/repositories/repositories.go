// Package repositories provides the persistence layer for locally cached
// catalog data. The chart server remains the source of truth; rows here are
// only ever replaced wholesale after a confirmed successful fetch.
package repositories
