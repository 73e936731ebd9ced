// Package submit validates pending submissions and assembles the multi-part
// request bodies for chart create and update operations.
package submit
