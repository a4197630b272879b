// Package model defines the data types shared across the exploration
// pipeline: fetched pages, scored link candidates, and the exploration
// result returned to callers.
package model
