// Package repository defines the ranking table store interface and errors.
package repository

import (
	"context"

	"github.com/unirank/unirank/internal/domain/model"
)

// Stats describes the size of the loaded table.
type Stats struct {
	Records      int `json:"records"`
	Universities int `json:"universities"`
	Years        int `json:"years"`
	Countries    int `json:"countries"`
}

// Store provides read access to the immutable ranking table. The table is
// built once at startup and never mutated, so all methods are safe for
// concurrent use without locking.
type Store interface {
	// Years returns the distinct ranking years in ascending order.
	Years(ctx context.Context) []int

	// Latest returns the most recent year, or false for an empty table.
	Latest(ctx context.Context) (int, bool)

	// HasYear reports whether any record exists for year.
	HasYear(ctx context.Context, year int) bool

	// ForYear returns the records of one year in rank order: ranked
	// entries ascending by rank (dataset order breaking ties), then
	// unranked entries in dataset order. The returned slice must not be
	// modified.
	ForYear(ctx context.Context, year int) []*model.Record

	// Records returns all records in dataset order. The returned slice
	// must not be modified.
	Records(ctx context.Context) []*model.Record

	// Stats returns the table's size counters.
	Stats(ctx context.Context) Stats
}
