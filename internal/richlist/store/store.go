// Package store defines the sorted key-value index the pipeline persists into.
package store

import (
	"context"
	"errors"
)

// Order of List results by sort key.
type Order int

const (
	Ascending Order = iota
	Descending
)

// ErrInvalidRecord is returned by Put for records without an id.
var ErrInvalidRecord = errors.New("record id is required")

// Record is one entry of an index. ID is unique within the index; Put with an existing ID
// replaces the record, partition included.
type Record struct {
	ID        string
	Partition string
	Sort      int64
	Data      string
}

// ListQuery selects records of one partition. Limit 0 means unbounded; GT and LT are
// exclusive bounds on the sort key.
type ListQuery struct {
	Partition string
	Limit     int
	Order     Order
	GT        *int64
	LT        *int64
}

// SingleIndex is a named collection of records ordered by sort key within a partition.
type SingleIndex interface {
	Put(ctx context.Context, records ...Record) error
	List(ctx context.Context, query ListQuery) ([]Record, error)
	Delete(ctx context.Context, ids ...string) error
}

// Int64 returns a pointer to v for ListQuery bounds.
func Int64(v int64) *int64 {
	return &v
}

func (q ListQuery) matches(r Record) bool {
	if r.Partition != q.Partition {
		return false
	}
	if q.GT != nil && r.Sort <= *q.GT {
		return false
	}
	if q.LT != nil && r.Sort >= *q.LT {
		return false
	}
	return true
}
