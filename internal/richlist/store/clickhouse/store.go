// Package clickhouse implements store.SingleIndex on a ClickHouse ReplacingMergeTree table.
package clickhouse

import (
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/store"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation, index string, err error, started time.Time)
	}
)

// Store holds the connection shared by every index. Each index is a value of the store column.
type Store struct {
	conn    clickhouse.Conn
	metrics Metrics
	now     func() time.Time
}

func NewStore(dsn string, metrics Metrics) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Store{conn: conn, metrics: metrics, now: time.Now}, nil
}

// Index returns the SingleIndex called name.
func (s *Store) Index(name string) *SingleIndex {
	return &SingleIndex{store: s, name: name}
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// version orders writes of the same id; the row with the greatest version wins.
func (s *Store) version() uint64 {
	return uint64(s.now().UnixNano())
}

var _ store.SingleIndex = (*SingleIndex)(nil)
