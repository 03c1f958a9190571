package clickhouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/store"
)

// SingleIndex is one named index inside the single_index table.
type SingleIndex struct {
	store *Store
	name  string
}

const insertQuery = `
INSERT INTO single_index (
	store,
	id,
	partition,
	sort,
	data,
	version,
	is_deleted
) VALUES`

// Put writes records in one batch. A later record with the same id in the batch wins.
func (i *SingleIndex) Put(ctx context.Context, records ...store.Record) error {
	start := time.Now()
	var err error
	defer func() {
		i.store.metrics.Observe("put", i.name, err, start)
	}()

	if len(records) == 0 {
		return nil
	}
	latest := make(map[string]int, len(records))
	for n, r := range records {
		if r.ID == "" {
			err = store.ErrInvalidRecord
			return err
		}
		latest[r.ID] = n
	}

	batch, err := i.store.conn.PrepareBatch(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("prepare %s batch: %w", i.name, err)
	}

	version := i.store.version()
	for n, r := range records {
		if latest[r.ID] != n {
			continue
		}
		if err = batch.Append(i.name, r.ID, r.Partition, r.Sort, r.Data, version, uint8(0)); err != nil {
			return fmt.Errorf("append %s record: %w", i.name, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert %s records: %w", i.name, err)
	}
	return nil
}

// List reads the merged view of the index, so only the latest live version of a record is seen.
func (i *SingleIndex) List(ctx context.Context, query store.ListQuery) ([]store.Record, error) {
	start := time.Now()
	var err error
	defer func() {
		i.store.metrics.Observe("list", i.name, err, start)
	}()

	sql, args := listQuery(i.name, query)
	rows, err := i.store.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", i.name, err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	records := make([]store.Record, 0)
	for rows.Next() {
		var r store.Record
		if err = rows.Scan(&r.ID, &r.Partition, &r.Sort, &r.Data); err != nil {
			return nil, fmt.Errorf("scan %s record: %w", i.name, err)
		}
		records = append(records, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s records: %w", i.name, err)
	}
	return records, nil
}

// Delete writes tombstones for ids.
func (i *SingleIndex) Delete(ctx context.Context, ids ...string) error {
	start := time.Now()
	var err error
	defer func() {
		i.store.metrics.Observe("delete", i.name, err, start)
	}()

	if len(ids) == 0 {
		return nil
	}

	batch, err := i.store.conn.PrepareBatch(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("prepare %s tombstones: %w", i.name, err)
	}

	version := i.store.version()
	for _, id := range ids {
		if err = batch.Append(i.name, id, "", int64(0), "", version, uint8(1)); err != nil {
			return fmt.Errorf("append %s tombstone: %w", i.name, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("delete %s records: %w", i.name, err)
	}
	return nil
}

func listQuery(index string, q store.ListQuery) (string, []any) {
	var b strings.Builder
	b.WriteString(`
SELECT
	id,
	partition,
	sort,
	data
FROM single_index FINAL
WHERE store = ? AND partition = ? AND is_deleted = 0`)
	args := []any{index, q.Partition}

	if q.GT != nil {
		b.WriteString(" AND sort > ?")
		args = append(args, *q.GT)
	}
	if q.LT != nil {
		b.WriteString(" AND sort < ?")
		args = append(args, *q.LT)
	}

	if q.Order == store.Descending {
		b.WriteString("\nORDER BY sort DESC, id DESC")
	} else {
		b.WriteString("\nORDER BY sort ASC, id ASC")
	}
	if q.Limit > 0 {
		fmt.Fprintf(&b, "\nLIMIT %d", q.Limit)
	}
	return b.String(), args
}
