package queue

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// runBackendContract exercises the behaviour every Backend must share. newBackend must return a
// backend with no queues.
func runBackendContract(t *testing.T, newBackend func(t *testing.T) Backend) {
	ctx := context.Background()

	tests := []struct {
		name string
		run  func(t *testing.T, b Backend)
	}{
		{
			name: "duplicate push is delivered once",
			run: func(t *testing.T, b Backend) {
				q, err := b.CreateQueueIfNotExist(ctx, "dedup", ModeLIFO)
				require.NoError(t, err)

				require.NoError(t, q.Push(ctx, "X"))
				require.NoError(t, q.Push(ctx, "X"))

				got, err := q.Receive(ctx, 10)
				require.NoError(t, err)
				require.Equal(t, []string{"X"}, got)

				got, err = q.Receive(ctx, 10)
				require.NoError(t, err)
				require.Empty(t, got)
			},
		},
		{
			name: "lifo returns newest first and re-push moves to front",
			run: func(t *testing.T, b Backend) {
				q, err := b.CreateQueueIfNotExist(ctx, "lifo", ModeLIFO)
				require.NoError(t, err)

				require.NoError(t, q.Push(ctx, "a", "b", "c"))
				require.NoError(t, q.Push(ctx, "a"))

				got, err := q.Receive(ctx, 2)
				require.NoError(t, err)
				require.Equal(t, []string{"a", "c"}, got)

				got, err = q.Receive(ctx, 2)
				require.NoError(t, err)
				require.Equal(t, []string{"b"}, got)
			},
		},
		{
			name: "fifo returns oldest first",
			run: func(t *testing.T, b Backend) {
				q, err := b.CreateQueueIfNotExist(ctx, "fifo", ModeFIFO)
				require.NoError(t, err)

				require.NoError(t, q.Push(ctx, "a", "b", "c"))

				got, err := q.Receive(ctx, 2)
				require.NoError(t, err)
				require.Equal(t, []string{"a", "b"}, got)
			},
		},
		{
			name: "reopening keeps items and rejects another mode",
			run: func(t *testing.T, b Backend) {
				q, err := b.CreateQueueIfNotExist(ctx, "reopen", "")
				require.NoError(t, err)
				require.NoError(t, q.Push(ctx, "a", "b"))

				again, err := b.CreateQueueIfNotExist(ctx, "reopen", ModeLIFO)
				require.NoError(t, err)
				n, err := again.Len(ctx)
				require.NoError(t, err)
				require.Equal(t, int64(2), n)

				_, err = b.CreateQueueIfNotExist(ctx, "reopen", ModeFIFO)
				require.ErrorIs(t, err, ErrModeMismatch)
			},
		},
		{
			name: "receive drains in batches",
			run: func(t *testing.T, b Backend) {
				q, err := b.CreateQueueIfNotExist(ctx, "drain", ModeLIFO)
				require.NoError(t, err)

				items := make([]string, 25)
				for i := range items {
					items[i] = fmt.Sprintf("addr-%02d", i)
				}
				require.NoError(t, q.Push(ctx, items...))

				seen := map[string]struct{}{}
				for {
					got, err := q.Receive(ctx, 10)
					require.NoError(t, err)
					if len(got) == 0 {
						break
					}
					require.LessOrEqual(t, len(got), 10)
					for _, item := range got {
						seen[item] = struct{}{}
					}
				}
				require.Len(t, seen, len(items))
			},
		},
		{
			name: "non positive max claims nothing",
			run: func(t *testing.T, b Backend) {
				q, err := b.CreateQueueIfNotExist(ctx, "zero", ModeLIFO)
				require.NoError(t, err)
				require.NoError(t, q.Push(ctx, "a"))

				got, err := q.Receive(ctx, 0)
				require.NoError(t, err)
				require.Empty(t, got)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.run(t, newBackend(t))
		})
	}
}
