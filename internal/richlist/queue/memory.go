package queue

import (
	"container/list"
	"context"
	"fmt"
	"sync"
)

// MemoryBackend keeps queues in process memory.
type MemoryBackend struct {
	mu     sync.Mutex
	queues map[string]*memoryQueue
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{queues: make(map[string]*memoryQueue)}
}

func (b *MemoryBackend) CreateQueueIfNotExist(_ context.Context, name string, mode Mode) (Queue, error) {
	mode, err := normalizeMode(mode)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if q, ok := b.queues[name]; ok {
		if q.mode != mode {
			return nil, fmt.Errorf("%w: %s is %s", ErrModeMismatch, name, q.mode)
		}
		return q, nil
	}
	q := &memoryQueue{
		mode:  mode,
		items: list.New(),
		index: make(map[string]*list.Element),
	}
	b.queues[name] = q
	return q, nil
}

type memoryQueue struct {
	mu    sync.Mutex
	mode  Mode
	items *list.List
	index map[string]*list.Element
}

func (q *memoryQueue) Push(_ context.Context, items ...string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, item := range items {
		if el, ok := q.index[item]; ok {
			q.items.Remove(el)
		}
		q.index[item] = q.items.PushBack(item)
	}
	return nil
}

func (q *memoryQueue) Receive(_ context.Context, max int) ([]string, error) {
	if max <= 0 {
		return nil, nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]string, 0, min(max, q.items.Len()))
	for len(out) < max && q.items.Len() > 0 {
		el := q.items.Back()
		if q.mode == ModeFIFO {
			el = q.items.Front()
		}
		item := q.items.Remove(el).(string)
		delete(q.index, item)
		out = append(out, item)
	}
	return out, nil
}

func (q *memoryQueue) Len(context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(q.items.Len()), nil
}
