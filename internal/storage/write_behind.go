package storage

import (
	"context"
	"sync"

	"seatmap/internal/queue"
)

// WriteBehind 將 Set 交給隊列由 worker 非同步寫入；Get 優先回傳尚未落地的最新值
type WriteBehind struct {
	inner KeyValueStore
	queue queue.PersistQueue

	mu      sync.Mutex
	seq     uint64
	pending map[string]pendingWrite
}

type pendingWrite struct {
	seq   uint64
	value string
}

func NewWriteBehind(inner KeyValueStore, q queue.PersistQueue) *WriteBehind {
	return &WriteBehind{
		inner:   inner,
		queue:   q,
		pending: make(map[string]pendingWrite),
	}
}

// Inner 回傳實際落地的 store，供 worker 使用
func (w *WriteBehind) Inner() KeyValueStore {
	return w.inner
}

func (w *WriteBehind) Get(ctx context.Context, key string) (string, error) {
	w.mu.Lock()
	p, ok := w.pending[key]
	w.mu.Unlock()
	if ok {
		return p.value, nil
	}
	return w.inner.Get(ctx, key)
}

func (w *WriteBehind) Set(ctx context.Context, key string, value string) error {
	w.mu.Lock()
	w.seq++
	seq := w.seq
	w.pending[key] = pendingWrite{seq: seq, value: value}
	w.mu.Unlock()

	err := w.queue.PublishWrite(ctx, &queue.Write{
		Key:       key,
		Value:     value,
		OnSettled: func() { w.settle(key, seq) },
	})
	if err != nil {
		w.settle(key, seq)
		return err
	}
	return nil
}

// Pending 尚未落地的 key 數量
func (w *WriteBehind) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

func (w *WriteBehind) settle(key string, seq uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.pending[key]; ok && p.seq == seq {
		delete(w.pending, key)
	}
}
