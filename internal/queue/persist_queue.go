package queue

import (
	"context"
)

// Write 一筆待寫入的選位快照
type Write struct {
	Key   string
	Value string

	// OnSettled 在 Ack 或不重排的 Nack 之後呼叫
	OnSettled func()
}

func (w *Write) settle() {
	if w.OnSettled != nil {
		w.OnSettled()
	}
}

type Delivery struct {
	Data *Write
	Ack  func()
	Nack func(requeue bool)
}

type PersistQueue interface {
	// 發送寫入到隊列
	PublishWrite(ctx context.Context, write *Write) error
	// 訂閱寫入隊列
	SubscribeWrites(ctx context.Context) (<-chan Delivery, error)
}

type PersistQueueImpl struct {
	// 使用 Go channel 作為行程內隊列，FIFO 保證同一 key 的寫入順序
	ch chan *Write
}

func NewPersistQueue(bufferSize int) PersistQueue {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &PersistQueueImpl{
		ch: make(chan *Write, bufferSize),
	}
}

func (q *PersistQueueImpl) PublishWrite(ctx context.Context, write *Write) error {
	select {
	case q.ch <- write:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *PersistQueueImpl) SubscribeWrites(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case write, ok := <-q.ch:
				if !ok {
					return
				}

				d := Delivery{
					Data: write,
					Ack:  write.settle,
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- write
							return
						}
						write.settle()
					},
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
