package worker

import (
	"context"
	"seatmap/internal/queue"
	"seatmap/internal/storage"
	"seatmap/pkg/logger"

	"go.uber.org/zap"
)

type PersistWorker interface {
	// 訂閱寫入隊列
	Start(ctx context.Context) error
}

// FailureObserver 寫入失敗時通知（metrics）
type FailureObserver func(err error)

type PersistWorkerImpl struct {
	store     storage.KeyValueStore
	queue     queue.PersistQueue
	onFailure FailureObserver
}

func NewPersistWorker(store storage.KeyValueStore, queue queue.PersistQueue, onFailure FailureObserver) PersistWorker {
	return &PersistWorkerImpl{
		store:     store,
		queue:     queue,
		onFailure: onFailure,
	}
}

func (w *PersistWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeWrites(ctx)
	if err != nil {
		return err
	}

	log := logger.WithComponent("worker")
	go func() {
		for msg := range msgs {
			// 寫入是盡力而為：失敗只記錄，不重試
			// ctx 被取消後仍要把已取出的這筆寫完
			if err := w.store.Set(context.WithoutCancel(ctx), msg.Data.Key, msg.Data.Value); err != nil {
				log.Warn("persist selection failed", zap.String("key", msg.Data.Key), zap.Error(err))
				if w.onFailure != nil {
					w.onFailure(err)
				}
				msg.Nack(false)
				continue
			}
			msg.Ack()
		}
	}()
	return nil
}
