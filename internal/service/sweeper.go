package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const minSweepInterval = time.Second

// Sweep 移除閒置超過 idleTTL 的 session；使用中的 session 不會被移除
// 被移除的 session 下次存取時會從儲存重新載入
func (s *SeatMapServiceImpl) Sweep(now time.Time) int {
	if s.idleTTL <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if !sess.mu.TryLock() {
			continue
		}
		idle := now.Sub(sess.lastSeen) >= s.idleTTL
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		s.log.Info("Idle sessions evicted", zap.Int("evicted", evicted), zap.Int("remaining", len(s.sessions)))
		s.recorder.SessionsActive(len(s.sessions))
	}
	return evicted
}

// Sessions 目前在記憶體中的 session 數
func (s *SeatMapServiceImpl) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run 定期回收閒置 session，直到 ctx 取消
func (s *SeatMapServiceImpl) Run(ctx context.Context) error {
	if s.idleTTL <= 0 {
		<-ctx.Done()
		return nil
	}

	interval := max(s.idleTTL/2, minSweepInterval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("Session sweeper started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			s.log.Info("Session sweeper stopped")
			return nil
		case <-ticker.C:
			s.Sweep(s.now())
		}
	}
}
