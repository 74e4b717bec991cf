package selection

import (
	"context"
	"encoding/json"
	"errors"

	"seatmap/internal/model"
	"seatmap/internal/pricing"
	"seatmap/internal/storage"
	apperrors "seatmap/pkg/app_errors"
	"seatmap/pkg/logger"

	"go.uber.org/zap"
)

const (
	// Capacity 最多可選座位數
	Capacity = 8
	// StorageKey 持久化使用的固定 key
	StorageKey = "selectedSeats"
)

// ToggleResult 僅供觀測使用，UI 對所有結果一律靜默處理
type ToggleResult string

const (
	ToggleAdded      ToggleResult = "added"
	ToggleRemoved    ToggleResult = "removed"
	ToggleIneligible ToggleResult = "ineligible"
	ToggleFull       ToggleResult = "full"
)

// Store 選取集合：唯一擁有選位狀態，也是唯一寫入持久化的元件
// 不是 goroutine-safe，呼叫端需序列化（session 鎖）
type Store struct {
	seats   []model.Seat
	index   map[string]int
	storage storage.KeyValueStore
	prices  pricing.Table
	key     string
	log     *zap.Logger

	onPersistError func(error)
}

type Option func(*Store)

// WithKey 覆寫持久化 key
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithPersistErrorHandler 寫入失敗時通知（仍然只記錄不回傳）
func WithPersistErrorHandler(fn func(error)) Option {
	return func(s *Store) { s.onPersistError = fn }
}

// Load 建立 Store：讀取持久化資料、過濾不可選座位，並立即寫回
func Load(ctx context.Context, kv storage.KeyValueStore, prices pricing.Table, opts ...Option) *Store {
	s := &Store{
		index:   make(map[string]int),
		storage: kv,
		prices:  prices,
		key:     StorageKey,
		log:     logger.WithComponent("selection"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.replace(s.restore(ctx))
	s.persist(ctx)
	return s
}

func (s *Store) restore(ctx context.Context) []model.Seat {
	raw, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrKeyNotFound) {
			s.log.Warn("read persisted selection failed", zap.String("key", s.key), zap.Error(err))
		}
		return nil
	}

	var persisted []model.Seat
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		s.log.Warn("failed to parse saved seats", zap.String("key", s.key), zap.Error(err))
		return nil
	}

	kept := Reconcile(persisted)
	if dropped := len(persisted) - len(kept); dropped > 0 {
		s.log.Info("dropped stale seats from persisted selection", zap.Int("dropped", dropped))
	}
	if len(kept) > Capacity {
		kept = kept[:Capacity]
	}
	return kept
}

// Toggle 切換座位：不可選座位不動；已選則移除；未滿則加入；已滿靜默拒絕
func (s *Store) Toggle(ctx context.Context, seat model.Seat) ToggleResult {
	if !IsEligible(seat) {
		return ToggleIneligible
	}

	if i, ok := s.index[seat.ID]; ok {
		next := make([]model.Seat, 0, len(s.seats)-1)
		next = append(next, s.seats[:i]...)
		next = append(next, s.seats[i+1:]...)
		s.replace(next)
		s.persist(ctx)
		return ToggleRemoved
	}

	if len(s.seats) >= Capacity {
		return ToggleFull
	}

	s.replace(append(s.Seats(), seat))
	s.persist(ctx)
	return ToggleAdded
}

// Clear 無條件清空
func (s *Store) Clear(ctx context.Context) {
	s.replace(nil)
	s.persist(ctx)
}

// Subtotal 所選座位依票價表加總，未知等級以 0 計
func (s *Store) Subtotal() float64 {
	return s.prices.Sum(s.seats)
}

func (s *Store) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store) Len() int {
	return len(s.seats)
}

// Seats 回傳依加入順序排列的複本
func (s *Store) Seats() []model.Seat {
	out := make([]model.Seat, len(s.seats))
	copy(out, s.seats)
	return out
}

func (s *Store) replace(seats []model.Seat) {
	s.seats = seats
	s.index = make(map[string]int, len(seats))
	for i, seat := range seats {
		s.index[seat.ID] = i
	}
}

func (s *Store) persist(ctx context.Context) {
	seats := s.seats
	if seats == nil {
		seats = []model.Seat{}
	}
	data, err := json.Marshal(seats)
	if err == nil {
		err = s.storage.Set(ctx, s.key, string(data))
	}
	if err != nil {
		s.log.Warn("persist selection failed", zap.String("key", s.key), zap.Error(err))
		if s.onPersistError != nil {
			s.onPersistError(err)
		}
	}
}
