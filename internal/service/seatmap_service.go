package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"seatmap/internal/catalog"
	"seatmap/internal/interaction"
	"seatmap/internal/metrics"
	"seatmap/internal/model"
	"seatmap/internal/pricing"
	"seatmap/internal/render"
	"seatmap/internal/selection"
	"seatmap/internal/storage"
	"seatmap/internal/summary"
	"seatmap/internal/viewport"
	apperrors "seatmap/pkg/app_errors"
	"seatmap/pkg/logger"

	"go.uber.org/zap"
)

// ZoomOp 縮放按鈕
type ZoomOp string

const (
	ZoomIn    ZoomOp = "in"
	ZoomOut   ZoomOp = "out"
	ZoomReset ZoomOp = "reset"
)

// GesturePhase 指標事件階段
type GesturePhase string

const (
	GestureBegin GesturePhase = "begin"
	GestureMove  GesturePhase = "move"
	GestureEnd   GesturePhase = "end"
	GestureLeave GesturePhase = "leave"
)

// GestureEvent 一次指標事件；座標為螢幕座標
type GestureEvent struct {
	Phase  GesturePhase    `json:"phase" binding:"required"`
	Target viewport.Target `json:"target"`
	X      float64         `json:"x"`
	Y      float64         `json:"y"`
}

// View 一次完整的畫面
type View struct {
	Scene   render.Scene  `json:"scene"`
	Summary summary.Panel `json:"summary"`
}

// SelectionView 目前的選取集合
type SelectionView struct {
	Seats    []model.Seat `json:"seats"`
	Count    int          `json:"count"`
	Capacity int          `json:"capacity"`
	Subtotal float64      `json:"subtotal"`
}

type SeatMapService interface {
	Venue() *model.Venue
	View(ctx context.Context, sessionID string) (*View, error)
	Selection(ctx context.Context, sessionID string) (*SelectionView, error)

	// 座位互動
	ActivateSeat(ctx context.Context, sessionID, seatID string) (interaction.Outcome, error)
	SeatKey(ctx context.Context, sessionID, seatID, key string) (interaction.Outcome, error)
	ConfirmSeat(ctx context.Context, sessionID, seatID string) (interaction.Outcome, error)
	DismissDetail(ctx context.Context, sessionID string) error
	Clear(ctx context.Context, sessionID string) error
	ToggleHeatMap(ctx context.Context, sessionID string) (bool, error)

	// 視圖
	Zoom(ctx context.Context, sessionID string, op ZoomOp) (viewport.State, error)
	Gesture(ctx context.Context, sessionID string, event GestureEvent) (viewport.State, error)
	ReportLayout(ctx context.Context, sessionID string, width int) (render.Layout, error)
}

type SeatMapServiceImpl struct {
	catalog  *catalog.Catalog
	prices   pricing.Table
	composer *render.Composer
	store    storage.KeyValueStore
	prefix   string
	recorder metrics.Recorder
	idleTTL  time.Duration
	now      func() time.Time
	log      *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

type Option func(*SeatMapServiceImpl)

// WithClock 測試用
func WithClock(now func() time.Time) Option {
	return func(s *SeatMapServiceImpl) { s.now = now }
}

func WithRecorder(recorder metrics.Recorder) Option {
	return func(s *SeatMapServiceImpl) { s.recorder = recorder }
}

// WithKeyPrefix 所有 session 共用的 key 前綴
func WithKeyPrefix(prefix string) Option {
	return func(s *SeatMapServiceImpl) { s.prefix = prefix }
}

// WithIdleTTL 閒置超過此時間的 session 會被移出記憶體；0 表示不回收
func WithIdleTTL(ttl time.Duration) Option {
	return func(s *SeatMapServiceImpl) { s.idleTTL = ttl }
}

func NewSeatMapService(
	catalog *catalog.Catalog,
	prices pricing.Table,
	composer *render.Composer,
	store storage.KeyValueStore,
	opts ...Option,
) *SeatMapServiceImpl {
	s := &SeatMapServiceImpl{
		catalog:  catalog,
		prices:   prices,
		composer: composer,
		store:    store,
		recorder: metrics.Noop{},
		now:      time.Now,
		log:      logger.WithComponent("session"),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SeatMapServiceImpl) Venue() *model.Venue {
	return s.catalog.Venue()
}

// withSession 取得（必要時建立並載入）session，持有其鎖執行 fn
func (s *SeatMapServiceImpl) withSession(ctx context.Context, sessionID string, fn func(*Session) error) error {
	if sessionID == "" {
		return fmt.Errorf("empty session id: %w", apperrors.ErrInvalidInput)
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = newSession(sessionID, s.now())
		s.sessions[sessionID] = sess
		s.recorder.SessionsActive(len(s.sessions))
	}
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// 第一次使用時才載入，避免在 registry 鎖內做 I/O
	if sess.selection == nil {
		sess.selection = selection.Load(ctx, s.sessionStore(sessionID), s.prices,
			selection.WithPersistErrorHandler(func(error) { s.recorder.PersistFailed() }),
		)
		s.log.Debug("Session loaded",
			zap.String("session_id", sessionID),
			zap.Int("selected", sess.selection.Len()),
		)
	}
	sess.lastSeen = s.now()
	return fn(sess)
}

func (s *SeatMapServiceImpl) sessionStore(sessionID string) storage.KeyValueStore {
	if s.prefix == "" {
		return storage.NewNamespaced(s.store, sessionID)
	}
	return storage.NewNamespaced(s.store, s.prefix, sessionID)
}

func (s *SeatMapServiceImpl) View(ctx context.Context, sessionID string) (*View, error) {
	var view *View
	err := s.withSession(ctx, sessionID, func(sess *Session) error {
		view = s.compose(sess)
		return nil
	})
	return view, err
}

func (s *SeatMapServiceImpl) compose(sess *Session) *View {
	openID, _ := sess.board.OpenDetail()
	return &View{
		Scene: s.composer.Compose(render.Input{
			Venue:      s.catalog.Venue(),
			Layout:     sess.layout,
			Viewport:   sess.viewport,
			Selection:  sess.selection,
			HeatMap:    sess.heatMap,
			OpenDetail: openID,
		}),
		Summary: summary.Build(sess.selection, selection.Capacity, sess.layout == render.LayoutCompact),
	}
}

func (s *SeatMapServiceImpl) Selection(ctx context.Context, sessionID string) (*SelectionView, error) {
	var view *SelectionView
	err := s.withSession(ctx, sessionID, func(sess *Session) error {
		view = &SelectionView{
			Seats:    sess.selection.Seats(),
			Count:    sess.selection.Len(),
			Capacity: selection.Capacity,
			Subtotal: sess.selection.Subtotal(),
		}
		return nil
	})
	return view, err
}

// observedSelector 記錄每次切換的結果，UI 行為不受影響
type observedSelector struct {
	*selection.Store
	recorder metrics.Recorder
}

func (o observedSelector) Toggle(ctx context.Context, seat model.Seat) selection.ToggleResult {
	result := o.Store.Toggle(ctx, seat)
	o.recorder.ToggleObserved(string(result))
	return result
}

func (s *SeatMapServiceImpl) seatAction(
	ctx context.Context,
	sessionID, seatID string,
	act func(*interaction.Board, interaction.Selector, model.Seat) interaction.Outcome,
) (interaction.Outcome, error) {
	seat, err := s.catalog.Seat(seatID)
	if err != nil {
		return interaction.OutcomeNone, err
	}

	outcome := interaction.OutcomeNone
	err = s.withSession(ctx, sessionID, func(sess *Session) error {
		outcome = act(sess.board, observedSelector{Store: sess.selection, recorder: s.recorder}, seat)
		return nil
	})
	return outcome, err
}

func (s *SeatMapServiceImpl) ActivateSeat(ctx context.Context, sessionID, seatID string) (interaction.Outcome, error) {
	return s.seatAction(ctx, sessionID, seatID, func(b *interaction.Board, sel interaction.Selector, seat model.Seat) interaction.Outcome {
		return b.Activate(ctx, sel, seat)
	})
}

func (s *SeatMapServiceImpl) SeatKey(ctx context.Context, sessionID, seatID, key string) (interaction.Outcome, error) {
	return s.seatAction(ctx, sessionID, seatID, func(b *interaction.Board, sel interaction.Selector, seat model.Seat) interaction.Outcome {
		return b.HandleKey(ctx, sel, seat, key)
	})
}

func (s *SeatMapServiceImpl) ConfirmSeat(ctx context.Context, sessionID, seatID string) (interaction.Outcome, error) {
	return s.seatAction(ctx, sessionID, seatID, func(b *interaction.Board, sel interaction.Selector, seat model.Seat) interaction.Outcome {
		return b.Confirm(ctx, sel, seat)
	})
}

func (s *SeatMapServiceImpl) DismissDetail(ctx context.Context, sessionID string) error {
	return s.withSession(ctx, sessionID, func(sess *Session) error {
		sess.board.DismissAll()
		return nil
	})
}

func (s *SeatMapServiceImpl) Clear(ctx context.Context, sessionID string) error {
	return s.withSession(ctx, sessionID, func(sess *Session) error {
		sess.selection.Clear(ctx)
		sess.board.DismissAll()
		s.recorder.ClearObserved()
		return nil
	})
}

func (s *SeatMapServiceImpl) ToggleHeatMap(ctx context.Context, sessionID string) (bool, error) {
	var on bool
	err := s.withSession(ctx, sessionID, func(sess *Session) error {
		sess.heatMap = !sess.heatMap
		on = sess.heatMap
		return nil
	})
	return on, err
}

func (s *SeatMapServiceImpl) Zoom(ctx context.Context, sessionID string, op ZoomOp) (viewport.State, error) {
	var state viewport.State
	err := s.withSession(ctx, sessionID, func(sess *Session) error {
		switch op {
		case ZoomIn:
			sess.viewport.ZoomIn()
		case ZoomOut:
			sess.viewport.ZoomOut()
		case ZoomReset:
			sess.viewport.Reset()
		default:
			return fmt.Errorf("zoom op %q: %w", op, apperrors.ErrInvalidInput)
		}
		s.recorder.GestureObserved("zoom_" + string(op))
		state = sess.viewport.State()
		return nil
	})
	return state, err
}

func (s *SeatMapServiceImpl) Gesture(ctx context.Context, sessionID string, event GestureEvent) (viewport.State, error) {
	var state viewport.State
	err := s.withSession(ctx, sessionID, func(sess *Session) error {
		pointer := model.Point{X: event.X, Y: event.Y}
		switch event.Phase {
		case GestureBegin:
			switch event.Target {
			case viewport.TargetSurface, viewport.TargetGroup, viewport.TargetLabel, viewport.TargetSeat:
			default:
				return fmt.Errorf("target %q: %w", event.Target, apperrors.ErrInvalidGestureTarget)
			}
			if sess.viewport.BeginGesture(event.Target, pointer) {
				s.recorder.GestureObserved("pan")
			}
		case GestureMove:
			sess.viewport.UpdateGesture(pointer)
		case GestureEnd:
			sess.viewport.EndGesture()
		case GestureLeave:
			sess.viewport.Leave()
		default:
			return fmt.Errorf("gesture phase %q: %w", event.Phase, apperrors.ErrInvalidInput)
		}
		state = sess.viewport.State()
		return nil
	})
	return state, err
}

func (s *SeatMapServiceImpl) ReportLayout(ctx context.Context, sessionID string, width int) (render.Layout, error) {
	if width < 0 {
		return "", fmt.Errorf("width %d: %w", width, apperrors.ErrInvalidInput)
	}
	var layout render.Layout
	err := s.withSession(ctx, sessionID, func(sess *Session) error {
		layout = s.composer.ChooseLayout(width)
		if sess.setLayout(layout) {
			s.log.Debug("Layout changed",
				zap.String("session_id", sess.ID),
				zap.String("layout", string(layout)),
				zap.Int("width", width),
			)
		}
		return nil
	})
	return layout, err
}
