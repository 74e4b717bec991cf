package service

import (
	"sync"
	"time"

	"seatmap/internal/interaction"
	"seatmap/internal/render"
	"seatmap/internal/selection"
	"seatmap/internal/viewport"
)

// Session 單一客戶端的全部狀態
// 所有操作經由 mu 序列化，相當於瀏覽器的單執行緒事件佇列
type Session struct {
	ID string

	mu        sync.Mutex
	selection *selection.Store
	viewport  *viewport.Controller
	board     *interaction.Board
	heatMap   bool
	layout    render.Layout
	lastSeen  time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:       id,
		viewport: viewport.NewController(),
		board:    interaction.NewBoard(),
		layout:   render.LayoutFull,
		lastSeen: now,
	}
}

// setLayout 切換版面時關閉詳細資訊，精簡版面停用縮放與平移
func (s *Session) setLayout(layout render.Layout) bool {
	if s.layout == layout {
		return false
	}
	s.layout = layout
	s.viewport.SetActive(layout == render.LayoutFull)
	s.board.DismissAll()
	return true
}
