package interaction

import (
	"context"

	"seatmap/internal/model"
)

// Board 管理所有座位的互動單元；同一時間最多一個詳細資訊開啟
type Board struct {
	units map[string]*Unit
	open  string
}

func NewBoard() *Board {
	return &Board{units: make(map[string]*Unit)}
}

func (b *Board) unit(seat model.Seat) *Unit {
	u, ok := b.units[seat.ID]
	if !ok {
		u = NewUnit(seat)
		b.units[seat.ID] = u
	}
	return u
}

// OpenDetail 目前開啟詳細資訊的座位
func (b *Board) OpenDetail() (string, bool) {
	return b.open, b.open != ""
}

func (b *Board) IsOpen(id string) bool {
	return b.open != "" && b.open == id
}

// Activate 在座位上點擊：視為點擊其他座位詳細資訊的外部，先關閉
func (b *Board) Activate(ctx context.Context, sel Selector, seat model.Seat) Outcome {
	b.dismissOthers(seat.ID)
	u := b.unit(seat)
	outcome := u.Activate(ctx, sel)
	b.track(u)
	return outcome
}

func (b *Board) HandleKey(ctx context.Context, sel Selector, seat model.Seat, key string) Outcome {
	if key == KeyEnter || key == KeySpace {
		return b.Activate(ctx, sel, seat)
	}
	u := b.unit(seat)
	outcome := u.HandleKey(ctx, sel, key)
	b.track(u)
	return outcome
}

func (b *Board) Confirm(ctx context.Context, sel Selector, seat model.Seat) Outcome {
	u := b.unit(seat)
	outcome := u.Confirm(ctx, sel)
	b.track(u)
	return outcome
}

func (b *Board) Dismiss(seat model.Seat) Outcome {
	u := b.unit(seat)
	outcome := u.Dismiss()
	b.track(u)
	return outcome
}

// DismissAll 關閉任何開啟中的詳細資訊
func (b *Board) DismissAll() {
	b.dismissOthers("")
}

func (b *Board) dismissOthers(keep string) {
	if b.open == "" || b.open == keep {
		return
	}
	if u, ok := b.units[b.open]; ok {
		u.Dismiss()
	}
	b.open = ""
}

func (b *Board) track(u *Unit) {
	if u.DetailOpen() {
		b.open = u.seat.ID
	} else if b.open == u.seat.ID {
		b.open = ""
	}
}
