package interaction

import (
	"context"

	"seatmap/internal/model"
	"seatmap/internal/pricing"
	"seatmap/internal/selection"
)

// Selector 座位互動委派給選取集合的操作
type Selector interface {
	Toggle(ctx context.Context, seat model.Seat) selection.ToggleResult
	Contains(id string) bool
}

// Outcome 一次互動造成的結果
type Outcome string

const (
	OutcomeNone         Outcome = "none"
	OutcomeToggled      Outcome = "toggled"
	OutcomeDetailOpened Outcome = "detail_opened"
	OutcomeDetailClosed Outcome = "detail_closed"
)

const (
	KeyEnter  = "Enter"
	KeySpace  = " "
	KeyEscape = "Escape"
)

// Unit 單一座位的互動狀態機：狀態 (外部、唯讀) x 詳細資訊是否開啟
type Unit struct {
	seat       model.Seat
	detailOpen bool
}

func NewUnit(seat model.Seat) *Unit {
	return &Unit{seat: seat}
}

func (u *Unit) Seat() model.Seat {
	return u.seat
}

func (u *Unit) DetailOpen() bool {
	return u.detailOpen
}

// Activate 點擊或 Enter/Space
//   - 不可選：無反應
//   - 詳細資訊開啟中：關閉（觸發元件再次點擊）
//   - 已選：開啟詳細資訊，不直接取消
//   - 未選：直接加入
func (u *Unit) Activate(ctx context.Context, sel Selector) Outcome {
	if !u.seat.IsAvailable() {
		return OutcomeNone
	}
	if u.detailOpen {
		u.detailOpen = false
		return OutcomeDetailClosed
	}
	if sel.Contains(u.seat.ID) {
		u.detailOpen = true
		return OutcomeDetailOpened
	}
	sel.Toggle(ctx, u.seat)
	return OutcomeToggled
}

// HandleKey 鍵盤操作；Escape 關閉詳細資訊，其餘按鍵忽略
func (u *Unit) HandleKey(ctx context.Context, sel Selector, key string) Outcome {
	switch key {
	case KeyEnter, KeySpace:
		return u.Activate(ctx, sel)
	case KeyEscape:
		return u.Dismiss()
	}
	return OutcomeNone
}

// Confirm 詳細資訊中的 Add/Remove：切換後關閉
func (u *Unit) Confirm(ctx context.Context, sel Selector) Outcome {
	if !u.detailOpen {
		return OutcomeNone
	}
	u.detailOpen = false
	if !u.seat.IsAvailable() {
		return OutcomeDetailClosed
	}
	sel.Toggle(ctx, u.seat)
	return OutcomeToggled
}

// Dismiss 點擊外部或其他方式關閉，不動選取集合
func (u *Unit) Dismiss() Outcome {
	if !u.detailOpen {
		return OutcomeNone
	}
	u.detailOpen = false
	return OutcomeDetailClosed
}

// Detail 詳細資訊內容
type Detail struct {
	SeatID   string             `json:"seatId"`
	Status   model.SeatStatus   `json:"status"`
	Location model.SeatLocation `json:"location"`
	Price    float64            `json:"price"`
	// Action 為 "Add" 或 "Remove"；不可選座位為空
	Action string `json:"action,omitempty"`
}

func (u *Unit) Detail(selected bool, prices pricing.Table) Detail {
	d := Detail{
		SeatID:   u.seat.ID,
		Status:   u.seat.Status,
		Location: model.ParseSeatID(u.seat.ID),
		Price:    prices.Lookup(u.seat.PriceTier),
	}
	if u.seat.IsAvailable() {
		d.Action = "Add"
		if selected {
			d.Action = "Remove"
		}
	}
	return d
}
