package summary

import (
	"fmt"

	"seatmap/internal/model"
)

// MaxShown 完整版面最多列出的座位 id 數
const MaxShown = 4

// Source 摘要需要的選取資訊
type Source interface {
	Seats() []model.Seat
	Subtotal() float64
}

// Panel 摘要列；選取為空時不顯示
type Panel struct {
	Visible  bool     `json:"visible"`
	Count    int      `json:"count"`
	Capacity int      `json:"capacity"`
	Shown    []string `json:"shown,omitempty"`
	// Overflow 超過 MaxShown 的數量，0 表示不顯示 "+N"
	Overflow int     `json:"overflow"`
	Subtotal float64 `json:"subtotal"`
}

// Build 精簡版面只顯示數量與小計，不列出座位 id
func Build(src Source, capacity int, compact bool) Panel {
	seats := src.Seats()
	if len(seats) == 0 {
		return Panel{Capacity: capacity}
	}

	p := Panel{
		Visible:  true,
		Count:    len(seats),
		Capacity: capacity,
		Subtotal: src.Subtotal(),
	}
	if compact {
		return p
	}

	n := min(len(seats), MaxShown)
	p.Shown = make([]string, 0, n)
	for _, seat := range seats[:n] {
		p.Shown = append(p.Shown, seat.ID)
	}
	p.Overflow = len(seats) - n
	return p
}

// Heading 例如 "3/8 Seats"
func (p Panel) Heading() string {
	return fmt.Sprintf("%d/%d Seats", p.Count, p.Capacity)
}

// OverflowLabel 例如 "+2"；沒有溢出時為空字串
func (p Panel) OverflowLabel() string {
	if p.Overflow <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d", p.Overflow)
}

// Total 小計金額字串，例如 "$310"
func (p Panel) Total() string {
	return fmt.Sprintf("$%g", p.Subtotal)
}
