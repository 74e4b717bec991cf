package model

import "strings"

// SeatStatus 座位狀態類型
type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "available"
	SeatStatusReserved  SeatStatus = "reserved"
	SeatStatusSold      SeatStatus = "sold"
	SeatStatusHeld      SeatStatus = "held"
)

// IsValid 驗證狀態是否有效
func (s SeatStatus) IsValid() bool {
	switch s {
	case SeatStatusAvailable, SeatStatusReserved, SeatStatusSold, SeatStatusHeld:
		return true
	}
	return false
}

// PriceTier 票價等級 (1~3)
type PriceTier int

const (
	PriceTier1 PriceTier = 1
	PriceTier2 PriceTier = 2
	PriceTier3 PriceTier = 3
)

// Seat 座位模型；是否被選取不記錄在座位本身
type Seat struct {
	ID        string     `json:"id" db:"seat_id" yaml:"id"`
	Col       int        `json:"col" db:"col" yaml:"col"`
	X         float64    `json:"x" db:"x" yaml:"x"`
	Y         float64    `json:"y" db:"y" yaml:"y"`
	PriceTier PriceTier  `json:"priceTier" db:"price_tier" yaml:"priceTier"`
	Status    SeatStatus `json:"status" db:"status" yaml:"status"`
}

// IsAvailable 檢查座位是否可選
func (s Seat) IsAvailable() bool {
	return s.Status == SeatStatusAvailable
}

// SeatLocation is the SECTION-ROW-SEATNUM breakdown of a seat id.
type SeatLocation struct {
	Section string `json:"section"`
	Row     string `json:"row"`
	Number  string `json:"number"`
}

// ParseSeatID 拆解座位 id；缺少的部分留空
func ParseSeatID(id string) SeatLocation {
	parts := strings.SplitN(id, "-", 3)
	var loc SeatLocation
	if len(parts) > 0 {
		loc.Section = parts[0]
	}
	if len(parts) > 1 {
		loc.Row = parts[1]
	}
	if len(parts) > 2 {
		loc.Number = parts[2]
	}
	return loc
}
