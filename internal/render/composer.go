package render

import (
	"fmt"
	"math"

	"seatmap/internal/interaction"
	"seatmap/internal/model"
	"seatmap/internal/pricing"
	"seatmap/internal/viewport"
)

// Layout 版面模式
type Layout string

const (
	LayoutFull    Layout = "full"
	LayoutCompact Layout = "compact"
)

const (
	DefaultBreakpoint = 768

	// 精簡版面每個區塊固定的畫布
	CompactViewBox   = "0 0 450 250"
	CompactTransform = "translate(20, 20)"

	SeatRadius = 10
	// 區塊標籤相對於區塊原點的位置
	labelX = 0
	labelY = -20
)

// Selection 組版時需要的唯讀選取資訊
type Selection interface {
	Contains(id string) bool
}

// Input 組版所需的全部狀態
type Input struct {
	Venue     *model.Venue
	Layout    Layout
	Viewport  *viewport.Controller
	Selection Selection
	HeatMap   bool
	// OpenDetail 開啟詳細資訊的座位 id，空字串表示沒有
	OpenDetail string
}

// Scene 畫面的 view model；HTML 樣板與 TUI 都從這裡取值
type Scene struct {
	Layout    Layout        `json:"layout"`
	VenueName string        `json:"venueName"`
	HeatMap   bool          `json:"heatMap"`
	Canvas    *Canvas       `json:"canvas,omitempty"`
	Cards     []Group       `json:"cards,omitempty"`
	Legend    []LegendEntry `json:"legend"`
	// Detail 目前開啟的詳細資訊
	Detail *interaction.Detail `json:"detail,omitempty"`
	// ZoomControls 只有完整版面顯示縮放按鈕
	ZoomControls bool `json:"zoomControls"`
}

// Canvas 完整版面的單一畫布
type Canvas struct {
	ViewBox   string         `json:"viewBox"`
	Width     float64        `json:"width"`
	Height    float64        `json:"height"`
	Transform string         `json:"transform"`
	Viewport  viewport.State `json:"viewport"`
	Groups    []Group        `json:"groups"`
}

// Group 一個區塊；完整版面為畫布中的群組，精簡版面為獨立卡片
type Group struct {
	SectionID string      `json:"sectionId"`
	Label     string      `json:"label"`
	ViewBox   string      `json:"viewBox,omitempty"`
	Transform string      `json:"transform"`
	LabelPos  model.Point `json:"labelPos"`
	// LabelAt 標籤在場館地圖上的座標（僅完整版面）
	LabelAt   model.Point `json:"labelAt"`
	Rows      []RowView   `json:"rows"`
}

type RowView struct {
	Index int        `json:"index"`
	Seats []SeatView `json:"seats"`
}

// SeatView 單一座位的繪製資訊
type SeatView struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"r"`
	// Map 座位在場館地圖上的座標（已套用區塊 transform）
	Map       model.Point         `json:"map"`
	Paint     interaction.Paint   `json:"paint"`
	AriaLabel string              `json:"ariaLabel"`
	Pressed   bool                `json:"pressed"`
	Disabled  bool                `json:"disabled"`
	TabIndex  int                 `json:"tabIndex"`
	Detail    *interaction.Detail `json:"detail,omitempty"`
}

type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var legend = []LegendEntry{
	{Label: "Available", Color: interaction.ColorAvailableFill},
	{Label: "Selected", Color: interaction.ColorSelectedFill},
	{Label: "Unavailable", Color: "#f7a1a1"},
}

// Composer 依版面把場館轉成 Scene；本身無狀態
type Composer struct {
	breakpoint int
	prices     pricing.Table
}

func NewComposer(breakpoint int, prices pricing.Table) *Composer {
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}
	return &Composer{breakpoint: breakpoint, prices: prices}
}

func (c *Composer) Breakpoint() int {
	return c.breakpoint
}

// ChooseLayout 寬度小於斷點時使用精簡版面
func (c *Composer) ChooseLayout(width int) Layout {
	if width < c.breakpoint {
		return LayoutCompact
	}
	return LayoutFull
}

func (c *Composer) Compose(in Input) Scene {
	scene := Scene{
		Layout:    in.Layout,
		VenueName: in.Venue.Name,
		HeatMap:   in.HeatMap,
		Legend:    legend,
	}

	if in.Layout == LayoutCompact {
		scene.Cards = make([]Group, 0, len(in.Venue.Sections))
		for _, section := range in.Venue.Sections {
			g := c.group(in, section)
			g.ViewBox = CompactViewBox
			g.Transform = CompactTransform
			scene.Cards = append(scene.Cards, g)
		}
		scene.Detail = openDetail(scene.Cards)
		return scene
	}

	vp := in.Viewport
	if vp == nil {
		vp = viewport.NewController()
	}
	canvas := &Canvas{
		ViewBox:   fmt.Sprintf("0 0 %s %s", num(in.Venue.Map.Width), num(in.Venue.Map.Height)),
		Width:     in.Venue.Map.Width,
		Height:    in.Venue.Map.Height,
		Transform: vp.Transform(),
		Viewport:  vp.State(),
		Groups:    make([]Group, 0, len(in.Venue.Sections)),
	}
	for _, section := range in.Venue.Sections {
		g := c.group(in, section)
		g.Transform = SectionTransform(section.Transform)
		g.LabelPos = model.Point{X: labelX, Y: labelY}
		g.LabelAt = section.Transform.Apply(g.LabelPos)
		canvas.Groups = append(canvas.Groups, g)
	}
	scene.Canvas = canvas
	scene.Detail = openDetail(canvas.Groups)
	scene.ZoomControls = true
	return scene
}

func openDetail(groups []Group) *interaction.Detail {
	for _, g := range groups {
		for _, row := range g.Rows {
			for _, seat := range row.Seats {
				if seat.Detail != nil {
					return seat.Detail
				}
			}
		}
	}
	return nil
}

func (c *Composer) group(in Input, section model.Section) Group {
	g := Group{
		SectionID: section.ID,
		Label:     section.Label,
		Rows:      make([]RowView, 0, len(section.Rows)),
	}
	for _, row := range section.Rows {
		rv := RowView{Index: row.Index, Seats: make([]SeatView, 0, len(row.Seats))}
		for _, seat := range row.Seats {
			rv.Seats = append(rv.Seats, c.seat(in, section, seat))
		}
		g.Rows = append(g.Rows, rv)
	}
	return g
}

func (c *Composer) seat(in Input, section model.Section, seat model.Seat) SeatView {
	selected := in.Selection != nil && in.Selection.Contains(seat.ID)
	open := in.OpenDetail != "" && in.OpenDetail == seat.ID
	available := seat.IsAvailable()

	v := SeatView{
		ID:     seat.ID,
		X:      seat.X,
		Y:      seat.Y,
		Radius: SeatRadius,
		Map:    section.Transform.Apply(model.Point{X: seat.X, Y: seat.Y}),
		Paint: interaction.Decide(interaction.PaintContext{
			Seat:       seat,
			Selected:   selected,
			HeatMap:    in.HeatMap,
			DetailOpen: open,
		}),
		AriaLabel: AriaLabel(seat, c.prices),
		Pressed:   selected,
		Disabled:  !available,
		TabIndex:  -1,
	}
	if available {
		v.TabIndex = 0
	}
	if open {
		d := interaction.NewUnit(seat).Detail(selected, c.prices)
		v.Detail = &d
	}
	return v
}

// AriaLabel 例如 "Seat A-1-1, available, price $150"
func AriaLabel(seat model.Seat, prices pricing.Table) string {
	return fmt.Sprintf("Seat %s, %s, price $%s", seat.ID, seat.Status, num(prices.Lookup(seat.PriceTier)))
}

// SectionTransform 區塊群組的 SVG transform
func SectionTransform(t model.SectionTransform) string {
	return fmt.Sprintf("translate(%s, %s) scale(%s)", num(t.X), num(t.Y), num(t.Scale))
}

func num(v float64) string {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		r = 0
	}
	return fmt.Sprintf("%g", r)
}
