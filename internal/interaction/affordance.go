package interaction

import "seatmap/internal/model"

// Paint 座位外觀
type Paint struct {
	Rule        string  `json:"rule"`
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Opacity     float64 `json:"opacity"`
	Interactive bool    `json:"interactive"`
}

// PaintContext 決定外觀所需的輸入
type PaintContext struct {
	Seat       model.Seat
	Selected   bool
	HeatMap    bool
	DetailOpen bool
}

const (
	RuleHeatMap     = "heatmap"
	RuleSelected    = "selected"
	RuleAvailable   = "available"
	RuleUnavailable = "unavailable"
)

const (
	ColorAvailableFill     = "#3b82f6"
	ColorAvailableStroke   = "#2563eb"
	ColorSelectedFill      = "#10b981"
	ColorSelectedStroke    = "#059669"
	ColorUnavailableFill   = "#ef4444"
	ColorUnavailableStroke = "#dc2626"
	ColorHeatStroke        = "#9ca3af"
	ColorHeatUnknown       = "#d1d5db"
	ColorFocusStroke       = "#3b82f6"
)

var heatColors = map[model.PriceTier]string{
	model.PriceTier1: "#86efac",
	model.PriceTier2: "#fde047",
	model.PriceTier3: "#fca5a5",
}

// HeatColor 熱度圖下各票價等級的顏色
func HeatColor(tier model.PriceTier) string {
	if c, ok := heatColors[tier]; ok {
		return c
	}
	return ColorHeatUnknown
}

type paintRule struct {
	name   string
	when   func(PaintContext) bool
	colors func(PaintContext) (fill, stroke string)
}

// 依序比對，第一個符合的規則決定顏色：熱度圖 > 已選 > 可選 > 其他
var paintRules = []paintRule{
	{
		name:   RuleHeatMap,
		when:   func(c PaintContext) bool { return c.HeatMap },
		colors: func(c PaintContext) (string, string) { return HeatColor(c.Seat.PriceTier), ColorHeatStroke },
	},
	{
		name:   RuleSelected,
		when:   func(c PaintContext) bool { return c.Selected },
		colors: func(PaintContext) (string, string) { return ColorSelectedFill, ColorSelectedStroke },
	},
	{
		name:   RuleAvailable,
		when:   func(c PaintContext) bool { return c.Seat.IsAvailable() },
		colors: func(PaintContext) (string, string) { return ColorAvailableFill, ColorAvailableStroke },
	},
	{
		name:   RuleUnavailable,
		when:   func(PaintContext) bool { return true },
		colors: func(PaintContext) (string, string) { return ColorUnavailableFill, ColorUnavailableStroke },
	},
}

// Decide 套用規則表決定座位外觀；透明度與可互動與否只看座位狀態
func Decide(c PaintContext) Paint {
	var p Paint
	for _, rule := range paintRules {
		if rule.when(c) {
			p.Rule = rule.name
			p.Fill, p.Stroke = rule.colors(c)
			break
		}
	}

	p.StrokeWidth = 1
	if c.DetailOpen {
		p.Stroke = ColorFocusStroke
		p.StrokeWidth = 3
	}

	p.Interactive = c.Seat.IsAvailable()
	p.Opacity = 1
	if !p.Interactive {
		p.Opacity = 0.5
	}
	return p
}
