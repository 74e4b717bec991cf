package viewport

import (
	"fmt"
	"math"

	"seatmap/internal/model"
)

const (
	MinZoom     = 0.5
	MaxZoom     = 3.0
	ZoomStep    = 0.3
	DefaultZoom = 1.0
)

// Target 指標按下時的目標元素種類
type Target string

const (
	TargetSurface Target = "surface"
	TargetGroup   Target = "group"
	TargetLabel   Target = "label"
	TargetSeat    Target = "seat"
)

// CanStartGesture 只有地圖底板、群組與標籤可以開始拖曳；座位自己處理點擊
func (t Target) CanStartGesture() bool {
	switch t {
	case TargetSurface, TargetGroup, TargetLabel:
		return true
	}
	return false
}

// gesture 拖曳中的暫態，不持久化也不共享
type gesture struct {
	active bool
	anchor model.Point
}

// Controller 管理縮放與平移；與選位狀態無關
type Controller struct {
	zoom    float64
	pan     model.Point
	gesture gesture
	// inactive 為 true 時（精簡版面）停用所有操作
	inactive bool
}

func NewController() *Controller {
	return &Controller{zoom: DefaultZoom}
}

// State 供 JSON 與樣板使用的快照
type State struct {
	Zoom      float64     `json:"zoom"`
	Pan       model.Point `json:"pan"`
	Dragging  bool        `json:"dragging"`
	Active    bool        `json:"active"`
	Transform string      `json:"transform"`
}

func (c *Controller) State() State {
	return State{
		Zoom:      c.zoom,
		Pan:       c.pan,
		Dragging:  c.gesture.active,
		Active:    !c.inactive,
		Transform: c.Transform(),
	}
}

func (c *Controller) Zoom() float64 {
	return c.zoom
}

func (c *Controller) Pan() model.Point {
	return c.pan
}

func (c *Controller) Dragging() bool {
	return c.gesture.active
}

func (c *Controller) Active() bool {
	return !c.inactive
}

// SetActive 切換版面時呼叫；停用時一併結束拖曳
func (c *Controller) SetActive(active bool) {
	c.inactive = !active
	if !active {
		c.gesture = gesture{}
	}
}

func (c *Controller) ZoomIn() {
	if c.inactive {
		return
	}
	c.zoom = math.Min(c.zoom+ZoomStep, MaxZoom)
}

func (c *Controller) ZoomOut() {
	if c.inactive {
		return
	}
	c.zoom = math.Max(c.zoom-ZoomStep, MinZoom)
}

func (c *Controller) Reset() {
	if c.inactive {
		return
	}
	c.zoom = DefaultZoom
	c.pan = model.Point{}
}

// BeginGesture 記錄錨點 = 指標位置 - 目前平移；回傳是否開始拖曳
func (c *Controller) BeginGesture(target Target, pointer model.Point) bool {
	if c.inactive || !target.CanStartGesture() {
		return false
	}
	c.gesture = gesture{active: true, anchor: pointer.Sub(c.pan)}
	return true
}

// UpdateGesture 平移跟隨指標 1:1（以錨點計算，不累加，避免漂移）
func (c *Controller) UpdateGesture(pointer model.Point) bool {
	if c.inactive || !c.gesture.active {
		return false
	}
	c.pan = pointer.Sub(c.gesture.anchor)
	return true
}

// EndGesture 無條件結束拖曳
func (c *Controller) EndGesture() {
	c.gesture = gesture{}
}

// Leave 指標離開追蹤區域，避免卡在拖曳狀態
func (c *Controller) Leave() {
	c.EndGesture()
}

// Transform renders scale(zoom) translate(pan/zoom); dividing by zoom keeps
// the pan speed matched to the pointer at every zoom level.
func (c *Controller) Transform() string {
	return fmt.Sprintf("scale(%s) translate(%s, %s)",
		formatNumber(c.zoom),
		formatNumber(c.pan.X/c.zoom),
		formatNumber(c.pan.Y/c.zoom),
	)
}

// Apply maps a map-space point to screen space: zoom*p + pan.
func (c *Controller) Apply(p model.Point) model.Point {
	return p.Scale(c.zoom).Add(c.pan)
}

// Invert maps a screen-space point back into map space.
func (c *Controller) Invert(p model.Point) model.Point {
	return p.Sub(c.pan).Scale(1 / c.zoom)
}

func formatNumber(v float64) string {
	// 去除浮點誤差 (1.9000000000000001)
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		r = 0 // no "-0"
	}
	return fmt.Sprintf("%g", r)
}
