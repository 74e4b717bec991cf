package tui

import (
	"math"
	"strings"

	"seatmap/internal/model"
	"seatmap/internal/render"
	"seatmap/internal/viewport"

	"github.com/charmbracelet/lipgloss"
)

const (
	glyphSeat     = '●'
	glyphSelected = '◉'
	// 精簡版面每張卡片的邏輯高度，與 SVG viewBox 一致
	compactHeight = 250
	compactInset  = 20
)

// cell 終端機上的一格
type cell struct {
	r      rune
	fg     string
	faint  bool
	seat   string
	target viewport.Target
}

// raster 將 Scene 轉成字元格；同時作為滑鼠點擊的命中表
type raster struct {
	width  int
	height int
	cells  [][]cell
	// 每格代表的邏輯像素
	cellW float64
	cellH float64
}

func newRaster(width, height int, cellW, cellH float64) *raster {
	width = max(width, 1)
	height = max(height, 1)
	r := &raster{width: width, height: height, cellW: cellW, cellH: cellH}
	r.cells = make([][]cell, height)
	for y := range r.cells {
		r.cells[y] = make([]cell, width)
		for x := range r.cells[y] {
			r.cells[y][x] = cell{r: ' ', target: viewport.TargetSurface}
		}
	}
	return r
}

func (r *raster) at(x, y int) (cell, bool) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return cell{}, false
	}
	return r.cells[y][x], true
}

func (r *raster) set(x, y int, c cell) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	r.cells[y][x] = c
}

func (r *raster) text(x, y int, s string, target viewport.Target) {
	for i, ch := range []rune(s) {
		r.set(x+i, y, cell{r: ch, fg: "#1f2937", target: target})
	}
}

// toCell 邏輯像素 -> 字元格
func (r *raster) toCell(p model.Point) (int, int) {
	return int(math.Round(p.X / r.cellW)), int(math.Round(p.Y / r.cellH))
}

func (r *raster) seat(x, y int, s render.SeatView) {
	glyph := glyphSeat
	if s.Pressed {
		glyph = glyphSelected
	}
	r.set(x, y, cell{
		r:      glyph,
		fg:     s.Paint.Fill,
		faint:  s.Paint.Opacity < 1,
		seat:   s.ID,
		target: viewport.TargetSeat,
	})
}

// rasterize 完整版面套用視圖縮放與平移；精簡版面每個區塊一張卡片往下排
func rasterize(scene render.Scene, width, height int, cellW, cellH float64) *raster {
	r := newRaster(width, height, cellW, cellH)

	if canvas := scene.Canvas; canvas != nil {
		state := canvas.Viewport
		toScreen := func(p model.Point) model.Point {
			return p.Scale(state.Zoom).Add(state.Pan)
		}
		for _, g := range canvas.Groups {
			x, y := r.toCell(toScreen(g.LabelAt))
			r.text(x, y, g.Label, viewport.TargetLabel)
			for _, row := range g.Rows {
				for _, s := range row.Seats {
					x, y := r.toCell(toScreen(s.Map))
					r.seat(x, y, s)
				}
			}
		}
		return r
	}

	top := 0
	offset := model.Point{X: compactInset, Y: compactInset}
	cardRows := int(math.Ceil(compactHeight / cellH))
	for _, card := range scene.Cards {
		r.text(0, top, card.Label, viewport.TargetLabel)
		for _, row := range card.Rows {
			for _, s := range row.Seats {
				x, y := r.toCell(model.Point{X: s.X, Y: s.Y}.Add(offset))
				r.seat(x, top+1+y, s)
			}
		}
		top += cardRows + 1
	}
	return r
}

// compactLines 精簡版面所需的總行數
func compactLines(cards int, cellH float64) int {
	return cards * (int(math.Ceil(compactHeight/cellH)) + 1)
}

// lines 輸出每一行；focus 為鍵盤焦點所在座位
func (r *raster) lines(focus string) []string {
	out := make([]string, 0, r.height)
	for _, row := range r.cells {
		var b strings.Builder
		for _, c := range row {
			if c.fg == "" && c.seat == "" {
				b.WriteRune(c.r)
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.fg)).Faint(c.faint)
			if c.seat != "" && c.seat == focus {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(string(c.r)))
		}
		out = append(out, strings.TrimRight(b.String(), " "))
	}
	return out
}
