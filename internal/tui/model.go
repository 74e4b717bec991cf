package tui

import (
	"context"
	"fmt"
	"strings"

	"seatmap/internal/interaction"
	"seatmap/internal/model"
	"seatmap/internal/render"
	"seatmap/internal/service"
	"seatmap/internal/viewport"
	"seatmap/pkg/logger"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const (
	DefaultPxPerCol = 10
	headerLines     = 2
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563eb"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	chipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#1e40af"))
	totalStyle   = lipgloss.NewStyle().Bold(true)
	popoverStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#3b82f6")).Padding(0, 1)
)

// viewMsg 每次操作後重新取得的畫面
type viewMsg struct {
	view *service.View
	err  error
}

// Model 終端機前端；所有狀態都在 service 的 session 中，Model 只保留畫面與焦點
type Model struct {
	svc      service.SeatMapService
	session  string
	pxPerCol int

	width  int
	height int

	view  *service.View
	grid  *raster
	order []string
	focus int
	err   error
}

func New(svc service.SeatMapService, session string, pxPerCol int) Model {
	if pxPerCol <= 0 {
		pxPerCol = DefaultPxPerCol
	}
	return Model{svc: svc, session: session, pxPerCol: pxPerCol}
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m Model) cellW() float64 { return float64(m.pxPerCol) }

// 終端機字元約為 1:2
func (m Model) cellH() float64 { return float64(m.pxPerCol * 2) }

func (m Model) refresh() tea.Cmd {
	return m.run(func(context.Context) error { return nil })
}

// run 執行操作後重新取得畫面
func (m Model) run(op func(ctx context.Context) error) tea.Cmd {
	svc, session := m.svc, m.session
	return func() tea.Msg {
		ctx := context.Background()
		if err := op(ctx); err != nil {
			return viewMsg{err: err}
		}
		view, err := svc.View(ctx, session)
		return viewMsg{view: view, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		width := msg.Width * m.pxPerCol
		return m, m.run(func(ctx context.Context) error {
			_, err := m.svc.ReportLayout(ctx, m.session, width)
			return err
		})

	case viewMsg:
		m.err = msg.err
		if msg.err != nil {
			logger.WithComponent("tui").Warn("Action failed", zap.Error(msg.err))
			return m, nil
		}
		m.apply(msg.view)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) apply(view *service.View) {
	focused := m.focused()
	m.view = view
	m.grid = rasterize(view.Scene, m.mapWidth(), m.mapHeight(), m.cellW(), m.cellH())

	m.order = nil
	visit := func(groups []render.Group) {
		for _, g := range groups {
			for _, row := range g.Rows {
				for _, s := range row.Seats {
					if s.TabIndex == 0 {
						m.order = append(m.order, s.ID)
					}
				}
			}
		}
	}
	if view.Scene.Canvas != nil {
		visit(view.Scene.Canvas.Groups)
	}
	visit(view.Scene.Cards)

	m.focus = 0
	for i, id := range m.order {
		if id == focused {
			m.focus = i
			break
		}
	}
}

func (m Model) mapWidth() int {
	if m.view != nil && m.view.Scene.Canvas != nil {
		return max(m.width, int(m.view.Scene.Canvas.Width/m.cellW())+1)
	}
	return max(m.width, 1)
}

func (m Model) mapHeight() int {
	if m.view == nil {
		return 1
	}
	if c := m.view.Scene.Canvas; c != nil {
		return int(c.Height/m.cellH()) + 1
	}
	return compactLines(len(m.view.Scene.Cards), m.cellH())
}

func (m Model) focused() string {
	if m.focus < 0 || m.focus >= len(m.order) {
		return ""
	}
	return m.order[m.focus]
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	seat := m.focused()
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab", "right", "down":
		if len(m.order) > 0 {
			m.focus = (m.focus + 1) % len(m.order)
		}
		return m, nil
	case "shift+tab", "left", "up":
		if len(m.order) > 0 {
			m.focus = (m.focus - 1 + len(m.order)) % len(m.order)
		}
		return m, nil
	case "enter", " ":
		if seat == "" {
			return m, nil
		}
		key := interaction.KeyEnter
		if msg.String() == " " {
			key = interaction.KeySpace
		}
		return m, m.run(func(ctx context.Context) error {
			_, err := m.svc.SeatKey(ctx, m.session, seat, key)
			return err
		})
	case "esc":
		return m, m.run(func(ctx context.Context) error {
			return m.svc.DismissDetail(ctx, m.session)
		})
	case "x":
		detail := m.openDetail()
		if detail == nil {
			return m, nil
		}
		return m, m.run(func(ctx context.Context) error {
			_, err := m.svc.ConfirmSeat(ctx, m.session, detail.SeatID)
			return err
		})
	case "+", "=":
		return m, m.zoom(service.ZoomIn)
	case "-":
		return m, m.zoom(service.ZoomOut)
	case "0":
		return m, m.zoom(service.ZoomReset)
	case "h":
		return m, m.run(func(ctx context.Context) error {
			_, err := m.svc.ToggleHeatMap(ctx, m.session)
			return err
		})
	case "c":
		return m, m.run(func(ctx context.Context) error {
			return m.svc.Clear(ctx, m.session)
		})
	}
	return m, nil
}

func (m Model) zoom(op service.ZoomOp) tea.Cmd {
	return m.run(func(ctx context.Context) error {
		_, err := m.svc.Zoom(ctx, m.session, op)
		return err
	})
}

func (m Model) openDetail() *interaction.Detail {
	if m.view == nil {
		return nil
	}
	return m.view.Scene.Detail
}

// handleMouse 座位上按下為點擊；其他位置按下開始拖曳，放開或移出結束
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.grid == nil {
		return m, nil
	}
	x, y := msg.X, msg.Y-headerLines
	c, inside := m.grid.at(x, y)
	pointer := model.Point{X: float64(msg.X) * m.cellW(), Y: float64(msg.Y) * m.cellH()}

	gesture := func(phase service.GesturePhase, target viewport.Target) tea.Cmd {
		event := service.GestureEvent{Phase: phase, Target: target, X: pointer.X, Y: pointer.Y}
		return m.run(func(ctx context.Context) error {
			_, err := m.svc.Gesture(ctx, m.session, event)
			return err
		})
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return m, nil
		}
		if c.seat != "" {
			for i, id := range m.order {
				if id == c.seat {
					m.focus = i
				}
			}
			seat := c.seat
			return m, m.run(func(ctx context.Context) error {
				_, err := m.svc.ActivateSeat(ctx, m.session, seat)
				return err
			})
		}
		return m, gesture(service.GestureBegin, c.target)
	case tea.MouseActionMotion:
		if m.view == nil || m.view.Scene.Canvas == nil || !m.view.Scene.Canvas.Viewport.Dragging {
			return m, nil
		}
		if !inside {
			return m, gesture(service.GestureLeave, viewport.TargetSurface)
		}
		return m, gesture(service.GestureMove, c.target)
	case tea.MouseActionRelease:
		return m, gesture(service.GestureEnd, c.target)
	}
	return m, nil
}

func (m Model) View() string {
	if m.view == nil {
		if m.err != nil {
			return errStyle.Render(m.err.Error()) + "\n"
		}
		return "Loading venue..."
	}
	scene := m.view.Scene

	var b strings.Builder
	heat := "seats"
	if scene.HeatMap {
		heat = "heat map"
	}
	b.WriteString(titleStyle.Render(scene.VenueName) + "  " + dimStyle.Render("["+heat+"]") + "\n")
	b.WriteString(m.toolbar(scene) + "\n")

	lines := m.grid.lines(m.focused())
	limit := len(lines)
	if m.height > 0 {
		limit = min(limit, max(m.height-headerLines-4, 1))
	}
	for _, line := range lines[:limit] {
		if m.width > 0 && lipgloss.Width(line) > m.width {
			line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
		}
		b.WriteString(line + "\n")
	}

	if d := scene.Detail; d != nil {
		b.WriteString(renderDetail(d) + "\n")
	}
	if s := m.view.Summary; s.Visible {
		b.WriteString(renderSummary(s.Heading(), s.Shown, s.OverflowLabel(), s.Total()) + "\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString(dimStyle.Render(m.help(scene)))
	return b.String()
}

func (m Model) toolbar(scene render.Scene) string {
	parts := make([]string, 0, 4)
	if c := scene.Canvas; scene.ZoomControls && c != nil {
		parts = append(parts, fmt.Sprintf("zoom %.1fx", c.Viewport.Zoom))
	}
	for _, entry := range scene.Legend {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(entry.Color)).Render(string(glyphSeat))
		parts = append(parts, dot+" "+entry.Label)
	}
	return strings.Join(parts, "   ")
}

func (m Model) help(scene render.Scene) string {
	keys := "tab/arrows focus • enter/space select • esc close • h heat map • c clear • q quit"
	if scene.ZoomControls {
		keys = "+/- zoom • 0 reset • drag pan • " + keys
	}
	if scene.Detail != nil && scene.Detail.Action != "" {
		keys = "x " + strings.ToLower(scene.Detail.Action) + " • " + keys
	}
	return keys
}

func renderDetail(d *interaction.Detail) string {
	lines := []string{
		totalStyle.Render("Seat Info") + "  " + dimStyle.Render(string(d.Status)),
		fmt.Sprintf("Section: %s", d.Location.Section),
		fmt.Sprintf("Row:     %s", d.Location.Row),
		fmt.Sprintf("Seat:    %s", d.Location.Number),
		fmt.Sprintf("Price:   $%g", d.Price),
	}
	if d.Action != "" {
		lines = append(lines, "[x] "+d.Action+"  [esc] Close")
	} else {
		lines = append(lines, "[esc] Close")
	}
	return popoverStyle.Render(strings.Join(lines, "\n"))
}

func renderSummary(heading string, shown []string, overflow, total string) string {
	parts := []string{totalStyle.Render(heading)}
	for _, id := range shown {
		parts = append(parts, chipStyle.Render(id))
	}
	if overflow != "" {
		parts = append(parts, dimStyle.Render(overflow))
	}
	parts = append(parts, "Total "+totalStyle.Render(total), dimStyle.Render("[c] Clear"))
	return strings.Join(parts, "  ")
}
