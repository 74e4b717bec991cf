package handler

import (
	"embed"
	"html/template"
	"net/http"

	"seatmap/internal/service"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

// LoadTemplates 給 gin 的 SetHTMLTemplate 使用
func LoadTemplates() (*template.Template, error) {
	return template.New("").ParseFS(templateFiles, "templates/*.tmpl")
}

// PageHandler 伺服器端繪製的頁面；表單動作一律 POST 後 303 導回首頁
type PageHandler struct {
	service service.SeatMapService
}

func NewPageHandler(service service.SeatMapService) *PageHandler {
	return &PageHandler{service: service}
}

type zoomURI struct {
	Op service.ZoomOp `uri:"op" binding:"required,oneof=in out reset"`
}

func (h *PageHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Index)
	r.POST("/seats/:id/activate", h.ActivateSeat)
	r.POST("/seats/:id/confirm", h.ConfirmSeat)
	r.POST("/detail/dismiss", h.DismissDetail)
	r.POST("/selection/clear", h.ClearSelection)
	r.POST("/heatmap", h.ToggleHeatMap)
	r.POST("/zoom/:op", h.Zoom)
}

func (h *PageHandler) Index(c *gin.Context) {
	view, err := h.service.View(c, sessionID(c))
	if err != nil {
		handleError(c, err, "Index")
		return
	}

	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Scene":   view.Scene,
		"Summary": view.Summary,
	})
}

func (h *PageHandler) ActivateSeat(c *gin.Context) {
	var uri seatURI
	if err := BindUri(c, &uri); err != nil {
		return
	}
	if _, err := h.service.ActivateSeat(c, sessionID(c), uri.ID); err != nil {
		handleError(c, err, "ActivateSeat")
		return
	}
	backToIndex(c)
}

func (h *PageHandler) ConfirmSeat(c *gin.Context) {
	var uri seatURI
	if err := BindUri(c, &uri); err != nil {
		return
	}
	if _, err := h.service.ConfirmSeat(c, sessionID(c), uri.ID); err != nil {
		handleError(c, err, "ConfirmSeat")
		return
	}
	backToIndex(c)
}

func (h *PageHandler) DismissDetail(c *gin.Context) {
	if err := h.service.DismissDetail(c, sessionID(c)); err != nil {
		handleError(c, err, "DismissDetail")
		return
	}
	backToIndex(c)
}

func (h *PageHandler) ClearSelection(c *gin.Context) {
	if err := h.service.Clear(c, sessionID(c)); err != nil {
		handleError(c, err, "ClearSelection")
		return
	}
	backToIndex(c)
}

func (h *PageHandler) ToggleHeatMap(c *gin.Context) {
	if _, err := h.service.ToggleHeatMap(c, sessionID(c)); err != nil {
		handleError(c, err, "ToggleHeatMap")
		return
	}
	backToIndex(c)
}

func (h *PageHandler) Zoom(c *gin.Context) {
	var uri zoomURI
	if err := BindUri(c, &uri); err != nil {
		return
	}
	if _, err := h.service.Zoom(c, sessionID(c), uri.Op); err != nil {
		handleError(c, err, "Zoom")
		return
	}
	backToIndex(c)
}

func backToIndex(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}
