package handler

import (
	"net/http"

	"seatmap/internal/service"

	"github.com/gin-gonic/gin"
)

type SeatMapHandler struct {
	service service.SeatMapService
}

func NewSeatMapHandler(service service.SeatMapService) *SeatMapHandler {
	return &SeatMapHandler{service: service}
}

type seatURI struct {
	ID string `uri:"id" binding:"required"`
}

type keyRequest struct {
	Key string `json:"key" binding:"required"`
}

type zoomRequest struct {
	Op service.ZoomOp `json:"op" binding:"required,oneof=in out reset"`
}

type layoutRequest struct {
	Width int `json:"width" binding:"gte=0"`
}

type outcomeResponse struct {
	Outcome string `json:"outcome"`
}

func (h *SeatMapHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Health)

	router := r.Group("/api/v1")
	{
		router.GET("venue", h.GetVenue)
		router.GET("scene", h.GetScene)
		router.GET("selection", h.GetSelection)
		router.DELETE("selection", h.ClearSelection)
		router.POST("seats/:id/activate", h.ActivateSeat)
		router.POST("seats/:id/key", h.SeatKey)
		router.POST("seats/:id/confirm", h.ConfirmSeat)
		router.POST("detail/dismiss", h.DismissDetail)
		router.POST("heatmap", h.ToggleHeatMap)
		router.POST("zoom", h.Zoom)
		router.POST("gesture", h.Gesture)
		router.POST("layout", h.ReportLayout)
	}
}

func (h *SeatMapHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func (h *SeatMapHandler) GetVenue(c *gin.Context) {
	handleSuccess(c, h.service.Venue(), http.StatusOK)
}

func (h *SeatMapHandler) GetScene(c *gin.Context) {
	view, err := h.service.View(c, sessionID(c))
	if err != nil {
		handleError(c, err, "GetScene")
		return
	}

	handleSuccess(c, view, http.StatusOK)
}

func (h *SeatMapHandler) GetSelection(c *gin.Context) {
	selection, err := h.service.Selection(c, sessionID(c))
	if err != nil {
		handleError(c, err, "GetSelection")
		return
	}

	handleSuccess(c, selection, http.StatusOK)
}

func (h *SeatMapHandler) ClearSelection(c *gin.Context) {
	if err := h.service.Clear(c, sessionID(c)); err != nil {
		handleError(c, err, "ClearSelection")
		return
	}

	handleSuccess(c, nil, http.StatusNoContent)
}

func (h *SeatMapHandler) ActivateSeat(c *gin.Context) {
	var uri seatURI
	if err := BindUri(c, &uri); err != nil {
		return
	}

	outcome, err := h.service.ActivateSeat(c, sessionID(c), uri.ID)
	if err != nil {
		handleError(c, err, "ActivateSeat")
		return
	}

	handleSuccess(c, outcomeResponse{Outcome: string(outcome)}, http.StatusOK)
}

func (h *SeatMapHandler) SeatKey(c *gin.Context) {
	var uri seatURI
	if err := BindUri(c, &uri); err != nil {
		return
	}
	var req keyRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	outcome, err := h.service.SeatKey(c, sessionID(c), uri.ID, req.Key)
	if err != nil {
		handleError(c, err, "SeatKey")
		return
	}

	handleSuccess(c, outcomeResponse{Outcome: string(outcome)}, http.StatusOK)
}

func (h *SeatMapHandler) ConfirmSeat(c *gin.Context) {
	var uri seatURI
	if err := BindUri(c, &uri); err != nil {
		return
	}

	outcome, err := h.service.ConfirmSeat(c, sessionID(c), uri.ID)
	if err != nil {
		handleError(c, err, "ConfirmSeat")
		return
	}

	handleSuccess(c, outcomeResponse{Outcome: string(outcome)}, http.StatusOK)
}

func (h *SeatMapHandler) DismissDetail(c *gin.Context) {
	if err := h.service.DismissDetail(c, sessionID(c)); err != nil {
		handleError(c, err, "DismissDetail")
		return
	}

	handleSuccess(c, nil, http.StatusNoContent)
}

func (h *SeatMapHandler) ToggleHeatMap(c *gin.Context) {
	on, err := h.service.ToggleHeatMap(c, sessionID(c))
	if err != nil {
		handleError(c, err, "ToggleHeatMap")
		return
	}

	handleSuccess(c, gin.H{"heatMap": on}, http.StatusOK)
}

func (h *SeatMapHandler) Zoom(c *gin.Context) {
	var req zoomRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	state, err := h.service.Zoom(c, sessionID(c), req.Op)
	if err != nil {
		handleError(c, err, "Zoom")
		return
	}

	handleSuccess(c, state, http.StatusOK)
}

func (h *SeatMapHandler) Gesture(c *gin.Context) {
	var event service.GestureEvent
	if err := BindJson(c, &event); err != nil {
		return
	}

	state, err := h.service.Gesture(c, sessionID(c), event)
	if err != nil {
		handleError(c, err, "Gesture")
		return
	}

	handleSuccess(c, state, http.StatusOK)
}

func (h *SeatMapHandler) ReportLayout(c *gin.Context) {
	var req layoutRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	layout, err := h.service.ReportLayout(c, sessionID(c), req.Width)
	if err != nil {
		handleError(c, err, "ReportLayout")
		return
	}

	handleSuccess(c, gin.H{"layout": layout}, http.StatusOK)
}
