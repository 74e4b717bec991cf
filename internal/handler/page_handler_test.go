package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"seatmap/internal/interaction"
	"seatmap/internal/model"
	"seatmap/internal/pricing"
	"seatmap/internal/render"
	"seatmap/internal/service"
	"seatmap/internal/service/mocks"
	"seatmap/internal/summary"
	"seatmap/internal/viewport"
	apperrors "seatmap/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupPageTestRouter(t *testing.T, mockService *mocks.SeatMapServiceMock) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware(false))

	tmpl, err := LoadTemplates()
	require.NoError(t, err)
	router.SetHTMLTemplate(tmpl)

	NewPageHandler(mockService).RegisterRoutes(router)
	return router
}

type pageSelection map[string]bool

func (p pageSelection) Contains(id string) bool { return p[id] }

func (p pageSelection) Seats() []model.Seat {
	seats := make([]model.Seat, 0, len(p))
	for _, id := range []string{"A-1-1", "A-1-2"} {
		if p[id] {
			seats = append(seats, model.Seat{ID: id, PriceTier: 1, Status: model.SeatStatusAvailable})
		}
	}
	return seats
}

func (p pageSelection) Subtotal() float64 { return 150 * float64(len(p)) }

func pageView(layout render.Layout, openDetail string) *service.View {
	venue := &model.Venue{
		VenueID: "v1",
		Name:    "Grand Hall",
		Map:     model.MapSize{Width: 1024, Height: 768},
		Sections: []model.Section{{
			ID:        "A",
			Label:     "Orchestra",
			Transform: model.SectionTransform{X: 60, Y: 80, Scale: 1},
			Rows: []model.Row{{Index: 1, Seats: []model.Seat{
				{ID: "A-1-1", Col: 1, X: 20, Y: 20, PriceTier: 1, Status: model.SeatStatusAvailable},
				{ID: "A-1-2", Col: 2, X: 60, Y: 20, PriceTier: 1, Status: model.SeatStatusSold},
			}}},
		}},
	}
	sel := pageSelection{"A-1-1": true}
	composer := render.NewComposer(render.DefaultBreakpoint, pricing.DefaultTable())
	return &service.View{
		Scene: composer.Compose(render.Input{
			Venue:      venue,
			Layout:     layout,
			Viewport:   viewport.NewController(),
			Selection:  sel,
			OpenDetail: openDetail,
		}),
		Summary: summary.Build(sel, 8, layout == render.LayoutCompact),
	}
}

func TestIndex(t *testing.T) {
	t.Run("Success - full layout", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupPageTestRouter(t, mockService)

		mockService.On("View", mock.Anything, testSession).Return(pageView(render.LayoutFull, ""), nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withSession(req))

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "<h1>Grand Hall</h1>")
		assert.Contains(t, body, `viewBox="0 0 1024 768"`)
		assert.Contains(t, body, `transform="scale(1) translate(0, 0)"`)
		assert.Contains(t, body, `transform="translate(60, 80) scale(1)"`)
		assert.Contains(t, body, `aria-label="Seat A-1-1, available, price $150"`)
		assert.Contains(t, body, `aria-label="Zoom in"`)
		assert.Contains(t, body, "1/8 Seats")
		assert.Contains(t, body, `<span class="chip">A-1-1</span>`)
		assert.Contains(t, body, "$150")
		assert.NotContains(t, body, "Seat Info")
		mockService.AssertExpectations(t)
	})

	t.Run("Success - compact layout with detail", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupPageTestRouter(t, mockService)

		mockService.On("View", mock.Anything, testSession).Return(pageView(render.LayoutCompact, "A-1-1"), nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withSession(req))

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `viewBox="`+render.CompactViewBox+`"`)
		assert.Contains(t, body, `transform="`+render.CompactTransform+`"`)
		assert.NotContains(t, body, `aria-label="Zoom in"`)
		assert.Contains(t, body, "Seat Info")
		assert.Contains(t, body, `action="/seats/A-1-1/confirm"`)
		assert.Contains(t, body, ">Remove</button>")
		assert.Contains(t, body, interaction.ColorFocusStroke)
		// 精簡版面不列出座位 id
		assert.Equal(t, 0, strings.Count(body, `<span class="chip">`))
	})

	t.Run("Failed - ErrInternalServerError", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupPageTestRouter(t, mockService)

		mockService.On("View", mock.Anything, testSession).Return(nil, apperrors.ErrInternalServerError).Once()

		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withSession(req))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestPageActions_RedirectToIndex(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		setup func(m *mocks.SeatMapServiceMock)
	}{
		{"Activate", "/seats/A-1-1/activate", func(m *mocks.SeatMapServiceMock) {
			m.On("ActivateSeat", mock.Anything, testSession, "A-1-1").Return(interaction.OutcomeToggled, nil).Once()
		}},
		{"Confirm", "/seats/A-1-1/confirm", func(m *mocks.SeatMapServiceMock) {
			m.On("ConfirmSeat", mock.Anything, testSession, "A-1-1").Return(interaction.OutcomeToggled, nil).Once()
		}},
		{"Dismiss", "/detail/dismiss", func(m *mocks.SeatMapServiceMock) {
			m.On("DismissDetail", mock.Anything, testSession).Return(nil).Once()
		}},
		{"Clear", "/selection/clear", func(m *mocks.SeatMapServiceMock) {
			m.On("Clear", mock.Anything, testSession).Return(nil).Once()
		}},
		{"HeatMap", "/heatmap", func(m *mocks.SeatMapServiceMock) {
			m.On("ToggleHeatMap", mock.Anything, testSession).Return(true, nil).Once()
		}},
		{"Zoom", "/zoom/reset", func(m *mocks.SeatMapServiceMock) {
			m.On("Zoom", mock.Anything, testSession, service.ZoomReset).Return(viewport.State{Zoom: 1}, nil).Once()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := mocks.NewSeatMapServiceMock()
			router := setupPageTestRouter(t, mockService)
			tt.setup(mockService)

			req, _ := http.NewRequest(http.MethodPost, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, withSession(req))

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/", w.Header().Get("Location"))
			mockService.AssertExpectations(t)
		})
	}

	t.Run("Failed - unknown zoom op", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupPageTestRouter(t, mockService)

		req, _ := http.NewRequest(http.MethodPost, "/zoom/sideways", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withSession(req))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Zoom")
	})

	t.Run("Failed - ErrSeatNotFound", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupPageTestRouter(t, mockService)
		mockService.On("ConfirmSeat", mock.Anything, testSession, "Z-1-1").Return(interaction.OutcomeNone, apperrors.ErrSeatNotFound).Once()

		req, _ := http.NewRequest(http.MethodPost, "/seats/Z-1-1/confirm", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withSession(req))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
