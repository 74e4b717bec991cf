package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"seatmap/internal/interaction"
	"seatmap/internal/model"
	"seatmap/internal/render"
	"seatmap/internal/service"
	"seatmap/internal/service/mocks"
	"seatmap/internal/viewport"
	apperrors "seatmap/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSession = "0b7e6f3c-1f7d-4d7a-9d43-5a3f8f0c2a11"

func setupSeatMapTestRouter(mockService *mocks.SeatMapServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware(false))

	NewSeatMapHandler(mockService).RegisterRoutes(router)
	return router
}

func withSession(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: testSession})
	return req
}

func TestSessionMiddleware(t *testing.T) {
	t.Run("Issues cookie when missing", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupSeatMapTestRouter(mockService)

		var issued string
		mockService.On("Selection", mock.Anything, mock.MatchedBy(func(id string) bool {
			issued = id
			return uuid.Validate(id) == nil
		})).Return(&service.SelectionView{Capacity: 8}, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/selection", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, SessionCookie, cookies[0].Name)
		assert.Equal(t, issued, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		mockService.AssertExpectations(t)
	})

	t.Run("Reuses valid cookie", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupSeatMapTestRouter(mockService)

		mockService.On("Selection", mock.Anything, testSession).Return(&service.SelectionView{Capacity: 8}, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/selection", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withSession(req))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())
		mockService.AssertExpectations(t)
	})

	t.Run("Replaces malformed cookie", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupSeatMapTestRouter(mockService)

		mockService.On("Selection", mock.Anything, mock.MatchedBy(func(id string) bool {
			return id != "not-a-uuid"
		})).Return(&service.SelectionView{}, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/selection", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-uuid"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, w.Result().Cookies(), 1)
	})
}

func TestHealth(t *testing.T) {
	router := setupSeatMapTestRouter(mocks.NewSeatMapServiceMock())

	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGetVenue(t *testing.T) {
	mockService := mocks.NewSeatMapServiceMock()
	router := setupSeatMapTestRouter(mockService)

	mockService.On("Venue").Return(&model.Venue{VenueID: "v1", Name: "Hall"}).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/venue", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, withSession(req))

	assert.Equal(t, http.StatusOK, w.Code)
	var venue model.Venue
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &venue))
	assert.Equal(t, "v1", venue.VenueID)
	mockService.AssertExpectations(t)
}

func TestGetScene(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupSeatMapTestRouter(mockService)

		mockService.On("View", mock.Anything, testSession).Return(&service.View{
			Scene: render.Scene{Layout: render.LayoutCompact, VenueName: "Hall"},
		}, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/scene", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withSession(req))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"layout":"compact"`)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ErrInternalServerError", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupSeatMapTestRouter(mockService)

		mockService.On("View", mock.Anything, testSession).Return(nil, apperrors.ErrInternalServerError).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/scene", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withSession(req))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestActivateSeat(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupSeatMapTestRouter(mockService)

		mockService.On("ActivateSeat", mock.Anything, testSession, "A-1-1").Return(interaction.OutcomeToggled, nil).Once()

		req := createJSONHTTPRequest(http.MethodPost, "/api/v1/seats/A-1-1/activate", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withSession(req))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"outcome":"toggled"}`, w.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ErrSeatNotFound", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupSeatMapTestRouter(mockService)

		mockService.On("ActivateSeat", mock.Anything, testSession, "Z-1-1").Return(interaction.OutcomeNone, apperrors.ErrSeatNotFound).Once()

		req := createJSONHTTPRequest(http.MethodPost, "/api/v1/seats/Z-1-1/activate", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withSession(req))

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestSeatKey(t *testing.T) {
	t.Run("Success - space", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupSeatMapTestRouter(mockService)

		mockService.On("SeatKey", mock.Anything, testSession, "A-1-1", " ").Return(interaction.OutcomeDetailOpened, nil).Once()

		req := createJSONHTTPRequest(http.MethodPost, "/api/v1/seats/A-1-1/key", gin.H{"key": " "})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withSession(req))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"outcome":"detail_opened"}`, w.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - BindingError", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupSeatMapTestRouter(mockService)

		req := createJSONHTTPRequest(http.MethodPost, "/api/v1/seats/A-1-1/key", InvalidJSON)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withSession(req))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "SeatKey")
	})
}

func TestConfirmSeat(t *testing.T) {
	mockService := mocks.NewSeatMapServiceMock()
	router := setupSeatMapTestRouter(mockService)

	mockService.On("ConfirmSeat", mock.Anything, testSession, "A-1-1").Return(interaction.OutcomeToggled, nil).Once()

	req := createJSONHTTPRequest(http.MethodPost, "/api/v1/seats/A-1-1/confirm", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, withSession(req))

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestClearSelectionAndDismiss(t *testing.T) {
	mockService := mocks.NewSeatMapServiceMock()
	router := setupSeatMapTestRouter(mockService)

	mockService.On("Clear", mock.Anything, testSession).Return(nil).Once()
	mockService.On("DismissDetail", mock.Anything, testSession).Return(nil).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/selection", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, withSession(req))
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = createJSONHTTPRequest(http.MethodPost, "/api/v1/detail/dismiss", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, withSession(req))
	assert.Equal(t, http.StatusNoContent, w.Code)

	mockService.AssertExpectations(t)
}

func TestToggleHeatMap(t *testing.T) {
	mockService := mocks.NewSeatMapServiceMock()
	router := setupSeatMapTestRouter(mockService)

	mockService.On("ToggleHeatMap", mock.Anything, testSession).Return(true, nil).Once()

	req := createJSONHTTPRequest(http.MethodPost, "/api/v1/heatmap", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, withSession(req))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"heatMap":true}`, w.Body.String())
}

func TestZoom(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupSeatMapTestRouter(mockService)

		mockService.On("Zoom", mock.Anything, testSession, service.ZoomIn).Return(viewport.State{Zoom: 1.3, Active: true}, nil).Once()

		req := createJSONHTTPRequest(http.MethodPost, "/api/v1/zoom", gin.H{"op": "in"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withSession(req))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"zoom":1.3`)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - unknown op", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupSeatMapTestRouter(mockService)

		req := createJSONHTTPRequest(http.MethodPost, "/api/v1/zoom", gin.H{"op": "sideways"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withSession(req))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Zoom")
	})
}

func TestGesture(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupSeatMapTestRouter(mockService)

		event := service.GestureEvent{Phase: service.GestureBegin, Target: viewport.TargetSurface, X: 10, Y: 20}
		mockService.On("Gesture", mock.Anything, testSession, event).Return(viewport.State{Zoom: 1, Dragging: true}, nil).Once()

		req := createJSONHTTPRequest(http.MethodPost, "/api/v1/gesture", event)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withSession(req))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"dragging":true`)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ErrInvalidGestureTarget", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupSeatMapTestRouter(mockService)

		mockService.On("Gesture", mock.Anything, testSession, mock.Anything).Return(viewport.State{}, apperrors.ErrInvalidGestureTarget).Once()

		req := createJSONHTTPRequest(http.MethodPost, "/api/v1/gesture", gin.H{"phase": "begin", "target": "button"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withSession(req))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failed - missing phase", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupSeatMapTestRouter(mockService)

		req := createJSONHTTPRequest(http.MethodPost, "/api/v1/gesture", gin.H{"x": 1})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withSession(req))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Gesture")
	})
}

func TestReportLayout(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupSeatMapTestRouter(mockService)

		mockService.On("ReportLayout", mock.Anything, testSession, 500).Return(render.LayoutCompact, nil).Once()

		req := createJSONHTTPRequest(http.MethodPost, "/api/v1/layout", gin.H{"width": 500})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withSession(req))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"layout":"compact"}`, w.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - negative width", func(t *testing.T) {
		mockService := mocks.NewSeatMapServiceMock()
		router := setupSeatMapTestRouter(mockService)

		req := createJSONHTTPRequest(http.MethodPost, "/api/v1/layout", gin.H{"width": -5})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, withSession(req))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "ReportLayout")
	})
}
