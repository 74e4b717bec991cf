package mocks

import (
	"context"

	"seatmap/internal/interaction"
	"seatmap/internal/model"
	"seatmap/internal/render"
	"seatmap/internal/service"
	"seatmap/internal/viewport"

	"github.com/stretchr/testify/mock"
)

type SeatMapServiceMock struct {
	mock.Mock
}

func NewSeatMapServiceMock() *SeatMapServiceMock {
	return &SeatMapServiceMock{}
}

func (m *SeatMapServiceMock) Venue() *model.Venue {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*model.Venue)
}

func (m *SeatMapServiceMock) View(ctx context.Context, sessionID string) (*service.View, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.View), args.Error(1)
}

func (m *SeatMapServiceMock) Selection(ctx context.Context, sessionID string) (*service.SelectionView, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SelectionView), args.Error(1)
}

func (m *SeatMapServiceMock) ActivateSeat(ctx context.Context, sessionID, seatID string) (interaction.Outcome, error) {
	args := m.Called(ctx, sessionID, seatID)
	return args.Get(0).(interaction.Outcome), args.Error(1)
}

func (m *SeatMapServiceMock) SeatKey(ctx context.Context, sessionID, seatID, key string) (interaction.Outcome, error) {
	args := m.Called(ctx, sessionID, seatID, key)
	return args.Get(0).(interaction.Outcome), args.Error(1)
}

func (m *SeatMapServiceMock) ConfirmSeat(ctx context.Context, sessionID, seatID string) (interaction.Outcome, error) {
	args := m.Called(ctx, sessionID, seatID)
	return args.Get(0).(interaction.Outcome), args.Error(1)
}

func (m *SeatMapServiceMock) DismissDetail(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *SeatMapServiceMock) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *SeatMapServiceMock) ToggleHeatMap(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

func (m *SeatMapServiceMock) Zoom(ctx context.Context, sessionID string, op service.ZoomOp) (viewport.State, error) {
	args := m.Called(ctx, sessionID, op)
	return args.Get(0).(viewport.State), args.Error(1)
}

func (m *SeatMapServiceMock) Gesture(ctx context.Context, sessionID string, event service.GestureEvent) (viewport.State, error) {
	args := m.Called(ctx, sessionID, event)
	return args.Get(0).(viewport.State), args.Error(1)
}

func (m *SeatMapServiceMock) ReportLayout(ctx context.Context, sessionID string, width int) (render.Layout, error) {
	args := m.Called(ctx, sessionID, width)
	return args.Get(0).(render.Layout), args.Error(1)
}
