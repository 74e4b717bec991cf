package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeatID(t *testing.T) {
	tests := []struct {
		id   string
		want SeatLocation
	}{
		{"A-1-1", SeatLocation{Section: "A", Row: "1", Number: "1"}},
		{"VIP-12-30", SeatLocation{Section: "VIP", Row: "12", Number: "30"}},
		{"B-2", SeatLocation{Section: "B", Row: "2"}},
		{"", SeatLocation{}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSeatID(tt.id))
		})
	}
}

func TestSeatStatus_IsValid(t *testing.T) {
	assert.True(t, SeatStatusAvailable.IsValid())
	assert.True(t, SeatStatusHeld.IsValid())
	assert.False(t, SeatStatus("selected").IsValid())
}

func TestSectionTransform_Apply(t *testing.T) {
	transform := SectionTransform{X: 100, Y: 50, Scale: 2}
	assert.Equal(t, Point{X: 120, Y: 70}, transform.Apply(Point{X: 10, Y: 10}))
}

func TestVenue_SeatCount(t *testing.T) {
	venue := &Venue{Sections: []Section{
		{Rows: []Row{{Seats: make([]Seat, 3)}, {Seats: make([]Seat, 2)}}},
		{Rows: []Row{{Seats: make([]Seat, 4)}}},
	}}
	assert.Equal(t, 9, venue.SeatCount())
}
