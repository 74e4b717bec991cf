package selection

import "seatmap/internal/model"

// IsEligible 只有 available 的座位可以留在選取集合中；載入與切換時共用
func IsEligible(seat model.Seat) bool {
	return seat.Status == model.SeatStatusAvailable
}

// Reconcile drops every seat that is no longer eligible, keeping order and
// the first occurrence of each id.
func Reconcile(seats []model.Seat) []model.Seat {
	out := make([]model.Seat, 0, len(seats))
	seen := make(map[string]struct{}, len(seats))
	for _, seat := range seats {
		if !IsEligible(seat) {
			continue
		}
		if _, dup := seen[seat.ID]; dup {
			continue
		}
		seen[seat.ID] = struct{}{}
		out = append(out, seat)
	}
	return out
}
