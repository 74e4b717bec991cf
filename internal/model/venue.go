package model

// Point 2D 座標
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Row 一排座位，Seats 依由左至右的繪製順序排列
type Row struct {
	Index int    `json:"index" db:"row_index" yaml:"index"`
	Seats []Seat `json:"seats" yaml:"seats"`
}

// SectionTransform 區塊在場館地圖上的位移與等比縮放
type SectionTransform struct {
	X     float64 `json:"x" db:"tx" yaml:"x"`
	Y     float64 `json:"y" db:"ty" yaml:"y"`
	Scale float64 `json:"scale" db:"scale" yaml:"scale"`
}

// Apply maps a section-local point into venue map coordinates.
func (t SectionTransform) Apply(p Point) Point {
	return Point{X: t.X + t.Scale*p.X, Y: t.Y + t.Scale*p.Y}
}

// Section 場館區塊
type Section struct {
	ID        string           `json:"id" db:"section_id" yaml:"id"`
	Label     string           `json:"label" db:"label" yaml:"label"`
	Transform SectionTransform `json:"transform" yaml:"transform"`
	Rows      []Row            `json:"rows" yaml:"rows"`
}

// MapSize 場館地圖畫布尺寸
type MapSize struct {
	Width  float64 `json:"width" db:"map_width" yaml:"width"`
	Height float64 `json:"height" db:"map_height" yaml:"height"`
}

// Venue 場館模型
type Venue struct {
	VenueID  string    `json:"venueId" db:"venue_id" yaml:"venueId"`
	Name     string    `json:"name" db:"name" yaml:"name"`
	Map      MapSize   `json:"map" yaml:"map"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// SeatCount 回傳場館座位總數
func (v *Venue) SeatCount() int {
	n := 0
	for _, section := range v.Sections {
		for _, row := range section.Rows {
			n += len(row.Seats)
		}
	}
	return n
}
