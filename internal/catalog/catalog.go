package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"seatmap/config"
	"seatmap/internal/model"
	apperrors "seatmap/pkg/app_errors"
	"seatmap/pkg/logger"

	"github.com/tidwall/jsonc"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed data/venue.jsonc
var embedded embed.FS

const embeddedVenuePath = "data/venue.jsonc"

// Catalog 唯讀場館資料與座位索引
type Catalog struct {
	venue *model.Venue
	seats map[string]model.Seat
}

func New(venue *model.Venue) *Catalog {
	c := &Catalog{
		venue: venue,
		seats: make(map[string]model.Seat, venue.SeatCount()),
	}
	for _, section := range venue.Sections {
		for _, row := range section.Rows {
			for _, seat := range row.Seats {
				c.seats[seat.ID] = seat
			}
		}
	}
	return c
}

func (c *Catalog) Venue() *model.Venue {
	return c.venue
}

// Seat 依 id 查詢座位
func (c *Catalog) Seat(id string) (model.Seat, error) {
	seat, ok := c.seats[id]
	if !ok {
		return model.Seat{}, fmt.Errorf("seat %q: %w", id, apperrors.ErrSeatNotFound)
	}
	return seat, nil
}

// Parse 解析 JSON 或 JSONC（允許註解與結尾逗號）
func Parse(data []byte) (*model.Venue, error) {
	var venue model.Venue
	if err := json.Unmarshal(jsonc.ToJSON(data), &venue); err != nil {
		return nil, fmt.Errorf("parsing venue: %w", err)
	}
	return &venue, nil
}

func ParseYAML(data []byte) (*model.Venue, error) {
	var venue model.Venue
	if err := yaml.Unmarshal(data, &venue); err != nil {
		return nil, fmt.Errorf("parsing venue yaml: %w", err)
	}
	return &venue, nil
}

// ReadFile 依副檔名選擇解析方式
func ReadFile(path string) (*model.Venue, error) {
	var parse func([]byte) (*model.Venue, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		parse = Parse
	case ".yaml", ".yml":
		parse = ParseYAML
	default:
		return nil, fmt.Errorf("%s: %w", path, apperrors.ErrUnsupportedCatalog)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	venue, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return venue, nil
}

// Default 內建的預設場館
func Default() (*model.Venue, error) {
	data, err := embedded.ReadFile(embeddedVenuePath)
	if err != nil {
		return nil, fmt.Errorf("reading embedded venue: %w", err)
	}
	return Parse(data)
}

// VenueFinder 從資料庫讀取場館
type VenueFinder interface {
	FindByVenueID(ctx context.Context, venueID string) (*model.Venue, error)
}

// Open 依設定載入場館；finder 只有 postgres 來源才需要
func Open(ctx context.Context, cfg config.CatalogConfig, finder VenueFinder) (*Catalog, error) {
	log := logger.WithComponent("catalog")

	var (
		venue *model.Venue
		err   error
	)
	switch cfg.Source {
	case config.CatalogSourceEmbedded, "":
		venue, err = Default()
	case config.CatalogSourceFile:
		venue, err = ReadFile(cfg.Path)
	case config.CatalogSourcePostgres:
		if finder == nil {
			return nil, fmt.Errorf("postgres catalog without repository: %w", apperrors.ErrInvalidInput)
		}
		venue, err = finder.FindByVenueID(ctx, cfg.VenueID)
	default:
		return nil, fmt.Errorf("catalog source %q: %w", cfg.Source, apperrors.ErrUnsupportedCatalog)
	}
	if err != nil {
		return nil, err
	}

	log.Info("Venue loaded",
		zap.String("source", string(cfg.Source)),
		zap.String("venue_id", venue.VenueID),
		zap.Int("sections", len(venue.Sections)),
		zap.Int("seats", venue.SeatCount()),
	)
	return New(venue), nil
}
