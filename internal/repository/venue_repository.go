package repository

import (
	"context"
	"errors"
	"fmt"

	"seatmap/internal/model"
	apperrors "seatmap/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const venueSchema = `
	CREATE TABLE IF NOT EXISTS venues (
		venue_id   TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		map_width  DOUBLE PRECISION NOT NULL,
		map_height DOUBLE PRECISION NOT NULL
	);
	CREATE TABLE IF NOT EXISTS venue_sections (
		venue_id   TEXT NOT NULL REFERENCES venues(venue_id) ON DELETE CASCADE,
		section_id TEXT NOT NULL,
		label      TEXT NOT NULL,
		tx         DOUBLE PRECISION NOT NULL,
		ty         DOUBLE PRECISION NOT NULL,
		scale      DOUBLE PRECISION NOT NULL,
		position   INT NOT NULL,
		PRIMARY KEY (venue_id, section_id)
	);
	CREATE TABLE IF NOT EXISTS venue_seats (
		venue_id   TEXT NOT NULL,
		section_id TEXT NOT NULL,
		row_index  INT NOT NULL,
		seat_id    TEXT NOT NULL,
		col        INT NOT NULL,
		x          DOUBLE PRECISION NOT NULL,
		y          DOUBLE PRECISION NOT NULL,
		price_tier INT NOT NULL,
		status     TEXT NOT NULL,
		position   INT NOT NULL,
		PRIMARY KEY (venue_id, seat_id),
		FOREIGN KEY (venue_id, section_id) REFERENCES venue_sections(venue_id, section_id) ON DELETE CASCADE
	);
`

type VenueRepository interface {
	EnsureSchema(ctx context.Context) error
	Create(ctx context.Context, venue *model.Venue) error
	FindByVenueID(ctx context.Context, venueID string) (*model.Venue, error)
}

type VenueRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewVenueRepository(pool *pgxpool.Pool) VenueRepository {
	return &VenueRepositoryImpl{
		pool: pool,
	}
}

func (r *VenueRepositoryImpl) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, venueSchema); err != nil {
		return fmt.Errorf("create venue schema: %w", err)
	}
	return nil
}

// Create 以單一 transaction 寫入場館、區塊與座位
func (r *VenueRepositoryImpl) Create(ctx context.Context, venue *model.Venue) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO venues (venue_id, name, map_width, map_height)
		VALUES ($1, $2, $3, $4)
	`, venue.VenueID, venue.Name, venue.Map.Width, venue.Map.Height)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for i, section := range venue.Sections {
		batch.Queue(`
			INSERT INTO venue_sections (venue_id, section_id, label, tx, ty, scale, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, venue.VenueID, section.ID, section.Label,
			section.Transform.X, section.Transform.Y, section.Transform.Scale, i)

		position := 0
		for _, row := range section.Rows {
			for _, seat := range row.Seats {
				batch.Queue(`
					INSERT INTO venue_seats (
						venue_id, section_id, row_index, seat_id, col, x, y, price_tier, status, position)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				`, venue.VenueID, section.ID, row.Index, seat.ID, seat.Col,
					seat.X, seat.Y, int(seat.PriceTier), string(seat.Status), position)
				position++
			}
		}
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *VenueRepositoryImpl) FindByVenueID(ctx context.Context, venueID string) (*model.Venue, error) {
	var venue model.Venue
	err := r.pool.QueryRow(ctx, `
		SELECT venue_id, name, map_width, map_height
		FROM venues
		WHERE venue_id = $1
	`, venueID).Scan(
		&venue.VenueID,
		&venue.Name,
		&venue.Map.Width,
		&venue.Map.Height,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrVenueNotFound
		}
		return nil, err
	}

	sectionIndex, err := r.loadSections(ctx, &venue)
	if err != nil {
		return nil, err
	}
	if err := r.loadSeats(ctx, &venue, sectionIndex); err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *VenueRepositoryImpl) loadSections(ctx context.Context, venue *model.Venue) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT section_id, label, tx, ty, scale
		FROM venue_sections
		WHERE venue_id = $1
		ORDER BY position
	`, venue.VenueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := make(map[string]int)
	for rows.Next() {
		var section model.Section
		err := rows.Scan(
			&section.ID,
			&section.Label,
			&section.Transform.X,
			&section.Transform.Y,
			&section.Transform.Scale,
		)
		if err != nil {
			return nil, err
		}
		index[section.ID] = len(venue.Sections)
		venue.Sections = append(venue.Sections, section)
	}
	return index, rows.Err()
}

// loadSeats 座位依 (row_index, position) 排序，同排座位連續出現
func (r *VenueRepositoryImpl) loadSeats(ctx context.Context, venue *model.Venue, sectionIndex map[string]int) error {
	rows, err := r.pool.Query(ctx, `
		SELECT section_id, row_index, seat_id, col, x, y, price_tier, status
		FROM venue_seats
		WHERE venue_id = $1
		ORDER BY section_id, row_index, position
	`, venue.VenueID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			sectionID string
			rowIndex  int
			seat      model.Seat
			tier      int
			status    string
		)
		err := rows.Scan(&sectionID, &rowIndex, &seat.ID, &seat.Col, &seat.X, &seat.Y, &tier, &status)
		if err != nil {
			return err
		}
		seat.PriceTier = model.PriceTier(tier)
		seat.Status = model.SeatStatus(status)

		i, ok := sectionIndex[sectionID]
		if !ok {
			continue
		}
		section := &venue.Sections[i]
		if n := len(section.Rows); n == 0 || section.Rows[n-1].Index != rowIndex {
			section.Rows = append(section.Rows, model.Row{Index: rowIndex})
		}
		last := &section.Rows[len(section.Rows)-1]
		last.Seats = append(last.Seats, seat)
	}
	return rows.Err()
}
