package db

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tkwed/tours-api/internal/metrics"
)

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// TourFields are the caller-supplied columns of a tour. Every field is
// nullable: an attribute missing from a create or update body is stored as NULL.
type TourFields struct {
	TourName       *string             `db:"tour_name" json:"TourName"`
	Description    *string             `db:"description" json:"Description"`
	Destination    *string             `db:"destination" json:"Destination"`
	Itinerary      *string             `db:"itinerary" json:"Itinerary"`
	Highlights     *string             `db:"highlights" json:"Highlights"`
	StartDate      *Date               `db:"start_date" json:"StartDate"`
	EndDate        *Date               `db:"end_date" json:"EndDate"`
	Price          decimal.NullDecimal `db:"price" json:"Price"`
	AvailableSeats *int                `db:"available_seats" json:"AvailableSeats" binding:"omitempty,gte=0"`
	TourType       *string             `db:"tour_type" json:"TourType"`
	ImageURL       *string             `db:"image_url" json:"ImageURL"`
	Rating         *float64            `db:"rating" json:"Rating"`
	ReviewsCount   *int                `db:"reviews_count" json:"ReviewsCount" binding:"omitempty,gte=0"`
}

// Tour is one row of the Tours table.
type Tour struct {
	TourID int64 `db:"tour_id" json:"TourID"`
	TourFields
}

const tourColumns = `tour_id, tour_name, description, destination, itinerary, highlights,
	start_date, end_date, price, available_seats, tour_type, image_url, rating, reviews_count`

var tracer = otel.Tracer("github.com/tkwed/tours-api/internal/db")

// observe opens a span and times one store statement; the returned func
// must be called with the statement's final error.
func observe(ctx context.Context, op string) (context.Context, func(error)) {
	ctx, span := tracer.Start(ctx, "tours."+op)
	span.SetAttributes(attribute.String("db.operation", op))
	start := time.Now()
	return ctx, func(err error) {
		metrics.StoreDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		if err != nil && !errors.Is(err, ErrNotFound) {
			metrics.StoreErrors.WithLabelValues(op).Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

// ListTours returns every row of the table, ordered by id.
func (d *DB) ListTours(ctx context.Context) (tours []Tour, err error) {
	ctx, done := observe(ctx, "list")
	defer func() { done(err) }()

	tours = []Tour{}
	if err = d.SelectContext(ctx, &tours, "SELECT "+tourColumns+" FROM Tours ORDER BY tour_id"); err != nil {
		return nil, classify(err)
	}
	return tours, nil
}

// GetTour loads a tour by id, or returns ErrNotFound.
func (d *DB) GetTour(ctx context.Context, id int64) (t Tour, err error) {
	ctx, done := observe(ctx, "get")
	defer func() { done(err) }()

	q := d.Rebind("SELECT " + tourColumns + " FROM Tours WHERE tour_id = ?")
	if err = d.GetContext(ctx, &t, q, id); err != nil {
		return Tour{}, classify(err)
	}
	return t, nil
}

// CreateTour inserts a new row; the id is assigned by the store.
func (d *DB) CreateTour(ctx context.Context, f TourFields) (err error) {
	ctx, done := observe(ctx, "create")
	defer func() { done(err) }()

	_, err = d.NamedExecContext(ctx, `INSERT INTO Tours (
		tour_name, description, destination, itinerary, highlights, start_date, end_date, price,
		available_seats, tour_type, image_url, rating, reviews_count
	) VALUES (
		:tour_name, :description, :destination, :itinerary, :highlights, :start_date, :end_date, :price,
		:available_seats, :tour_type, :image_url, :rating, :reviews_count
	)`, f)
	return classify(err)
}

// UpdateTour overwrites every non-key column of the tour. Fields left nil are
// written as NULL. Returns ErrNotFound when no row has the id.
func (d *DB) UpdateTour(ctx context.Context, id int64, f TourFields) (err error) {
	ctx, done := observe(ctx, "update")
	defer func() { done(err) }()

	res, err := d.NamedExecContext(ctx, `UPDATE Tours SET
		tour_name = :tour_name, description = :description, destination = :destination,
		itinerary = :itinerary, highlights = :highlights, start_date = :start_date,
		end_date = :end_date, price = :price, available_seats = :available_seats,
		tour_type = :tour_type, image_url = :image_url, rating = :rating, reviews_count = :reviews_count
	WHERE tour_id = :tour_id`, Tour{TourID: id, TourFields: f})
	if err != nil {
		return classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classify(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTour removes the tour if present. Deleting a missing id is not an error.
func (d *DB) DeleteTour(ctx context.Context, id int64) (err error) {
	ctx, done := observe(ctx, "delete")
	defer func() { done(err) }()

	_, err = d.ExecContext(ctx, d.Rebind("DELETE FROM Tours WHERE tour_id = ?"), id)
	return classify(err)
}
