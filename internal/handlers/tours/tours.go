package tours

import (
	"context"

	"github.com/tkwed/tours-api/internal/db"
)

// Package tours provides the Tours HTTP handlers.
//
// This file defines the handler type and constructor only.
// The HTTP methods are split into dedicated files:
// - list.go:   Handler.List
// - get.go:    Handler.Get
// - create.go: Handler.Create
// - update.go: Handler.Update
// - delete.go: Handler.Delete
//
// Handlers never write error responses; they attach a *common.Error to the
// context and the error middleware renders it.

// Store is the persistence the handlers need. *db.DB implements it.
type Store interface {
	ListTours(ctx context.Context) ([]db.Tour, error)
	GetTour(ctx context.Context, id int64) (db.Tour, error)
	CreateTour(ctx context.Context, f db.TourFields) error
	UpdateTour(ctx context.Context, id int64, f db.TourFields) error
	DeleteTour(ctx context.Context, id int64) error
}

// Handler wires tour endpoints to the store.
type Handler struct{ store Store }

// New returns a new tours handler.
func New(s Store) *Handler { return &Handler{store: s} }
