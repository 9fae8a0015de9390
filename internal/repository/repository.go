// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
//
// Every method returns either a row or a typed *errs.Error: driver errors
// are converted with sqlerr.HandleError before they leave the package.
package repository

import (
	"context"

	"github.com/deppfellow/printgallery/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the part of pgxpool.Pool the Postgres repositories use.
// pgxmock pools satisfy it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Categories stores categories. Slugs are unique.
type Categories interface {
	List(ctx context.Context) ([]model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	Create(ctx context.Context, in model.NewCategory) (*model.Category, error)
	DeleteBySlug(ctx context.Context, slug string) (*model.Category, error)
	Update(ctx context.Context, topicID int32, patch model.Patch[model.Category]) (*model.Category, error)
}

// Images stores images.
type Images interface {
	List(ctx context.Context) ([]model.Image, error)
	GetByID(ctx context.Context, imageID int32) (*model.Image, error)
	ListByCategory(ctx context.Context, slug string) ([]model.Image, error)
	ListByPoster(ctx context.Context, username string) ([]model.Image, error)
	Create(ctx context.Context, in model.NewImage) (*model.Image, error)
	Delete(ctx context.Context, imageID int32) (*model.Image, error)
	Update(ctx context.Context, imageID int32, patch model.Patch[model.Image]) (*model.Image, error)
}

// Users stores users. Usernames are unique.
type Users interface {
	List(ctx context.Context) ([]model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, in model.NewUser) (*model.User, error)
	DeleteByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, userID int32, patch model.Patch[model.User]) (*model.User, error)
}
