package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/printgallery/internal/errs"
	"github.com/deppfellow/printgallery/internal/model"
	"github.com/deppfellow/printgallery/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const imageColumns = "image_id, title, description, display_name, posted_by, date_uploaded, " +
	"price, thumbnail_url, obj_image_url, format, likes, category"

// ImageRepository is the Postgres implementation of Images.
type ImageRepository struct {
	db DBTX
}

func NewImageRepository(db DBTX) *ImageRepository {
	return &ImageRepository{db: db}
}

func scanImage(row pgx.Row) (model.Image, error) {
	var i model.Image
	err := row.Scan(
		&i.ImageID,
		&i.Title,
		&i.Description,
		&i.DisplayName,
		&i.PostedBy,
		&i.DateUploaded,
		&i.Price,
		&i.ThumbnailURL,
		&i.ObjImageURL,
		&i.Format,
		&i.Likes,
		&i.Category,
	)
	return i, err
}

func (r *ImageRepository) one(ctx context.Context, sql string, args ...any) (*model.Image, error) {
	i, err := scanImage(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, sqlerr.HandleError(err, "image")
	}
	return &i, nil
}

func (r *ImageRepository) many(ctx context.Context, sql string, args ...any) ([]model.Image, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, sqlerr.HandleError(err, "image")
	}

	images, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Image, error) {
		return scanImage(row)
	})
	if err != nil {
		return nil, sqlerr.HandleError(err, "image")
	}
	return images, nil
}

func (r *ImageRepository) List(ctx context.Context) ([]model.Image, error) {
	return r.many(ctx, `SELECT `+imageColumns+` FROM images ORDER BY image_id`)
}

func (r *ImageRepository) GetByID(ctx context.Context, imageID int32) (*model.Image, error) {
	return r.one(ctx, `SELECT `+imageColumns+` FROM images WHERE image_id = $1`, imageID)
}

// ListByCategory backs Categories.images; it is served by idx_images_category.
func (r *ImageRepository) ListByCategory(ctx context.Context, slug string) ([]model.Image, error) {
	return r.many(ctx, `SELECT `+imageColumns+` FROM images WHERE category = $1 ORDER BY image_id`, slug)
}

// ListByPoster backs Users.images; it is served by idx_images_posted_by.
func (r *ImageRepository) ListByPoster(ctx context.Context, username string) ([]model.Image, error) {
	return r.many(ctx, `SELECT `+imageColumns+` FROM images WHERE posted_by = $1 ORDER BY image_id`, username)
}

func (r *ImageRepository) Create(ctx context.Context, in model.NewImage) (*model.Image, error) {
	return r.one(ctx,
		`INSERT INTO images (title, description, display_name, posted_by, price, thumbnail_url, obj_image_url, format, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+imageColumns,
		in.Title,
		in.Description,
		in.DisplayName,
		in.PostedBy,
		in.Price,
		in.ThumbnailURL,
		in.ObjImageURL,
		in.Format,
		in.Category,
	)
}

func (r *ImageRepository) Delete(ctx context.Context, imageID int32) (*model.Image, error) {
	return r.one(ctx, `DELETE FROM images WHERE image_id = $1 RETURNING `+imageColumns, imageID)
}

func (r *ImageRepository) Update(ctx context.Context, imageID int32, patch model.Patch[model.Image]) (*model.Image, error) {
	if patch.Column == "" {
		return nil, errs.InvalidArgument("valueToChange", "valueToChange is required")
	}

	sql := fmt.Sprintf(`UPDATE images SET %s = $1 WHERE image_id = $2 RETURNING %s`,
		pgx.Identifier{patch.Column}.Sanitize(), imageColumns)

	return r.one(ctx, sql, patch.Value, imageID)
}
