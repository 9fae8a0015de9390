package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/printgallery/internal/errs"
	"github.com/deppfellow/printgallery/internal/model"
	"github.com/deppfellow/printgallery/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const categoryColumns = "topic_id, slug, description"

// CategoryRepository is the Postgres implementation of Categories.
type CategoryRepository struct {
	db DBTX
}

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func scanCategory(row pgx.Row) (model.Category, error) {
	var c model.Category
	err := row.Scan(&c.TopicID, &c.Slug, &c.Description)
	return c, err
}

func (r *CategoryRepository) one(ctx context.Context, sql string, args ...any) (*model.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, sqlerr.HandleError(err, "category")
	}
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY topic_id`)
	if err != nil {
		return nil, sqlerr.HandleError(err, "category")
	}

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Category, error) {
		return scanCategory(row)
	})
	if err != nil {
		return nil, sqlerr.HandleError(err, "category")
	}
	return categories, nil
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return r.one(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
}

func (r *CategoryRepository) Create(ctx context.Context, in model.NewCategory) (*model.Category, error) {
	return r.one(ctx,
		`INSERT INTO categories (slug, description) VALUES ($1, $2) RETURNING `+categoryColumns,
		in.Slug, in.Description,
	)
}

func (r *CategoryRepository) DeleteBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return r.one(ctx, `DELETE FROM categories WHERE slug = $1 RETURNING `+categoryColumns, slug)
}

// Update sets the single column named by patch. The identifier comes from
// the model allow-list and is quoted before it reaches the statement.
func (r *CategoryRepository) Update(ctx context.Context, topicID int32, patch model.Patch[model.Category]) (*model.Category, error) {
	if patch.Column == "" {
		return nil, errs.InvalidArgument("valueToUpdate", "valueToUpdate is required")
	}

	sql := fmt.Sprintf(`UPDATE categories SET %s = $1 WHERE topic_id = $2 RETURNING %s`,
		pgx.Identifier{patch.Column}.Sanitize(), categoryColumns)

	return r.one(ctx, sql, patch.Value, topicID)
}
