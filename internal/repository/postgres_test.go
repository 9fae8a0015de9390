package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/deppfellow/printgallery/internal/errs"
	"github.com/deppfellow/printgallery/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func strPtr(s string) *string { return &s }
func int32Ptr(n int32) *int32 { return &n }

var (
	categoryCols = []string{"topic_id", "slug", "description"}
	imageCols    = []string{
		"image_id", "title", "description", "display_name", "posted_by", "date_uploaded",
		"price", "thumbnail_url", "obj_image_url", "format", "likes", "category",
	}
	userCols = []string{
		"user_id", "username", "fullname", "email_address", "date_joined", "location",
		"owns_printer", "designer_tag", "avatar", "rating",
	}
)

func TestCategoryRepository_List(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT topic_id, slug, description FROM categories ORDER BY topic_id`)).
		WillReturnRows(pgxmock.NewRows(categoryCols).
			AddRow(int32(1), "nature", "Nature shots").
			AddRow(int32(2), "tools", "Workshop tools"))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Category{
		{TopicID: 1, Slug: "nature", Description: "Nature shots"},
		{TopicID: 2, Slug: "tools", Description: "Workshop tools"},
	}, got)
}

func TestCategoryRepository_CreateDuplicate(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO categories (slug, description) VALUES ($1, $2) RETURNING topic_id, slug, description`)).
		WithArgs("nature", "Nature shots").
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			TableName:      "categories",
			ConstraintName: "categories_slug_key",
		})

	_, err := repo.Create(context.Background(), model.NewCategory{Slug: "nature", Description: "Nature shots"})
	require.Error(t, err)

	var opErr *errs.Error
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, errs.KindConstraintViolation, opErr.Kind)
	assert.Equal(t, "CATEGORY_ALREADY_EXISTS", opErr.Code)
	assert.Equal(t, "slug", opErr.Field)
}

func TestCategoryRepository_DeleteMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM categories WHERE slug = $1 RETURNING`)).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(categoryCols))

	_, err := repo.DeleteBySlug(context.Background(), "ghost")
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestCategoryRepository_UpdateQuotesColumn(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock)

	patch, err := model.NewCategoryPatch("description", "Trees")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE categories SET "description" = $1 WHERE topic_id = $2 RETURNING`)).
		WithArgs("Trees", int32(1)).
		WillReturnRows(pgxmock.NewRows(categoryCols).AddRow(int32(1), "nature", "Trees"))

	got, err := repo.Update(context.Background(), 1, patch)
	require.NoError(t, err)
	assert.Equal(t, "Trees", got.Description)
}

func TestImageRepository_UpdatePrice(t *testing.T) {
	mock := newMock(t)
	repo := NewImageRepository(mock)
	uploaded := time.Date(2020, 5, 1, 12, 0, 0, 0, time.UTC)

	patch, err := model.NewImagePatch("price", "42")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE images SET "price" = $1 WHERE image_id = $2 RETURNING`)).
		WithArgs(int32Ptr(42), int32(7)).
		WillReturnRows(pgxmock.NewRows(imageCols).AddRow(
			int32(7), "Tree", "A tree", "tree.stl", "alice", uploaded,
			int32Ptr(42), "https://cdn/t.png", "https://cdn/o.stl", strPtr("stl"), int32(3), strPtr("nature"),
		))

	got, err := repo.Update(context.Background(), 7, patch)
	require.NoError(t, err)
	assert.Equal(t, &model.Image{
		ImageID:      7,
		Title:        "Tree",
		Description:  "A tree",
		DisplayName:  "tree.stl",
		PostedBy:     "alice",
		DateUploaded: uploaded,
		Price:        int32Ptr(42),
		ThumbnailURL: "https://cdn/t.png",
		ObjImageURL:  "https://cdn/o.stl",
		Format:       strPtr("stl"),
		Likes:        3,
		Category:     strPtr("nature"),
	}, got)
}

func TestImageRepository_UpdateWithoutColumn(t *testing.T) {
	repo := NewImageRepository(newMock(t))

	_, err := repo.Update(context.Background(), 1, model.Patch[model.Image]{})
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
}

func TestImageRepository_ListByCategory(t *testing.T) {
	mock := newMock(t)
	repo := NewImageRepository(mock)
	uploaded := time.Date(2020, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM images WHERE category = $1 ORDER BY image_id`)).
		WithArgs("nature").
		WillReturnRows(pgxmock.NewRows(imageCols).AddRow(
			int32(1), "Tree", "A tree", "tree.stl", "alice", uploaded,
			(*int32)(nil), "t", "o", (*string)(nil), int32(0), strPtr("nature"),
		))

	got, err := repo.ListByCategory(context.Background(), "nature")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Tree", got[0].Title)
	assert.Nil(t, got[0].Price)
}

func TestImageRepository_ConnectionFailure(t *testing.T) {
	mock := newMock(t)
	repo := NewImageRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT image_id`)).
		WillReturnError(&pgconn.PgError{Code: "57P01"})

	_, err := repo.List(context.Background())
	assert.Equal(t, errs.KindConnectionFailure, errs.KindOf(err))
}

func TestUserRepository_CreateDefaultsFlags(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	joined := time.Date(2021, 2, 3, 0, 0, 0, 0, time.UTC)

	in := model.NewUser{
		Username:     "alice",
		Fullname:     "Alice Liddell",
		EmailAddress: "alice@example.com",
		Location:     "Oxford",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`COALESCE($5, false), COALESCE($6, false)`)).
		WithArgs("alice", "Alice Liddell", "alice@example.com", "Oxford",
			(*bool)(nil), (*bool)(nil), (*string)(nil), (*int32)(nil)).
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(
			int32(1), "alice", "Alice Liddell", "alice@example.com", joined, "Oxford",
			false, false, (*string)(nil), (*int32)(nil),
		))

	got, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int32(1), got.UserID)
	assert.Equal(t, joined, got.DateJoined)
	assert.False(t, got.OwnsPrinter)
}

func TestUserRepository_UpdateFlag(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	joined := time.Date(2021, 2, 3, 0, 0, 0, 0, time.UTC)

	patch, err := model.NewUserFlagPatch("owns_printer", true)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET "owns_printer" = $1 WHERE user_id = $2`)).
		WithArgs(true, int32(4)).
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(
			int32(4), "alice", "Alice Liddell", "alice@example.com", joined, "Oxford",
			true, false, (*string)(nil), (*int32)(nil),
		))

	got, err := repo.Update(context.Background(), 4, patch)
	require.NoError(t, err)
	assert.True(t, got.OwnsPrinter)
}

func TestUserRepository_GetByUsernameMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE username = $1`)).
		WithArgs("nobody").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "nobody")
	assert.True(t, errors.Is(err, &errs.Error{Kind: errs.KindNotFound}))
}
