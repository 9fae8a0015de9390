package model

import (
	"testing"
	"time"

	"github.com/deppfellow/printgallery/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func int32Ptr(n int32) *int32 { return &n }

func TestNewImagePatch_PriceOnlyTouchesPrice(t *testing.T) {
	uploaded := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	img := Image{
		ImageID:      7,
		Title:        "Tree",
		Description:  "A tree",
		DisplayName:  "tree.stl",
		PostedBy:     "alice",
		DateUploaded: uploaded,
		ThumbnailURL: "https://cdn/t.png",
		ObjImageURL:  "https://cdn/o.stl",
		Format:       strPtr("stl"),
		Likes:        3,
		Category:     strPtr("nature"),
	}
	want := img
	want.Price = int32Ptr(42)

	patch, err := NewImagePatch("price", "42")
	require.NoError(t, err)
	assert.Equal(t, "price", patch.Column)
	assert.Equal(t, int32Ptr(42), patch.Value)

	patch.Apply(&img)
	assert.Equal(t, want, img)
}

func TestNewImagePatch_EmptyClearsOptional(t *testing.T) {
	img := Image{Category: strPtr("nature"), Price: int32Ptr(5)}

	patch, err := NewImagePatch("category", "")
	require.NoError(t, err)
	assert.Equal(t, (*string)(nil), patch.Value)
	patch.Apply(&img)
	assert.Nil(t, img.Category)

	patch, err = NewImagePatch("price", "")
	require.NoError(t, err)
	patch.Apply(&img)
	assert.Nil(t, img.Price)
}

func TestNewImagePatch_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		errField string
	}{
		{"unknown column", "password; DROP TABLE images", "x", "valueToChange"},
		{"identity column", "image_id", "9", "valueToChange"},
		{"timestamp column", "date_uploaded", "0", "valueToChange"},
		{"empty name", "", "1", "valueToChange"},
		{"non integer likes", "likes", "many", "newValue"},
		{"likes overflow", "likes", "99999999999", "newValue"},
		{"empty likes", "likes", "", "newValue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewImagePatch(tt.field, tt.value)
			require.Error(t, err)

			var opErr *errs.Error
			require.ErrorAs(t, err, &opErr)
			assert.Equal(t, errs.KindInvalidArgument, opErr.Kind)
			assert.Equal(t, tt.errField, opErr.Field)
		})
	}
}

func TestNewCategoryPatch(t *testing.T) {
	cat := Category{TopicID: 1, Slug: "nature", Description: "Nature shots"}

	patch, err := NewCategoryPatch("Description", "Trees and rivers")
	require.NoError(t, err)
	assert.Equal(t, "description", patch.Column)
	patch.Apply(&cat)
	assert.Equal(t, Category{TopicID: 1, Slug: "nature", Description: "Trees and rivers"}, cat)

	_, err = NewCategoryPatch("topic_id", "2")
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
}

func TestNewUserPatch_ForenameAlias(t *testing.T) {
	patch, err := NewUserPatch("forename", "Alice Liddell")
	require.NoError(t, err)
	assert.Equal(t, "fullname", patch.Column)

	var u User
	patch.Apply(&u)
	assert.Equal(t, "Alice Liddell", u.Fullname)
}

func TestNewUserPatch_BoolAsText(t *testing.T) {
	patch, err := NewUserPatch("owns_printer", "true")
	require.NoError(t, err)
	assert.Equal(t, true, patch.Value)

	_, err = NewUserPatch("owns_printer", "maybe")
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
}

func TestNewUserFlagPatch(t *testing.T) {
	patch, err := NewUserFlagPatch("designer_tag", true)
	require.NoError(t, err)
	assert.Equal(t, "designer_tag", patch.Column)

	var u User
	patch.Apply(&u)
	assert.True(t, u.DesignerTag)
	assert.False(t, u.OwnsPrinter)

	_, err = NewUserFlagPatch("username", true)
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))

	_, err = NewUserFlagPatch("", true)
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
}
