package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/deppfellow/printgallery/internal/errs"
	"github.com/deppfellow/printgallery/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CategoryImagesAreFilteredBySlug(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories(NewMemoryStore())

	_, err := repos.Categories.Create(ctx, model.NewCategory{Slug: "nature", Description: "Nature shots"})
	require.NoError(t, err)

	for _, in := range []model.NewImage{
		{Title: "Tree", PostedBy: "alice", Category: strPtr("nature")},
		{Title: "Wrench", PostedBy: "bob", Category: strPtr("tools")},
		{Title: "River", PostedBy: "alice", Category: strPtr("nature")},
		{Title: "Loose", PostedBy: "bob"},
	} {
		_, err := repos.Images.Create(ctx, in)
		require.NoError(t, err)
	}

	nature, err := repos.Images.ListByCategory(ctx, "nature")
	require.NoError(t, err)
	titles := []string{}
	for _, img := range nature {
		titles = append(titles, img.Title)
	}
	assert.ElementsMatch(t, []string{"Tree", "River"}, titles)

	byBob, err := repos.Images.ListByPoster(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, byBob, 2)

	none, err := repos.Images.ListByCategory(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStore_UniqueSlugAndUsername(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories(NewMemoryStore())

	_, err := repos.Categories.Create(ctx, model.NewCategory{Slug: "nature"})
	require.NoError(t, err)
	_, err = repos.Categories.Create(ctx, model.NewCategory{Slug: "nature"})
	assert.Equal(t, errs.KindConstraintViolation, errs.KindOf(err))

	_, err = repos.Users.Create(ctx, model.NewUser{Username: "alice"})
	require.NoError(t, err)
	bob, err := repos.Users.Create(ctx, model.NewUser{Username: "bob"})
	require.NoError(t, err)

	patch, err := model.NewUserPatch("username", "alice")
	require.NoError(t, err)
	_, err = repos.Users.Update(ctx, bob.UserID, patch)
	assert.Equal(t, errs.KindConstraintViolation, errs.KindOf(err))

	got, err := repos.Users.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)
}

func TestMemoryStore_DeleteAndNotFound(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories(NewMemoryStore())

	created, err := repos.Categories.Create(ctx, model.NewCategory{Slug: "nature", Description: "d"})
	require.NoError(t, err)

	deleted, err := repos.Categories.DeleteBySlug(ctx, "nature")
	require.NoError(t, err)
	assert.Equal(t, created, deleted)

	_, err = repos.Categories.DeleteBySlug(ctx, "nature")
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	_, err = repos.Images.Delete(ctx, 99)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	patch, err := model.NewImagePatch("likes", "1")
	require.NoError(t, err)
	_, err = repos.Images.Update(ctx, 99, patch)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestMemoryStore_UserFlagsDefaultFalse(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories(NewMemoryStore())

	yes := true
	u, err := repos.Users.Create(ctx, model.NewUser{Username: "alice", DesignerTag: &yes})
	require.NoError(t, err)
	assert.False(t, u.OwnsPrinter)
	assert.True(t, u.DesignerTag)
	assert.False(t, u.DateJoined.IsZero())
}

func TestMemoryStore_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories(NewMemoryStore())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repos.Images.Create(ctx, model.NewImage{Title: "x"})
		}()
	}
	wg.Wait()

	all, err := repos.Images.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 50)

	seen := map[int32]bool{}
	for _, img := range all {
		assert.False(t, seen[img.ImageID])
		seen[img.ImageID] = true
	}
}
