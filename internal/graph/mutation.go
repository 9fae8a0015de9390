package graph

import (
	"context"

	"github.com/deppfellow/printgallery/internal/errs"
	"github.com/deppfellow/printgallery/internal/model"
	"github.com/graph-gophers/graphql-go"
)

type addUserArgs struct {
	Username     string
	Fullname     string
	EmailAddress string
	Location     string
	OwnsPrinter  *bool
	DesignerTag  *bool
	Avatar       *string
	Rating       *int32
}

func (r *Resolver) AddUser(ctx context.Context, args addUserArgs) (*userResolver, error) {
	u, err := r.users.Create(ctx, model.NewUser{
		Username:     args.Username,
		Fullname:     args.Fullname,
		EmailAddress: args.EmailAddress,
		Location:     args.Location,
		OwnsPrinter:  args.OwnsPrinter,
		DesignerTag:  args.DesignerTag,
		Avatar:       args.Avatar,
		Rating:       args.Rating,
	})
	if err != nil {
		return nil, gqlError(err)
	}
	return r.userOf(u), nil
}

type addCategoryArgs struct {
	Slug        string
	Description string
}

func (r *Resolver) AddCategory(ctx context.Context, args addCategoryArgs) (*categoryResolver, error) {
	c, err := r.categories.Create(ctx, model.NewCategory{
		Slug:        args.Slug,
		Description: args.Description,
	})
	if err != nil {
		return nil, gqlError(err)
	}
	return r.categoryOf(c), nil
}

type addImageArgs struct {
	Title        string
	Description  string
	DisplayName  string
	PostedBy     string
	Price        *int32
	ThumbnailURL string
	ObjImageURL  string
	Format       *string
	Category     *string
}

func (r *Resolver) AddImage(ctx context.Context, args addImageArgs) (*imageResolver, error) {
	img, err := r.images.Create(ctx, model.NewImage{
		Title:        args.Title,
		Description:  args.Description,
		DisplayName:  args.DisplayName,
		PostedBy:     args.PostedBy,
		Price:        args.Price,
		ThumbnailURL: args.ThumbnailURL,
		ObjImageURL:  args.ObjImageURL,
		Format:       args.Format,
		Category:     args.Category,
	})
	if err != nil {
		return nil, gqlError(err)
	}
	return r.imageOf(img), nil
}

func (r *Resolver) DeleteCategory(ctx context.Context, args struct{ Slug string }) (*categoryResolver, error) {
	c, err := r.categories.Delete(ctx, args.Slug)
	if err != nil {
		return nil, gqlError(err)
	}
	return r.categoryOf(c), nil
}

func (r *Resolver) DeleteUser(ctx context.Context, args struct{ Username string }) (*userResolver, error) {
	u, err := r.users.Delete(ctx, args.Username)
	if err != nil {
		return nil, gqlError(err)
	}
	return r.userOf(u), nil
}

// DeleteImage keeps the nullable image_id argument; a missing id is an
// INVALID_ARGUMENT error rather than a no-op.
func (r *Resolver) DeleteImage(ctx context.Context, args struct{ ImageID *graphql.ID }) (*imageResolver, error) {
	if args.ImageID == nil {
		return nil, errs.InvalidArgument("image_id", "image_id is required")
	}

	id, err := parseID("image_id", *args.ImageID)
	if err != nil {
		return nil, gqlError(err)
	}

	img, err := r.images.Delete(ctx, id)
	if err != nil {
		return nil, gqlError(err)
	}
	return r.imageOf(img), nil
}

type updateImageArgs struct {
	ValueToChange string
	NewValue      string
	ImageID       int32
}

func (r *Resolver) UpdateImage(ctx context.Context, args updateImageArgs) (*imageResolver, error) {
	img, err := r.images.Update(ctx, args.ImageID, args.ValueToChange, args.NewValue)
	if err != nil {
		return nil, gqlError(err)
	}
	return r.imageOf(img), nil
}

type updateCategoryArgs struct {
	ValueToUpdate string
	NewValue      string
	TopicID       int32
}

func (r *Resolver) UpdateCategory(ctx context.Context, args updateCategoryArgs) (*categoryResolver, error) {
	c, err := r.categories.Update(ctx, args.TopicID, args.ValueToUpdate, args.NewValue)
	if err != nil {
		return nil, gqlError(err)
	}
	return r.categoryOf(c), nil
}

type updateUserArgs struct {
	ValueToUpdate *string
	NewValue      string
	UserID        int32
}

func (r *Resolver) UpdateUser(ctx context.Context, args updateUserArgs) (*userResolver, error) {
	u, err := r.users.Update(ctx, args.UserID, deref(args.ValueToUpdate), args.NewValue)
	if err != nil {
		return nil, gqlError(err)
	}
	return r.userOf(u), nil
}

type updateUserBoolsArgs struct {
	ValueToUpdate *string
	NewValue      bool
	UserID        int32
}

func (r *Resolver) UpdateUserBools(ctx context.Context, args updateUserBoolsArgs) (*userResolver, error) {
	u, err := r.users.UpdateFlag(ctx, args.UserID, deref(args.ValueToUpdate), args.NewValue)
	if err != nil {
		return nil, gqlError(err)
	}
	return r.userOf(u), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
