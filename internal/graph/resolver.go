package graph

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/deppfellow/printgallery/internal/errs"
	"github.com/deppfellow/printgallery/internal/model"
	"github.com/deppfellow/printgallery/internal/service"
	"github.com/graph-gophers/graphql-go"
)

// Resolver is the root value for both Query and Mutation.
type Resolver struct {
	categories *service.CategoryService
	images     *service.ImageService
	users      *service.UserService
}

func NewResolver(services *service.Services) *Resolver {
	return &Resolver{
		categories: services.Categories,
		images:     services.Images,
		users:      services.Users,
	}
}

// gqlError makes sure graphql-go sees the *errs.Error itself, since it
// reads extensions with a plain type assertion.
func gqlError(err error) error {
	var opErr *errs.Error
	if errors.As(err, &opErr) {
		return opErr
	}
	return errs.Internal(err)
}

func idOf(n int32) *graphql.ID {
	id := graphql.ID(strconv.FormatInt(int64(n), 10))
	return &id
}

func parseID(field string, id graphql.ID) (int32, error) {
	n, err := strconv.ParseInt(string(id), 10, 32)
	if err != nil {
		return 0, errs.InvalidArgument(field, field+" must be a numeric id")
	}
	return int32(n), nil
}

// unixSeconds returns nil for zero times and for times outside the Int range.
func unixSeconds(t time.Time) *int32 {
	if t.IsZero() {
		return nil
	}
	u := t.Unix()
	if u > math.MaxInt32 || u < math.MinInt32 {
		return nil
	}
	s := int32(u)
	return &s
}

func (r *Resolver) imageList(images []model.Image) *[]*imageResolver {
	out := make([]*imageResolver, len(images))
	for i := range images {
		out[i] = &imageResolver{root: r, img: images[i]}
	}
	return &out
}

func (r *Resolver) categoryOf(c *model.Category) *categoryResolver {
	if c == nil {
		return nil
	}
	return &categoryResolver{root: r, c: *c}
}

func (r *Resolver) imageOf(img *model.Image) *imageResolver {
	if img == nil {
		return nil
	}
	return &imageResolver{root: r, img: *img}
}

func (r *Resolver) userOf(u *model.User) *userResolver {
	if u == nil {
		return nil
	}
	return &userResolver{root: r, u: *u}
}

type categoryResolver struct {
	root *Resolver
	c    model.Category
}

func (c *categoryResolver) TopicID() *graphql.ID { return idOf(c.c.TopicID) }
func (c *categoryResolver) Slug() string         { return c.c.Slug }
func (c *categoryResolver) Description() string  { return c.c.Description }

func (c *categoryResolver) Images(ctx context.Context) (*[]*imageResolver, error) {
	images, err := c.root.images.InCategory(ctx, c.c.Slug)
	if err != nil {
		return nil, gqlError(err)
	}
	return c.root.imageList(images), nil
}

type imageResolver struct {
	root *Resolver
	img  model.Image
}

func (i *imageResolver) ImageID() *graphql.ID { return idOf(i.img.ImageID) }
func (i *imageResolver) Title() string        { return i.img.Title }
func (i *imageResolver) Description() string  { return i.img.Description }
func (i *imageResolver) DisplayName() string  { return i.img.DisplayName }
func (i *imageResolver) PostedBy() string     { return i.img.PostedBy }
func (i *imageResolver) DateUploaded() *int32 { return unixSeconds(i.img.DateUploaded) }
func (i *imageResolver) Price() *int32        { return i.img.Price }
func (i *imageResolver) ThumbnailURL() string { return i.img.ThumbnailURL }
func (i *imageResolver) ObjImageURL() string  { return i.img.ObjImageURL }
func (i *imageResolver) Format() *string      { return i.img.Format }
func (i *imageResolver) Likes() *int32        { return &i.img.Likes }

func (i *imageResolver) Category(ctx context.Context) (*categoryResolver, error) {
	if i.img.Category == nil {
		return nil, nil
	}
	c, err := i.root.categories.GetBySlug(ctx, *i.img.Category)
	if err != nil {
		return nil, gqlError(err)
	}
	return i.root.categoryOf(c), nil
}

type userResolver struct {
	root *Resolver
	u    model.User
}

func (u *userResolver) UserID() *graphql.ID  { return idOf(u.u.UserID) }
func (u *userResolver) Username() string     { return u.u.Username }
func (u *userResolver) Forename() string     { return u.u.Fullname }
func (u *userResolver) Fullname() string     { return u.u.Fullname }
func (u *userResolver) EmailAddress() string { return u.u.EmailAddress }
func (u *userResolver) DateJoined() *int32   { return unixSeconds(u.u.DateJoined) }
func (u *userResolver) Location() string     { return u.u.Location }
func (u *userResolver) OwnsPrinter() *bool   { return &u.u.OwnsPrinter }
func (u *userResolver) DesignerTag() *bool   { return &u.u.DesignerTag }
func (u *userResolver) Avatar() *string      { return u.u.Avatar }
func (u *userResolver) Rating() *int32       { return u.u.Rating }

func (u *userResolver) Images(ctx context.Context) (*[]*imageResolver, error) {
	images, err := u.root.images.PostedBy(ctx, u.u.Username)
	if err != nil {
		return nil, gqlError(err)
	}
	return u.root.imageList(images), nil
}
