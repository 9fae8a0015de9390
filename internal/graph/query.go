package graph

import (
	"context"

	"github.com/graph-gophers/graphql-go"
)

func (r *Resolver) Categories(ctx context.Context) (*[]*categoryResolver, error) {
	categories, err := r.categories.List(ctx)
	if err != nil {
		return nil, gqlError(err)
	}

	out := make([]*categoryResolver, len(categories))
	for i := range categories {
		out[i] = &categoryResolver{root: r, c: categories[i]}
	}
	return &out, nil
}

func (r *Resolver) Images(ctx context.Context) (*[]*imageResolver, error) {
	images, err := r.images.List(ctx)
	if err != nil {
		return nil, gqlError(err)
	}
	return r.imageList(images), nil
}

func (r *Resolver) Users(ctx context.Context) (*[]*userResolver, error) {
	users, err := r.users.List(ctx)
	if err != nil {
		return nil, gqlError(err)
	}

	out := make([]*userResolver, len(users))
	for i := range users {
		out[i] = &userResolver{root: r, u: users[i]}
	}
	return &out, nil
}

func (r *Resolver) Category(ctx context.Context, args struct{ Slug string }) (*categoryResolver, error) {
	c, err := r.categories.GetBySlug(ctx, args.Slug)
	if err != nil {
		return nil, gqlError(err)
	}
	return r.categoryOf(c), nil
}

func (r *Resolver) Image(ctx context.Context, args struct{ ImageID graphql.ID }) (*imageResolver, error) {
	id, err := parseID("image_id", args.ImageID)
	if err != nil {
		return nil, gqlError(err)
	}

	img, err := r.images.Get(ctx, id)
	if err != nil {
		return nil, gqlError(err)
	}
	return r.imageOf(img), nil
}

func (r *Resolver) User(ctx context.Context, args struct{ Username string }) (*userResolver, error) {
	u, err := r.users.GetByUsername(ctx, args.Username)
	if err != nil {
		return nil, gqlError(err)
	}
	return r.userOf(u), nil
}
