package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deppfellow/printgallery/internal/errs"
)

// FieldKind is the Go type a patchable column is parsed into.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldOptionalText
	FieldInt
	FieldOptionalInt
	FieldBool
)

// Patch changes one column of one row.
//
// Column always comes from an allow-list, never from the caller. Value is
// already typed for the column: string, *string, int32, *int32 or bool.
// A nil pointer clears the column.
type Patch[T any] struct {
	Column string
	Value  any

	apply func(*T)
}

// Apply writes the patched value into row. The in-memory store uses it; the
// Postgres store binds Value instead.
func (p Patch[T]) Apply(row *T) {
	if p.apply != nil {
		p.apply(row)
	}
}

type field[T any] struct {
	column string
	kind   FieldKind
	bind   func(value any) func(*T)
}

func textField[T any](column string, get func(*T) *string) field[T] {
	return field[T]{column: column, kind: FieldText, bind: func(value any) func(*T) {
		v := value.(string)
		return func(row *T) { *get(row) = v }
	}}
}

func optionalTextField[T any](column string, get func(*T) **string) field[T] {
	return field[T]{column: column, kind: FieldOptionalText, bind: func(value any) func(*T) {
		v := value.(*string)
		return func(row *T) { *get(row) = v }
	}}
}

func intField[T any](column string, get func(*T) *int32) field[T] {
	return field[T]{column: column, kind: FieldInt, bind: func(value any) func(*T) {
		v := value.(int32)
		return func(row *T) { *get(row) = v }
	}}
}

func optionalIntField[T any](column string, get func(*T) **int32) field[T] {
	return field[T]{column: column, kind: FieldOptionalInt, bind: func(value any) func(*T) {
		v := value.(*int32)
		return func(row *T) { *get(row) = v }
	}}
}

func boolField[T any](column string, get func(*T) *bool) field[T] {
	return field[T]{column: column, kind: FieldBool, bind: func(value any) func(*T) {
		v := value.(bool)
		return func(row *T) { *get(row) = v }
	}}
}

// patchSet is the allow-list of one entity.
type patchSet[T any] struct {
	entity   string
	nameArg  string
	fields   map[string]field[T]
	readOnly map[string]bool
}

func (s patchSet[T]) lookup(name string) (field[T], error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return field[T]{}, errs.InvalidArgument(s.nameArg, fmt.Sprintf("%s is required", s.nameArg))
	}
	if s.readOnly[key] {
		return field[T]{}, errs.InvalidArgument(s.nameArg, fmt.Sprintf("%s field %q cannot be changed", s.entity, key))
	}
	f, ok := s.fields[key]
	if !ok {
		return field[T]{}, errs.InvalidArgument(s.nameArg, fmt.Sprintf("unknown %s field %q", s.entity, key))
	}
	return f, nil
}

func (s patchSet[T]) fromText(name, raw string) (Patch[T], error) {
	f, err := s.lookup(name)
	if err != nil {
		return Patch[T]{}, err
	}

	value, err := parseValue(f.kind, f.column, raw)
	if err != nil {
		return Patch[T]{}, err
	}

	return Patch[T]{Column: f.column, Value: value, apply: f.bind(value)}, nil
}

func (s patchSet[T]) fromBool(name string, value bool) (Patch[T], error) {
	f, err := s.lookup(name)
	if err != nil {
		return Patch[T]{}, err
	}
	if f.kind != FieldBool {
		return Patch[T]{}, errs.InvalidArgument(s.nameArg, fmt.Sprintf("%s field %q is not a boolean", s.entity, f.column))
	}

	return Patch[T]{Column: f.column, Value: value, apply: f.bind(value)}, nil
}

// parseValue converts the raw newValue argument into the column's type.
// An empty string clears optional columns.
func parseValue(kind FieldKind, column, raw string) (any, error) {
	switch kind {
	case FieldText:
		return raw, nil

	case FieldOptionalText:
		if raw == "" {
			return (*string)(nil), nil
		}
		v := raw
		return &v, nil

	case FieldInt, FieldOptionalInt:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" && kind == FieldOptionalInt {
			return (*int32)(nil), nil
		}
		n, err := strconv.ParseInt(trimmed, 10, 32)
		if err != nil {
			return nil, errs.InvalidArgument("newValue", fmt.Sprintf("%s expects an integer, got %q", column, raw))
		}
		v := int32(n)
		if kind == FieldOptionalInt {
			return &v, nil
		}
		return v, nil

	case FieldBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, errs.InvalidArgument("newValue", fmt.Sprintf("%s expects true or false, got %q", column, raw))
		}
		return b, nil
	}

	return nil, errs.InvalidArgument("newValue", fmt.Sprintf("%s cannot be patched", column))
}

var categoryFields = patchSet[Category]{
	entity:  "category",
	nameArg: "valueToUpdate",
	fields: map[string]field[Category]{
		"slug":        textField("slug", func(c *Category) *string { return &c.Slug }),
		"description": textField("description", func(c *Category) *string { return &c.Description }),
	},
	readOnly: map[string]bool{"topic_id": true},
}

var imageFields = patchSet[Image]{
	entity:  "image",
	nameArg: "valueToChange",
	fields: map[string]field[Image]{
		"title":         textField("title", func(i *Image) *string { return &i.Title }),
		"description":   textField("description", func(i *Image) *string { return &i.Description }),
		"display_name":  textField("display_name", func(i *Image) *string { return &i.DisplayName }),
		"posted_by":     textField("posted_by", func(i *Image) *string { return &i.PostedBy }),
		"price":         optionalIntField("price", func(i *Image) **int32 { return &i.Price }),
		"thumbnail_url": textField("thumbnail_url", func(i *Image) *string { return &i.ThumbnailURL }),
		"obj_image_url": textField("obj_image_url", func(i *Image) *string { return &i.ObjImageURL }),
		"format":        optionalTextField("format", func(i *Image) **string { return &i.Format }),
		"likes":         intField("likes", func(i *Image) *int32 { return &i.Likes }),
		"category":      optionalTextField("category", func(i *Image) **string { return &i.Category }),
	},
	readOnly: map[string]bool{"image_id": true, "date_uploaded": true},
}

var userFields = patchSet[User]{
	entity:  "user",
	nameArg: "valueToUpdate",
	fields: map[string]field[User]{
		"username":      textField("username", func(u *User) *string { return &u.Username }),
		"fullname":      textField("fullname", func(u *User) *string { return &u.Fullname }),
		"forename":      textField("fullname", func(u *User) *string { return &u.Fullname }),
		"email_address": textField("email_address", func(u *User) *string { return &u.EmailAddress }),
		"location":      textField("location", func(u *User) *string { return &u.Location }),
		"owns_printer":  boolField("owns_printer", func(u *User) *bool { return &u.OwnsPrinter }),
		"designer_tag":  boolField("designer_tag", func(u *User) *bool { return &u.DesignerTag }),
		"avatar":        optionalTextField("avatar", func(u *User) **string { return &u.Avatar }),
		"rating":        optionalIntField("rating", func(u *User) **int32 { return &u.Rating }),
	},
	readOnly: map[string]bool{"user_id": true, "date_joined": true},
}

// NewCategoryPatch validates an updateCategory(valueToUpdate, newValue) pair.
func NewCategoryPatch(field, newValue string) (Patch[Category], error) {
	return categoryFields.fromText(field, newValue)
}

// NewImagePatch validates an updateImage(valueToChange, newValue) pair.
func NewImagePatch(field, newValue string) (Patch[Image], error) {
	return imageFields.fromText(field, newValue)
}

// NewUserPatch validates an updateUser(valueToUpdate, newValue) pair.
// "forename" is accepted as another name for fullname.
func NewUserPatch(field, newValue string) (Patch[User], error) {
	return userFields.fromText(field, newValue)
}

// NewUserFlagPatch validates an updateUserBools pair; only boolean columns
// are accepted.
func NewUserFlagPatch(field string, newValue bool) (Patch[User], error) {
	return userFields.fromBool(field, newValue)
}
