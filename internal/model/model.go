// Package model holds the rows the gallery stores and the inputs used to
// create them.
//
// Relationships are plain values, not foreign keys: Image.Category holds a
// Category slug and Image.PostedBy holds a User username.
package model

import "time"

type Category struct {
	TopicID     int32
	Slug        string
	Description string
}

type Image struct {
	ImageID      int32
	Title        string
	Description  string
	DisplayName  string
	PostedBy     string
	DateUploaded time.Time
	Price        *int32
	ThumbnailURL string
	ObjImageURL  string
	Format       *string
	Likes        int32
	Category     *string
}

type User struct {
	UserID       int32
	Username     string
	Fullname     string
	EmailAddress string
	DateJoined   time.Time
	Location     string
	OwnsPrinter  bool
	DesignerTag  bool
	Avatar       *string
	Rating       *int32
}

type NewCategory struct {
	Slug        string
	Description string
}

type NewImage struct {
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

// NewUser is the addUser payload. Nil booleans are stored as false.
type NewUser struct {
	Username     string
	Fullname     string
	EmailAddress string
	Location     string
	OwnsPrinter  *bool
	DesignerTag  *bool
	Avatar       *string
	Rating       *int32
}
