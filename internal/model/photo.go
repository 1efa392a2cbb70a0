// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other
// languages, but without inheritance. Go favours composition over inheritance.
package model

import "fmt"

// Category is the fixed set of photo categories the schema allows.
//
// A NAMED STRING TYPE AS AN ENUM:
// Go has no enum keyword. The idiom is a named type plus typed constants.
// The underlying value is the exact string the GraphQL enum uses, so no
// translation is needed at the API boundary or in the database.
type Category string

const (
	CategoryPortrait  Category = "PORTRAIT"
	CategoryLandscape Category = "LANDSCAPE"
	CategoryAction    Category = "ACTION"
	CategorySelfie    Category = "SELFIE"
)

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryPortrait, CategoryLandscape, CategoryAction, CategorySelfie:
		return true
	}
	return false
}

// Photo represents a posted photo.
//
// ID is assigned by the store on insert and is immutable afterwards.
// UserID is the owning user's GitHub login, fixed at creation time —
// there is no operation that reassigns a photo to another user.
//
// The photo's URL is deliberately NOT a field: it is a pure function of the
// ID (see URL) and storing it would just be a second copy that could drift.
//
// Description is a pointer so an omitted description and an explicitly
// empty one stay distinguishable all the way to the API: nil means the
// caller never sent one.
type Photo struct {
	ID          string   `bson:"_id,omitempty" json:"id"`
	Name        string   `bson:"name"          json:"name"`
	Description *string  `bson:"description,omitempty" json:"description,omitempty"`
	Category    Category `bson:"category"      json:"category"`
	UserID      string   `bson:"userID"        json:"userID"`
}

// URL returns the canonical image path for the photo.
// Deterministic: the same ID always yields the same string.
func (p *Photo) URL() string {
	return fmt.Sprintf("/img/photos/%s.jpg", p.ID)
}
