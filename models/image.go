package models

import (
	"time"
)

// Color is one dominant-color sample. It marshals in the palette shape
// the gallery has always stored: {"_rgb":[r,g,b,a]} with 0-255 channels
// and an alpha of 1.
type Color struct {
	RGBA [4]float64 `json:"_rgb" bson:"_rgb"`
}

// NewColor builds an opaque color sample from 0-255 channels.
func NewColor(r, g, b uint8) Color {
	return Color{RGBA: [4]float64{float64(r), float64(g), float64(b), 1}}
}

// Owner is the denormalized snapshot of the user who created a record.
// It is a value copy taken from the session at creation time, not a
// reference to a user entity.
type Owner struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
}

// Image is the persistent gallery record. Colors, Exif and Owner are set
// once at creation and never touched by edits; URL is unique across all
// records.
type Image struct {
	ID          string         `json:"id" bson:"-"`
	Title       string         `json:"title" bson:"title"`
	URL         string         `json:"url" bson:"urlImagen"`
	Date        time.Time      `json:"date" bson:"date"`
	Description string         `json:"description" bson:"description"`
	Colors      []Color        `json:"colors" bson:"colors"`
	Exif        map[string]any `json:"exif" bson:"exif"`
	Owner       Owner          `json:"user" bson:"user"`
}

// ImageUpdate is the partial accepted by the edit operation. Nil fields
// are left untouched.
type ImageUpdate struct {
	Title       *string
	Date        *time.Time
	Description *string
}
