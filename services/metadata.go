package services

import (
	"bytes"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	"github.com/EdlinOrg/prominentcolor"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/SergioCaMi/Gallery/models"
)

// Palette derives the dominant colors of an image. Extraction is
// best-effort: undecodable or degenerate input yields nil, never an
// error, so a failed palette cannot abort record creation.
func Palette(data []byte) []models.Color {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	items, err := prominentcolor.Kmeans(img)
	if err != nil {
		return nil
	}

	colors := make([]models.Color, 0, len(items))
	for _, it := range items {
		colors = append(colors, models.NewColor(uint8(it.Color.R), uint8(it.Color.G), uint8(it.Color.B)))
	}
	return colors
}

// ExifTags extracts EXIF metadata as a tag-name to value mapping. Like
// Palette it is best-effort and returns nil when the bytes carry no
// parseable EXIF block.
func ExifTags(data []byte) map[string]any {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	w := &tagWalker{tags: make(map[string]any)}
	if err := x.Walk(w); err != nil {
		return nil
	}
	if len(w.tags) == 0 {
		return nil
	}
	return w.tags
}

type tagWalker struct {
	tags map[string]any
}

func (w *tagWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	w.tags[string(name)] = tagValue(tag)
	return nil
}

// tagValue keeps single numeric values typed and falls back to the
// tag's string form for everything else.
func tagValue(tag *tiff.Tag) any {
	if tag.Count == 1 {
		switch tag.Format() {
		case tiff.IntVal:
			if v, err := tag.Int(0); err == nil {
				return v
			}
		case tiff.FloatVal:
			if v, err := tag.Float(0); err == nil {
				return v
			}
		case tiff.RatVal:
			if num, den, err := tag.Rat2(0); err == nil && den != 0 {
				return float64(num) / float64(den)
			}
		case tiff.StringVal:
			if v, err := tag.StringVal(); err == nil {
				return v
			}
		}
	}
	return tag.String()
}
