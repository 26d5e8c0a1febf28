// Package catalog holds the ordered, immutable collection of photos the
// gallery displays. Photos are ordered by capture date, newest first,
// with ties keeping their manifest order.
package catalog

import (
	"errors"
	"sort"
	"time"
)

// ErrOutOfRange is returned when a photo index falls outside [0, Size).
// Reaching it through the navigation surface is a programming error;
// next/prev absorb boundaries before an index can go out of range.
var ErrOutOfRange = errors.New("photo index out of range")

// Photo is a single immutable photo record taken from the manifest.
type Photo struct {
	Filename     string
	Width        int
	Height       int
	DateCaptured time.Time
}

// AspectRatio returns width/height for display layout.
func (p Photo) AspectRatio() float32 {
	if p.Height == 0 {
		return 1
	}
	return float32(p.Width) / float32(p.Height)
}

// CaptionDate formats the capture date as MM/DD/YYYY for caption text.
func (p Photo) CaptionDate() string {
	return p.DateCaptured.Format("01/02/2006")
}

// Catalog is an ordered sequence of photos. It is built once and never
// mutated; loading a new manifest means building a new Catalog.
type Catalog struct {
	photos []Photo
}

// New builds a catalog from manifest-ordered photos. The input slice is
// copied and sorted by capture date descending; photos with equal dates
// keep their input order.
func New(photos []Photo) *Catalog {
	sorted := make([]Photo, len(photos))
	copy(sorted, photos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateCaptured.After(sorted[j].DateCaptured)
	})
	return &Catalog{photos: sorted}
}

// Size returns the number of photos in the catalog.
func (c *Catalog) Size() int {
	return len(c.photos)
}

// InRange reports whether i is a valid photo index.
func (c *Catalog) InRange(i int) bool {
	return i >= 0 && i < len(c.photos)
}

// At returns the photo at index i, or ErrOutOfRange.
func (c *Catalog) At(i int) (Photo, error) {
	if !c.InRange(i) {
		return Photo{}, ErrOutOfRange
	}
	return c.photos[i], nil
}
