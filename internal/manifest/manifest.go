// Package manifest loads and parses the gallery manifest document and
// resolves the resource locations derived from it.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"k8s.io/klog/v2"

	"fynebox/internal/catalog"
)

// FileName is the conventional manifest document name.
const FileName = "photos.json"

// Namespaces the resource paths are derived under.
const (
	ThumbNamespace = "thumbs"
	FullNamespace  = "full"
)

// Error taxonomy. Both surface the same way (empty/error presentation,
// no retry); the split exists for diagnostics.
var (
	// ErrLoad marks a network failure or non-success response.
	ErrLoad = errors.New("manifest load failed")
	// ErrParse marks a malformed manifest body.
	ErrParse = errors.New("manifest parse failed")
)

// Entry is a raw manifest record, prior to validation.
type Entry struct {
	Filename     string `json:"filename"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	DateCaptured string `json:"dateCaptured"`
}

// Document is the manifest wire format. A missing photos field is an
// empty catalog, not an error.
type Document struct {
	Photos []Entry `json:"photos"`
}

// dateLayouts are accepted for dateCaptured, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006:01:02 15:04:05", // EXIF
}

// ParseDate parses a dateCaptured value.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Parse decodes a manifest body into a catalog. Records violating the
// photo invariants (non-positive dimensions, unparseable date) are
// dropped with a warning; a body that is not valid JSON is ErrParse.
func Parse(data []byte) (*catalog.Catalog, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	photos := make([]catalog.Photo, 0, len(doc.Photos))
	for _, e := range doc.Photos {
		if e.Filename == "" {
			klog.Warningf("manifest: dropping record with empty filename")
			continue
		}
		if e.Width <= 0 || e.Height <= 0 {
			klog.Warningf("manifest: dropping %s: bad dimensions %dx%d", e.Filename, e.Width, e.Height)
			continue
		}
		captured, err := ParseDate(e.DateCaptured)
		if err != nil {
			klog.Warningf("manifest: dropping %s: %v", e.Filename, err)
			continue
		}
		photos = append(photos, catalog.Photo{
			Filename:     e.Filename,
			Width:        e.Width,
			Height:       e.Height,
			DateCaptured: captured,
		})
	}
	return catalog.New(photos), nil
}

// Fetcher retrieves a resource by URL or path.
type Fetcher interface {
	Fetch(src string) ([]byte, error)
}

// Loader fetches and parses manifests.
type Loader struct {
	fetcher Fetcher
}

// NewLoader creates a Loader backed by the given fetcher.
func NewLoader(fetcher Fetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// Load fetches src and parses it into a catalog. Fetch failures come
// back as ErrLoad, malformed bodies as ErrParse. A load failure is
// terminal for the attempt; there is no retry.
func (l *Loader) Load(src string) (*catalog.Catalog, error) {
	data, err := l.fetcher.Fetch(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	return Parse(data)
}

// Locator derives resource locations from a manifest base. The base is
// the URL or directory the manifest itself was loaded from; resources
// live under conventional namespaces next to it.
type Locator struct {
	Base string
}

// Thumbnail returns the thumbnail resource location for a filename.
func (l Locator) Thumbnail(filename string) string {
	return l.join(ThumbNamespace, filename)
}

// FullSize returns the full-size resource location for a filename.
func (l Locator) FullSize(filename string) string {
	return l.join(FullNamespace, filename)
}

func (l Locator) join(namespace, filename string) string {
	base := strings.TrimSuffix(l.Base, "/")
	if base == "" {
		return namespace + "/" + filename
	}
	return base + "/" + namespace + "/" + filename
}

// BaseOf returns the base location of a manifest source: everything up
// to the final path element.
func BaseOf(src string) string {
	if i := strings.LastIndex(src, "/"); i >= 0 {
		return src[:i]
	}
	return ""
}
