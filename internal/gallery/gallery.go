// Package gallery coordinates loading the manifest and deciding which
// of the three gallery states the renderer shows.
package gallery

import (
	"errors"

	"k8s.io/klog/v2"

	"fynebox/internal/catalog"
	"fynebox/internal/manifest"
)

// ManifestLoader abstracts manifest retrieval for easier testing.
type ManifestLoader interface {
	Load(src string) (*catalog.Catalog, error)
}

// Renderer receives the outcome of a load. Exactly one method is
// called per Load.
type Renderer interface {
	DisplayThumbnailGrid(cat *catalog.Catalog)
	ShowEmptyState()
	ShowErrorState(err error)
}

// Controller is the entry point for gallery business logic.
type Controller struct {
	loader   ManifestLoader
	renderer Renderer
	cat      *catalog.Catalog
}

// NewController constructs a Controller. The catalog is empty until
// Load succeeds.
func NewController(loader ManifestLoader, renderer Renderer) *Controller {
	return &Controller{
		loader:   loader,
		renderer: renderer,
		cat:      catalog.New(nil),
	}
}

// Catalog returns the most recently loaded catalog.
func (c *Controller) Catalog() *catalog.Catalog {
	return c.cat
}

// Load fetches and parses the manifest at src, then routes the result
// to the renderer. Failures leave the previous catalog in place and
// are surfaced through ShowErrorState; there is no retry.
func (c *Controller) Load(src string) error {
	cat, err := c.loader.Load(src)
	if err != nil {
		switch {
		case errors.Is(err, manifest.ErrLoad):
			klog.Errorf("gallery: fetching manifest %s: %v", src, err)
		case errors.Is(err, manifest.ErrParse):
			klog.Errorf("gallery: parsing manifest %s: %v", src, err)
		default:
			klog.Errorf("gallery: loading manifest %s: %v", src, err)
		}
		c.renderer.ShowErrorState(err)
		return err
	}

	c.cat = cat
	if cat.Size() == 0 {
		klog.Infof("gallery: manifest %s has no photos", src)
		c.renderer.ShowEmptyState()
		return nil
	}
	klog.Infof("gallery: loaded %d photos from %s", cat.Size(), src)
	c.renderer.DisplayThumbnailGrid(cat)
	return nil
}
