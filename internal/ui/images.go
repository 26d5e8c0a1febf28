package ui

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"k8s.io/klog/v2"

	"fynebox/internal/catalog"
	"fynebox/internal/fetch"
	"fynebox/internal/manifest"
)

// byteStore is the image byte cache the UI and the preloader share, so
// preloaded bytes are found again when the photo is shown.
type byteStore interface {
	Get(key string) ([]byte, bool)
	Has(key string) bool
	Put(key string, data []byte) error
}

// ImageManager resolves photo resources for the grid and the lightbox.
// Fetched bytes land in the shared byte store, decoded resources in a
// small in-memory map.
type ImageManager struct {
	fetcher *fetch.Fetcher
	store   byteStore
	locator manifest.Locator

	mu        sync.RWMutex
	resources map[string]fyne.Resource
}

// NewImageManager creates an image manager over the given store.
func NewImageManager(fetcher *fetch.Fetcher, store byteStore, locator manifest.Locator) *ImageManager {
	return &ImageManager{
		fetcher:   fetcher,
		store:     store,
		locator:   locator,
		resources: make(map[string]fyne.Resource),
	}
}

// FullSizeLocation returns the resource location FullSize will resolve
// for p. The lightbox keys its current display on it.
func (im *ImageManager) FullSizeLocation(p catalog.Photo) string {
	return im.locator.FullSize(p.Filename)
}

// Thumbnail returns the grid resource for p. When the resource is not
// yet available it returns a placeholder immediately and calls
// onComplete on the UI thread once the real one is ready.
func (im *ImageManager) Thumbnail(p catalog.Photo, onComplete func(fyne.Resource)) fyne.Resource {
	return im.resolve(im.locator.Thumbnail(p.Filename), onComplete)
}

// FullSize is the lightbox counterpart of Thumbnail.
func (im *ImageManager) FullSize(p catalog.Photo, onComplete func(fyne.Resource)) fyne.Resource {
	return im.resolve(im.FullSizeLocation(p), onComplete)
}

func (im *ImageManager) resolve(src string, onComplete func(fyne.Resource)) fyne.Resource {
	im.mu.RLock()
	res, ok := im.resources[src]
	im.mu.RUnlock()
	if ok {
		return res
	}

	go func() {
		data, err := im.load(src)
		if err != nil {
			klog.Warningf("ui: loading image %s: %v", src, err)
			return
		}
		res := fyne.NewStaticResource(src, data)
		im.mu.Lock()
		im.resources[src] = res
		im.mu.Unlock()
		fyne.Do(func() {
			onComplete(res)
		})
	}()

	return theme.FileImageIcon()
}

func (im *ImageManager) load(src string) ([]byte, error) {
	if im.store != nil {
		if data, ok := im.store.Get(src); ok {
			return data, nil
		}
	}
	data, err := im.fetcher.Fetch(src)
	if err != nil {
		return nil, err
	}
	if im.store != nil {
		if err := im.store.Put(src, data); err != nil {
			klog.V(1).Infof("ui: caching %s: %v", src, err)
		}
	}
	return data, nil
}
