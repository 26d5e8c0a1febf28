package gallery

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fynebox/internal/catalog"
	"fynebox/internal/manifest"
)

type stubLoader struct {
	cat *catalog.Catalog
	err error
}

func (s *stubLoader) Load(src string) (*catalog.Catalog, error) {
	return s.cat, s.err
}

type spyRenderer struct {
	grid  *catalog.Catalog
	empty int
	errs  []error
}

func (r *spyRenderer) DisplayThumbnailGrid(cat *catalog.Catalog) { r.grid = cat }
func (r *spyRenderer) ShowEmptyState()                           { r.empty++ }
func (r *spyRenderer) ShowErrorState(err error)                  { r.errs = append(r.errs, err) }

func TestLoadShowsGrid(t *testing.T) {
	cat := catalog.New([]catalog.Photo{
		{Filename: "a.jpg", Width: 4, Height: 3, DateCaptured: time.Now()},
	})
	r := &spyRenderer{}
	c := NewController(&stubLoader{cat: cat}, r)

	require.NoError(t, c.Load("http://example.com/photos.json"))
	require.NotNil(t, r.grid)
	assert.Equal(t, 1, r.grid.Size())
	assert.Same(t, cat, c.Catalog())
	assert.Zero(t, r.empty)
	assert.Empty(t, r.errs)
}

func TestLoadEmptyCatalogShowsEmptyState(t *testing.T) {
	r := &spyRenderer{}
	c := NewController(&stubLoader{cat: catalog.New(nil)}, r)

	require.NoError(t, c.Load("photos.json"))
	assert.Equal(t, 1, r.empty)
	assert.Nil(t, r.grid)
	assert.Empty(t, r.errs)
}

func TestLoadFailureShowsErrorState(t *testing.T) {
	loadErr := fmt.Errorf("%w: boom", manifest.ErrLoad)
	r := &spyRenderer{}
	c := NewController(&stubLoader{err: loadErr}, r)

	err := c.Load("photos.json")
	require.Error(t, err)
	require.Len(t, r.errs, 1)
	assert.ErrorIs(t, r.errs[0], manifest.ErrLoad)
	assert.Nil(t, r.grid)
	assert.Zero(t, r.empty)
}

func TestLoadFailureKeepsPreviousCatalog(t *testing.T) {
	cat := catalog.New([]catalog.Photo{
		{Filename: "a.jpg", Width: 4, Height: 3, DateCaptured: time.Now()},
	})
	r := &spyRenderer{}
	loader := &stubLoader{cat: cat}
	c := NewController(loader, r)
	require.NoError(t, c.Load("photos.json"))

	loader.cat = nil
	loader.err = fmt.Errorf("%w: malformed", manifest.ErrParse)
	require.Error(t, c.Load("photos.json"))
	assert.Same(t, cat, c.Catalog())
}

func TestNewControllerStartsEmpty(t *testing.T) {
	c := NewController(&stubLoader{}, &spyRenderer{})
	assert.Equal(t, 0, c.Catalog().Size())
}
