package manifest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortsAndValidates(t *testing.T) {
	body := []byte(`{
	  "photos": [
	    {"filename": "beach.jpg", "width": 1200, "height": 800, "dateCaptured": "2023-06-10"},
	    {"filename": "city.jpg", "width": 800, "height": 1200, "dateCaptured": "2024-02-01"},
	    {"filename": "broken.jpg", "width": 0, "height": 800, "dateCaptured": "2024-03-01"},
	    {"filename": "undated.jpg", "width": 640, "height": 480, "dateCaptured": "whenever"}
	  ]
	}`)

	c, err := Parse(body)
	require.NoError(t, err)
	// broken.jpg and undated.jpg are dropped, remainder newest-first.
	require.Equal(t, 2, c.Size())

	first, err := c.At(0)
	require.NoError(t, err)
	assert.Equal(t, "city.jpg", first.Filename)

	second, err := c.At(1)
	require.NoError(t, err)
	assert.Equal(t, "beach.jpg", second.Filename)
}

func TestParseStableTieOrder(t *testing.T) {
	body := []byte(`{
	  "photos": [
	    {"filename": "entry0.jpg", "width": 10, "height": 10, "dateCaptured": "2024-01-01"},
	    {"filename": "entry1.jpg", "width": 10, "height": 10, "dateCaptured": "2024-01-01"},
	    {"filename": "entry2.jpg", "width": 10, "height": 10, "dateCaptured": "2023-01-01"}
	  ]
	}`)

	c, err := Parse(body)
	require.NoError(t, err)
	require.Equal(t, 3, c.Size())
	for i, want := range []string{"entry0.jpg", "entry1.jpg", "entry2.jpg"} {
		p, err := c.At(i)
		require.NoError(t, err)
		assert.Equal(t, want, p.Filename, "index %d", i)
	}
}

func TestParseMissingPhotosField(t *testing.T) {
	c, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Size())
}

func TestParseEmptyPhotos(t *testing.T) {
	c, err := Parse([]byte(`{"photos": []}`))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Size())
}

func TestParseMalformedBody(t *testing.T) {
	_, err := Parse([]byte(`{"photos": [`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse), "error %v should be ErrParse", err)
}

type stubFetcher struct {
	data []byte
	err  error
}

func (s *stubFetcher) Fetch(string) ([]byte, error) {
	return s.data, s.err
}

func TestLoaderWrapsFetchFailure(t *testing.T) {
	l := NewLoader(&stubFetcher{err: errors.New("connection refused")})
	_, err := l.Load("https://example.com/photos.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLoad), "error %v should be ErrLoad", err)
}

func TestLoaderParsesFetchedBody(t *testing.T) {
	l := NewLoader(&stubFetcher{data: []byte(`{"photos":[{"filename":"a.jpg","width":4,"height":3,"dateCaptured":"2024-05-05"}]}`)})
	c, err := l.Load("photos.json")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Size())
}

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		year int
	}{
		{"2024-05-05", true, 2024},
		{"2024-05-05T13:45:00Z", true, 2024},
		{"2019:08:02 11:22:33", true, 2019},
		{"May 5th", false, 0},
		{"", false, 0},
	}
	for _, test := range tests {
		got, err := ParseDate(test.in)
		if test.ok {
			require.NoError(t, err, "ParseDate(%q)", test.in)
			assert.Equal(t, test.year, got.Year(), "ParseDate(%q)", test.in)
		} else {
			assert.Error(t, err, "ParseDate(%q)", test.in)
		}
	}
}

func TestLocator(t *testing.T) {
	tests := []struct {
		base      string
		filename  string
		wantThumb string
		wantFull  string
	}{
		{"https://pics.example.com/g", "a.jpg", "https://pics.example.com/g/thumbs/a.jpg", "https://pics.example.com/g/full/a.jpg"},
		{"https://pics.example.com/g/", "a.jpg", "https://pics.example.com/g/thumbs/a.jpg", "https://pics.example.com/g/full/a.jpg"},
		{"", "a.jpg", "thumbs/a.jpg", "full/a.jpg"},
		{"/srv/gallery", "b.png", "/srv/gallery/thumbs/b.png", "/srv/gallery/full/b.png"},
	}
	for _, test := range tests {
		l := Locator{Base: test.base}
		assert.Equal(t, test.wantThumb, l.Thumbnail(test.filename), "base %q", test.base)
		assert.Equal(t, test.wantFull, l.FullSize(test.filename), "base %q", test.base)
	}
}

func TestBaseOf(t *testing.T) {
	assert.Equal(t, "https://x.test/g", BaseOf("https://x.test/g/photos.json"))
	assert.Equal(t, "/srv/gallery", BaseOf("/srv/gallery/photos.json"))
	assert.Equal(t, "", BaseOf("photos.json"))
}
