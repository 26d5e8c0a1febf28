package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(n int) (*Router, *Viewer, *fakePresenter) {
	p := &fakePresenter{}
	v := New(fixedCatalog(n), p, nil)
	return NewRouter(v, 50), v, p
}

func TestThumbnailTappedOpens(t *testing.T) {
	r, v, _ := newTestRouter(4)
	r.ThumbnailTapped(2)
	idx, open := v.Current()
	assert.True(t, open)
	assert.Equal(t, 2, idx)
}

func TestThumbnailKeyActivation(t *testing.T) {
	tests := []struct {
		key   Key
		opens bool
	}{
		{KeyReturn, true},
		{KeyEnter, true},
		{KeySpace, true},
		{KeyLeft, false},
		{Key("X"), false},
	}
	for _, test := range tests {
		r, v, _ := newTestRouter(4)
		r.ThumbnailKey(1, test.key)
		assert.Equal(t, test.opens, v.IsOpen(), "key %s", test.key)
	}
}

func TestKeysSuppressedWhileClosed(t *testing.T) {
	r, v, p := newTestRouter(4)
	r.KeyPressed(KeyRight)
	r.KeyPressed(KeyLeft)
	r.KeyPressed(KeyEscape)
	assert.False(t, v.IsOpen())
	assert.Empty(t, p.shown)
}

func TestKeyNavigationWhileOpen(t *testing.T) {
	r, v, _ := newTestRouter(4)
	require.NoError(t, v.Open(1))

	r.KeyPressed(KeyRight)
	idx, _ := v.Current()
	assert.Equal(t, 2, idx)

	r.KeyPressed(KeyLeft)
	idx, _ = v.Current()
	assert.Equal(t, 1, idx)

	r.KeyPressed(KeyEscape)
	assert.False(t, v.IsOpen())
}

func TestControlTaps(t *testing.T) {
	r, v, _ := newTestRouter(4)
	require.NoError(t, v.Open(1))

	r.NextTapped()
	idx, _ := v.Current()
	assert.Equal(t, 2, idx)

	r.PrevTapped()
	idx, _ = v.Current()
	assert.Equal(t, 1, idx)

	// A control tap never doubles as a background dismiss.
	assert.True(t, v.IsOpen())
}

func TestBackgroundTapCloses(t *testing.T) {
	r, v, _ := newTestRouter(4)
	require.NoError(t, v.Open(1))
	r.BackgroundTapped()
	assert.False(t, v.IsOpen())
}

func TestSwipeClassification(t *testing.T) {
	tests := []struct {
		name      string
		startX    float32
		endX      float32
		wantIndex int
	}{
		// diff = start-end = +60 > 50: finger moved right-to-left, advance.
		{"swipe left advances", 200, 140, 2},
		// diff = -60: finger moved left-to-right, go back.
		{"swipe right goes back", 140, 200, 0},
		// |diff| = 20 under threshold: not a swipe.
		{"below threshold ignored", 100, 120, 1},
		// Exactly the threshold does not qualify.
		{"exact threshold ignored", 150, 100, 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r, v, _ := newTestRouter(4)
			require.NoError(t, v.Open(1))
			r.TouchStart(test.startX)
			r.TouchEnd(test.endX)
			idx, open := v.Current()
			require.True(t, open)
			assert.Equal(t, test.wantIndex, idx)
		})
	}
}

func TestTouchEndWithoutStart(t *testing.T) {
	r, v, _ := newTestRouter(4)
	require.NoError(t, v.Open(1))
	r.TouchEnd(0)
	idx, _ := v.Current()
	assert.Equal(t, 1, idx)
}

func TestSwipeConsumedOncePerGesture(t *testing.T) {
	r, v, _ := newTestRouter(4)
	require.NoError(t, v.Open(1))
	r.TouchStart(300)
	r.TouchEnd(100)
	r.TouchEnd(100) // stale end event, no second gesture
	idx, _ := v.Current()
	assert.Equal(t, 2, idx)
}

func TestSwipeAbsorbedAtBoundary(t *testing.T) {
	r, v, _ := newTestRouter(2)
	require.NoError(t, v.Open(1))
	r.TouchStart(300)
	r.TouchEnd(100) // next at last photo: silently absorbed
	idx, open := v.Current()
	assert.True(t, open)
	assert.Equal(t, 1, idx)
}

func TestDefaultThresholdFallback(t *testing.T) {
	p := &fakePresenter{}
	v := New(fixedCatalog(3), p, nil)
	r := NewRouter(v, 0)
	assert.Equal(t, DefaultSwipeThreshold, r.swipeThreshold)
}
