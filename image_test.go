package rlebw

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randImage returns a random image whose rows have runs up to maxRun pixels long.
func randImage(t *testing.T, rng *rand.Rand, width, height, maxRun int) *Image {
	t.Helper()
	pix := make([]uint8, 0, width*height)
	for y := 0; y < height; y++ {
		pix = append(pix, randRaw(rng, width, maxRun)...)
	}
	img, err := FromRaw(width, height, pix)
	require.NoError(t, err)
	return img
}

// rawOf decompresses img, failing the test on error.
func rawOf(t *testing.T, img *Image) []uint8 {
	t.Helper()
	pix, err := img.Raw()
	require.NoError(t, err)
	return pix
}

func TestImage_New(t *testing.T) {
	img, err := New(20, 25, Black)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Width())
	assert.Equal(t, 25, img.Height())
	for y := 0; y < img.Height(); y++ {
		assert.Equal(t, []int{1, 20, EOR}, img.Row(y).Serialize())
	}
}

func TestImage_NewInvalid(t *testing.T) {
	_, err := New(0, 10, White)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
	_, err = New(10, -1, White)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
	_, err = New(MaxDimension+1, 1, White)
	assert.True(t, errors.Is(err, ErrAllocation))
	_, err = New(MaxDimension, MaxDimension, White)
	assert.True(t, errors.Is(err, ErrAllocation))
	_, err = New(1, 1, 7)
	assert.True(t, errors.Is(err, ErrMalformedRow))
}

func TestImage_Chessboard(t *testing.T) {
	testCases := []struct {
		width, height, edge int
		first               Color
	}{
		{20, 25, 5, Black},
		{80, 25, 5, White},
		{25, 120, 5, Black},
		{100, 100, 2, White},
		{7, 7, 7, Black},
	}
	for _, tc := range testCases {
		img, err := NewChessboard(tc.width, tc.height, tc.edge, tc.first)
		require.NoError(t, err)
		assertValidRows(t, img)

		pix := rawOf(t, img)
		for y := 0; y < tc.height; y++ {
			for x := 0; x < tc.width; x++ {
				want := tc.first
				if (x/tc.edge+y/tc.edge)%2 == 1 {
					want = want.Invert()
				}
				if Color(pix[y*tc.width+x]) != want {
					t.Fatalf("%+v: pixel (%d,%d) = %d, want %d", tc, x, y, pix[y*tc.width+x], want)
				}
			}
		}
	}
}

func TestImage_ChessboardRowsAreNotShared(t *testing.T) {
	img, err := NewChessboard(10, 10, 5, Black)
	require.NoError(t, err)
	img.rows[0].Runs[0] = 1
	assert.Equal(t, 5, img.rows[1].Runs[0])
}

func TestImage_ChessboardInvalidGeometry(t *testing.T) {
	for _, dims := range [][3]int{{20, 25, 3}, {21, 25, 5}, {20, 20, 0}, {20, 20, -5}} {
		_, err := NewChessboard(dims[0], dims[1], dims[2], Black)
		assert.Truef(t, errors.Is(err, ErrInvalidGeometry), "%v: got %v", dims, err)
	}
}

func TestImage_Equal(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	a := randImage(t, rng, 40, 10, 6)
	b, err := FromRaw(40, 10, rawOf(t, a))
	require.NoError(t, err)

	assert.True(t, Equal(a, b))
	assert.True(t, a.Equal(b))

	pix := rawOf(t, a)
	pix[37] ^= 1
	c, err := FromRaw(40, 10, pix)
	require.NoError(t, err)
	assert.False(t, Equal(a, c))

	w, _ := New(40, 11, White)
	assert.False(t, Equal(a, w))

	w1, _ := New(40, 10, White)
	w2, _ := New(40, 10, Black)
	assert.False(t, Equal(w1, w2))
}

func TestImage_FromRowsValidates(t *testing.T) {
	_, err := FromRows(5, []Row{
		{First: White, Runs: []int{5}},
		{First: Black, Runs: []int{2, 0, 3}},
	})
	assert.True(t, errors.Is(err, ErrMalformedRow))

	rows := []Row{{First: White, Runs: []int{2, 3}}}
	img, err := FromRows(5, rows)
	require.NoError(t, err)
	rows[0].Runs[0] = 4
	assert.Equal(t, []int{2, 3}, img.Row(0).Runs)
}

func TestImage_Destroy(t *testing.T) {
	img, err := New(4, 4, White)
	require.NoError(t, err)
	other, err := img.Clone()
	require.NoError(t, err)

	img.Destroy()
	assert.True(t, img.Destroyed())
	assert.Equal(t, 0, img.Width())
	assert.False(t, other.Destroyed())

	// Destroying twice is harmless.
	img.Destroy()

	_, err = Neg(img)
	assert.True(t, errors.Is(err, ErrDestroyed))
	_, err = And(img, other)
	assert.True(t, errors.Is(err, ErrDestroyed))
	_, err = MirrorVertical(img)
	assert.True(t, errors.Is(err, ErrDestroyed))
	assert.False(t, Equal(img, other))

	assert.Panics(t, func() { img.Row(0) })

	var nilImg *Image
	nilImg.Destroy()
	assert.True(t, nilImg.Destroyed())
}
