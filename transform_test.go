package rlebw

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform_MirrorHorizontal(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	img := randImage(t, rng, 33, 9, 7)

	res, err := MirrorHorizontal(img)
	require.NoError(t, err)
	for y := 0; y < img.Height(); y++ {
		assert.True(t, img.rows[y].equal(res.rows[img.Height()-1-y]))
	}
	back, err := MirrorHorizontal(res)
	require.NoError(t, err)
	assert.True(t, Equal(img, back))
}

func TestTransform_MirrorVertical(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 40; i++ {
		w, h := 1+rng.Intn(80), 1+rng.Intn(6)
		img := randImage(t, rng, w, h, 1+rng.Intn(12))

		res, err := MirrorVertical(img)
		require.NoError(t, err)
		assertValidRows(t, res)

		pa, pr := rawOf(t, img), rawOf(t, res)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if pa[y*w+x] != pr[y*w+w-1-x] {
					t.Fatalf("pixel (%d,%d) not mirrored", x, y)
				}
			}
		}
		back, err := MirrorVertical(res)
		require.NoError(t, err)
		assert.True(t, Equal(img, back))
	}
}

func TestTransform_MirrorVerticalFirstColor(t *testing.T) {
	// Even run count: the mirrored row starts with the other color.
	img, _ := FromRows(5, []Row{
		{First: Black, Runs: []int{1, 4}},
		{First: Black, Runs: []int{1, 3, 1}},
	})
	res, err := MirrorVertical(img)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 4, 1, EOR}, res.Row(0).Serialize())
	assert.Equal(t, []int{1, 1, 3, 1, EOR}, res.Row(1).Serialize())
}

func TestTransform_ConcatBelow(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	a := randImage(t, rng, 25, 4, 6)
	b := randImage(t, rng, 25, 7, 6)

	res, err := ConcatBelow(a, b)
	require.NoError(t, err)
	assert.Equal(t, 25, res.Width())
	assert.Equal(t, 11, res.Height())

	top, bottom, err := SplitBelow(res, a.Height())
	require.NoError(t, err)
	assert.True(t, Equal(a, top))
	assert.True(t, Equal(b, bottom))

	_, _, err = SplitBelow(res, 0)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
	_, _, err = SplitBelow(res, 11)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))

	c, _ := New(24, 3, White)
	_, err = ConcatBelow(a, c)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestTransform_ConcatRightCases(t *testing.T) {
	testCases := []struct {
		name        string
		left, right Row
		want        []int
	}{
		{
			name:  "odd runs, same first color",
			left:  Row{First: Black, Runs: []int{1, 2, 3}},
			right: Row{First: Black, Runs: []int{2, 2}},
			want:  []int{1, 1, 2, 5, 2, EOR},
		},
		{
			name:  "odd runs, other first color",
			left:  Row{First: Black, Runs: []int{1, 2, 3}},
			right: Row{First: White, Runs: []int{2, 2}},
			want:  []int{1, 1, 2, 3, 2, 2, EOR},
		},
		{
			name:  "even runs, same first color",
			left:  Row{First: White, Runs: []int{3, 3}},
			right: Row{First: White, Runs: []int{4}},
			want:  []int{0, 3, 3, 4, EOR},
		},
		{
			name:  "even runs, other first color",
			left:  Row{First: White, Runs: []int{3, 3}},
			right: Row{First: Black, Runs: []int{4}},
			want:  []int{0, 3, 7, EOR},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := FromRows(tc.left.Width(), []Row{tc.left})
			require.NoError(t, err)
			b, err := FromRows(tc.right.Width(), []Row{tc.right})
			require.NoError(t, err)

			res, err := ConcatRight(a, b)
			require.NoError(t, err)
			assertValidRows(t, res)
			assert.Equal(t, tc.want, res.Row(0).Serialize())
		})
	}
}

func TestTransform_ConcatRightMatchesPixels(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 30; i++ {
		h := 1 + rng.Intn(6)
		wa, wb := 1+rng.Intn(40), 1+rng.Intn(40)
		a := randImage(t, rng, wa, h, 1+rng.Intn(8))
		b := randImage(t, rng, wb, h, 1+rng.Intn(8))

		res, err := ConcatRight(a, b)
		require.NoError(t, err)
		assertValidRows(t, res)

		pa, pb := rawOf(t, a), rawOf(t, b)
		want := make([]uint8, 0, (wa+wb)*h)
		for y := 0; y < h; y++ {
			want = append(want, pa[y*wa:(y+1)*wa]...)
			want = append(want, pb[y*wb:(y+1)*wb]...)
		}
		canonical, err := FromRaw(wa+wb, h, want)
		require.NoError(t, err)
		assert.True(t, Equal(canonical, res))
	}
}

func TestTransform_ConcatRightMismatch(t *testing.T) {
	a, _ := New(5, 5, White)
	b, _ := New(5, 6, White)
	_, err := ConcatRight(a, b)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}
