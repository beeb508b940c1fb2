package rlebw

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoolean_Scenario(t *testing.T) {
	a, err := FromRaw(4, 1, []uint8{1, 1, 0, 0})
	require.NoError(t, err)
	b, err := FromRaw(4, 1, []uint8{0, 0, 0, 0})
	require.NoError(t, err)

	res, err := And(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 4, EOR}, res.Row(0).Serialize())

	res, err = Or(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 2, EOR}, res.Row(0).Serialize())
}

func TestBoolean_SharedBoundaries(t *testing.T) {
	// Both rows switch color at x=3, and the output must not split there.
	a, _ := FromRows(6, []Row{{First: Black, Runs: []int{3, 3}}})
	b, _ := FromRows(6, []Row{{First: White, Runs: []int{3, 3}}})

	res, err := Or(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 6, EOR}, res.Row(0).Serialize())

	res, err = Xor(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 6, EOR}, res.Row(0).Serialize())

	res, err = And(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 6, EOR}, res.Row(0).Serialize())
}

func TestBoolean_MatchesPixelReference(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ops := map[Op]func(x, y uint8) uint8{
		OpAnd: func(x, y uint8) uint8 { return x & y },
		OpOr:  func(x, y uint8) uint8 { return x | y },
		OpXor: func(x, y uint8) uint8 { return x ^ y },
	}
	for i := 0; i < 50; i++ {
		w, h := 1+rng.Intn(120), 1+rng.Intn(8)
		a := randImage(t, rng, w, h, 1+rng.Intn(15))
		b := randImage(t, rng, w, h, 1+rng.Intn(15))
		pa, pb := rawOf(t, a), rawOf(t, b)

		for op, fn := range ops {
			res, err := Combine(op, a, b)
			require.NoError(t, err)
			assertValidRows(t, res)

			want := make([]uint8, len(pa))
			for j := range pa {
				want[j] = fn(pa[j], pb[j])
			}
			assert.Equalf(t, want, rawOf(t, res), "%v on %dx%d", op, w, h)

			// The result must be the minimal encoding of its pixels.
			canonical, err := FromRaw(w, h, want)
			require.NoError(t, err)
			assert.True(t, Equal(res, canonical))
		}
	}
}

func TestBoolean_Laws(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 30; i++ {
		w, h := 1+rng.Intn(60), 1+rng.Intn(6)
		img := randImage(t, rng, w, h, 1+rng.Intn(10))
		other := randImage(t, rng, w, h, 1+rng.Intn(10))

		neg, err := Neg(img)
		require.NoError(t, err)
		assertValidRows(t, neg)
		negneg, err := Neg(neg)
		require.NoError(t, err)
		assert.True(t, Equal(img, negneg), "NEG(NEG(img)) != img")

		and, err := And(img, img)
		require.NoError(t, err)
		assert.True(t, Equal(img, and), "AND(img, img) != img")

		black, _ := New(w, h, Black)
		or, err := Or(img, neg)
		require.NoError(t, err)
		assert.True(t, Equal(black, or), "OR(img, NEG(img)) is not black")

		white, _ := New(w, h, White)
		xor, err := Xor(img, img)
		require.NoError(t, err)
		assert.True(t, Equal(white, xor), "XOR(img, img) is not white")

		for _, op := range []Op{OpAnd, OpOr, OpXor} {
			ab, err := Combine(op, img, other)
			require.NoError(t, err)
			ba, err := Combine(op, other, img)
			require.NoError(t, err)
			assert.Truef(t, Equal(ab, ba), "%v is not commutative", op)
		}
	}
}

func TestBoolean_OperandsUntouched(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	a := randImage(t, rng, 30, 4, 5)
	b := randImage(t, rng, 30, 4, 5)
	ca, _ := a.Clone()
	cb, _ := b.Clone()

	_, err := Xor(a, b)
	require.NoError(t, err)
	_, err = Neg(a)
	require.NoError(t, err)
	assert.True(t, Equal(a, ca))
	assert.True(t, Equal(b, cb))
}

func TestBoolean_DimensionMismatch(t *testing.T) {
	a, _ := New(10, 5, White)
	b, _ := New(11, 5, White)
	c, _ := New(10, 6, White)

	_, err := And(a, b)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
	_, err = Or(a, c)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
	_, err = Xor(c, a)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestBoolean_ParseOp(t *testing.T) {
	for _, op := range []Op{OpAnd, OpOr, OpXor} {
		got, err := ParseOp(op.String())
		require.NoError(t, err)
		assert.Equal(t, op, got)
	}
	got, err := ParseOp("XOR")
	require.NoError(t, err)
	assert.Equal(t, OpXor, got)

	_, err = ParseOp("nand")
	assert.Error(t, err)
	_, err = Combine(Op(9), nil, nil)
	assert.Error(t, err)
}

func TestBoolean_Counters(t *testing.T) {
	a, _ := NewChessboard(16, 4, 4, Black)
	b, _ := NewChessboard(16, 4, 2, White)
	c := NewCounters()

	_, err := CombineWith(OpAnd, a, b, c)
	require.NoError(t, err)
	assert.Positive(t, c.MergeSteps())
	assert.Positive(t, c.RowReads())
	assert.Positive(t, c.RowWrites())

	// Every boundary of b is a boundary of the merge, so each row takes 8 steps.
	assert.Equal(t, int64(8*4), c.MergeSteps())

	c.Reset()
	assert.Zero(t, c.MergeSteps())

	var nilCounters *Counters
	_, err = CombineWith(OpOr, a, b, nilCounters)
	require.NoError(t, err)
	assert.Equal(t, "reads=0 writes=0 merge_steps=0", nilCounters.String())
}
