package tetration_test

import (
	"math/big"
	"testing"

	"github.com/aretw0/tetrator/pkg/tetration"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

func TestEvaluate_KnownTowers(t *testing.T) {
	tests := []struct {
		name   string
		base   uint64
		height uint64
		want   string
	}{
		{"2^^2", 2, 2, "4"},
		{"2^^3", 2, 3, "16"},
		{"2^^4", 2, 4, "65536"},
		{"3^^2", 3, 2, "27"},
		{"3^^3", 3, 3, "7625597484987"},
		{"4^^2", 4, 2, "256"},
		{"10^^2", 10, 2, "10000000000"},
		{"0^^1", 0, 1, "0"},
		{"0^^2", 0, 2, "1"},
		{"0^^3", 0, 3, "0"},
		{"0^^4", 0, 4, "1"},
		{"1^^5", 1, 5, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tetration.Evaluate(u(tt.base), u(tt.height))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestEvaluate_HeightZeroIsOne(t *testing.T) {
	for _, base := range []uint64{0, 1, 2, 3, 1 << 40} {
		got, err := tetration.Evaluate(u(base), u(0))
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.Int64(), "base %d", base)
	}

	huge := new(uint256.Int).Lsh(u(1), 200)
	got, err := tetration.Evaluate(huge, u(0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Int64())
}

func TestEvaluate_HeightOneIsBase(t *testing.T) {
	maxU128 := new(uint256.Int).SubUint64(new(uint256.Int).Lsh(u(1), 128), 1)
	for _, base := range []*uint256.Int{u(0), u(1), u(7), u(1 << 62), maxU128} {
		got, err := tetration.Evaluate(base, u(1))
		require.NoError(t, err)
		assert.Equal(t, 0, got.Cmp(base.ToBig()), "base %s", base.Dec())
	}
}

func TestEvaluate_2Pow5(t *testing.T) {
	got, err := tetration.Evaluate(u(2), u(5))
	require.NoError(t, err)

	want := new(big.Int).Lsh(big.NewInt(1), 65536)
	assert.Equal(t, 0, got.Cmp(want))
	assert.Len(t, got.String(), 19729)
}

func TestEvaluate_Overflow(t *testing.T) {
	_, err := tetration.Evaluate(u(3), u(4))
	require.Error(t, err)
	assert.ErrorIs(t, err, tetration.ErrOverflow)

	var oe *tetration.OverflowError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, uint64(3), oe.Level)
	// 7625597484987 needs 43 bits.
	assert.Equal(t, 43, oe.Bits)
}

func TestEvaluate_OverflowBoundary(t *testing.T) {
	// base^1 = base is the next exponent: 2^32-1 fits, 2^32 does not.
	_, err := tetration.Evaluate(u(1), u(3))
	require.NoError(t, err)

	_, err = tetration.Evaluate(u(1<<32), u(2))
	assert.ErrorIs(t, err, tetration.ErrOverflow)

	_, err = tetration.Evaluate(u(2), u(6))
	assert.ErrorIs(t, err, tetration.ErrOverflow)
}

func TestEvaluate_HugeHeightTerminates(t *testing.T) {
	huge := new(uint256.Int).SubUint64(new(uint256.Int).Lsh(u(1), 128), 1) // odd
	even := new(uint256.Int).Lsh(u(1), 127)

	got, err := tetration.Evaluate(u(1), huge)
	require.NoError(t, err)
	assert.Equal(t, "1", got.String())

	got, err = tetration.Evaluate(u(0), huge)
	require.NoError(t, err)
	assert.Equal(t, "0", got.String())

	got, err = tetration.Evaluate(u(0), even)
	require.NoError(t, err)
	assert.Equal(t, "1", got.String())

	_, err = tetration.Evaluate(u(2), huge)
	assert.ErrorIs(t, err, tetration.ErrOverflow)
}

func TestEvaluate_ZeroAlternates(t *testing.T) {
	for h := uint64(1); h <= 9; h++ {
		got, err := tetration.Evaluate(u(0), u(h))
		require.NoError(t, err)
		want := int64(0)
		if h%2 == 0 {
			want = 1
		}
		assert.Equal(t, want, got.Int64(), "height %d", h)
	}
}

func TestEvaluate_MonotonicInHeight(t *testing.T) {
	for base := uint64(2); base <= 6; base++ {
		var prev *big.Int
		for h := uint64(1); h <= 6; h++ {
			got, err := tetration.Evaluate(u(base), u(h))
			if err != nil {
				assert.ErrorIs(t, err, tetration.ErrOverflow)
				break
			}
			if prev != nil {
				assert.Equal(t, 1, got.Cmp(prev), "base %d height %d", base, h)
			}
			prev = got
		}
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	for _, p := range [][2]uint64{{3, 3}, {3, 4}, {0, 7}, {5, 2}} {
		a, errA := tetration.Evaluate(u(p[0]), u(p[1]))
		b, errB := tetration.Evaluate(u(p[0]), u(p[1]))
		assert.Equal(t, errA == nil, errB == nil)
		if errA == nil {
			assert.Equal(t, 0, a.Cmp(b))
		}
	}
}

func TestEvaluate_DoesNotMutateInputs(t *testing.T) {
	base, height := u(3), u(3)
	_, err := tetration.Evaluate(base, height)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), base.Uint64())
	assert.Equal(t, uint64(3), height.Uint64())
}

func TestEvaluator_MaxBits(t *testing.T) {
	ev := tetration.Evaluator{MaxBits: 1000}

	got, err := ev.Evaluate(u(2), u(4))
	require.NoError(t, err)
	assert.Equal(t, "65536", got.String())

	// 2^^5 = 2^65536 needs 65537 bits.
	_, err = ev.Evaluate(u(2), u(5))
	assert.ErrorIs(t, err, tetration.ErrResultTooLarge)
	assert.NotErrorIs(t, err, tetration.ErrOverflow)

	// Overflow is still reported first.
	_, err = ev.Evaluate(u(3), u(4))
	assert.ErrorIs(t, err, tetration.ErrOverflow)

	// Base 0 and 1 never grow.
	_, err = ev.Evaluate(u(0), u(10))
	assert.NoError(t, err)
}
