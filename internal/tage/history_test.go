package tage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGlobalHistoryShiftTracksRecentBit(t *testing.T) {
	var h GlobalHistory
	h.Shift(true)
	require.Equal(t, uint64(1), h.words[0]&1)

	h.Shift(false)
	require.Equal(t, uint64(0), h.words[0]&1)
	require.Equal(t, uint64(1), (h.words[0]>>1)&1)
}

func TestGlobalHistoryCompressDeterministic(t *testing.T) {
	var h GlobalHistory
	for i := 0; i < 250; i++ {
		h.Shift(i%3 == 0)
	}

	boundaries := VariantWide.Params().CompressBoundaries
	for _, length := range []int{4, 8, 16, 32, 64, 128, 200, 320} {
		a := h.Compress(length, 320, boundaries)
		b := h.Compress(length, 320, boundaries)
		require.Equal(t, a, b, "Compress must be a pure function of history state")
	}
}

func TestGlobalHistoryCompressClampsToMaxHist(t *testing.T) {
	var h GlobalHistory
	for i := 0; i < 400; i++ {
		h.Shift(i%2 == 0)
	}

	boundaries := VariantTuned.Params().CompressBoundaries
	require.Equal(t, h.Compress(200, 200, boundaries), h.Compress(500, 200, boundaries))
}

func TestGlobalHistoryCompressVariesWithLength(t *testing.T) {
	var h GlobalHistory
	for i := 0; i < 320; i++ {
		h.Shift(i%5 < 2)
	}

	boundaries := VariantWide.Params().CompressBoundaries
	seen := map[uint64]bool{}
	for _, length := range []int{4, 8, 16, 32, 64, 128, 200, 320} {
		seen[h.Compress(length, 320, boundaries)] = true
	}
	require.Greater(t, len(seen), 1, "different history lengths should almost never collide")
}

// TestGlobalHistoryCompressTunedIgnoresFourthWord pins down the branch
// structure difference between the two variants' compress_history case
// ladders: 3.7.h's MAX_HIST=200 case only ever reads words 0..2, so
// changing word 3 must not change its output, while 3.5.h's MAX_HIST=320
// ladder reaches into word 3 by length 200 and must be sensitive to it.
func TestGlobalHistoryCompressTunedIgnoresFourthWord(t *testing.T) {
	var withoutWord3, withWord3 GlobalHistory
	withoutWord3.words = [historyWords]uint64{0x1111, 0x2222, 0x3333, 0, 0}
	withWord3.words = [historyWords]uint64{0x1111, 0x2222, 0x3333, 0xdeadbeef, 0}

	tunedBoundaries := VariantTuned.Params().CompressBoundaries
	require.Equal(t,
		withoutWord3.Compress(200, 200, tunedBoundaries),
		withWord3.Compress(200, 200, tunedBoundaries),
		"3.7.h's len<=200 case never reads a fourth history word")

	wideBoundaries := VariantWide.Params().CompressBoundaries
	require.NotEqual(t,
		withoutWord3.Compress(200, 320, wideBoundaries),
		withWord3.Compress(200, 320, wideBoundaries),
		"3.5.h's case ladder reaches into a fourth history word by length 200")
}

func TestGlobalHistoryReset(t *testing.T) {
	var h GlobalHistory
	h.Shift(true)
	h.Reset()
	require.Equal(t, GlobalHistory{}, h)
}
