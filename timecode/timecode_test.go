package timecode

import (
	"errors"
	"math/big"
	"testing"

	"github.com/bcc-code/bcc-media-stills/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuntime(t *testing.T) {
	tests := []struct {
		raw      string
		rate     Rate
		expected string
	}{
		{"01:00:00:00", Rate23_976, "01:00:03.6"},
		{"01:02:03:04", Rate24, "01:02:03.167"},
		{"00:00:01:00", Rate29_97, "00:00:01.001"},
		{"00:00:00:00", Rate24, "00:00:00.0"},
		{"00:00:00:12", Rate25, "00:00:00.48"},
		{"00:00:10:00", Rate25, "00:00:10.0"},
		{"00:00:00:15", Rate30, "00:00:00.5"},
		{"10:00:00:00", Rate30, "10:00:00.0"},
		{"00:00:00:01", Rate24, "00:00:00.042"},
		{"00:01:00;02", Rate29_97DF, "00:01:00.06"},
		{"00:10:00;00", Rate29_97DF, "00:09:59.999"},
		{"01:00:00;00", Rate29_97DF, "00:59:59.996"},
	}

	for _, tt := range tests {
		t.Run(tt.raw+"@"+tt.rate.Value, func(t *testing.T) {
			tc, err := Parse(tt.raw, tt.rate)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tc.Runtime(DefaultPrecision))
		})
	}
}

func TestParse_Frames(t *testing.T) {
	tc, err := Parse("01:02:03:04", Rate24)
	require.NoError(t, err)
	assert.EqualValues(t, 89356, tc.Frames)

	// 25 fps timecodes count 25 frames per second.
	tc, err = Parse("00:00:01:24", Rate25)
	require.NoError(t, err)
	assert.EqualValues(t, 49, tc.Frames)

	tc, err = Parse("00:01:00;02", Rate29_97DF)
	require.NoError(t, err)
	assert.EqualValues(t, 1800, tc.Frames)

	tc, err = Parse("00:10:00;00", Rate29_97DF)
	require.NoError(t, err)
	assert.EqualValues(t, 17982, tc.Frames)

	// Colon separator is accepted at drop-frame rates.
	tc, err = Parse("00:10:00:00", Rate29_97DF)
	require.NoError(t, err)
	assert.EqualValues(t, 17982, tc.Frames)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		rate Rate
	}{
		{"short", "01:02:03", Rate24},
		{"wrong separator", "01-02-03-04", Rate24},
		{"semicolon in wrong place", "01;02:03:04", Rate29_97DF},
		{"non-digit", "01:0a:03:04", Rate24},
		{"minutes", "01:60:00:00", Rate24},
		{"seconds", "01:00:60:00", Rate24},
		{"frames at 24", "01:00:00:24", Rate24},
		{"frames at 25", "01:00:00:25", Rate25},
		{"drop-frame separator at ndf", "01:00:00;00", Rate29_97},
		{"dropped frame", "00:01:00;00", Rate29_97DF},
		{"dropped frame 1", "00:01:00;01", Rate29_97DF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw, tt.rate)
			assert.True(t, errors.Is(err, common.ErrTimecodeParse), "got %v", err)
		})
	}
}

func TestParse_UnknownRate(t *testing.T) {
	_, err := Parse("00:00:00:00", Rate{"12"})
	assert.True(t, errors.Is(err, common.ErrUnsupportedRate))
}

func TestSeconds(t *testing.T) {
	tc, err := Parse("00:00:01:00", Rate23_976)
	require.NoError(t, err)
	assert.Equal(t, 0, tc.Seconds().Cmp(big.NewRat(1001, 1000)))
}

func TestRuntime_RoundsHalfToEven(t *testing.T) {
	assert.EqualValues(t, 62, roundHalfEven(big.NewRat(625, 10)).Int64())
	assert.EqualValues(t, 64, roundHalfEven(big.NewRat(635, 10)).Int64())
	assert.EqualValues(t, 63, roundHalfEven(big.NewRat(626, 10)).Int64())
}

func TestRuntime_Precision(t *testing.T) {
	tc, err := Parse("01:02:03:04", Rate24)
	require.NoError(t, err)
	assert.Equal(t, "01:02:03", tc.Runtime(0))
	assert.Equal(t, "01:02:03.2", tc.Runtime(1))
	assert.Equal(t, "01:02:03.16667", tc.Runtime(5))
}
