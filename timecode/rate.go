package timecode

import (
	"math/big"
	"strings"

	"github.com/ansel1/merry/v2"
	"github.com/bcc-code/bcc-media-stills/common"
	"github.com/orsinium-labs/enum"
	"github.com/samber/lo"
)

type Rate enum.Member[string]

var (
	Rate23_976  = Rate{"23.976"}
	Rate24      = Rate{"24"}
	Rate25      = Rate{"25"}
	Rate29_97   = Rate{"29.97"}
	Rate29_97DF = Rate{"29.97df"}
	Rate30      = Rate{"30"}
	Rates       = enum.New(Rate23_976, Rate24, Rate25, Rate29_97, Rate29_97DF, Rate30)
)

type rateInfo struct {
	numerator   int64
	denominator int64
	timebase    int
	dropFrame   bool
}

var rateInfos = map[Rate]rateInfo{
	Rate23_976:  {24000, 1001, 24, false},
	Rate24:      {24, 1, 24, false},
	Rate25:      {25, 1, 25, false},
	Rate29_97:   {30000, 1001, 30, false},
	Rate29_97DF: {30000, 1001, 30, true},
	Rate30:      {30, 1, 30, false},
}

// Rational is the playback rate in frames per second.
func (r Rate) Rational() *big.Rat {
	info := rateInfos[r]
	if info.denominator == 0 {
		return new(big.Rat)
	}
	return big.NewRat(info.numerator, info.denominator)
}

// Timebase is the number of frame labels per timecode second.
func (r Rate) Timebase() int {
	return rateInfos[r].timebase
}

func (r Rate) DropFrame() bool {
	return rateInfos[r].dropFrame
}

func (r Rate) String() string {
	return r.Value
}

// ForFrameRate maps a floored probe frame rate onto a supported rate.
// 29 is non-drop-frame unless dropFrame is set.
func ForFrameRate(fps int, dropFrame bool) (Rate, error) {
	switch fps {
	case 23:
		return Rate23_976, nil
	case 24:
		return Rate24, nil
	case 25:
		return Rate25, nil
	case 29:
		if dropFrame {
			return Rate29_97DF, nil
		}
		return Rate29_97, nil
	case 30:
		return Rate30, nil
	}
	return Rate{}, merry.Wrap(common.ErrUnsupportedRate, merry.WithMessagef("unsupported frame rate %d", fps))
}

// ParseRate parses one of the Rates values, e.g. "29.97df".
func ParseRate(value string) (Rate, error) {
	rate := Rates.Parse(strings.ToLower(strings.TrimSpace(value)))
	if rate == nil {
		values := lo.Map(Rates.Members(), func(r Rate, _ int) string { return r.Value })
		return Rate{}, merry.Wrap(common.ErrUnsupportedRate,
			merry.WithMessagef("unsupported rate %q, expected one of %s", value, strings.Join(values, ", ")))
	}
	return *rate, nil
}
