package timecode

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ansel1/merry/v2"
	"github.com/bcc-code/bcc-media-stills/common"
)

// DefaultPrecision is the number of decimals in a runtime, i.e. milliseconds.
const DefaultPrecision = 3

// Timecode is a frame position at a given rate.
type Timecode struct {
	Frames int64
	Rate   Rate
}

// Parse reads an "HH:MM:SS:FF" timecode. Drop-frame rates also accept "HH:MM:SS;FF".
func Parse(raw string, rate Rate) (Timecode, error) {
	info, ok := rateInfos[rate]
	if !ok {
		return Timecode{}, merry.Wrap(common.ErrUnsupportedRate, merry.WithMessagef("unsupported rate %q", rate.Value))
	}

	fields, err := split(raw)
	if err != nil {
		return Timecode{}, err
	}
	hours, minutes, seconds, frames := fields[0], fields[1], fields[2], fields[3]

	if raw[8] == ';' && !info.dropFrame {
		return Timecode{}, parseError(raw, "drop-frame separator at non-drop-frame rate %s", rate.Value)
	}
	if minutes >= 60 {
		return Timecode{}, parseError(raw, "minutes out of range")
	}
	if seconds >= 60 {
		return Timecode{}, parseError(raw, "seconds out of range")
	}
	tb := int64(info.timebase)
	if frames >= tb {
		return Timecode{}, parseError(raw, "frame %d out of range for timebase %d", frames, tb)
	}

	total := (hours*3600+minutes*60+seconds)*tb + frames

	if info.dropFrame {
		drop := tb / 15
		if minutes%10 != 0 && seconds == 0 && frames < drop {
			return Timecode{}, parseError(raw, "frame %d is dropped at rate %s", frames, rate.Value)
		}
		totalMinutes := hours*60 + minutes
		total -= drop * (totalMinutes - totalMinutes/10)
	}

	return Timecode{Frames: total, Rate: rate}, nil
}

func split(raw string) ([4]int64, error) {
	var fields [4]int64
	if len(raw) != 11 {
		return fields, parseError(raw, "expected HH:MM:SS:FF")
	}
	for i, sep := range []int{2, 5, 8} {
		c := raw[sep]
		if c != ':' && !(i == 2 && c == ';') {
			return fields, parseError(raw, "expected HH:MM:SS:FF")
		}
	}
	for i := range fields {
		tens, ones := raw[i*3], raw[i*3+1]
		if tens < '0' || tens > '9' || ones < '0' || ones > '9' {
			return fields, parseError(raw, "non-digit in timecode")
		}
		fields[i] = int64(tens-'0')*10 + int64(ones-'0')
	}
	return fields, nil
}

func parseError(raw, format string, args ...any) error {
	return merry.Wrap(common.ErrTimecodeParse, merry.WithMessagef("invalid timecode %q: %s", raw, fmt.Sprintf(format, args...)))
}

// Seconds is the exact playback position.
func (t Timecode) Seconds() *big.Rat {
	rate := t.Rate.Rational()
	if rate.Sign() == 0 {
		return new(big.Rat)
	}
	return new(big.Rat).Quo(new(big.Rat).SetInt64(t.Frames), rate)
}

// Runtime formats the playback position as HH:MM:SS.fff, rounded half to even at the
// given number of decimals. Trailing zeros are trimmed, keeping at least one decimal.
func (t Timecode) Runtime(precision int) string {
	if precision < 0 {
		precision = 0
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(precision)), nil)

	scaled := new(big.Rat).Mul(t.Seconds(), new(big.Rat).SetInt(scale))
	units := roundHalfEven(scaled)

	whole, frac := new(big.Int).QuoRem(units, scale, new(big.Int))
	total := whole.Int64()
	hh, mm, ss := total/3600, total/60%60, total%60

	if precision == 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hh, mm, ss)
	}

	digits := fmt.Sprintf("%0*d", precision, frac.Int64())
	digits = strings.TrimRight(digits, "0")
	if digits == "" {
		digits = "0"
	}
	return fmt.Sprintf("%02d:%02d:%02d.%s", hh, mm, ss, digits)
}

func roundHalfEven(r *big.Rat) *big.Int {
	num, den := r.Num(), r.Denom()
	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	twice := new(big.Int).Mul(rem.Abs(rem), big.NewInt(2))
	switch twice.Cmp(den) {
	case 1:
		q.Add(q, big.NewInt(int64(num.Sign())))
	case 0:
		if q.Bit(0) == 1 {
			q.Add(q, big.NewInt(int64(num.Sign())))
		}
	}
	return q
}
