package timecode

import (
	"github.com/ansel1/merry/v2"
)

// Converted is a raw timecode together with its runtime at the resolved rate.
type Converted struct {
	Index    int
	Raw      string
	Timecode Timecode
	Runtime  string
}

type Converter struct {
	// DropFrame selects 29.97df instead of 29.97 for 29 fps material.
	DropFrame bool
	// Override, when set, is used instead of the rate derived from the probed frame rate.
	Override *Rate
}

// Rate returns the rate the converter uses for material probed at fps.
func (c Converter) Rate(fps int) (Rate, error) {
	if c.Override != nil {
		return *c.Override, nil
	}
	return ForFrameRate(fps, c.DropFrame)
}

// Convert converts every raw timecode, in order. The first invalid timecode fails the batch.
func (c Converter) Convert(raw []string, fps int) ([]Converted, error) {
	rate, err := c.Rate(fps)
	if err != nil {
		return nil, err
	}

	out := make([]Converted, 0, len(raw))
	for i, r := range raw {
		tc, err := Parse(r, rate)
		if err != nil {
			return nil, merry.Wrap(err, merry.WithMessagef("timecode #%d: %s", i, err.Error()))
		}
		out = append(out, Converted{
			Index:    i,
			Raw:      r,
			Timecode: tc,
			Runtime:  tc.Runtime(DefaultPrecision),
		})
	}
	return out, nil
}
