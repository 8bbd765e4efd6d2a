package stills

import (
	"os"

	"github.com/ansel1/merry/v2"
	"github.com/bcc-code/bcc-media-stills/common"
	"github.com/gocarina/gocsv"
)

type ReportRow struct {
	Index      int     `csv:"Index"`
	Timecode   string  `csv:"Timecode"`
	Runtime    string  `csv:"Runtime"`
	OutputPath string  `csv:"Output"`
	Status     string  `csv:"Status"`
	Error      string  `csv:"Error"`
	Seconds    float64 `csv:"Seconds"`
}

func ReportRows(results []Result) []*ReportRow {
	rows := make([]*ReportRow, len(results))
	for i, r := range results {
		row := &ReportRow{
			Index:      r.Index,
			Timecode:   r.Timecode,
			Runtime:    r.Runtime,
			OutputPath: r.OutputPath,
			Status:     "ok",
			Seconds:    r.Duration.Seconds(),
		}
		if !r.OK() {
			row.Status = "failed"
			row.Error = r.Err.Error()
		}
		rows[i] = row
	}
	return rows
}

// WriteReport writes one CSV row per result to path.
func WriteReport(path string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return merry.Wrap(common.ErrIO, merry.WithMessagef("couldn't create report %s: %s", path, err), merry.WithCause(err))
	}
	defer f.Close()

	err = gocsv.MarshalFile(ReportRows(results), f)
	if err != nil {
		return merry.Wrap(common.ErrIO, merry.WithMessagef("couldn't write report %s: %s", path, err), merry.WithCause(err))
	}
	return nil
}
