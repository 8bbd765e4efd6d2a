package main

import (
	"flag"
	"io"
	"strings"

	"github.com/ansel1/merry/v2"
	"github.com/bcc-code/bcc-media-stills/environment"
	"github.com/bcc-code/bcc-media-stills/timecode"
	"github.com/bcc-code/bcc-media-stills/utils"
	"github.com/samber/lo"
)

var errMissingInput = merry.Sentinel("both a video and an XML file are required")

type options struct {
	VideoPath   string
	XMLPath     string
	OutputDir   string
	Concurrency int
	DropFrame   bool
	Rate        string
	ReportPath  string
	Temporal    bool
	Verbose     bool
}

// parseFlags reads flags and up to two positional arguments, video then XML.
// Defaults come from the environment.
func parseFlags(args []string, cfg environment.Config, output io.Writer) (options, error) {
	opts := options{}

	rates := strings.Join(lo.Map(timecode.Rates.Members(), func(r timecode.Rate, _ int) string { return r.Value }), "|")

	fs := flag.NewFlagSet("stills", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.VideoPath, "video", "", "source video file")
	fs.StringVar(&opts.XMLPath, "xml", "", "editorial XML file with artwork_time elements")
	fs.StringVar(&opts.OutputDir, "out", cfg.OutputDir, "directory the stills are written to")
	fs.IntVar(&opts.Concurrency, "concurrency", cfg.Concurrency, "number of ffmpeg processes running at once")
	fs.BoolVar(&opts.DropFrame, "drop-frame", cfg.DropFrame, "read 29.97 timecodes as drop-frame")
	fs.StringVar(&opts.Rate, "rate", "", "timecode rate, "+rates+", instead of the probed frame rate")
	fs.StringVar(&opts.ReportPath, "report", "", "write a CSV report of every still to this file")
	fs.BoolVar(&opts.Temporal, "temporal", false, "run as a workflow on the stills worker")
	fs.BoolVar(&opts.Verbose, "v", false, "verbose output")

	err := fs.Parse(args)
	if err != nil {
		return opts, err
	}

	rest := fs.Args()
	if opts.VideoPath == "" && len(rest) > 0 {
		opts.VideoPath, rest = rest[0], rest[1:]
	}
	if opts.XMLPath == "" && len(rest) > 0 {
		opts.XMLPath = rest[0]
	}

	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	return opts, nil
}

// resolveInputs asks for the video and XML paths when neither was given and a user is at the terminal.
func (o *options) resolveInputs(p *utils.Prompter, interactive bool) error {
	if o.VideoPath == "" && o.XMLPath == "" && interactive {
		var err error
		o.VideoPath, err = p.GetParam(nil, 0, "Enter the path to the video file:")
		if err != nil {
			return merry.Wrap(errMissingInput, merry.WithCause(err))
		}
		o.XMLPath, err = p.GetParam(nil, 1, "Enter the path to the XML file: ")
		if err != nil {
			return merry.Wrap(errMissingInput, merry.WithCause(err))
		}
	}

	if o.VideoPath == "" || o.XMLPath == "" {
		return errMissingInput
	}
	return nil
}
