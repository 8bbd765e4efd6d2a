package common

import (
	"errors"

	"github.com/ansel1/merry/v2"
)

// Errors shared by the probe, scan, convert and extract stages.
// Wrap them with merry.Wrap and match with errors.Is.
var (
	ErrIO              = merry.Sentinel("io error")
	ErrParse           = merry.Sentinel("parse error")
	ErrIndex           = merry.Sentinel("stream index out of range")
	ErrXMLSyntax       = merry.Sentinel("xml syntax error")
	ErrUnsupportedRate = merry.Sentinel("unsupported frame rate")
	ErrTimecodeParse   = merry.Sentinel("invalid timecode")
	ErrExternalTool    = merry.Sentinel("external tool failed")
	ErrSpawn           = merry.Sentinel("external tool could not be started")
)

// Fatal reports whether err belongs to the stages that abort a run before
// any extraction starts.
func Fatal(err error) bool {
	for _, sentinel := range []error{ErrIO, ErrParse, ErrIndex, ErrXMLSyntax, ErrUnsupportedRate, ErrTimecodeParse} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
