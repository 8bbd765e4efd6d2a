// Package artwork reads artwork timecodes out of editorial XML exports.
package artwork

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ansel1/merry/v2"
	"github.com/bcc-code/bcc-media-stills/common"
	"golang.org/x/net/html/charset"
)

// TimecodeElement is the element holding an artwork timecode, e.g. <artwork_time>01:02:03:04</artwork_time>.
const TimecodeElement = "artwork_time"

// TimecodeLength is the length of an HH:MM:SS:FF timecode. Other values are skipped.
const TimecodeLength = 11

// Scan returns the trimmed text of every TimecodeElement that is exactly TimecodeLength
// characters long, in document order. Duplicates are kept.
func Scan(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	timecodes := []string{}
	// One accumulator for the whole document, reset at every TimecodeElement start.
	var text strings.Builder

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var syntaxErr *xml.SyntaxError
			if errors.As(err, &syntaxErr) {
				return nil, merry.Wrap(common.ErrXMLSyntax, merry.WithMessagef("line %d: %s", syntaxErr.Line, syntaxErr.Msg), merry.WithCause(err))
			}
			return nil, merry.Wrap(common.ErrXMLSyntax, merry.WithMessagef("%s", err), merry.WithCause(err))
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == TimecodeElement {
				text.Reset()
			}
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if t.Name.Local != TimecodeElement {
				continue
			}
			value := strings.TrimSpace(text.String())
			if utf8.RuneCountInString(value) == TimecodeLength {
				timecodes = append(timecodes, value)
			}
		}
	}

	return timecodes, nil
}

// ScanFile opens path and scans it, see Scan.
func ScanFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, merry.Wrap(common.ErrIO, merry.WithMessagef("couldn't open %s: %s", path, err), merry.WithCause(err))
	}
	defer f.Close()

	return Scan(f)
}
