package receipt

import (
	"bytes"
	"fmt"
)

// cutFeedLines is how far paper advances past the last line before cutting.
const cutFeedLines = 4

// gsPartialCut is GS V 1.
var gsPartialCut = []byte{0x1D, 0x56, 0x01}

// PlainText renders the receipt as fixed-width text in the profile's
// character encoding.
type PlainText struct{}

func (PlainText) ContentType() string {
	return "text/plain"
}

func (PlainText) Render(r *Receipt) ([]byte, error) {
	enc, ok := LookupEncoding(r.Profile.CharacterEncoding)
	if !ok {
		return nil, fmt.Errorf("plain text: unknown encoding %q", r.Profile.CharacterEncoding)
	}

	var buf bytes.Buffer
	for i, l := range r.Lines {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(enc.Encode(l.Text))
	}
	if r.Profile.AutoCut {
		buf.Write(bytes.Repeat([]byte{'\n'}, cutFeedLines))
		buf.Write(gsPartialCut)
	}
	return buf.Bytes(), nil
}
