package receipt

import (
	"sort"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// EncodingUTF8 passes text through unchanged.
const EncodingUTF8 = "utf-8"

// Encoding is an output character set. Charmap is nil for UTF-8.
// CodePage is the ESC t table number most Epson-compatible printers use.
type Encoding struct {
	Name     string
	Charmap  *charmap.Charmap
	CodePage byte
}

var encodings = map[string]Encoding{
	EncodingUTF8:   {Name: EncodingUTF8},
	"cp437":        {Name: "cp437", Charmap: charmap.CodePage437, CodePage: 0},
	"cp850":        {Name: "cp850", Charmap: charmap.CodePage850, CodePage: 2},
	"cp858":        {Name: "cp858", Charmap: charmap.CodePage858, CodePage: 19},
	"cp866":        {Name: "cp866", Charmap: charmap.CodePage866, CodePage: 17},
	"windows-1252": {Name: "windows-1252", Charmap: charmap.Windows1252, CodePage: 16},
	"iso-8859-1":   {Name: "iso-8859-1", Charmap: charmap.ISO8859_1, CodePage: 16},
	"iso-8859-15":  {Name: "iso-8859-15", Charmap: charmap.ISO8859_15, CodePage: 40},
}

// LookupEncoding finds an encoding by its profile name.
func LookupEncoding(name string) (Encoding, bool) {
	e, ok := encodings[name]
	return e, ok
}

// EncodingNames lists the supported encoding names in sorted order.
func EncodingNames() []string {
	names := make([]string, 0, len(encodings))
	for n := range encodings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// IsUTF8 reports whether the encoding is a pass-through.
func (e Encoding) IsUTF8() bool {
	return e.Charmap == nil
}

// CanEncode reports whether r has a single-byte representation.
func (e Encoding) CanEncode(r rune) bool {
	if e.Charmap == nil {
		return true
	}
	_, ok := e.Charmap.EncodeRune(r)
	return ok
}

// CanEncodeString reports whether every rune of s can be encoded.
func (e Encoding) CanEncodeString(s string) bool {
	for _, r := range s {
		if !e.CanEncode(r) {
			return false
		}
	}
	return true
}

// Encode converts s to the output character set. Runes the code page cannot
// represent become '?', one byte per rune, so column widths are preserved.
func (e Encoding) Encode(s string) []byte {
	if e.Charmap == nil {
		return []byte(s)
	}
	out := make([]byte, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		b, ok := e.Charmap.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}
