package printer

import (
	"bytes"
	"image"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// FontTall is GS ! with double height only, keeping the column count.
const FontTall = 0x01

// Print density offsets for GS ( K fn 49, in steps from the printer default.
const (
	DensityLight  int8 = -3
	DensityMedium int8 = 0
	DensityDark   int8 = 3
)

const (
	barcodeHeight  = 80
	barcodeCODE128 = 73
	hriBelow       = 2
)

// Document builds an ESC/POS byte stream for thermal printers. Text is
// written as already-encoded bytes; the caller owns the code page.
type Document struct {
	buf bytes.Buffer
}

// NewDocument creates a new ESC/POS document starting with ESC @.
func NewDocument() *Document {
	d := &Document{}
	d.Init()
	return d
}

// Init sends the ESC @ (initialize printer) command.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetCodePage selects the character code table (ESC t n).
func (d *Document) SetCodePage(page byte) *Document {
	d.buf.Write([]byte{ESC, 't', page})
	return d
}

// SetLineSpacing sets the line spacing in motion units (ESC 3 n).
func (d *Document) SetLineSpacing(n byte) *Document {
	d.buf.Write([]byte{ESC, '3', n})
	return d
}

// SetDensity adjusts print density (GS ( K pL pH fn=49 d).
func (d *Document) SetDensity(step int8) *Document {
	d.buf.Write([]byte{GS, '(', 'K', 2, 0, 49, byte(step)})
	return d
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	d.buf.Write([]byte{ESC, 'E', flag(on)})
	return d
}

// SetReverse enables or disables white-on-black printing (GS B n).
func (d *Document) SetReverse(on bool) *Document {
	d.buf.Write([]byte{GS, 'B', flag(on)})
	return d
}

// SetFontSize sets the character size (GS ! n).
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes encoded text followed by a line feed.
func (d *Document) Text(b []byte) *Document {
	d.buf.Write(b)
	d.buf.WriteByte(LF)
	return d
}

// Barcode128 prints data as a CODE128 (code set B) barcode with the
// human-readable text below it.
func (d *Document) Barcode128(data string) *Document {
	payload := append([]byte("{B"), data...)
	d.buf.Write([]byte{GS, 'h', barcodeHeight})
	d.buf.Write([]byte{GS, 'H', hriBelow})
	d.buf.Write([]byte{GS, 'k', barcodeCODE128, byte(len(payload))})
	d.buf.Write(payload)
	d.buf.WriteByte(LF)
	return d
}

// Image prints img as a monochrome raster (GS v 0). Pixels darker than
// mid-grey print black; transparent pixels print white.
func (d *Document) Image(img image.Image) *Document {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	widthBytes := (width + 7) / 8

	d.buf.Write([]byte{GS, 'v', '0', 0,
		byte(widthBytes), byte(widthBytes >> 8),
		byte(height), byte(height >> 8),
	})

	row := make([]byte, widthBytes)
	for y := 0; y < height; y++ {
		for i := range row {
			row[i] = 0
		}
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			if a == 0 {
				continue
			}
			lum := (299*r + 587*g + 114*b) / 1000
			if lum < 0x8000 {
				row[x/8] |= 0x80 >> uint(x%8)
			}
		}
		d.buf.Write(row)
	}
	d.buf.WriteByte(LF)
	return d
}

// PartialCut sends the partial cut command.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func flag(on bool) byte {
	if on {
		return 1
	}
	return 0
}
