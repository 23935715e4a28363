package receipt

import (
	"strings"
	"unicode/utf8"
)

// Fixed item-table column widths.
const (
	QtyWidth    = 3
	RateWidth   = 6
	AmountWidth = 7
	GutterWidth = 1

	reservedColumns = QtyWidth + RateWidth + AmountWidth + 3*GutterWidth
)

// Columns holds the item-table column widths. Name is always positive.
type Columns struct {
	Name   int `json:"name"`
	Qty    int `json:"qty"`
	Rate   int `json:"rate"`
	Amount int `json:"amount"`
	Gutter int `json:"gutter"`
}

// AlignFunc pads one line to width.
type AlignFunc func(line string, width int) string

// Layout is the resolved character grid for one render.
type Layout struct {
	CharsPerLine int         `json:"charsPerLine"`
	MarginLeft   int         `json:"marginLeft"`
	MarginRight  int         `json:"marginRight"`
	ContentWidth int         `json:"contentWidth"`
	Columns      Columns     `json:"columns"`
	HeaderStyle  HeaderStyle `json:"headerStyle"`
	FellBack     bool        `json:"fellBack"`
	Align        AlignFunc   `json:"-"`
}

// ResolveLayout derives the character grid from the profile. When the
// requested width leaves no room for the item name it falls back to the
// paper-width table value (and then drops margins); the returned
// RenderOverflowError describes what was recovered from.
func ResolveLayout(p Profile) (Layout, *RenderOverflowError) {
	table := p.PaperWidth.CharsPerLine()
	if table == 0 {
		table = Paper80mm.CharsPerLine()
	}
	cpl := table
	if p.CharactersPerLine > 0 {
		cpl = p.CharactersPerLine
	}

	l, overflow := gridFor(cpl, p.MarginLeft, p.MarginRight)
	if overflow == nil {
		l.HeaderStyle, l.Align = p.HeaderStyle, AlignFor(p.HeaderStyle)
		return l, nil
	}

	l, err := gridFor(table, p.MarginLeft, p.MarginRight)
	if err != nil {
		l, _ = gridFor(table, 0, 0)
	}
	l.FellBack = true
	l.HeaderStyle, l.Align = p.HeaderStyle, AlignFor(p.HeaderStyle)
	return l, overflow
}

func gridFor(cpl, marginLeft, marginRight int) (Layout, *RenderOverflowError) {
	content := cpl - marginLeft - marginRight
	name := content - reservedColumns
	if name <= 0 {
		return Layout{}, &RenderOverflowError{CharsPerLine: cpl, ContentWidth: content, NameWidth: name}
	}
	return Layout{
		CharsPerLine: cpl,
		MarginLeft:   marginLeft,
		MarginRight:  marginRight,
		ContentWidth: content,
		Columns: Columns{
			Name:   name,
			Qty:    QtyWidth,
			Rate:   RateWidth,
			Amount: AmountWidth,
			Gutter: GutterWidth,
		},
	}, nil
}

// AlignFor maps a header style to its padding function.
func AlignFor(style HeaderStyle) AlignFunc {
	switch style {
	case HeaderLeft:
		return alignLeft
	case HeaderJustified:
		return alignJustified
	default:
		return alignCentered
	}
}

func alignLeft(line string, _ int) string {
	return line
}

func alignCentered(line string, width int) string {
	return center(line, width)
}

func alignJustified(line string, width int) string {
	return justify(line, width)
}

// alignBlock aligns the lines of one wrapped field. Justified text leaves the
// final line ragged.
func (l Layout) alignBlock(lines []string) []string {
	align := l.Align
	if align == nil {
		align = AlignFor(l.HeaderStyle)
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if l.HeaderStyle == HeaderJustified && i == len(lines)-1 {
			out[i] = line
			continue
		}
		out[i] = align(line, l.ContentWidth)
	}
	return out
}

func center(s string, width int) string {
	n := textWidth(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}

func justify(s string, width int) string {
	words := strings.Fields(s)
	if len(words) < 2 {
		return s
	}
	letters := 0
	for _, w := range words {
		letters += textWidth(w)
	}
	gaps := len(words) - 1
	spaces := width - letters
	if spaces < gaps {
		return s
	}
	var b strings.Builder
	for i, w := range words {
		b.WriteString(w)
		if i == gaps {
			break
		}
		n := spaces / gaps
		if i < spaces%gaps {
			n++
		}
		b.WriteString(strings.Repeat(" ", n))
	}
	return b.String()
}

func padLeft(s string, width int) string {
	n := textWidth(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

func padRight(s string, width int) string {
	n := textWidth(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// textWidth counts runes; every rune occupies one cell on the printer grid.
func textWidth(s string) int {
	return utf8.RuneCountInString(s)
}
