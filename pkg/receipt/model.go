package receipt

import (
	"fmt"
	"strings"
)

// Section groups lines by the builder that produced them.
type Section string

const (
	SectionHeader       Section = "header"
	SectionMeta         Section = "meta"
	SectionCustomer     Section = "customer"
	SectionItems        Section = "items"
	SectionTotals       Section = "totals"
	SectionPayment      Section = "payment"
	SectionNotes        Section = "notes"
	SectionTerms        Section = "terms"
	SectionReturnPolicy Section = "return_policy"
	SectionFooter       Section = "footer"
	SectionSeparator    Section = "separator"
)

// LineKind tells output renderers how to treat a line.
type LineKind string

const (
	LineText       LineKind = "text"
	LineBlank      LineKind = "blank"
	LineLogo       LineKind = "logo"
	LineItemHeader LineKind = "item_header"
	LineItemRow    LineKind = "item_row"
	LineItemDetail LineKind = "item_detail"
	LineTotal      LineKind = "total"
	LineGrandTotal LineKind = "grand_total"
	LineRule       LineKind = "rule"
	LineBarcode    LineKind = "barcode"
	LineQRCode     LineKind = "qrcode"
	LineSeparator  LineKind = "separator"
)

// Line is one physical output row. Text includes the left margin and has no
// trailing spaces; Width is its rune count.
type Line struct {
	Section   Section  `json:"section"`
	Kind      LineKind `json:"kind"`
	Text      string   `json:"text"`
	Width     int      `json:"width"`
	Bold      bool     `json:"bold,omitempty"`
	Highlight bool     `json:"highlight,omitempty"`
	Payload   string   `json:"payload,omitempty"`
}

// Receipt is the shared line model every output renderer consumes.
type Receipt struct {
	CharsPerLine int       `json:"charsPerLine"`
	Layout       Layout    `json:"layout"`
	Profile      Profile   `json:"profile"`
	Lines        []Line    `json:"lines"`
	Warnings     []Warning `json:"warnings,omitempty"`
}

// Text joins the lines with newlines.
func (r *Receipt) Text() string {
	var b strings.Builder
	for i, l := range r.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.Text)
	}
	return b.String()
}

// lineArena accumulates the lines and warnings of one section. Pointers it
// returns are only valid until the next add.
type lineArena struct {
	layout   Layout
	margin   string
	section  Section
	lines    []Line
	warnings []Warning
}

func newLineArena(l Layout, s Section) *lineArena {
	return &lineArena{layout: l, margin: strings.Repeat(" ", l.MarginLeft), section: s}
}

func (a *lineArena) add(kind LineKind, content string) *Line {
	content = strings.TrimRight(singleLine(content), " ")
	text := ""
	if content != "" {
		text = a.margin + content
	}
	a.lines = append(a.lines, Line{
		Section: a.section,
		Kind:    kind,
		Text:    text,
		Width:   textWidth(text),
	})
	return &a.lines[len(a.lines)-1]
}

func (a *lineArena) text(content string) *Line {
	return a.add(LineText, content)
}

// capped wraps text to at most MaxFreeTextLines rows, warning when cut.
func (a *lineArena) capped(field, text string, align func(string, int) string) {
	lines, cut := WrapLimited(text, a.layout.ContentWidth, MaxFreeTextLines)
	for _, l := range lines {
		if align != nil {
			l = align(l, a.layout.ContentWidth)
		}
		a.text(l)
	}
	if cut {
		a.warn(WarnTextTruncated, "%s truncated to %d lines", field, MaxFreeTextLines)
	}
}

// centered wraps text and centres each row.
func (a *lineArena) centered(kind LineKind, text string) {
	for _, l := range Wrap(text, a.layout.ContentWidth) {
		a.add(kind, center(l, a.layout.ContentWidth))
	}
}

// indented wraps text inside a hanging indent.
func (a *lineArena) indented(kind LineKind, indent int, text string) {
	pad := strings.Repeat(" ", indent)
	for _, l := range Wrap(text, a.layout.ContentWidth-indent) {
		a.add(kind, pad+l)
	}
}

// keyValue puts key on the left and value on the right. When both cannot
// share the line the value wraps below, right-aligned.
func (a *lineArena) keyValue(kind LineKind, key, value string) {
	width := a.layout.ContentWidth
	if textWidth(key)+1+textWidth(value) <= width {
		gap := width - textWidth(key) - textWidth(value)
		a.add(kind, key+strings.Repeat(" ", gap)+value)
		return
	}
	for _, k := range Wrap(key, width) {
		a.add(kind, k)
	}
	a.rightAligned(kind, value)
}

// rightAligned emits text flush with the right edge of the content area.
func (a *lineArena) rightAligned(kind LineKind, text string) {
	if textWidth(text) <= a.layout.ContentWidth {
		a.add(kind, padLeft(text, a.layout.ContentWidth))
		return
	}
	for _, l := range Wrap(text, a.layout.ContentWidth) {
		a.add(kind, padLeft(l, a.layout.ContentWidth))
	}
}

func (a *lineArena) rule(kind LineKind, ch rune) {
	a.add(kind, strings.Repeat(string(ch), a.layout.ContentWidth))
}

// emphasize marks every line from index on as bold.
func (a *lineArena) emphasize(from int) {
	for i := from; i < len(a.lines); i++ {
		a.lines[i].Bold = true
	}
}

func (a *lineArena) warn(code, format string, args ...any) {
	a.warnings = append(a.warnings, Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}
