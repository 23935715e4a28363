package receipt

import (
	"fmt"
	"strings"
)

// Render lays out a transaction with a resolved profile. It validates both
// inputs before building any line, so a failed render never yields a partial
// receipt. Rendering the same inputs twice produces identical output.
func Render(txn Transaction, p Profile) (*Receipt, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p = p.sanitized()
	txn = txn.sanitized()
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	var warnings []Warning

	layout, overflow := ResolveLayout(p)
	if overflow != nil {
		warnings = append(warnings, Warning{
			Code:    WarnLayoutFallback,
			Message: fmt.Sprintf("%s; using %d chars per line", overflow.Error(), layout.CharsPerLine),
		})
	}

	symbol, exact := p.printableCurrency()
	if !exact {
		warnings = append(warnings, Warning{
			Code:    WarnCurrencyFallback,
			Message: fmt.Sprintf("currency symbol %s is not printable in %s; using %s", p.CurrencySymbol, p.CharacterEncoding, symbol),
		})
	}

	rc := renderContext{
		txn:     txn,
		layout:  layout,
		profile: p,
		format:  NewFormatter(p.Language, symbol),
	}

	var lines []Line
	for _, b := range sectionOrder {
		arena := newLineArena(layout, b.section)
		b.build(rc, arena)
		warnings = append(warnings, arena.warnings...)
		if len(arena.lines) == 0 {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, separatorLine(layout, p.SeparatorStyle))
		}
		lines = append(lines, arena.lines...)
	}

	lines = trimTrailingBlank(lines)
	lines, clamped := clampLines(lines, layout.CharsPerLine)
	warnings = append(warnings, clamped...)

	return &Receipt{
		CharsPerLine: layout.CharsPerLine,
		Layout:       layout,
		Profile:      p,
		Lines:        lines,
		Warnings:     warnings,
	}, nil
}

func separatorLine(l Layout, style SeparatorStyle) Line {
	a := newLineArena(l, SectionSeparator)
	a.rule(LineSeparator, style.Char())
	return a.lines[0]
}

func trimTrailingBlank(lines []Line) []Line {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1].Text) == "" &&
		lines[len(lines)-1].Payload == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// clampLines truncates any line wider than cpl. Builders never produce one;
// a warning here points at a layout bug.
func clampLines(lines []Line, cpl int) ([]Line, []Warning) {
	var warnings []Warning
	for i := range lines {
		if lines[i].Width <= cpl {
			continue
		}
		lines[i].Text = Truncate(lines[i].Text, cpl)
		lines[i].Width = textWidth(lines[i].Text)
		warnings = append(warnings, Warning{
			Code:    WarnLineClamped,
			Message: fmt.Sprintf("line %d in %s clamped to %d chars", i+1, lines[i].Section, cpl),
		})
	}
	return lines, warnings
}
