package receipt

import "strings"

// TruncationMarker is appended to text that was cut short.
const TruncationMarker = "..."

// Wrap breaks text into lines no wider than width runes. Explicit newlines are
// hard breaks; words are packed greedily and only words longer than width are
// split.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	text = strings.ReplaceAll(text, "\r", "")

	var lines []string
	for _, segment := range strings.Split(text, "\n") {
		lines = append(lines, wrapSegment(segment, width)...)
	}
	return lines
}

func wrapSegment(segment string, width int) []string {
	words := strings.Fields(segment)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var b strings.Builder
	current := 0
	emit := func() {
		lines = append(lines, b.String())
		b.Reset()
		current = 0
	}

	for _, word := range words {
		for _, piece := range splitWord(word, width) {
			n := textWidth(piece)
			if current > 0 && current+1+n > width {
				emit()
			}
			if current > 0 {
				b.WriteByte(' ')
				current++
			}
			b.WriteString(piece)
			current += n
		}
	}
	if current > 0 {
		emit()
	}
	return lines
}

// splitWord hard-splits a word longer than width at the width boundary.
func splitWord(word string, width int) []string {
	runes := []rune(word)
	if len(runes) <= width {
		return []string{word}
	}
	pieces := make([]string, 0, len(runes)/width+1)
	for len(runes) > width {
		pieces = append(pieces, string(runes[:width]))
		runes = runes[width:]
	}
	if len(runes) > 0 {
		pieces = append(pieces, string(runes))
	}
	return pieces
}

// Truncate cuts text to width runes, ending with the truncation marker when
// anything was dropped.
func Truncate(text string, width int) string {
	if width < 1 {
		width = 1
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	marker := []rune(TruncationMarker)
	if width <= len(marker) {
		return string(marker[:width])
	}
	return strings.TrimRight(string(runes[:width-len(marker)]), " ") + TruncationMarker
}

// WrapLimited wraps text and keeps at most maxLines lines. The second result
// reports whether lines were dropped; the last kept line then carries the
// truncation marker.
func WrapLimited(text string, width, maxLines int) ([]string, bool) {
	lines := Wrap(text, width)
	if maxLines < 1 || len(lines) <= maxLines {
		return lines, false
	}
	kept := lines[:maxLines]
	last := kept[maxLines-1]
	if textWidth(last)+len(TruncationMarker) <= width {
		kept[maxLines-1] = last + TruncationMarker
	} else {
		kept[maxLines-1] = Truncate(last+TruncationMarker, width)
	}
	return kept, true
}
