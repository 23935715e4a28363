package receipt

import (
	"fmt"
	"strings"
)

// Normalize resolves a partial customization into a complete profile.
// Each field takes the explicit override, then the saved setting, then the
// built-in default.
func Normalize(partial, saved Overrides) (Profile, error) {
	p := DefaultProfile()
	saved.ApplyTo(&p)
	partial.ApplyTo(&p)

	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks bounded and enumerated fields and reports all failures at once.
func (p Profile) Validate() error {
	var fields []FieldError
	fail := func(field, format string, args ...any) {
		fields = append(fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if p.PaperWidth.CharsPerLine() == 0 {
		fail("paperWidth", "must be one of 58mm, 80mm, 112mm, a4")
	}
	switch p.FontSize {
	case FontSmall, FontMedium, FontLarge:
	default:
		fail("fontSize", "must be one of small, medium, large")
	}
	switch p.HeaderStyle {
	case HeaderCentered, HeaderLeft, HeaderJustified:
	default:
		fail("headerStyle", "must be one of centered, left, justified")
	}
	switch p.SeparatorStyle {
	case SeparatorSolid, SeparatorDashed, SeparatorDotted:
	default:
		fail("separatorStyle", "must be one of solid, dashed, dotted")
	}
	switch p.PrintDensity {
	case DensityLight, DensityMedium, DensityDark:
	default:
		fail("printDensity", "must be one of light, medium, dark")
	}
	if _, ok := LookupEncoding(p.CharacterEncoding); !ok {
		fail("characterEncoding", "must be one of %s", strings.Join(EncodingNames(), ", "))
	}

	if p.MarginLeft < MinMargin || p.MarginLeft > MaxMargin {
		fail("marginLeft", "must be between %d and %d", MinMargin, MaxMargin)
	}
	if p.MarginRight < MinMargin || p.MarginRight > MaxMargin {
		fail("marginRight", "must be between %d and %d", MinMargin, MaxMargin)
	}
	if p.LogoHeight < MinLogoHeight || p.LogoHeight > MaxLogoHeight {
		fail("logoHeight", "must be between %d and %d", MinLogoHeight, MaxLogoHeight)
	}
	if p.CharactersPerLine != 0 && (p.CharactersPerLine < MinCharsPerLine || p.CharactersPerLine > MaxCharsPerLine) {
		fail("charactersPerLine", "must be between %d and %d", MinCharsPerLine, MaxCharsPerLine)
	}
	if p.LineSpacing < 0 || p.LineSpacing > MaxLineSpacing {
		fail("lineSpacing", "must be between 0 and %d", MaxLineSpacing)
	}

	if len(fields) > 0 {
		return &ConfigValidationError{Fields: fields}
	}
	return nil
}

var currencyFallbacks = map[string]string{
	"₹": "Rs.",
	"€": "EUR",
	"£": "GBP",
	"¥": "JPY",
	"₽": "RUB",
	"₩": "KRW",
}

// printableCurrency returns the currency symbol to use with the profile's
// encoding. The second result is false when a substitution was needed.
func (p Profile) printableCurrency() (string, bool) {
	enc, ok := LookupEncoding(p.CharacterEncoding)
	if !ok || enc.CanEncodeString(p.CurrencySymbol) {
		return p.CurrencySymbol, true
	}
	if fb, ok := currencyFallbacks[p.CurrencySymbol]; ok {
		return fb, false
	}
	var b strings.Builder
	for _, r := range p.CurrencySymbol {
		if enc.CanEncode(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String(), false
}
