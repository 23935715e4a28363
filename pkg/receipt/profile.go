package receipt

// PaperWidth is a named paper/printer class.
type PaperWidth string

const (
	Paper58mm  PaperWidth = "58mm"
	Paper80mm  PaperWidth = "80mm"
	Paper112mm PaperWidth = "112mm"
	PaperA4    PaperWidth = "a4"
)

// charsPerLineByPaper is the canonical paper width to characters-per-line table.
var charsPerLineByPaper = map[PaperWidth]int{
	Paper58mm:  32,
	Paper80mm:  48,
	Paper112mm: 64,
	PaperA4:    80,
}

// CharsPerLine returns the table value for the paper class, or 0 if unknown.
func (w PaperWidth) CharsPerLine() int {
	return charsPerLineByPaper[w]
}

// FontSize only affects glyph height; the character grid is fixed by paper width.
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// HeaderStyle selects how header lines are padded.
type HeaderStyle string

const (
	HeaderCentered  HeaderStyle = "centered"
	HeaderLeft      HeaderStyle = "left"
	HeaderJustified HeaderStyle = "justified"
)

// SeparatorStyle selects the character used for section rules.
type SeparatorStyle string

const (
	SeparatorSolid  SeparatorStyle = "solid"
	SeparatorDashed SeparatorStyle = "dashed"
	SeparatorDotted SeparatorStyle = "dotted"
)

// Char returns the rule character for the style.
func (s SeparatorStyle) Char() rune {
	switch s {
	case SeparatorSolid:
		return '='
	case SeparatorDotted:
		return '.'
	default:
		return '-'
	}
}

// PrintDensity is the thermal head heat setting.
type PrintDensity string

const (
	DensityLight  PrintDensity = "light"
	DensityMedium PrintDensity = "medium"
	DensityDark   PrintDensity = "dark"
)

// Bounds for numeric profile fields.
const (
	MinMargin       = 0
	MaxMargin       = 10
	MinLogoHeight   = 30
	MaxLogoHeight   = 100
	MinCharsPerLine = 20
	MaxCharsPerLine = 80
	MaxLineSpacing  = 255
)

// Profile is a fully resolved print profile. It is passed by value and never
// mutated during a render.
type Profile struct {
	// Business identity
	BusinessName string `json:"businessName"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	TaxID        string `json:"taxId"`
	TaxLabel     string `json:"taxLabel"`
	FooterText   string `json:"footerText"`
	Website      string `json:"website"`

	// Layout
	PaperWidth  PaperWidth  `json:"paperWidth"`
	FontSize    FontSize    `json:"fontSize"`
	FontFamily  string      `json:"fontFamily"`
	HeaderStyle HeaderStyle `json:"headerStyle"`

	// Content toggles
	ShowLogo            bool `json:"showLogo"`
	ShowCustomerDetails bool `json:"showCustomerDetails"`
	ShowItemSKU         bool `json:"showItemSKU"`
	ShowMRP             bool `json:"showMRP"`
	ShowSavings         bool `json:"showSavings"`
	ShowBarcode         bool `json:"showBarcode"`
	ShowQRCode          bool `json:"showQRCode"`
	ShowTaxBreakdown    bool `json:"showTaxBreakdown"`
	ShowTerms           bool `json:"showTerms"`
	ShowReturnPolicy    bool `json:"showReturnPolicy"`

	TermsText        string `json:"termsText"`
	ReturnPolicyText string `json:"returnPolicyText"`

	// Styling
	HeaderBackground bool           `json:"headerBackground"`
	BoldTotals       bool           `json:"boldTotals"`
	SeparatorStyle   SeparatorStyle `json:"separatorStyle"`

	// Locale
	Language       string `json:"language"`
	CurrencySymbol string `json:"currencySymbol"`

	// Thermal tuning
	PrintDensity      PrintDensity `json:"printDensity"`
	AutoCut           bool         `json:"autoCut"`
	LineSpacing       int          `json:"lineSpacing"`
	CharacterEncoding string       `json:"characterEncoding"`
	CharactersPerLine int          `json:"charactersPerLine"` // 0 derives from PaperWidth
	MarginLeft        int          `json:"marginLeft"`
	MarginRight       int          `json:"marginRight"`
	LogoHeight        int          `json:"logoHeight"`
}

// DefaultProfile returns the canonical defaults. Every caller that needs a
// baseline profile goes through here.
func DefaultProfile() Profile {
	return Profile{
		BusinessName: "My Store",
		TaxLabel:     "GSTIN",
		FooterText:   "Thank you for shopping with us!",

		PaperWidth:  Paper80mm,
		FontSize:    FontMedium,
		FontFamily:  "monospace",
		HeaderStyle: HeaderCentered,

		ShowLogo:            false,
		ShowCustomerDetails: true,
		ShowItemSKU:         false,
		ShowMRP:             true,
		ShowSavings:         true,
		ShowBarcode:         false,
		ShowQRCode:          false,
		ShowTaxBreakdown:    true,
		ShowTerms:           false,
		ShowReturnPolicy:    false,

		HeaderBackground: false,
		BoldTotals:       true,
		SeparatorStyle:   SeparatorDashed,

		Language:       "en-IN",
		CurrencySymbol: "₹",

		PrintDensity:      DensityMedium,
		AutoCut:           true,
		LineSpacing:       30,
		CharacterEncoding: EncodingUTF8,
		CharactersPerLine: 0,
		MarginLeft:        0,
		MarginRight:       0,
		LogoHeight:        60,
	}
}

// Overrides is a partial profile. A nil field is unset and falls through to
// the next layer of the merge. It is also the persisted form of user settings.
type Overrides struct {
	BusinessName *string `json:"businessName,omitempty" mapstructure:"businessName"`
	Address      *string `json:"address,omitempty" mapstructure:"address"`
	Phone        *string `json:"phone,omitempty" mapstructure:"phone"`
	Email        *string `json:"email,omitempty" mapstructure:"email"`
	TaxID        *string `json:"taxId,omitempty" mapstructure:"taxId"`
	TaxLabel     *string `json:"taxLabel,omitempty" mapstructure:"taxLabel"`
	FooterText   *string `json:"footerText,omitempty" mapstructure:"footerText"`
	Website      *string `json:"website,omitempty" mapstructure:"website"`

	PaperWidth  *PaperWidth  `json:"paperWidth,omitempty" mapstructure:"paperWidth"`
	FontSize    *FontSize    `json:"fontSize,omitempty" mapstructure:"fontSize"`
	FontFamily  *string      `json:"fontFamily,omitempty" mapstructure:"fontFamily"`
	HeaderStyle *HeaderStyle `json:"headerStyle,omitempty" mapstructure:"headerStyle"`

	ShowLogo            *bool `json:"showLogo,omitempty" mapstructure:"showLogo"`
	ShowCustomerDetails *bool `json:"showCustomerDetails,omitempty" mapstructure:"showCustomerDetails"`
	ShowItemSKU         *bool `json:"showItemSKU,omitempty" mapstructure:"showItemSKU"`
	ShowMRP             *bool `json:"showMRP,omitempty" mapstructure:"showMRP"`
	ShowSavings         *bool `json:"showSavings,omitempty" mapstructure:"showSavings"`
	ShowBarcode         *bool `json:"showBarcode,omitempty" mapstructure:"showBarcode"`
	ShowQRCode          *bool `json:"showQRCode,omitempty" mapstructure:"showQRCode"`
	ShowTaxBreakdown    *bool `json:"showTaxBreakdown,omitempty" mapstructure:"showTaxBreakdown"`
	ShowTerms           *bool `json:"showTerms,omitempty" mapstructure:"showTerms"`
	ShowReturnPolicy    *bool `json:"showReturnPolicy,omitempty" mapstructure:"showReturnPolicy"`

	TermsText        *string `json:"termsText,omitempty" mapstructure:"termsText"`
	ReturnPolicyText *string `json:"returnPolicyText,omitempty" mapstructure:"returnPolicyText"`

	HeaderBackground *bool           `json:"headerBackground,omitempty" mapstructure:"headerBackground"`
	BoldTotals       *bool           `json:"boldTotals,omitempty" mapstructure:"boldTotals"`
	SeparatorStyle   *SeparatorStyle `json:"separatorStyle,omitempty" mapstructure:"separatorStyle"`

	Language       *string `json:"language,omitempty" mapstructure:"language"`
	CurrencySymbol *string `json:"currencySymbol,omitempty" mapstructure:"currencySymbol"`

	PrintDensity      *PrintDensity `json:"printDensity,omitempty" mapstructure:"printDensity"`
	AutoCut           *bool         `json:"autoCut,omitempty" mapstructure:"autoCut"`
	LineSpacing       *int          `json:"lineSpacing,omitempty" mapstructure:"lineSpacing"`
	CharacterEncoding *string       `json:"characterEncoding,omitempty" mapstructure:"characterEncoding"`
	CharactersPerLine *int          `json:"charactersPerLine,omitempty" mapstructure:"charactersPerLine"`
	MarginLeft        *int          `json:"marginLeft,omitempty" mapstructure:"marginLeft"`
	MarginRight       *int          `json:"marginRight,omitempty" mapstructure:"marginRight"`
	LogoHeight        *int          `json:"logoHeight,omitempty" mapstructure:"logoHeight"`
}

// ApplyTo copies every set field onto p.
func (o Overrides) ApplyTo(p *Profile) {
	setString(&p.BusinessName, o.BusinessName)
	setString(&p.Address, o.Address)
	setString(&p.Phone, o.Phone)
	setString(&p.Email, o.Email)
	setString(&p.TaxID, o.TaxID)
	setString(&p.TaxLabel, o.TaxLabel)
	setString(&p.FooterText, o.FooterText)
	setString(&p.Website, o.Website)

	if o.PaperWidth != nil {
		p.PaperWidth = *o.PaperWidth
	}
	if o.FontSize != nil {
		p.FontSize = *o.FontSize
	}
	setString(&p.FontFamily, o.FontFamily)
	if o.HeaderStyle != nil {
		p.HeaderStyle = *o.HeaderStyle
	}

	setBool(&p.ShowLogo, o.ShowLogo)
	setBool(&p.ShowCustomerDetails, o.ShowCustomerDetails)
	setBool(&p.ShowItemSKU, o.ShowItemSKU)
	setBool(&p.ShowMRP, o.ShowMRP)
	setBool(&p.ShowSavings, o.ShowSavings)
	setBool(&p.ShowBarcode, o.ShowBarcode)
	setBool(&p.ShowQRCode, o.ShowQRCode)
	setBool(&p.ShowTaxBreakdown, o.ShowTaxBreakdown)
	setBool(&p.ShowTerms, o.ShowTerms)
	setBool(&p.ShowReturnPolicy, o.ShowReturnPolicy)

	setString(&p.TermsText, o.TermsText)
	setString(&p.ReturnPolicyText, o.ReturnPolicyText)

	setBool(&p.HeaderBackground, o.HeaderBackground)
	setBool(&p.BoldTotals, o.BoldTotals)
	if o.SeparatorStyle != nil {
		p.SeparatorStyle = *o.SeparatorStyle
	}

	setString(&p.Language, o.Language)
	setString(&p.CurrencySymbol, o.CurrencySymbol)

	if o.PrintDensity != nil {
		p.PrintDensity = *o.PrintDensity
	}
	setBool(&p.AutoCut, o.AutoCut)
	setInt(&p.LineSpacing, o.LineSpacing)
	setString(&p.CharacterEncoding, o.CharacterEncoding)
	setInt(&p.CharactersPerLine, o.CharactersPerLine)
	setInt(&p.MarginLeft, o.MarginLeft)
	setInt(&p.MarginRight, o.MarginRight)
	setInt(&p.LogoHeight, o.LogoHeight)
}

// IsEmpty reports whether no field is set.
func (o Overrides) IsEmpty() bool {
	return o == Overrides{}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
