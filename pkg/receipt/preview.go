package receipt

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	qrcode "github.com/skip2/go-qrcode"
)

// previewQRSize is the rendered QR image edge in pixels.
const previewQRSize = 128

var previewFontSizes = map[FontSize]string{
	FontSmall:  "11px",
	FontMedium: "13px",
	FontLarge:  "16px",
}

var previewTemplate = template.Must(template.New("receipt").Parse(previewHTML))

// Preview renders the receipt as a standalone HTML page. It shows the same
// strings as the text output, one element per line.
type Preview struct{}

type previewLine struct {
	Class string
	Text  string
	Image template.URL
}

type previewPage struct {
	Title        string
	CharsPerLine int
	FontFamily   string
	FontSize     string
	Lines        []previewLine
}

func (Preview) ContentType() string {
	return "text/html; charset=utf-8"
}

func (Preview) Render(r *Receipt) ([]byte, error) {
	page := previewPage{
		Title:        r.Profile.BusinessName,
		CharsPerLine: r.CharsPerLine,
		FontFamily:   r.Profile.FontFamily,
		FontSize:     previewFontSizes[r.Profile.FontSize],
		Lines:        make([]previewLine, 0, len(r.Lines)),
	}
	if page.FontSize == "" {
		page.FontSize = previewFontSizes[FontMedium]
	}

	for _, l := range r.Lines {
		pl := previewLine{Class: lineClass(l), Text: l.Text}
		if l.Kind == LineQRCode && l.Payload != "" {
			png, err := qrcode.Encode(l.Payload, qrcode.Medium, previewQRSize)
			if err != nil {
				return nil, fmt.Errorf("preview: encode qr code: %w", err)
			}
			pl.Image = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
		}
		page.Lines = append(page.Lines, pl)
	}

	var buf bytes.Buffer
	if err := previewTemplate.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("preview: execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func lineClass(l Line) string {
	class := "line " + string(l.Kind)
	if l.Bold {
		class += " bold"
	}
	if l.Highlight {
		class += " highlight"
	}
	return class
}

const previewHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { background: #f4f4f4; margin: 0; padding: 24px; }
.receipt { background: #fff; margin: 0 auto; padding: 12px 0; width: {{.CharsPerLine}}ch; font-family: {{.FontFamily}}, monospace; font-size: {{.FontSize}}; box-shadow: 0 1px 4px rgba(0,0,0,.2); }
.line { white-space: pre; min-height: 1.2em; line-height: 1.2em; overflow: hidden; }
.bold { font-weight: bold; }
.highlight { background: #000; color: #fff; }
.qrcode, .barcode { text-align: center; }
.qrcode img { display: block; margin: 4px auto; }
.barcode { letter-spacing: .2ch; }
</style>
</head>
<body>
<div class="receipt">
{{- range .Lines}}
{{if .Image}}<div class="{{.Class}}"><img src="{{.Image}}" alt="{{.Text}}"></div>{{else}}<div class="{{.Class}}">{{.Text}}</div>{{end}}
{{- end}}
</div>
</body>
</html>
`
