package receipt

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlainText_UTF8WithCut(t *testing.T) {
	r := mustRender(t, sampleTransaction(), DefaultProfile())
	out, err := PlainText{}.Render(r)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasSuffix(out, append(bytes.Repeat([]byte{'\n'}, cutFeedLines), gsPartialCut...)) {
		t.Fatalf("missing feed and cut: %q", out[len(out)-8:])
	}
	body := string(out[:len(out)-cutFeedLines-len(gsPartialCut)])
	if body != r.Text() {
		t.Fatal("text body differs from line model")
	}
}

func TestPlainText_NoCut(t *testing.T) {
	p := DefaultProfile()
	p.AutoCut = false
	r := mustRender(t, sampleTransaction(), p)
	out, err := PlainText{}.Render(r)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(out) != r.Text() {
		t.Fatal("expected bare text without cut")
	}
}

func TestPlainText_LegacyCodePageKeepsWidths(t *testing.T) {
	p := DefaultProfile()
	p.CharacterEncoding = "cp437"
	p.AutoCut = false
	p.BusinessName = "Café Über ☕"

	r := mustRender(t, sampleTransaction(), p)
	out, err := PlainText{}.Render(r)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	rows := bytes.Split(out, []byte{'\n'})
	if len(rows) != len(r.Lines) {
		t.Fatalf("rows = %d, lines = %d", len(rows), len(r.Lines))
	}
	for i, row := range rows {
		if len(row) != r.Lines[i].Width {
			t.Fatalf("row %d is %d bytes, line width %d", i, len(row), r.Lines[i].Width)
		}
	}
	if !bytes.Contains(out, []byte{'C', 'a', 'f', 0x82, ' ', 0x9A, 'b', 'e', 'r', ' ', '?'}) {
		t.Fatal("business name not encoded to cp437")
	}
}

func TestPreview_RendersSameStrings(t *testing.T) {
	p := DefaultProfile()
	p.ShowQRCode = true
	p.HeaderBackground = true
	r := mustRender(t, sampleTransaction(), p)

	out, err := Preview{}.Render(r)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "width: 48ch") {
		t.Error("page width not set from chars per line")
	}
	if !strings.Contains(html, "data:image/png;base64,") {
		t.Error("qr image missing")
	}
	if !strings.Contains(html, "line grand_total bold") {
		t.Error("grand total not styled bold")
	}
	if !strings.Contains(html, "highlight") {
		t.Error("header highlight missing")
	}
	if !strings.Contains(html, "GRAND TOTAL: ₹300.00") || !strings.Contains(html, "MRP ₹150.00 (Save ₹25.00)") {
		t.Error("preview text differs from line model")
	}
}

func TestPreview_EscapesText(t *testing.T) {
	p := DefaultProfile()
	p.BusinessName = "<script>alert(1)</script>"
	r := mustRender(t, sampleTransaction(), p)
	out, err := Preview{}.Render(r)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if bytes.Contains(out, []byte("<script>alert")) {
		t.Fatal("business name not escaped")
	}
}
