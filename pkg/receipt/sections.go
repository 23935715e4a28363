package receipt

import (
	"fmt"
	"strings"
)

// MaxFreeTextLines caps each header field and the terms, return policy,
// notes and footer text.
const MaxFreeTextLines = 8

// logoRowHeight is the pixel height of one text row at the default spacing.
const logoRowHeight = 24

const subLineIndent = 2

// renderContext is the read-only input shared by every section builder.
type renderContext struct {
	txn     Transaction
	layout  Layout
	profile Profile
	format  Formatter
}

type sectionBuilder struct {
	section Section
	build   func(renderContext, *lineArena)
}

// sectionOrder is the fixed assembly order.
var sectionOrder = []sectionBuilder{
	{SectionHeader, buildHeader},
	{SectionMeta, buildMeta},
	{SectionCustomer, buildCustomer},
	{SectionItems, buildItems},
	{SectionTotals, buildTotals},
	{SectionPayment, buildPayment},
	{SectionNotes, buildNotes},
	{SectionTerms, buildTerms},
	{SectionReturnPolicy, buildReturnPolicy},
	{SectionFooter, buildFooter},
}

func buildHeader(rc renderContext, a *lineArena) {
	p := rc.profile
	if p.ShowLogo {
		rows := (p.LogoHeight + logoRowHeight - 1) / logoRowHeight
		for i := 0; i < rows; i++ {
			a.add(LineLogo, "")
		}
	}

	emit := func(field, text string, bold bool) {
		if strings.TrimSpace(text) == "" {
			return
		}
		lines, cut := WrapLimited(text, rc.layout.ContentWidth, MaxFreeTextLines)
		from := len(a.lines)
		for _, l := range rc.layout.alignBlock(lines) {
			a.text(l).Highlight = p.HeaderBackground
		}
		if bold {
			a.emphasize(from)
		}
		if cut {
			a.warn(WarnTextTruncated, "%s truncated to %d lines", field, MaxFreeTextLines)
		}
	}

	emit("business name", p.BusinessName, true)
	emit("address", p.Address, false)
	if p.Phone != "" {
		emit("phone", "Ph: "+p.Phone, false)
	}
	if p.Email != "" {
		emit("email", "Email: "+p.Email, false)
	}
	if p.TaxID != "" {
		label := p.TaxLabel
		if label == "" {
			label = "Tax ID"
		}
		emit("tax id", label+": "+p.TaxID, false)
	}
}

func buildMeta(rc renderContext, a *lineArena) {
	t := rc.txn
	label := "Bill No:"
	if t.IsReturn() {
		from := len(a.lines)
		a.centered(LineText, "*** RETURN ***")
		a.emphasize(from)
		label = "Return No:"
	}
	a.keyValue(LineText, label, t.Number)
	if !t.Date.IsZero() {
		a.keyValue(LineText, "Date:", rc.format.Date(t.Date))
		a.keyValue(LineText, "Time:", rc.format.Time(t.Date))
	}
	if t.Cashier != "" {
		a.keyValue(LineText, "Cashier:", t.Cashier)
	}
}

func buildCustomer(rc renderContext, a *lineArena) {
	c := rc.txn.Customer
	if !rc.profile.ShowCustomerDetails || c == nil {
		return
	}
	if c.Name != "" {
		a.keyValue(LineText, "Customer:", c.Name)
	}
	if c.Contact != "" {
		a.keyValue(LineText, "Contact:", c.Contact)
	}
}

func buildItems(rc renderContext, a *lineArena) {
	cols := rc.layout.Columns
	a.add(LineItemHeader, itemRow(cols, fitColumn("ITEM", cols.Name), "QTY", "RATE", "AMOUNT"))
	a.rule(LineRule, rc.profile.SeparatorStyle.Char())

	for _, it := range rc.txn.Items {
		qty, rate, amount := Quantity(it.Quantity), Amount(it.UnitPrice), Amount(it.Total)
		fits := textWidth(qty) <= cols.Qty && textWidth(rate) <= cols.Rate && textWidth(amount) <= cols.Amount

		names := Wrap(it.Name, cols.Name)
		for i, name := range names {
			if i == 0 && fits {
				a.add(LineItemRow, itemRow(cols, name, qty, rate, amount))
				continue
			}
			a.add(LineItemRow, name)
		}
		if !fits {
			a.rightAligned(LineItemRow, qty+" x "+rate+"  "+amount)
		}

		if rc.profile.ShowItemSKU && it.SKU != "" {
			a.indented(LineItemDetail, subLineIndent, "SKU: "+it.SKU)
		}
		if rc.profile.ShowMRP {
			if savings := it.Savings(); savings.IsPositive() {
				detail := "MRP " + rc.format.Currency(*it.MRP)
				if rc.profile.ShowSavings {
					detail += " (Save " + rc.format.Currency(savings) + ")"
				}
				a.indented(LineItemDetail, subLineIndent, detail)
			}
		}
	}
}

// itemRow lays out one row on the item-table columns.
func itemRow(cols Columns, name, qty, rate, amount string) string {
	gutter := strings.Repeat(" ", cols.Gutter)
	return padRight(name, cols.Name) + gutter +
		padLeft(qty, cols.Qty) + gutter +
		padLeft(rate, cols.Rate) + gutter +
		padLeft(amount, cols.Amount)
}

func fitColumn(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width])
}

func buildTotals(rc renderContext, a *lineArena) {
	t, f := rc.txn, rc.format

	a.keyValue(LineTotal, "Subtotal:", f.Currency(*t.Subtotal))

	if d := t.Discount; d != nil && !d.Amount.IsZero() {
		label := "Discount:"
		if d.Kind == DiscountPercentage {
			label = "Discount (" + Percent(d.Value) + "):"
		}
		a.keyValue(LineTotal, label, f.Negative(d.Amount))
	}

	if rc.profile.ShowTaxBreakdown && len(t.TaxBreakdown) > 0 {
		for _, tl := range t.TaxBreakdown {
			a.keyValue(LineTotal, tl.Label+" @ "+Percent(tl.Rate)+":", f.Currency(tl.Amount))
		}
	} else {
		label := "Tax:"
		if t.TaxRate != nil {
			label = "Tax (" + Percent(*t.TaxRate) + "):"
		}
		a.keyValue(LineTotal, label, f.Currency(*t.TaxAmount))
	}

	phrase := "GRAND TOTAL: " + f.Currency(*t.GrandTotal)
	if rc.profile.BoldTotals {
		a.rule(LineRule, '=')
		from := len(a.lines)
		a.rightAligned(LineGrandTotal, phrase)
		a.emphasize(from)
		a.rule(LineRule, '=')
	} else {
		a.rightAligned(LineGrandTotal, phrase)
	}

	if diff, off := t.totalsMismatch(); off {
		a.warn(WarnTotalsMismatch, "grand total differs from subtotal - discount + tax by %s", diff.StringFixed(2))
	}
}

func buildPayment(rc renderContext, a *lineArena) {
	t, f := rc.txn, rc.format
	a.keyValue(LineText, "Payment:", t.PaymentMethod)
	a.keyValue(LineText, "Paid:", f.Currency(*t.AmountPaid))
	if t.ChangeDue != nil {
		a.keyValue(LineText, "Change:", f.Currency(*t.ChangeDue))
	}
}

func buildNotes(rc renderContext, a *lineArena) {
	if strings.TrimSpace(rc.txn.Notes) == "" {
		return
	}
	a.text("Notes:").Bold = true
	a.capped("notes", rc.txn.Notes, nil)
}

func buildTerms(rc renderContext, a *lineArena) {
	p := rc.profile
	if !p.ShowTerms || strings.TrimSpace(p.TermsText) == "" {
		return
	}
	a.text("Terms & Conditions").Bold = true
	a.capped("terms", p.TermsText, nil)
}

func buildReturnPolicy(rc renderContext, a *lineArena) {
	p := rc.profile
	if !p.ShowReturnPolicy || strings.TrimSpace(p.ReturnPolicyText) == "" {
		return
	}
	a.text("Return Policy").Bold = true
	a.capped("return policy", p.ReturnPolicyText, nil)
}

func buildFooter(rc renderContext, a *lineArena) {
	t, p, f := rc.txn, rc.profile, rc.format
	width := rc.layout.ContentWidth

	if strings.TrimSpace(p.FooterText) != "" {
		a.capped("footer", p.FooterText, center)
	}

	count, qty := t.ItemCount()
	a.centered(LineText, fmt.Sprintf("Items: %d  Qty: %s", count, Quantity(qty)))

	if p.ShowSavings {
		if saved := t.TotalSavings(); saved.IsPositive() {
			from := len(a.lines)
			a.centered(LineText, "You saved "+f.Currency(saved))
			a.emphasize(from)
		}
	}
	if p.Website != "" {
		a.centered(LineText, p.Website)
	}
	if p.ShowBarcode {
		a.add(LineBarcode, center(Truncate(t.Number, width), width)).Payload = t.Number
	}
	if p.ShowQRCode {
		payload := t.Number
		if p.Website != "" {
			payload = p.Website
		}
		a.add(LineQRCode, center("[QR]", width)).Payload = payload
	}
	a.centered(LineText, "Receipt: "+t.Number)
}
