package receipt

import (
	"strings"
	"unicode"
)

// singleLine replaces every control rune, newlines included, with a space so
// one field can never become two printed rows or smuggle printer commands.
func singleLine(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

// multiLine is singleLine for free text: newlines survive as hard breaks for
// Wrap, carriage returns are dropped.
func multiLine(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r == '\r':
			return -1
		case unicode.IsControl(r):
			return ' '
		}
		return r
	}, s)
}

// sanitized returns a copy of t safe to lay out. Only Notes keeps newlines.
func (t Transaction) sanitized() Transaction {
	t.Number = singleLine(t.Number)
	t.Cashier = singleLine(t.Cashier)
	t.PaymentMethod = singleLine(t.PaymentMethod)
	t.Notes = multiLine(t.Notes)
	if t.Customer != nil {
		c := Customer{Name: singleLine(t.Customer.Name), Contact: singleLine(t.Customer.Contact)}
		t.Customer = &c
	}
	if len(t.Items) > 0 {
		items := make([]LineItem, len(t.Items))
		for i, it := range t.Items {
			it.Name = singleLine(it.Name)
			it.SKU = singleLine(it.SKU)
			items[i] = it
		}
		t.Items = items
	}
	if len(t.TaxBreakdown) > 0 {
		lines := make([]TaxLine, len(t.TaxBreakdown))
		for i, tl := range t.TaxBreakdown {
			tl.Label = singleLine(tl.Label)
			lines[i] = tl
		}
		t.TaxBreakdown = lines
	}
	return t
}

// sanitized returns a copy of p whose text fields are safe to lay out.
// Address, footer, terms and return policy keep their newlines.
func (p Profile) sanitized() Profile {
	p.BusinessName = singleLine(p.BusinessName)
	p.Phone = singleLine(p.Phone)
	p.Email = singleLine(p.Email)
	p.TaxID = singleLine(p.TaxID)
	p.TaxLabel = singleLine(p.TaxLabel)
	p.Website = singleLine(p.Website)
	p.CurrencySymbol = singleLine(p.CurrencySymbol)
	p.Address = multiLine(p.Address)
	p.FooterText = multiLine(p.FooterText)
	p.TermsText = multiLine(p.TermsText)
	p.ReturnPolicyText = multiLine(p.ReturnPolicyText)
	return p
}
