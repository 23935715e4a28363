package receipt

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is checks.
var (
	ErrInvalidProfile        = errors.New("receipt: invalid print profile")
	ErrIncompleteTransaction = errors.New("receipt: incomplete transaction")
	ErrColumnOverflow        = errors.New("receipt: item columns do not fit the line")
)

// FieldError names one offending field and why it was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ConfigValidationError is returned when a merged profile has out-of-range values.
// It lists every offending field, not just the first.
type ConfigValidationError struct {
	Fields []FieldError
}

func (e *ConfigValidationError) Error() string {
	return ErrInvalidProfile.Error() + ": " + joinFieldErrors(e.Fields)
}

func (e *ConfigValidationError) Unwrap() error {
	return ErrInvalidProfile
}

// DataError is returned when the transaction lacks mandatory data.
type DataError struct {
	Fields []FieldError
}

func (e *DataError) Error() string {
	return ErrIncompleteTransaction.Error() + ": " + joinFieldErrors(e.Fields)
}

func (e *DataError) Unwrap() error {
	return ErrIncompleteTransaction
}

// RenderOverflowError reports that the item-name column would have no room.
// It is recovered by the layout engine and surfaced as a warning.
type RenderOverflowError struct {
	CharsPerLine int
	ContentWidth int
	NameWidth    int
}

func (e *RenderOverflowError) Error() string {
	return fmt.Sprintf("%s: %d chars per line leaves %d content columns and a name column of %d",
		ErrColumnOverflow.Error(), e.CharsPerLine, e.ContentWidth, e.NameWidth)
}

func (e *RenderOverflowError) Unwrap() error {
	return ErrColumnOverflow
}

// Warning codes attached to a rendered receipt.
const (
	WarnLayoutFallback   = "layout_fallback"
	WarnTextTruncated    = "text_truncated"
	WarnCurrencyFallback = "currency_fallback"
	WarnTotalsMismatch   = "totals_mismatch"
	WarnLineClamped      = "line_clamped"
)

// Warning is a non-fatal condition found while rendering.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func joinFieldErrors(fields []FieldError) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return strings.Join(parts, "; ")
}
