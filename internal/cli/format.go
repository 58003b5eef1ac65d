package cli

import (
	"fmt"

	"github.com/spf13/pflag"
)

// formatValue is the output format flag. It implements pflag.Value so
// invalid formats are rejected at parse time rather than after the image
// has been processed.
type formatValue string

const (
	formatText formatValue = "text"
	formatJSON formatValue = "json"
	formatHex  formatValue = "hex"
	formatRGB  formatValue = "rgb"
)

var _ pflag.Value = (*formatValue)(nil)

// String returns the current format name.
func (f *formatValue) String() string {
	return string(*f)
}

// Set validates and stores the format name.
func (f *formatValue) Set(s string) error {
	switch formatValue(s) {
	case formatText, formatJSON, formatHex, formatRGB:
		*f = formatValue(s)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json, hex, rgb)", s)
	}
}

// Type returns the flag type name shown in help output.
func (f *formatValue) Type() string {
	return "format"
}
